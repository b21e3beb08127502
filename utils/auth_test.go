package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func newAuthRouter(reached *bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", AuthMiddleware(testSecret, "admin"), func(c *gin.Context) {
		*reached = true
		c.String(http.StatusOK, CurrentUser(c))
	})
	return r
}

func doAuth(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_AdmitsAdmin(t *testing.T) {
	reached := false
	r := newAuthRouter(&reached)

	token, err := IssueToken(testSecret, "alice", "admin", time.Hour)
	require.NoError(t, err)

	w := doAuth(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", w.Body.String())
	assert.True(t, reached)
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	editor, _ := IssueToken(testSecret, "bob", "editor", time.Hour)
	expired, _ := IssueToken(testSecret, "alice", "admin", -time.Minute)
	foreign, _ := IssueToken([]byte("other-secret"), "alice", "admin", time.Hour)
	noneAlg, _ := jwt.NewWithClaims(jwt.SigningMethodNone, AdminClaims{Role: "admin", StandardClaims: jwt.StandardClaims{Subject: "alice"}}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)

	cases := map[string]string{
		"missing header": "",
		"not bearer":     "Basic abc",
		"garbage":        "Bearer not-a-token",
		"wrong role":     "Bearer " + editor,
		"expired":        "Bearer " + expired,
		"wrong secret":   "Bearer " + foreign,
		"none algorithm": "Bearer " + noneAlg,
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			reached := false
			w := doAuth(newAuthRouter(&reached), header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"success":false,"error":"Unauthorized."}`, w.Body.String())
			assert.False(t, reached)
		})
	}
}

func TestIssueToken_EmptySecret(t *testing.T) {
	_, err := IssueToken(nil, "alice", "admin", time.Hour)
	assert.Error(t, err)
	_, err = ParseToken(nil, "x")
	assert.Error(t, err)
}

func TestLoggerMiddleware_RequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(LoggerMiddleware())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

type sample struct {
	Status string `validate:"omitempty,oneof=draft publish"`
}

func TestValidateStruct(t *testing.T) {
	assert.NoError(t, ValidateStruct(sample{Status: "draft"}))
	err := ValidateStruct(sample{Status: "trash"})
	require.Error(t, err)
	assert.Equal(t, "Status must satisfy oneof=draft publish", ValidationMessage(err))
}
