package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dbconnmanager/models"
	"dbconnmanager/services"
	"dbconnmanager/services/credential"
	"dbconnmanager/services/notice"
	"dbconnmanager/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("controller-secret")

type fakeConnectionService struct {
	calls    int
	records  map[uint]models.DBConnection
	lastUser string
	lastIn   services.SaveConnectionInput
	notices  []string
}

func (f *fakeConnectionService) Create(_ context.Context, user string, in services.SaveConnectionInput) (*services.SaveResult, error) {
	f.calls++
	f.lastUser, f.lastIn = user, in
	rec := models.DBConnection{ID: 10, Title: in.Title, Password: "pw"}
	return &services.SaveResult{Connection: rec.View(), Notices: f.notices}, nil
}

func (f *fakeConnectionService) Update(_ context.Context, user string, id uint, in services.SaveConnectionInput) (*services.SaveResult, error) {
	f.calls++
	f.lastUser, f.lastIn = user, in
	rec, ok := f.records[id]
	if !ok {
		return nil, services.ErrConnectionNotFound
	}
	rec.Title = in.Title
	return &services.SaveResult{Connection: rec.View(), Notices: []string{}}, nil
}

func (f *fakeConnectionService) Get(_ context.Context, id uint) (*models.DBConnection, error) {
	f.calls++
	rec, ok := f.records[id]
	if !ok {
		return nil, services.ErrConnectionNotFound
	}
	return &rec, nil
}

func (f *fakeConnectionService) List(context.Context) ([]models.DBConnection, error) {
	f.calls++
	out := []models.DBConnection{}
	for _, rec := range f.records {
		out = append(out, rec)
	}
	return out, nil
}

func (f *fakeConnectionService) Delete(_ context.Context, id uint) error {
	f.calls++
	if _, ok := f.records[id]; !ok {
		return services.ErrConnectionNotFound
	}
	delete(f.records, id)
	return nil
}

type fakeTestService struct {
	calls  int
	stored int
	input  map[string]any
	result *services.TestResult
	err    error
}

func (f *fakeTestService) TestCredentials(_ context.Context, _ uint, input map[string]any) (*services.TestResult, error) {
	f.calls++
	f.input = input
	return f.result, f.err
}

func (f *fakeTestService) TestConnection(context.Context, uint) (*services.TestResult, error) {
	f.calls++
	f.stored++
	return f.result, f.err
}

type fakeQueryService struct {
	directives []services.Directive
	contents   []string
}

func (f *fakeQueryService) Render(_ context.Context, d services.Directive) string {
	f.directives = append(f.directives, d)
	return "<table></table>"
}

func (f *fakeQueryService) RenderContent(_ context.Context, content string) string {
	f.contents = append(f.contents, content)
	return "expanded:" + content
}

type testEnv struct {
	router  *gin.Engine
	conns   *fakeConnectionService
	tester  *fakeTestService
	queries *fakeQueryService
	notices notice.NoticeService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		conns: &fakeConnectionService{records: map[uint]models.DBConnection{
			3: {ID: 3, Title: "Reports", Password: "secret", PostStatus: models.PostStatusPublish},
		}},
		tester: &fakeTestService{result: &services.TestResult{
			Success:   false,
			Status:    models.StatusError,
			Message:   "MySQL connection failed: dial tcp 127.0.0.1:1: connect: connection refused",
			CheckedAt: 1714559400,
		}},
		queries: &fakeQueryService{},
		notices: notice.NewNoticeService(time.Minute),
	}
	SetDBConnectionService(env.conns)
	SetQueryService(env.queries, services.DefaultQueryLimit)
	SetNoticeService(env.notices)

	env.router = SetupRouter(RouterConfig{
		JWTSecret:      testSecret,
		AdminRole:      "admin",
		ConnectionTest: env.tester,
	})
	return env
}

func (env *testEnv) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func adminToken(t *testing.T, user string) string {
	t.Helper()
	token, err := utils.IssueToken(testSecret, user, "admin", time.Hour)
	require.NoError(t, err)
	return token
}

func TestAdminRoutes_UnauthorizedMakesNoCalls(t *testing.T) {
	env := newTestEnv(t)
	editor, err := utils.IssueToken(testSecret, "bob", "editor", time.Hour)
	require.NoError(t, err)

	routes := []struct{ method, path, body string }{
		{http.MethodGet, "/api/connections", ""},
		{http.MethodPost, "/api/connections", `{"title":"x"}`},
		{http.MethodGet, "/api/connections/3", ""},
		{http.MethodPut, "/api/connections/3", `{"title":"x"}`},
		{http.MethodDelete, "/api/connections/3", ""},
		{http.MethodPost, "/api/connections/3/test", `{"credentials":{"host":"h"}}`},
		{http.MethodGet, "/api/notices", ""},
	}
	for _, rt := range routes {
		for _, token := range []string{"", editor} {
			w := env.do(t, rt.method, rt.path, rt.body, token)
			assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", rt.method, rt.path)
			assert.JSONEq(t, `{"success":false,"error":"Unauthorized."}`, w.Body.String())
		}
	}
	assert.Zero(t, env.conns.calls)
	assert.Zero(t, env.tester.calls)
}

func TestTestConnection_WithCredentials(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/connections/3/test", `{"credentials":{"db_type":"mysql","host":"127.0.0.1","port":"1"}}`, adminToken(t, "alice"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"success": false,
		"data": {
			"success": false,
			"status": "error",
			"message": "MySQL connection failed: dial tcp 127.0.0.1:1: connect: connection refused",
			"checked_at": 1714559400
		}
	}`, w.Body.String())
	assert.Equal(t, "127.0.0.1", env.tester.input["host"])
	assert.Zero(t, env.tester.stored)
}

func TestTestConnection_WithoutBodyUsesStoredCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.tester.result = &services.TestResult{Success: true, Status: models.StatusSuccess, Message: services.MsgMySQLConnected, CheckedAt: 1}

	w := env.do(t, http.MethodPost, "/api/connections/3/test", "", adminToken(t, "alice"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, env.tester.stored)

	var body struct {
		Success bool                `json:"success"`
		Data    services.TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, services.MsgMySQLConnected, body.Data.Message)
}

func TestTestConnection_Errors(t *testing.T) {
	env := newTestEnv(t)
	token := adminToken(t, "alice")

	w := env.do(t, http.MethodPost, "/api/connections/abc/test", "", token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Invalid connection ID."}`, w.Body.String())

	env.tester.err = services.ErrConnectionNotFound
	w = env.do(t, http.MethodPost, "/api/connections/99/test", "", token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	env.tester.err = &credential.UserError{Message: credential.MsgInvalidOptions}
	w = env.do(t, http.MethodPost, "/api/connections/3/test", `{"credentials":{"options":"{bad"}}`, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Additional Options must contain valid JSON."}`, w.Body.String())
}

func TestConnectionsCRUD(t *testing.T) {
	env := newTestEnv(t)
	token := adminToken(t, "alice")

	env.conns.notices = []string{credential.MsgInvalidOptions}
	w := env.do(t, http.MethodPost, "/api/connections", `{"title":"New","credentials":{"options":"{invalid}"}}`, token)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "alice", env.conns.lastUser)
	assert.Equal(t, "{invalid}", env.conns.lastIn.Credentials["options"])
	assert.Contains(t, w.Body.String(), `"notices":["Additional Options must contain valid JSON."]`)

	w = env.do(t, http.MethodPost, "/api/connections", `{"title":"x","post_status":"trash"}`, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodGet, "/api/connections/3", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"password":"••••••"`)
	assert.NotContains(t, w.Body.String(), "secret")

	w = env.do(t, http.MethodGet, "/api/connections", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"Reports"`)

	w = env.do(t, http.MethodPut, "/api/connections/3", `{"title":"Renamed"}`, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"Renamed"`)

	w = env.do(t, http.MethodPut, "/api/connections/77", `{"title":"Renamed"}`, token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodDelete, "/api/connections/3", "", token)
	assert.Equal(t, http.StatusOK, w.Code)
	w = env.do(t, http.MethodGet, "/api/connections/3", "", token)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = env.do(t, http.MethodGet, "/api/connections/0", "", token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNotices_ConsumedOncePerUser(t *testing.T) {
	env := newTestEnv(t)
	env.notices.Push("alice", credential.MsgInvalidOptions)

	w := env.do(t, http.MethodGet, "/api/notices", "", adminToken(t, "bob"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":[]}`, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/notices", "", adminToken(t, "alice"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), credential.MsgInvalidOptions)

	w = env.do(t, http.MethodGet, "/api/notices", "", adminToken(t, "alice"))
	assert.JSONEq(t, `{"success":true,"data":[]}`, w.Body.String())
}

func TestRenderQuery_PublicHTML(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/render/query?id=3&query=SELECT+1&limit=5&template=json", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "<table></table>", w.Body.String())

	require.Len(t, env.queries.directives, 1)
	assert.Equal(t, services.Directive{
		ID:         3,
		Query:      "SELECT 1",
		Filter:     "{}",
		Projection: "{}",
		Limit:      5,
		Template:   "json",
	}, env.queries.directives[0])

	env.do(t, http.MethodGet, "/api/render/query?id=3&collection=widgets", "", "")
	assert.Equal(t, services.DefaultQueryLimit, env.queries.directives[1].Limit)
	assert.Equal(t, "widgets", env.queries.directives[1].Collection)
}

func TestRenderContent_PublicHTML(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/render", `{"content":"<p>[external_db_query id=3]</p>"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "expanded:<p>[external_db_query id=3]</p>", w.Body.String())

	w = env.do(t, http.MethodPost, "/api/render", `not json`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = env.do(t, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "dbconnmanager_http_status_code_counter")
}
