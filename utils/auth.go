package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"dbconnmanager/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

// MsgUnauthorized is returned to callers without a valid admin token.
const MsgUnauthorized = "Unauthorized."

const userContextKey = "auth_user"

// AdminClaims are the claims carried by admin bearer tokens. Subject names the acting user.
type AdminClaims struct {
	Role string `json:"role"`
	jwt.StandardClaims
}

// IssueToken signs an HS256 token for user with role, valid for ttl.
func IssueToken(secret []byte, user, role string, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("signing secret is empty")
	}
	now := time.Now()
	claims := AdminClaims{
		Role: role,
		StandardClaims: jwt.StandardClaims{
			Subject:   user,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseToken verifies an HS256 token and returns its claims.
func ParseToken(secret []byte, tokenString string) (*AdminClaims, error) {
	if len(secret) == 0 {
		return nil, errors.New("signing secret is empty")
	}
	claims := &AdminClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}
	return claims, nil
}

// AuthMiddleware admits requests bearing a valid token whose role equals role.
// Everything else is answered with 401 before the handler runs.
func AuthMiddleware(secret []byte, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if header == "" || tokenString == header {
			abortUnauthorized(c, "missing bearer token")
			return
		}

		claims, err := ParseToken(secret, tokenString)
		if err != nil {
			abortUnauthorized(c, err.Error())
			return
		}
		if claims.Role != role || claims.Subject == "" {
			abortUnauthorized(c, fmt.Sprintf("subject %q has role %q", claims.Subject, claims.Role))
			return
		}

		c.Set(userContextKey, claims.Subject)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, reason string) {
	logger.Warnf("Rejected %s %s: %s", c.Request.Method, c.Request.URL.Path, reason)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   MsgUnauthorized,
	})
}

// CurrentUser returns the authenticated subject, or "" outside AuthMiddleware.
func CurrentUser(c *gin.Context) string {
	return c.GetString(userContextKey)
}
