package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/weddingmoments/studio-backend/internal/auth"
)

type tokenTable map[string]*fbauth.Token

func (t tokenTable) VerifyIDTokenAndCheckRevoked(_ context.Context, idToken string) (*fbauth.Token, error) {
	if tok, ok := t[idToken]; ok {
		return tok, nil
	}
	return nil, errors.New("invalid")
}

func (tokenTable) RevokeRefreshTokens(context.Context, string) error { return nil }

type roleTable map[string]auth.Role

func (r roleTable) RoleOf(uid, _ string) auth.Role { return r[uid] }

func TestRequirePermission(t *testing.T) {
	gin.SetMode(gin.TestMode)

	gate := auth.NewGate(
		tokenTable{"a": {UID: "admin"}, "u": {UID: "user"}},
		roleTable{"admin": auth.RoleAdmin, "user": auth.RoleUser},
	)
	gate.MarkReady()

	router := gin.New()
	router.POST("/users", RequireAuth(gate), RequirePermission(auth.PermManageUsers), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "uid": auth.UserFirebaseUID(c)})
	})

	do := func(token string) int {
		req := httptest.NewRequest(http.MethodPost, "/users", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		return rr.Code
	}

	assert.Equal(t, http.StatusOK, do("a"))
	assert.Equal(t, http.StatusForbidden, do("u"))
	assert.Equal(t, http.StatusUnauthorized, do("nope"))
	assert.Equal(t, http.StatusUnauthorized, do(""))
}

func TestRequirePermissionWithoutAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/x", RequirePermission(auth.PermViewDashboard), func(c *gin.Context) { c.Status(http.StatusOK) })

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestExtractToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	c.Request.Header.Set("Authorization", "Bearer abc")
	assert.Equal(t, "abc", ExtractToken(c))

	c.Request.Header.Set("Authorization", "Basic abc")
	assert.Empty(t, ExtractToken(c))
}
