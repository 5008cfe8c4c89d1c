package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weddingmoments/studio-backend/internal/auth"
)

type stubVerifier struct {
	revoked []string
}

func (s *stubVerifier) VerifyIDTokenAndCheckRevoked(_ context.Context, idToken string) (*fbauth.Token, error) {
	if idToken == "good" {
		return &fbauth.Token{UID: "u1", Claims: map[string]interface{}{"email": "staff@studio.com"}}, nil
	}
	return nil, errors.New("bad token")
}

func (s *stubVerifier) RevokeRefreshTokens(_ context.Context, uid string) error {
	s.revoked = append(s.revoked, uid)
	return nil
}

type stubSigner struct{}

func (stubSigner) SignIn(_ context.Context, email, password string) (*auth.Session, error) {
	switch {
	case email == "staff@studio.com" && password == "secret":
		return &auth.Session{IDToken: "good", UID: "u1", Email: email, ExpiresIn: "3600"}, nil
	case email == "slow@studio.com":
		return nil, fmt.Errorf("%w: TOO_MANY_ATTEMPTS_TRY_LATER", auth.ErrTooManyAttempts)
	case email == "offline@studio.com":
		return nil, fmt.Errorf("%w: dial tcp", auth.ErrSignInFailed)
	default:
		return nil, auth.ErrInvalidCredentials
	}
}

type recorderFunc func(ctx context.Context, uid, email string) error

func (f recorderFunc) RecordLogin(ctx context.Context, uid, email string) error {
	return f(ctx, uid, email)
}

type env struct {
	router   *gin.Engine
	gate     *auth.Gate
	verifier *stubVerifier
	logins   []string
}

func setupEnv(t *testing.T, ready bool) *env {
	gin.SetMode(gin.TestMode)
	e := &env{verifier: &stubVerifier{}}
	e.gate = auth.NewGate(e.verifier, nil)
	if ready {
		e.gate.MarkReady()
	}
	rec := recorderFunc(func(_ context.Context, uid, _ string) error {
		e.logins = append(e.logins, uid)
		return nil
	})
	e.router = gin.New()
	New(e.gate, stubSigner{}, rec).Register(e.router.Group("/auth"))
	return e
}

func (e *env) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func TestLogin(t *testing.T) {
	e := setupEnv(t, true)

	rr := e.do(http.MethodPost, "/auth/login", "", gin.H{"email": "staff@studio.com", "password": "secret"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"idToken":"good"`)
	assert.Equal(t, []string{"u1"}, e.logins)

	cases := []struct {
		email  string
		status int
		msg    string
	}{
		{"staff@studio.com", http.StatusUnauthorized, "Invalid email or password."},
		{"slow@studio.com", http.StatusTooManyRequests, "Too many attempts. Please try again later."},
		{"offline@studio.com", http.StatusBadGateway, "Failed to sign in. Please check your connection."},
	}
	for _, tc := range cases {
		rr := e.do(http.MethodPost, "/auth/login", "", gin.H{"email": tc.email, "password": "wrong"})
		assert.Equal(t, tc.status, rr.Code, tc.email)
		assert.Contains(t, rr.Body.String(), tc.msg)
	}

	rr = e.do(http.MethodPost, "/auth/login", "", gin.H{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestState(t *testing.T) {
	t.Run("unknown before ready", func(t *testing.T) {
		e := setupEnv(t, false)
		rr := e.do(http.MethodGet, "/auth/state", "good", nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"state":"unknown"`)
	})

	t.Run("unauthenticated carries the redirect", func(t *testing.T) {
		e := setupEnv(t, true)
		rr := e.do(http.MethodGet, "/auth/state", "", nil)
		assert.Contains(t, rr.Body.String(), `"state":"unauthenticated"`)
		assert.Contains(t, rr.Body.String(), `"redirect":"/login"`)
	})

	t.Run("authenticated lists permissions", func(t *testing.T) {
		e := setupEnv(t, true)
		rr := e.do(http.MethodGet, "/auth/state", "good", nil)
		assert.Contains(t, rr.Body.String(), `"state":"authenticated"`)
		assert.Contains(t, rr.Body.String(), string(auth.PermManageCatalog))
		assert.NotContains(t, rr.Body.String(), string(auth.PermManageUsers))
	})
}

func TestProtectedRoutes(t *testing.T) {
	t.Run("initializing gate answers 503", func(t *testing.T) {
		e := setupEnv(t, false)
		assert.Equal(t, http.StatusServiceUnavailable, e.do(http.MethodGet, "/auth/me", "good", nil).Code)
	})

	e := setupEnv(t, true)

	t.Run("missing token answers 401", func(t *testing.T) {
		rr := e.do(http.MethodGet, "/auth/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), `"redirect":"/login"`)
	})

	t.Run("me returns the principal", func(t *testing.T) {
		rr := e.do(http.MethodGet, "/auth/me", "good", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"email":"staff@studio.com"`)
		assert.Contains(t, rr.Body.String(), `"role":"User"`)
		assert.Equal(t, []string{"u1"}, e.logins)
	})

	t.Run("session records the login", func(t *testing.T) {
		require.Equal(t, http.StatusOK, e.do(http.MethodPost, "/auth/session", "good", nil).Code)
		assert.Equal(t, []string{"u1", "u1"}, e.logins)
	})

	t.Run("logout revokes tokens", func(t *testing.T) {
		require.Equal(t, http.StatusOK, e.do(http.MethodPost, "/auth/logout", "good", nil).Code)
		assert.Equal(t, []string{"u1"}, e.verifier.revoked)
	})
}
