package auth

import (
	"context"
	"fmt"
	"sync/atomic"

	"firebase.google.com/go/v4/auth"

	"github.com/weddingmoments/studio-backend/internal/logging"
)

// State is where a request stands with respect to authentication.
type State string

const (
	// StateUnknown means the provider has not reported yet; nothing should
	// be rendered.
	StateUnknown         State = "unknown"
	StateAuthenticated   State = "authenticated"
	StateUnauthenticated State = "unauthenticated"
)

// LoginPath is where unauthenticated visitors are sent.
const LoginPath = "/login"

// TokenVerifier is the subset of the Firebase Auth client the gate needs.
type TokenVerifier interface {
	VerifyIDTokenAndCheckRevoked(ctx context.Context, idToken string) (*auth.Token, error)
	RevokeRefreshTokens(ctx context.Context, uid string) error
}

// RoleResolver maps an authenticated principal to a role.
type RoleResolver interface {
	RoleOf(uid, email string) Role
}

// Principal is the authenticated caller.
type Principal struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Gate decides the authentication state of each request. It stays in
// StateUnknown until MarkReady is called.
type Gate struct {
	verifier TokenVerifier
	roles    RoleResolver
	ready    atomic.Bool
}

func NewGate(verifier TokenVerifier, roles RoleResolver) *Gate {
	return &Gate{verifier: verifier, roles: roles}
}

// MarkReady moves the gate out of StateUnknown.
func (g *Gate) MarkReady() {
	g.ready.Store(true)
}

func (g *Gate) Ready() bool {
	return g.verifier != nil && g.ready.Load()
}

// Evaluate resolves an ID token to a state and, when authenticated, the
// principal behind it.
func (g *Gate) Evaluate(ctx context.Context, idToken string) (State, *Principal) {
	if !g.Ready() {
		return StateUnknown, nil
	}
	if idToken == "" {
		return StateUnauthenticated, nil
	}

	token, err := g.verifier.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		logging.NewLogger(ctx).Warnf("verify_token", "rejected token: %v", err)
		return StateUnauthenticated, nil
	}

	email, _ := token.Claims["email"].(string)
	p := &Principal{UID: token.UID, Email: email, Role: RoleUser}
	if g.roles != nil {
		p.Role = g.roles.RoleOf(token.UID, email)
	}
	return StateAuthenticated, p
}

// Logout revokes the principal's refresh tokens. Their current ID token is
// rejected from the next request on.
func (g *Gate) Logout(ctx context.Context, uid string) error {
	if g.verifier == nil {
		return fmt.Errorf("authentication provider not configured")
	}
	if err := g.verifier.RevokeRefreshTokens(ctx, uid); err != nil {
		return fmt.Errorf("revoke refresh tokens: %w", err)
	}
	return nil
}
