package http

import (
	"context"

	"github.com/weddingmoments/studio-backend/internal/auth"
)

// PasswordSigner signs a user in with email and password.
type PasswordSigner interface {
	SignIn(ctx context.Context, email, password string) (*auth.Session, error)
}

// LoginRecorder stamps a profile's last login time.
type LoginRecorder interface {
	RecordLogin(ctx context.Context, uid, email string) error
}

type Handler struct {
	gate     *auth.Gate
	signer   PasswordSigner
	recorder LoginRecorder
}

func New(gate *auth.Gate, signer PasswordSigner, recorder LoginRecorder) *Handler {
	return &Handler{
		gate:     gate,
		signer:   signer,
		recorder: recorder,
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
