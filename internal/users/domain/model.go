package domain

import (
	"time"

	"github.com/weddingmoments/studio-backend/internal/auth"
)

// UserProfile is the dashboard's record of an account. The credential itself
// lives with the auth provider under the same id.
type UserProfile struct {
	ID        string     `json:"id" firestore:"id"`
	Name      string     `json:"name" firestore:"name"`
	Email     string     `json:"email" firestore:"email"`
	Role      auth.Role  `json:"role" firestore:"role"`
	Phone     string     `json:"phone,omitempty" firestore:"phone,omitempty"`
	LastLogin *time.Time `json:"lastLogin,omitempty" firestore:"lastLogin,omitempty"`
	JoinedAt  time.Time  `json:"joinedAt" firestore:"joinedAt"`
}

func (u UserProfile) DocumentID() string { return u.ID }

// JoinedBefore orders profiles by join time, then id.
func JoinedBefore(a, b UserProfile) bool {
	if !a.JoinedAt.Equal(b.JoinedAt) {
		return a.JoinedAt.Before(b.JoinedAt)
	}
	return a.ID < b.ID
}

// NewUser is an admin's request to create an account.
type NewUser struct {
	Name            string
	Email           string
	Phone           string
	Role            auth.Role
	Password        string
	ConfirmPassword string
}

// MinPasswordLength matches the auth provider's own minimum.
const MinPasswordLength = 6
