package domain

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrNameRequired           = errors.New("name is required")
	ErrEmailRequired          = errors.New("email is required")
	ErrPasswordTooShort       = errors.New("password must be at least 6 characters")
	ErrPasswordMismatch       = errors.New("passwords do not match")
	ErrInvalidRole            = errors.New("role must be Admin or User")
	ErrEmailExists            = errors.New("an account with this email already exists")
	ErrProvisionerUnavailable = errors.New("account provisioning is not configured")
)

// IsValidation reports whether err is a form problem the caller can fix.
func IsValidation(err error) bool {
	return errors.Is(err, ErrNameRequired) ||
		errors.Is(err, ErrEmailRequired) ||
		errors.Is(err, ErrPasswordTooShort) ||
		errors.Is(err, ErrPasswordMismatch) ||
		errors.Is(err, ErrInvalidRole)
}
