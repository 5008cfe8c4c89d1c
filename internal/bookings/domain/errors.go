package domain

import "errors"

var (
	ErrBookingNotFound = errors.New("booking request not found")
	ErrInvalidStatus   = errors.New("status must be pending, confirmed or cancelled")
	ErrInvalidChannel  = errors.New("channel must be whatsapp or email")
)
