package domain

import "errors"

var (
	ErrOfferNotFound = errors.New("offer not found")
	ErrInvalidType   = errors.New("offer type must be ticker or badge")
)
