package domain

import "errors"

var (
	ErrServiceNotFound     = errors.New("service not found")
	ErrServiceExists       = errors.New("service already exists")
	ErrSubServiceNotFound  = errors.New("sub-service not found")
	ErrDuplicateSubService = errors.New("sub-service ids must be unique within a service")
	ErrNegativePrice       = errors.New("price must not be negative")
	ErrInvalidImport       = errors.New("invalid catalog file")
)
