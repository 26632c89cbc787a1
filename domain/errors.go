// server/domain/errors.go
package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrExternalAccount    = errors.New("account has no password")
	ErrEmptyText          = errors.New("text is required")
	ErrInvalidDuration    = errors.New("duration must be positive")
	ErrUnauthorized       = errors.New("unauthorized")
)
