package services

import "errors"

// Error taxonomy shared by the workshop services. Handlers map these to HTTP
// statuses at the boundary; anything else becomes a generic 500.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrSessionNotFound    = errors.New("session not found")
	ErrAttackNotFound     = errors.New("attack not found")
)
