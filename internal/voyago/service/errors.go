package service

import "errors"

// Failure kinds recovered at the HTTP boundary. Anything not listed here is
// treated as an internal error and never leaks detail to clients.
var (
	ErrDuplicateEmail     = errors.New("service: email already registered")
	ErrInvalidEmail       = errors.New("service: invalid email")
	ErrWeakPassword       = errors.New("service: password too weak")
	ErrInvalidCredentials = errors.New("service: invalid email or password")
	ErrMissingToken       = errors.New("service: missing token")
	ErrInvalidToken       = errors.New("service: invalid token")
	ErrUserNotFound       = errors.New("service: user not found")
)
