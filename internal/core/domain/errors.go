package domain

import "errors"

var (
	// ErrValidation is wrapped with the offending field detail, e.g.
	// fmt.Errorf("%w: username is required", ErrValidation).
	ErrValidation = errors.New("validation failed")
	ErrInvalidID  = errors.New("invalid id")

	ErrInvalidCredentials = errors.New("incorrect credentials")
	ErrAccessDenied       = errors.New("access denied")
	ErrInvalidToken       = errors.New("invalid token")

	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
	ErrNotFound     = errors.New("resource not found")

	ErrUploadsDisabled = errors.New("uploads are not configured")
)
