package domain

import "errors"

// ErrInvalidCredentials carries the user-visible login failure message verbatim.
var ErrInvalidCredentials = errors.New("Invalid username or password") //nolint:staticcheck // shown to users as-is

var (
	ErrUnknownRole       = errors.New("unknown role")
	ErrInvalidToken      = errors.New("invalid token")
	ErrSessionNotFound   = errors.New("session not found")
	ErrForbidden         = errors.New("access forbidden")
	ErrUnknownRecordKind = errors.New("unknown record kind")
)
