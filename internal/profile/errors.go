package profile

import "errors"

var (
	// ErrNotFound means an edited row does not exist or belongs to another user.
	ErrNotFound = errors.New("profile row not found")
	// ErrInvalidInput rejects an empty patch.
	ErrInvalidInput = errors.New("invalid input")
)
