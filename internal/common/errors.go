package common

import "errors"

var (
	// ErrNoToken means no bearer token is held in memory or on disk.
	ErrNoToken = errors.New("no access token")

	// ErrInvalidToken is returned when a token cannot be inspected.
	ErrInvalidToken = errors.New("invalid token")
)
