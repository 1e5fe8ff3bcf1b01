package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	ErrNotFound    = errors.New("roster not found")
	ErrNilSnapshot = errors.New("nil snapshot")
)
