package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotStarted      = errors.New("service not started")
	ErrMissingOpponent = errors.New("opponent is required")
	ErrReloadBusy      = errors.New("reload already queued")
)
