package queue

import "errors"

// Sentinel kinds for queue errors.
var (
	ErrFull   = errors.New("reload queue full")
	ErrClosed = errors.New("reload queue closed")
)
