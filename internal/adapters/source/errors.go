package source

import "errors"

// Sentinel kinds for source errors.
var (
	ErrUnavailable = errors.New("source unavailable")
	ErrDisabled    = errors.New("source disabled")
	ErrHTTPStatus  = errors.New("unexpected http status")
	ErrTooLarge    = errors.New("body exceeds limit")
)
