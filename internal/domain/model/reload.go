package model

import (
	"time"

	"github.com/google/uuid"
)

// ReloadRequest asks for the snapshot to be rebuilt from the sources.
type ReloadRequest struct {
	ID          string    `json:"id"`
	Reason      string    `json:"reason"`
	RequestedAt time.Time `json:"requested_at"`
}

// NewReloadRequest stamps a request with a fresh id and the current time.
func NewReloadRequest(reason string) ReloadRequest {
	return ReloadRequest{ID: uuid.NewString(), Reason: reason, RequestedAt: time.Now().UTC()}
}
