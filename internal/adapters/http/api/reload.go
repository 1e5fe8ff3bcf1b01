package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	service "github.com/okian/touchline/internal/app"
	"github.com/okian/touchline/internal/domain/model"
)

// ReloadDependencies defines the interface for queueing reloads.
type ReloadDependencies interface {
	RequestReload(ctx context.Context, reason string) (model.ReloadRequest, error)
}

type reloadResponse struct {
	Status  string              `json:"status"`
	Request model.ReloadRequest `json:"request"`
}

// ReloadHandler handles reload requests.
type ReloadHandler struct {
	deps ReloadDependencies
}

// NewReloadHandler creates a new reload handler.
func NewReloadHandler(deps ReloadDependencies) *ReloadHandler {
	return &ReloadHandler{deps: deps}
}

// HandlePost handles POST /reload?reason=... and answers 202 once queued.
func (h *ReloadHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_reload"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	reason := strings.TrimSpace(r.URL.Query().Get("reason"))
	if reason == "" {
		reason = "api"
	}
	req, err := h.deps.RequestReload(r.Context(), reason)
	switch {
	case errors.Is(err, service.ErrReloadBusy):
		writeError(w, http.StatusTooManyRequests, "backpressure", WrapKind(op, ErrBackpressure, err))
	case errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrUnavailable, err))
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	default:
		writeJSON(w, http.StatusAccepted, reloadResponse{Status: "accepted", Request: req})
	}
}
