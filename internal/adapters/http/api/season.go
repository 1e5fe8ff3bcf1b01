package api

import (
	"context"
	"net/http"

	"github.com/okian/touchline/internal/domain/season"
)

// SeasonDependencies defines the interface for the season summary.
type SeasonDependencies interface {
	Season(ctx context.Context) season.Summary
}

// SeasonHandler handles season requests.
type SeasonHandler struct {
	deps SeasonDependencies
}

// NewSeasonHandler creates a new season handler.
func NewSeasonHandler(deps SeasonDependencies) *SeasonHandler {
	return &SeasonHandler{deps: deps}
}

// HandleGet handles GET /season.
func (h *SeasonHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	s := h.deps.Season(r.Context())
	writeJSON(w, http.StatusOK, struct {
		Empty bool `json:"empty"`
		season.Summary
	}{Empty: s.Matches == 0, Summary: s})
}
