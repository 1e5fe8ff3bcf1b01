package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/okian/touchline/internal/domain/model"
)

// LineupDependencies defines the interface for pitch layouts.
type LineupDependencies interface {
	Lineup(ctx context.Context, key, formation string) (model.Lineup, error)
}

// LineupHandler handles lineup requests.
type LineupHandler struct {
	deps LineupDependencies
}

// NewLineupHandler creates a new lineup handler.
func NewLineupHandler(deps LineupDependencies) *LineupHandler {
	return &LineupHandler{deps: deps}
}

// HandleGet handles GET /lineups/{key}?formation=4-3-3.
func (h *LineupHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_lineup"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	key := strings.TrimPrefix(r.URL.Path, "/lineups/")
	if key == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	lu, err := h.deps.Lineup(r.Context(), key, strings.TrimSpace(r.URL.Query().Get("formation")))
	if err != nil {
		writeLookupError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, lu)
}
