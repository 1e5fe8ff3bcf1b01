package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/okian/touchline/internal/domain/standings"
)

// StandingsDependencies defines the interface for league table reads.
type StandingsDependencies interface {
	Standings(ctx context.Context, v standings.View) []standings.Row
}

type standingsRow struct {
	standings.Row
	GoalDifference int     `json:"goal_difference"`
	PointsPerMatch float64 `json:"points_per_match"`
	WinRate        float64 `json:"win_rate"`
}

type standingsResponse struct {
	View  standings.View `json:"view"`
	Empty bool           `json:"empty"`
	Rows  []standingsRow `json:"rows"`
}

// StandingsHandler handles standings requests.
type StandingsHandler struct {
	deps StandingsDependencies
}

// NewStandingsHandler creates a new standings handler.
func NewStandingsHandler(deps StandingsDependencies) *StandingsHandler {
	return &StandingsHandler{deps: deps}
}

// HandleGet handles GET /standings?view=general|home|away.
func (h *StandingsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_standings"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	raw := r.URL.Query().Get("view")
	view, ok := standings.ParseView(raw)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, fmt.Errorf("unknown view %q", raw)))
		return
	}
	rows := h.deps.Standings(r.Context(), view)
	out := standingsResponse{View: view, Empty: len(rows) == 0, Rows: make([]standingsRow, 0, len(rows))}
	for _, row := range rows {
		out.Rows = append(out.Rows, standingsRow{
			Row:            row,
			GoalDifference: row.GoalDifference(),
			PointsPerMatch: row.PointsPerMatch(),
			WinRate:        row.WinRate(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}
