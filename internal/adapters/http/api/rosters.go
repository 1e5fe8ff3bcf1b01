package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/okian/touchline/internal/domain/model"
)

// RosterDependencies defines the interface for roster reads.
type RosterDependencies interface {
	Rosters(ctx context.Context) []model.Roster
	Roster(ctx context.Context, key string) (model.Roster, error)
}

type rosterSummary struct {
	Key       string      `json:"key"`
	Date      string      `json:"date,omitempty"`
	Label     string      `json:"label"`
	Venue     model.Venue `json:"venue,omitempty"`
	Formation string      `json:"formation,omitempty"`
	Players   int         `json:"players"`
}

type rosterList struct {
	Empty   bool            `json:"empty"`
	Count   int             `json:"count"`
	Rosters []rosterSummary `json:"rosters"`
}

// RosterHandler handles roster requests.
type RosterHandler struct {
	deps RosterDependencies
}

// NewRosterHandler creates a new roster handler.
func NewRosterHandler(deps RosterDependencies) *RosterHandler {
	return &RosterHandler{deps: deps}
}

// HandleList handles GET /rosters. No data is an empty list, not an error.
func (h *RosterHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	rosters := h.deps.Rosters(r.Context())
	out := rosterList{Empty: len(rosters) == 0, Count: len(rosters), Rosters: make([]rosterSummary, 0, len(rosters))}
	for _, ro := range rosters {
		out.Rosters = append(out.Rosters, rosterSummary{
			Key:       ro.Key,
			Date:      ro.Date,
			Label:     ro.Label,
			Venue:     ro.Meta.Venue,
			Formation: ro.Meta.Formation,
			Players:   len(ro.Players),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleGet handles GET /rosters/{key}.
func (h *RosterHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_roster"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	key := strings.TrimPrefix(r.URL.Path, "/rosters/")
	if key == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	ro, err := h.deps.Roster(r.Context(), key)
	if err != nil {
		writeLookupError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, ro)
}
