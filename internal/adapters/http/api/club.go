package api

import (
	"context"
	"net/http"

	"github.com/okian/touchline/internal/domain/combos"
	"github.com/okian/touchline/internal/domain/squad"
	"github.com/okian/touchline/internal/domain/teamstats"
)

// ClubDependencies defines the reads behind the squad and team endpoints.
type ClubDependencies interface {
	KeyPlayers(ctx context.Context) []squad.Player
	Combos(ctx context.Context) []combos.Best
	TeamStats(ctx context.Context) teamstats.Stats
}

// ClubHandler serves key players, best combinations and team stats.
type ClubHandler struct {
	deps ClubDependencies
}

// NewClubHandler creates a new club handler.
func NewClubHandler(deps ClubDependencies) *ClubHandler {
	return &ClubHandler{deps: deps}
}

// HandlePlayers handles GET /players.
func (h *ClubHandler) HandlePlayers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	players := h.deps.KeyPlayers(r.Context())
	writeJSON(w, http.StatusOK, struct {
		Empty   bool           `json:"empty"`
		Players []squad.Player `json:"players"`
	}{Empty: len(players) == 0, Players: players})
}

// HandleCombos handles GET /combos.
func (h *ClubHandler) HandleCombos(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	best := h.deps.Combos(r.Context())
	writeJSON(w, http.StatusOK, struct {
		Empty  bool          `json:"empty"`
		Combos []combos.Best `json:"combos"`
	}{Empty: len(best) == 0, Combos: best})
}

// HandleTeamStats handles GET /team-stats.
func (h *ClubHandler) HandleTeamStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	s := h.deps.TeamStats(r.Context())
	writeJSON(w, http.StatusOK, struct {
		Empty bool `json:"empty"`
		teamstats.Stats
	}{Empty: s.Empty(), Stats: s})
}
