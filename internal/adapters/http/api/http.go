// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/touchline/internal/adapters/repository"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	RosterDependencies
	LineupDependencies
	PredictDependencies
	StandingsDependencies
	SeasonDependencies
	ClubDependencies
	ReloadDependencies
}

// Server wires HTTP routes for the club API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	rosterHandler    *RosterHandler
	lineupHandler    *LineupHandler
	predictHandler   *PredictHandler
	standingsHandler *StandingsHandler
	seasonHandler    *SeasonHandler
	clubHandler      *ClubHandler
	reloadHandler    *ReloadHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		rosterHandler:    NewRosterHandler(deps),
		lineupHandler:    NewLineupHandler(deps),
		predictHandler:   NewPredictHandler(deps),
		standingsHandler: NewStandingsHandler(deps),
		seasonHandler:    NewSeasonHandler(deps),
		clubHandler:      NewClubHandler(deps),
		reloadHandler:    NewReloadHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	routes := []struct {
		pattern string
		route   route
		handler http.HandlerFunc
	}{
		{"/healthz", route{"healthz", "http"}, s.healthHandler.HandleHealth},
		{"/stats", route{"stats", "http"}, s.statsHandler.HandleStats},
		{"/rosters", route{"rosters", "roster"}, s.rosterHandler.HandleList},
		{"/rosters/", route{"roster", "roster"}, s.rosterHandler.HandleGet},
		{"/lineups/", route{"lineup", "lineup"}, s.lineupHandler.HandleGet},
		{"/predict", route{"predict", "outcome"}, s.predictHandler.HandleGet},
		{"/standings", route{"standings", "standings"}, s.standingsHandler.HandleGet},
		{"/season", route{"season", "season"}, s.seasonHandler.HandleGet},
		{"/players", route{"players", "squad"}, s.clubHandler.HandlePlayers},
		{"/combos", route{"combos", "combos"}, s.clubHandler.HandleCombos},
		{"/team-stats", route{"team_stats", "teamstats"}, s.clubHandler.HandleTeamStats},
		{"/reload", route{"reload", "reload"}, s.reloadHandler.HandlePost},
	}
	for _, rt := range routes {
		mux.HandleFunc(rt.pattern, instrument(rt.route, rt.handler))
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeLookupError maps a failed roster lookup onto 404 or 500.
func writeLookupError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found", WrapKind(op, ErrNotFound, err))
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
}
