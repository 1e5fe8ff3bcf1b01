// Package repository holds the latest reconciled dataset for readers.
package repository

import (
	"context"
	"slices"
	"time"

	"github.com/okian/touchline/internal/adapters/source"
	"github.com/okian/touchline/internal/domain/combos"
	"github.com/okian/touchline/internal/domain/model"
	"github.com/okian/touchline/internal/domain/roster"
	"github.com/okian/touchline/internal/domain/season"
	"github.com/okian/touchline/internal/domain/squad"
	"github.com/okian/touchline/internal/domain/standings"
	"github.com/okian/touchline/internal/domain/teamstats"
)

// Snapshot is the output of one load cycle. It is never mutated after it
// has been published; readers that hold a *Snapshot must treat it as
// read-only. Store methods returning rosters hand out copies.
type Snapshot struct {
	CycleID  string
	Reason   string
	LoadedAt time.Time
	Took     time.Duration

	Rosters    []model.Roster
	Folds      []roster.Stats
	Standings  standings.Table
	Season     season.Summary
	Simulation []model.Record
	Model      []model.Record
	KeyPlayers []squad.Player
	Combos     []combos.Best
	TeamStats  teamstats.Stats
	Sources    []source.Report

	byKey map[string]int
}

// Empty reports whether the cycle produced no rosters.
func (s *Snapshot) Empty() bool { return s == nil || len(s.Rosters) == 0 }

// Players counts player entries across all rosters.
func (s *Snapshot) Players() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, r := range s.Rosters {
		n += len(r.Players)
	}
	return n
}

func (s *Snapshot) index() {
	s.byKey = make(map[string]int, len(s.Rosters))
	for i, r := range s.Rosters {
		s.byKey[r.Key] = i
	}
}

// Store provides read/write access to the current snapshot.
type Store interface {
	// Publish replaces the current snapshot as a whole.
	Publish(ctx context.Context, s *Snapshot) error

	// Current returns the latest snapshot, or nil before the first load.
	Current(ctx context.Context) *Snapshot

	// Roster returns a copy of one roster, or ErrNotFound for an unknown key.
	Roster(ctx context.Context, key string) (model.Roster, error)

	// Rosters returns copies of every roster; mutating them does not
	// affect the snapshot.
	Rosters(ctx context.Context) []model.Roster
	Count(ctx context.Context) int
}

func cloneRoster(r model.Roster) model.Roster {
	if r.MatchKey != nil {
		k := *r.MatchKey
		r.MatchKey = &k
	}
	if r.Meta.Points != nil {
		p := *r.Meta.Points
		r.Meta.Points = &p
	}
	if r.Meta.PredictedScore != nil {
		v := *r.Meta.PredictedScore
		r.Meta.PredictedScore = &v
	}
	r.Players = slices.Clone(r.Players)
	return r
}
