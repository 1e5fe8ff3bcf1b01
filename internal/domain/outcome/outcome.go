// Package outcome estimates the result of a hypothetical fixture by layering a
// standings heuristic, a precomputed simulation row and an external model.
package outcome

import (
	"math"
	"strings"

	"github.com/okian/touchline/internal/domain/matchkey"
	"github.com/okian/touchline/internal/domain/model"
	"github.com/okian/touchline/internal/domain/standings"
)

// Default blending constants.
const (
	defaultBase       = 50.0
	defaultHomeAdj    = 10.0
	defaultAwayAdj    = -10.0
	defaultRankWeight = 1.5
	defaultPPMWeight  = 15.0
	minProbability    = 5.0
	maxProbability    = 95.0
)

var adjustmentColumns = []string{"h2h_bonus", "rivalry_penalty", "injury_penalty"}

// Option configures a Blender.
type Option func(*Blender)

// WithWeights sets the rank-difference and points-per-match weights.
func WithWeights(rank, ppm float64) Option {
	return func(b *Blender) {
		if rank >= 0 {
			b.rankWeight = rank
		}
		if ppm >= 0 {
			b.ppmWeight = ppm
		}
	}
}

// WithVenueAdjustments sets the home and away shifts applied to the baseline.
func WithVenueAdjustments(home, away float64) Option {
	return func(b *Blender) {
		b.homeAdj = home
		b.awayAdj = away
	}
}

// Blender holds the three input tables. It keeps no state between calls.
type Blender struct {
	club       *matchkey.Normalizer
	table      standings.Table
	simulation []model.Record
	model      []model.Record

	rankWeight float64
	ppmWeight  float64
	homeAdj    float64
	awayAdj    float64
}

// New creates a Blender for the club. Any input may be empty.
func New(club *matchkey.Normalizer, table standings.Table, simulation, external []model.Record, opts ...Option) *Blender {
	b := &Blender{
		club:       club,
		table:      table,
		simulation: simulation,
		model:      external,
		rankWeight: defaultRankWeight,
		ppmWeight:  defaultPPMWeight,
		homeAdj:    defaultHomeAdj,
		awayAdj:    defaultAwayAdj,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Estimate returns a bounded estimate for opponent at venue. It never fails;
// missing inputs fall back to the heuristic.
func (b *Blender) Estimate(opponent string, venue model.Venue) model.OutcomeEstimate {
	opponent = strings.TrimSpace(opponent)
	est := b.baseline(opponent, venue)
	b.applySimulation(&est, opponent, venue)
	b.applyModel(&est, opponent, venue)
	est.WinPercent = int(math.Round(est.WinProbability))
	return est
}

// baseline is 50 + venue shift + rank and form differentials, clamped to [5, 95].
func (b *Blender) baseline(opponent string, venue model.Venue) model.OutcomeEstimate {
	clubView, oppView := standings.General, standings.General
	switch venue {
	case model.VenueHome:
		clubView, oppView = standings.Home, standings.Away
	case model.VenueAway:
		clubView, oppView = standings.Away, standings.Home
	}
	club, clubOK := b.row(clubView, b.club.Club())
	opp, oppOK := b.row(oppView, opponent)

	p := defaultBase
	switch venue {
	case model.VenueHome:
		p += b.homeAdj
	case model.VenueAway:
		p += b.awayAdj
	}
	if clubOK && oppOK {
		p += b.rankWeight * float64(opp.Rank-club.Rank)
		if club.Matches > 0 && opp.Matches > 0 {
			p += b.ppmWeight * (club.PointsPerMatch() - opp.PointsPerMatch())
		}
	}
	p = clamp(p, minProbability, maxProbability)

	var forTerms, againstTerms []float64
	if clubOK && club.Matches > 0 {
		forTerms = append(forTerms, club.GoalsForPerMatch())
		againstTerms = append(againstTerms, club.GoalsAgainstPerMatch())
	}
	if oppOK && opp.Matches > 0 {
		forTerms = append(forTerms, opp.GoalsAgainstPerMatch())
		againstTerms = append(againstTerms, opp.GoalsForPerMatch())
	}
	xf, xa := mean(forTerms), mean(againstTerms)

	return model.OutcomeEstimate{
		Opponent:        opponent,
		Venue:           venue,
		WinProbability:  p,
		ExpectedFor:     xf,
		ExpectedAgainst: xa,
		ScoreFor:        int(math.Round(xf)),
		ScoreAgainst:    int(math.Round(xa)),
		Source:          model.SourceHeuristic,
	}
}

// row prefers the venue view and falls back to the general table.
func (b *Blender) row(v standings.View, team string) (standings.Row, bool) {
	if r, ok := b.table.Find(v, team); ok {
		return r, true
	}
	return b.table.Find(standings.General, team)
}

// applySimulation replaces probability and score with the first row matching
// the exact opponent and the venue label.
func (b *Blender) applySimulation(est *model.OutcomeEstimate, opponent string, venue model.Venue) {
	for _, rec := range b.simulation {
		if strings.TrimSpace(rec.Get("opponent")) != opponent {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(rec.Get("venue")), string(venue)) {
			continue
		}

		matched := false
		if v, ok := model.ParseFloat(rec.Get("proba_win")); ok {
			if v > 0 && v <= 1 {
				v *= 100
			}
			est.WinProbability = clamp(v, 0, 100)
			matched = true
		}
		gf, okF := model.ParseFloat(rec.Get("ol_gf", "club_gf", "gf"))
		ga, okA := model.ParseFloat(rec.Get("opp_gf", "ga"))
		if okF && okA {
			est.ExpectedFor, est.ExpectedAgainst = gf, ga
			est.ScoreFor, est.ScoreAgainst = int(math.Round(gf)), int(math.Round(ga))
			matched = true
		}
		for _, col := range adjustmentColumns {
			if v, ok := model.ParseFloat(rec.Get(col)); ok {
				est.Adjustments = append(est.Adjustments, model.Adjustment{Name: col, Value: v})
			}
		}
		if matched {
			est.Source = model.SourceSimulation
		}
		return
	}
}

// applyModel overrides the probability with the external model. Only home
// fixtures are overridden, and only the first valid row counts.
func (b *Blender) applyModel(est *model.OutcomeEstimate, opponent string, venue model.Venue) {
	if venue != model.VenueHome {
		return
	}
	want := matchkey.NormalizeName(opponent)
	if want == "" {
		return
	}
	for _, rec := range b.model {
		if !b.club.ContainsClub(rec.Get("home_team", "home")) {
			continue
		}
		if matchkey.NormalizeName(rec.Get("away_team", "away")) != want {
			continue
		}
		v, ok := model.ParseFloat(rec.Get("proba_home_win", "home_win"))
		if !ok || v <= 0 || v > 1 {
			continue
		}
		est.WinProbability = v * 100
		est.Source = model.SourceModel
		return
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	s := 0.0
	for _, x := range xs {
		s += x
	}
	return s / float64(len(xs))
}
