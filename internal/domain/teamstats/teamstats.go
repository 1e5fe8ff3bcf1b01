// Package teamstats extracts the club's line from the FBref team stats export.
package teamstats

import (
	"strings"

	"github.com/okian/touchline/internal/domain/matchkey"
	"github.com/okian/touchline/internal/domain/model"
)

// Stats holds the headline numbers. A nil field was absent or unparseable.
type Stats struct {
	Team         string   `json:"team,omitempty"`
	GoalsFor     *float64 `json:"goals_for,omitempty"`
	GoalsAgainst *float64 `json:"goals_against,omitempty"`
	XGFor        *float64 `json:"xg_for,omitempty"`
	XGAgainst    *float64 `json:"xg_against,omitempty"`
	Shots        *float64 `json:"shots,omitempty"`
	Possession   *float64 `json:"possession,omitempty"`
}

// Empty reports whether no number was found.
func (s Stats) Empty() bool {
	return s.GoalsFor == nil && s.GoalsAgainst == nil && s.XGFor == nil &&
		s.XGAgainst == nil && s.Shots == nil && s.Possession == nil
}

// Extract picks the first row whose team mentions the club, or the first row
// when none does. Column names are matched case-insensitively.
func Extract(club *matchkey.Normalizer, recs []model.Record) Stats {
	if len(recs) == 0 {
		return Stats{}
	}
	row := recs[0]
	for _, rec := range recs {
		if club.ContainsClub(rec.GetFold("team", "squad")) {
			row = rec
			break
		}
	}
	return Stats{
		Team:         strings.TrimSpace(row.GetFold("team", "squad")),
		GoalsFor:     number(row, "goals_for", "gf", "goals"),
		GoalsAgainst: number(row, "goals_against", "ga"),
		XGFor:        number(row, "xg_for", "xg"),
		XGAgainst:    number(row, "xg_against", "xga"),
		Shots:        number(row, "shots", "shots_total"),
		Possession:   number(row, "possession"),
	}
}

func number(rec model.Record, fields ...string) *float64 {
	for _, f := range fields {
		if v, ok := model.ParseFloat(rec.GetFold(f)); ok {
			return &v
		}
	}
	return nil
}
