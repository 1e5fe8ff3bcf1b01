// Package season totals the cleaned match summary.
package season

import (
	"strings"

	"github.com/okian/touchline/internal/domain/model"
)

// Summary is the club's season record.
type Summary struct {
	Matches       int     `json:"matches"`
	Wins          int     `json:"wins"`
	Draws         int     `json:"draws"`
	Losses        int     `json:"losses"`
	Points        int     `json:"points"`
	AverageRating float64 `json:"average_rating"`
}

// Summarize counts every row as a match. Results other than W, D or L still
// count as played; missing points and ratings count as zero.
func Summarize(recs []model.Record) Summary {
	var (
		s      Summary
		rating float64
	)
	for _, rec := range recs {
		s.Matches++
		switch strings.ToUpper(strings.TrimSpace(rec.Get("result", "Result"))) {
		case "W":
			s.Wins++
		case "D":
			s.Draws++
		case "L":
			s.Losses++
		}
		if p, ok := model.ParseInt(rec.Get("points", "Points")); ok {
			s.Points += p
		}
		if r, ok := model.ParseFloat(rec.Get("match_rating", "rating")); ok {
			rating += r
		}
	}
	if s.Matches > 0 {
		s.AverageRating = rating / float64(s.Matches)
	}
	return s
}
