// Package combos picks the best performing player combination of each size
// from the precomputed combinations export.
package combos

import "github.com/okian/touchline/internal/domain/model"

const (
	MinSize = 2
	MaxSize = 11
)

// Combo is one row of the export.
type Combo struct {
	Players   string  `json:"players"`
	Size      int     `json:"size"`
	Matches   int     `json:"matches"`
	AvgPoints float64 `json:"avg_points"`
	AvgScore  float64 `json:"avg_score"`
}

// Best is the winning combination for one size.
type Best struct {
	Size  int   `json:"size"`
	Combo Combo `json:"combo"`
}

// BestBySize returns, for every size from MinSize to MaxSize that has rows,
// the combination with the highest average points; average score breaks
// ties and the earlier row wins a full tie. Sizes are ascending.
func BestBySize(recs []model.Record) []Best {
	best := make(map[int]Combo)
	for _, rec := range recs {
		c, ok := parse(rec)
		if !ok {
			continue
		}
		cur, seen := best[c.Size]
		if !seen || better(c, cur) {
			best[c.Size] = c
		}
	}
	out := []Best{}
	for size := MinSize; size <= MaxSize; size++ {
		if c, ok := best[size]; ok {
			out = append(out, Best{Size: size, Combo: c})
		}
	}
	return out
}

func better(a, b Combo) bool {
	if a.AvgPoints != b.AvgPoints {
		return a.AvgPoints > b.AvgPoints
	}
	return a.AvgScore > b.AvgScore
}

func parse(rec model.Record) (Combo, bool) {
	c := Combo{Players: rec.Get("combo", "players")}
	c.Size, _ = model.ParseInt(rec.Get("size", "combo_size"))
	c.Matches, _ = model.ParseInt(rec.Get("matches"))
	c.AvgPoints, _ = model.ParseFloat(rec.Get("avg_points"))
	c.AvgScore, _ = model.ParseFloat(rec.Get("avg_score_final", "avg_score"))
	return c, c.Players != "" && c.Size >= MinSize
}
