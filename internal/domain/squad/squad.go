// Package squad reads the key players export.
package squad

import (
	"cmp"
	"slices"
	"strings"

	"github.com/okian/touchline/internal/domain/model"
)

// Player is one line of the key players table.
type Player struct {
	Name       string  `json:"name"`
	Position   string  `json:"position"`
	Minutes    int     `json:"minutes"`
	Rating     float64 `json:"rating"`
	Importance float64 `json:"importance"`
}

// KeyPlayers parses the export and sorts it by importance, highest first.
// Rows without a name are dropped; equal importance keeps input order.
func KeyPlayers(recs []model.Record) []Player {
	out := make([]Player, 0, len(recs))
	for _, rec := range recs {
		name := strings.TrimSpace(rec.Get("player", "Player"))
		if name == "" {
			continue
		}
		p := Player{Name: name, Position: strings.TrimSpace(rec.Get("pos", "Pos"))}
		p.Minutes, _ = model.ParseInt(rec.Get("Playing Time_Min", "minutes", "Min"))
		p.Rating, _ = model.ParseFloat(rec.Get("rating"))
		p.Importance, _ = model.ParseFloat(rec.Get("importance"))
		out = append(out, p)
	}
	slices.SortStableFunc(out, func(a, b Player) int {
		return cmp.Compare(b.Importance, a.Importance)
	})
	return out
}
