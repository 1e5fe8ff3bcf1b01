package roster

import (
	"fmt"
	"strings"

	"github.com/okian/touchline/internal/domain/matchkey"
	"github.com/okian/touchline/internal/domain/model"
)

// foldLineups creates rosters from the primary source. A key that cannot be
// attributed is kept under its raw composite string.
func foldLineups(ix *Index, src Sources) Stats {
	var st Stats
	for _, rec := range src.Lineups {
		st.Rows++
		res, ok := ix.norm.Normalize(rec.Get("match_key"))
		if !ok {
			st.Skipped++
			continue
		}
		b, created := ix.ensure(res)
		if created {
			st.Created++
		}
		ix.alias(res)

		p, ok := playerFrom(rec)
		if !ok {
			st.Skipped++
			continue
		}
		appended, filled := b.merge(p)
		if appended {
			st.Appended++
		}
		st.Filled += filled
	}
	return st
}

// foldMeta joins a meta source on (date, opponent) and fills empty fields.
func foldMeta(ix *Index, rows []model.Record) Stats {
	var st Stats
	for _, rec := range rows {
		st.Rows++
		key, ok := ix.norm.Key(rec.Get("date", "Date"), rec.Get("opponent", "Opponent"))
		if !ok {
			st.Skipped++
			continue
		}
		b, ok := ix.builders[key.String()]
		if !ok {
			st.Unmatched++
			continue
		}
		st.Filled += fillMeta(&b.roster.Meta, rec)
	}
	return st
}

func fillMeta(m *model.MatchMeta, rec model.Record) int {
	filled := 0
	if m.Venue == model.VenueUnknown {
		if v := model.ParseVenue(rec.Get("venue", "Venue")); v != model.VenueUnknown {
			m.Venue = v
			filled++
		}
	}
	if m.Points == nil {
		if v, ok := model.ParseInt(rec.Get("points", "Points", "pts")); ok {
			m.Points = &v
			filled++
		}
	}
	if m.PredictedScore == nil {
		if v, ok := model.ParseFloat(rec.Get("score_final")); ok {
			m.PredictedScore = &v
			filled++
		}
	}
	if m.ObservedScore == "" {
		gf, okF := model.ParseInt(rec.Get("GF", "gf"))
		ga, okA := model.ParseInt(rec.Get("GA", "ga"))
		if okF && okA {
			m.ObservedScore = fmt.Sprintf("%d-%d", gf, ga)
			filled++
		}
	}
	if m.Formation == "" {
		if v := strings.TrimSpace(rec.Get("Formation", "formation")); v != "" {
			m.Formation = v
			filled++
		}
	}
	return filled
}

// foldMinutes enriches rosters from the secondary source keyed by "game".
// Rows that match no roster are counted and dropped.
func foldMinutes(ix *Index, src Sources) Stats {
	var st Stats
	for _, rec := range src.Minutes {
		st.Rows++
		game := strings.Join(strings.Fields(rec.Get("game")), " ")
		if game == "" {
			st.Skipped++
			continue
		}
		b := ix.lookupGame(game)
		if b == nil {
			st.Unmatched++
			continue
		}
		p, ok := playerFrom(rec)
		if !ok {
			st.Skipped++
			continue
		}
		appended, filled := b.merge(p)
		if appended {
			st.Appended++
		}
		st.Filled += filled
	}
	return st
}

func (ix *Index) lookupGame(game string) *builder {
	if key, ok := ix.aliases[game]; ok {
		return ix.builders[key]
	}
	res, ok := ix.norm.Normalize(game)
	if !ok {
		return nil
	}
	return ix.builders[res.LookupKey()]
}

// foldAggregate appends name-only placeholders to every roster on the
// calendar date of each row.
func foldAggregate(ix *Index, src Sources) Stats {
	var st Stats
	for _, rec := range src.Aggregate {
		st.Rows++
		date, ok := matchkey.LeadingDate(rec.Get("match_key", "date"))
		if !ok {
			st.Skipped++
			continue
		}
		targets := ix.byDate[date]
		if len(targets) == 0 {
			st.Unmatched++
			continue
		}
		for _, name := range ParseNameList(rec.Get("players")) {
			for _, b := range targets {
				if appended, _ := b.merge(model.PlayerEntry{Name: name, Placeholder: true}); appended {
					st.Appended++
				}
			}
		}
	}
	return st
}
