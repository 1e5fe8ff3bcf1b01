// Package standings reads the league table export into general, home and away views.
package standings

import (
	"cmp"
	"slices"
	"strings"

	"github.com/okian/touchline/internal/domain/matchkey"
	"github.com/okian/touchline/internal/domain/model"
)

// View selects one of the three tables.
type View string

const (
	General View = "general"
	Home    View = "home"
	Away    View = "away"
)

// ParseView maps "home", "away" and "general" (or empty) onto a View.
func ParseView(s string) (View, bool) {
	switch View(strings.ToLower(strings.TrimSpace(s))) {
	case "", General:
		return General, true
	case Home:
		return Home, true
	case Away:
		return Away, true
	default:
		return "", false
	}
}

// DefaultExclude lists markers of rows that are not league clubs.
var DefaultExclude = []string{"choc", "olympiques"}

const missingRank = 999

// Row is one club's line in a view.
type Row struct {
	Rank         int    `json:"rank"`
	Team         string `json:"team"`
	Matches      int    `json:"matches"`
	Wins         int    `json:"wins"`
	Draws        int    `json:"draws"`
	Losses       int    `json:"losses"`
	GoalsFor     int    `json:"goals_for"`
	GoalsAgainst int    `json:"goals_against"`
	Points       int    `json:"points"`
	// hasRank is false when the export carried no rank for this view.
	hasRank bool
}

// GoalDifference is goals for minus goals against.
func (r Row) GoalDifference() int { return r.GoalsFor - r.GoalsAgainst }

func (r Row) perMatch(v int) float64 {
	if r.Matches <= 0 {
		return 0
	}
	return float64(v) / float64(r.Matches)
}

// PointsPerMatch is zero when no match was played.
func (r Row) PointsPerMatch() float64 { return r.perMatch(r.Points) }

// WinRate is the percentage of matches won.
func (r Row) WinRate() float64 { return r.perMatch(100 * r.Wins) }

func (r Row) GoalsForPerMatch() float64     { return r.perMatch(r.GoalsFor) }
func (r Row) GoalsAgainstPerMatch() float64 { return r.perMatch(r.GoalsAgainst) }

// Table holds the three views, each sorted by rank.
type Table struct {
	General []Row `json:"general"`
	Home    []Row `json:"home"`
	Away    []Row `json:"away"`
}

// Empty reports whether no view has rows.
func (t Table) Empty() bool {
	return len(t.General) == 0 && len(t.Home) == 0 && len(t.Away) == 0
}

// View returns the rows of v.
func (t Table) View(v View) []Row {
	switch v {
	case Home:
		return t.Home
	case Away:
		return t.Away
	default:
		return t.General
	}
}

// Find looks a team up in v by normalized name.
func (t Table) Find(v View, team string) (Row, bool) {
	name := matchkey.NormalizeName(team)
	if name == "" {
		return Row{}, false
	}
	for _, r := range t.View(v) {
		if matchkey.NormalizeName(r.Team) == name {
			return r, true
		}
	}
	return Row{}, false
}

var columns = map[string][]string{
	"team":          {"team", "squad"},
	"rank":          {"rank", "rk"},
	"matches":       {"matches", "mp", "played"},
	"wins":          {"wins", "w"},
	"draws":         {"draws", "d"},
	"losses":        {"losses", "l"},
	"goals_for":     {"goals_for", "gf"},
	"goals_against": {"goals_against", "ga"},
	"points":        {"points", "pts"},
}

// Parse builds the views. Header names are matched case-insensitively; rows
// whose team contains any exclude marker are dropped. A view is only filled
// for rows that carry at least one of its columns.
func Parse(recs []model.Record, exclude []string) Table {
	var t Table
	for _, raw := range recs {
		rec := lowerKeys(raw)
		team := strings.TrimSpace(get(rec, "", "team"))
		if team == "" || excluded(team, exclude) {
			continue
		}
		if r, ok := parseRow(rec, "", team); ok {
			t.General = append(t.General, r)
		}
		if r, ok := parseRow(rec, "home_", team); ok {
			t.Home = append(t.Home, r)
		}
		if r, ok := parseRow(rec, "away_", team); ok {
			t.Away = append(t.Away, r)
		}
	}
	sortRows(t.General)
	sortRows(t.Home)
	sortRows(t.Away)
	return t
}

func parseRow(rec map[string]string, prefix, team string) (Row, bool) {
	present := false
	num := func(col string) int {
		v := get(rec, prefix, col)
		if v != "" {
			present = true
		}
		n, _ := model.ParseInt(v)
		return n
	}
	r := Row{
		Team:         team,
		Matches:      num("matches"),
		Wins:         num("wins"),
		Draws:        num("draws"),
		Losses:       num("losses"),
		GoalsFor:     num("goals_for"),
		GoalsAgainst: num("goals_against"),
		Points:       num("points"),
	}
	if !present && prefix != "" {
		return Row{}, false
	}
	if rank, ok := model.ParseInt(get(rec, prefix, "rank")); ok && rank > 0 {
		r.Rank, r.hasRank = rank, true
	}
	return r, true
}

func sortRows(rows []Row) {
	rankOf := func(r Row) int {
		if r.hasRank {
			return r.Rank
		}
		return missingRank
	}
	slices.SortStableFunc(rows, func(a, b Row) int {
		if c := cmp.Compare(rankOf(a), rankOf(b)); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Points, a.Points); c != 0 {
			return c
		}
		if c := cmp.Compare(b.GoalDifference(), a.GoalDifference()); c != 0 {
			return c
		}
		return cmp.Compare(b.GoalsFor, a.GoalsFor)
	})
	for i := range rows {
		if !rows[i].hasRank {
			rows[i].Rank = i + 1
		}
	}
}

func get(rec map[string]string, prefix, col string) string {
	for _, alias := range columns[col] {
		if v, ok := rec[prefix+alias]; ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func lowerKeys(rec model.Record) map[string]string {
	out := make(map[string]string, len(rec))
	for k, v := range rec {
		k = strings.ToLower(strings.TrimSpace(k))
		if _, dup := out[k]; !dup || v != "" {
			out[k] = v
		}
	}
	return out
}

func excluded(team string, markers []string) bool {
	name := strings.ToLower(team)
	for _, m := range markers {
		if m = strings.ToLower(strings.TrimSpace(m)); m != "" && strings.Contains(name, m) {
			return true
		}
	}
	return false
}
