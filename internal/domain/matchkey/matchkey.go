// Package matchkey derives canonical fixture identities from the composite
// keys used by the lineup exports.
//
// A composite key looks like "2324_2023-08-13 Lyon-Strasbourg": a season
// prefix and the date joined by an underscore, then the two team names joined
// by a hyphen with the home side first.
package matchkey

import (
	"slices"
	"strings"
	"time"

	"github.com/okian/touchline/internal/domain/model"
)

const (
	isoDate     = "2006-01-02"
	displayDate = "02/01/2006"
)

// Result is the outcome of normalizing one composite key.
type Result struct {
	Raw      string
	Date     string
	Home     string
	Away     string
	Opponent string
	Venue    model.Venue
	Label    string
	// Key is nil when the fixture cannot be attributed to the club.
	Key *model.MatchKey
}

// LookupKey returns the canonical key string, or the raw composite when the
// fixture could not be attributed.
func (r Result) LookupKey() string {
	if r.Key != nil {
		return r.Key.String()
	}
	return r.Raw
}

// Normalizer resolves keys relative to one club.
type Normalizer struct {
	club    string
	aliases []string
}

// New creates a Normalizer for club. Aliases are alternative spellings that
// also identify the club ("Olympique Lyonnais", "OL").
func New(club string, aliases ...string) *Normalizer {
	n := &Normalizer{club: strings.TrimSpace(club)}
	for _, a := range append([]string{club}, aliases...) {
		a = strings.TrimSpace(a)
		if a != "" {
			n.aliases = append(n.aliases, a)
		}
	}
	return n
}

// Club returns the display name of the club.
func (n *Normalizer) Club() string { return n.club }

// IsClub reports whether name refers to the club.
func (n *Normalizer) IsClub(name string) bool {
	name = NormalizeName(name)
	if name == "" {
		return false
	}
	for _, a := range n.aliases {
		if NormalizeName(a) == name {
			return true
		}
	}
	return false
}

// ContainsClub reports whether name mentions the club. The club name may
// appear inside a longer name ("Olympique Lyonnais" contains "lyon"); aliases
// must match whole words, so "OL" does not match "Olympique de Marseille".
func (n *Normalizer) ContainsClub(name string) bool {
	if n.IsClub(name) {
		return true
	}
	name = NormalizeName(name)
	if club := NormalizeName(n.club); club != "" && strings.Contains(name, club) {
		return true
	}
	words := strings.Fields(name)
	for _, a := range n.aliases {
		if containsWords(words, strings.Fields(NormalizeName(a))) {
			return true
		}
	}
	return false
}

// containsWords reports whether want occurs as a contiguous run in words.
func containsWords(words, want []string) bool {
	if len(want) == 0 || len(want) > len(words) {
		return false
	}
	for i := 0; i+len(want) <= len(words); i++ {
		if slices.Equal(words[i:i+len(want)], want) {
			return true
		}
	}
	return false
}

// Normalize parses a composite key. ok is false for empty input, in which case
// the caller must skip the record.
func (n *Normalizer) Normalize(raw string) (Result, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Result{}, false
	}

	prefix, rest, found := strings.Cut(raw, " ")
	if !found {
		return Result{Raw: raw, Label: raw}, true
	}

	res := Result{Raw: raw, Date: dateFromPrefix(prefix)}
	rest = strings.TrimSpace(rest)

	home, away, venue := n.attribute(rest)
	res.Home, res.Away, res.Venue = home, away, venue
	switch venue {
	case model.VenueHome:
		res.Opponent = away
	case model.VenueAway:
		res.Opponent = home
	}

	if res.Opponent != "" && !n.IsClub(res.Opponent) && res.Date != "" {
		res.Key = &model.MatchKey{Date: res.Date, Opponent: NormalizeName(res.Opponent)}
	} else {
		res.Opponent = ""
		res.Venue = model.VenueUnknown
	}
	res.Label = label(res.Date, home, away)
	return res, true
}

// Key builds a MatchKey from explicit date and opponent columns. Self
// references and rows without a date or opponent yield ok=false.
func (n *Normalizer) Key(date, opponent string) (model.MatchKey, bool) {
	date = CalendarDate(date)
	if date == "" || NormalizeName(opponent) == "" || n.IsClub(opponent) {
		return model.MatchKey{}, false
	}
	return model.MatchKey{Date: date, Opponent: NormalizeName(opponent)}, true
}

// attribute splits "Home-Away" and decides which side is the club.
func (n *Normalizer) attribute(rest string) (home, away string, venue model.Venue) {
	// Team names may contain hyphens, so match the club as a whole word first.
	for _, a := range n.aliases {
		if len(rest) > len(a)+1 && strings.EqualFold(rest[:len(a)], a) && rest[len(a)] == '-' {
			return rest[:len(a)], strings.TrimSpace(rest[len(a)+1:]), model.VenueHome
		}
		if len(rest) > len(a)+1 && strings.EqualFold(rest[len(rest)-len(a):], a) && rest[len(rest)-len(a)-1] == '-' {
			return strings.TrimSpace(rest[:len(rest)-len(a)-1]), rest[len(rest)-len(a):], model.VenueAway
		}
	}

	left, right, found := strings.Cut(rest, "-")
	if !found {
		return rest, "", model.VenueUnknown
	}
	left, right = strings.TrimSpace(left), strings.TrimSpace(right)
	switch {
	case n.IsClub(left):
		return left, right, model.VenueHome
	case n.IsClub(right):
		return left, right, model.VenueAway
	default:
		return left, right, model.VenueUnknown
	}
}

func dateFromPrefix(prefix string) string {
	parts := strings.Split(prefix, "_")
	if len(parts) >= 2 {
		return strings.TrimSpace(parts[1])
	}
	return strings.TrimSpace(parts[0])
}

func label(date, home, away string) string {
	teams := home
	if away != "" {
		teams = home + " vs " + away
	}
	if date == "" {
		return teams
	}
	return FormatDate(date) + " · " + teams
}

// NormalizeName lower-cases, trims and collapses inner whitespace.
func NormalizeName(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// CalendarDate extracts a leading YYYY-MM-DD from s ("2023-08-13 20:45",
// "2023-08-13_lyon"). Other shapes are returned trimmed.
func CalendarDate(s string) string {
	if d, ok := LeadingDate(s); ok {
		return d
	}
	return strings.TrimSpace(s)
}

// LeadingDate returns the YYYY-MM-DD that s starts with.
func LeadingDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) < len(isoDate) {
		return "", false
	}
	if _, err := time.Parse(isoDate, s[:len(isoDate)]); err != nil {
		return "", false
	}
	return s[:len(isoDate)], true
}

// FormatDate renders an ISO date as dd/mm/yyyy; other inputs pass through.
func FormatDate(date string) string {
	t, err := time.Parse(isoDate, CalendarDate(date))
	if err != nil {
		return date
	}
	return t.Format(displayDate)
}
