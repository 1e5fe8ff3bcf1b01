// Package model contains domain models passed between layers.
package model

import "strings"

// Record is one row of a tabular source: field name to raw value.
// Values are never coerced by the parser.
type Record map[string]string

// Get returns the first non-empty value among the given field names.
func (r Record) Get(fields ...string) string {
	for _, f := range fields {
		if v, ok := r[f]; ok && v != "" {
			return v
		}
	}
	return ""
}

// GetFold is Get with case-insensitive field names.
func (r Record) GetFold(fields ...string) string {
	for _, f := range fields {
		if v, ok := r[f]; ok && strings.TrimSpace(v) != "" {
			return v
		}
		for k, v := range r {
			if strings.EqualFold(strings.TrimSpace(k), f) && strings.TrimSpace(v) != "" {
				return v
			}
		}
	}
	return ""
}

// Venue is where the club played a fixture.
type Venue string

const (
	VenueUnknown Venue = ""
	VenueHome    Venue = "Home"
	VenueAway    Venue = "Away"
)

// ParseVenue maps free-form venue labels ("home", "Domicile", "A") onto Venue.
func ParseVenue(s string) Venue {
	switch normalizeVenue(s) {
	case "home", "h", "domicile", "dom":
		return VenueHome
	case "away", "a", "exterieur", "extérieur", "ext":
		return VenueAway
	default:
		return VenueUnknown
	}
}

// MatchKey is the canonical identity of a fixture.
type MatchKey struct {
	Date     string `json:"date"`
	Opponent string `json:"opponent"`
}

// String renders the key as "<date>_<opponent>".
func (k MatchKey) String() string {
	return k.Date + "_" + k.Opponent
}

// MatchMeta holds per-match attributes gathered from the meta sources.
type MatchMeta struct {
	Venue          Venue    `json:"venue,omitempty"`
	Points         *int     `json:"points,omitempty"`
	PredictedScore *float64 `json:"predicted_score,omitempty"`
	ObservedScore  string   `json:"observed_score,omitempty"`
	Formation      string   `json:"formation,omitempty"`
}

// PlayerEntry is one player's participation in a match.
type PlayerEntry struct {
	Name        string `json:"name"`
	Position    string `json:"position"`
	Minutes     int    `json:"minutes"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

// Roster is the reconciled view of one match.
type Roster struct {
	Key      string        `json:"key"`
	MatchKey *MatchKey     `json:"match_key,omitempty"`
	Date     string        `json:"date,omitempty"`
	Label    string        `json:"label"`
	Meta     MatchMeta     `json:"meta"`
	Players  []PlayerEntry `json:"players"`
}

// Player returns the entry for name and whether it exists.
func (r *Roster) Player(name string) (PlayerEntry, bool) {
	for _, p := range r.Players {
		if p.Name == name {
			return p, true
		}
	}
	return PlayerEntry{}, false
}
