package model

import (
	"math"
	"strconv"
	"strings"
)

func normalizeVenue(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ParseFloat reads a numeric field leniently. Empty, "nan" and garbage yield ok=false.
func ParseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.Replace(s, ",", ".", 1)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseInt reads an integer field, accepting float notation ("90.0").
func ParseInt(s string) (int, bool) {
	v, ok := ParseFloat(s)
	if !ok {
		return 0, false
	}
	return int(v), true
}
