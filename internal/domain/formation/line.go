// Package formation infers a tactical shape from a roster and lays the chosen
// eleven out on a pitch diagram.
package formation

import (
	"strconv"
	"strings"
)

// Line is the tactical line a position token belongs to.
type Line int

const (
	Unknown Line = iota
	Keeper
	Defense
	MidfieldDeep
	MidfieldCentral
	MidfieldAdvanced
	Attack
)

var lineNames = [...]string{
	Unknown:          "unknown",
	Keeper:           "keeper",
	Defense:          "defense",
	MidfieldDeep:     "midfield_deep",
	MidfieldCentral:  "midfield_central",
	MidfieldAdvanced: "midfield_advanced",
	Attack:           "attack",
}

func (l Line) String() string {
	if l < 0 || int(l) >= len(lineNames) {
		return lineNames[Unknown]
	}
	return lineNames[l]
}

// positionLines is the closed token table. Anything else is Unknown.
var positionLines = map[string]Line{
	"GK":  Keeper,
	"DF":  Defense,
	"CB":  Defense,
	"LCB": Defense,
	"RCB": Defense,
	"LB":  Defense,
	"RB":  Defense,
	"WB":  Defense,
	"LWB": Defense,
	"RWB": Defense,
	"DM":  MidfieldDeep,
	"CDM": MidfieldDeep,
	"MF":  MidfieldCentral,
	"CM":  MidfieldCentral,
	"LM":  MidfieldCentral,
	"RM":  MidfieldCentral,
	"AM":  MidfieldAdvanced,
	"CAM": MidfieldAdvanced,
	"FW":  Attack,
	"CF":  Attack,
	"ST":  Attack,
	"LW":  Attack,
	"RW":  Attack,
}

var wideBacks = map[string]bool{"LB": true, "RB": true, "WB": true, "LWB": true, "RWB": true}

// Token returns the upper-cased first comma-separated token of a raw position.
func Token(pos string) string {
	first, _, _ := strings.Cut(pos, ",")
	return strings.ToUpper(strings.TrimSpace(first))
}

// Classify maps a raw position ("DF,MF", "cm") onto its Line.
func Classify(pos string) Line {
	return positionLines[Token(pos)]
}

// DisplayPosition is the token shown on the diagram; unknown tokens render as "-".
func DisplayPosition(pos string) string {
	t := Token(pos)
	if _, ok := positionLines[t]; !ok {
		return "-"
	}
	return t
}

func classify(pos string, threeBack bool) Line {
	if threeBack && wideBacks[Token(pos)] {
		return MidfieldCentral
	}
	return Classify(pos)
}

// Shape is a parsed formation label such as 4-2-3-1.
type Shape []int

// ParseShape parses a hyphen-separated label. It needs at least a back line
// and a front line; ok is false otherwise.
func ParseShape(label string) (Shape, bool) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, false
	}
	parts := strings.Split(label, "-")
	if len(parts) < 2 {
		return nil, false
	}
	s := make(Shape, 0, len(parts))
	total := 0
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return nil, false
		}
		s = append(s, n)
		total += n
	}
	if total == 0 {
		return nil, false
	}
	return s, true
}

// ThreeBack reports whether the shape fields three centre-backs.
func (s Shape) ThreeBack() bool { return len(s) > 0 && s[0] == 3 }

func (s Shape) String() string {
	parts := make([]string, len(s))
	for i, n := range s {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, "-")
}

// group is a selection bucket: the lines it draws from, how many it wants and
// the band a backfilled player is drawn in.
type group struct {
	lines  []Line
	target int
	band   Line
}

func (g group) accepts(l Line) bool {
	for _, x := range g.lines {
		if x == l {
			return true
		}
	}
	return false
}

var (
	midfieldAll         = []Line{MidfieldDeep, MidfieldCentral, MidfieldAdvanced}
	midfieldDeepCentral = []Line{MidfieldDeep, MidfieldCentral}
)

// groups returns the outfield buckets for the shape.
func (s Shape) groups() []group {
	last := len(s) - 1
	gs := []group{{lines: []Line{Defense}, target: s[0], band: Defense}}
	switch inner := s[1:last]; len(inner) {
	case 0:
	case 1:
		gs = append(gs, group{lines: midfieldAll, target: inner[0], band: MidfieldCentral})
	case 2:
		gs = append(gs,
			group{lines: midfieldDeepCentral, target: inner[0], band: MidfieldCentral},
			group{lines: []Line{MidfieldAdvanced}, target: inner[1], band: MidfieldAdvanced},
		)
	default:
		central := 0
		for _, n := range inner[1 : len(inner)-1] {
			central += n
		}
		gs = append(gs,
			group{lines: []Line{MidfieldDeep}, target: inner[0], band: MidfieldDeep},
			group{lines: []Line{MidfieldCentral}, target: central, band: MidfieldCentral},
			group{lines: []Line{MidfieldAdvanced}, target: inner[len(inner)-1], band: MidfieldAdvanced},
		)
	}
	return append(gs, group{lines: []Line{Attack}, target: s[last], band: Attack})
}
