package formation

import (
	"cmp"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/okian/touchline/internal/domain/model"
)

const (
	maxOnPitch    = 11
	outfieldSlots = 10

	marginLeft   = 10.0
	marginRight  = 90.0
	centralShift = 4.0
)

// bandY is the vertical position of each line, in percent from the attacking end.
var bandY = map[Line]float64{
	Attack:           16,
	MidfieldAdvanced: 34,
	MidfieldCentral:  44,
	MidfieldDeep:     56,
	Defense:          74,
	Keeper:           90,
}

var drawOrder = []Line{Keeper, Defense, MidfieldDeep, MidfieldCentral, MidfieldAdvanced, Attack}

// Layout selects at most eleven players and places them on the pitch. When
// label is empty or unparseable the shape is inferred from the whole roster.
// The returned Formation is the resolved label; an empty roster yields "0-0-0".
func Layout(players []model.PlayerEntry, label string) model.Lineup {
	if len(players) == 0 {
		return model.Lineup{Formation: "0-0-0", Nodes: []model.PitchNode{}}
	}
	shape, ok := ParseShape(label)
	threeBack := ok && shape.ThreeBack()

	lines := make([]Line, len(players))
	for i, p := range players {
		lines[i] = classify(p.Position, threeBack)
	}

	var (
		gs       []group
		resolved string
	)
	if ok {
		gs, resolved = shape.groups(), shape.String()
	} else {
		gs, resolved = infer(lines)
	}

	picks := selectPlayers(players, lines, gs)
	return model.Lineup{Formation: resolved, Nodes: place(players, picks)}
}

// Infer returns the label derived from the roster's classified counts.
func Infer(players []model.PlayerEntry) string {
	lines := make([]Line, len(players))
	for i, p := range players {
		lines[i] = Classify(p.Position)
	}
	_, label := infer(lines)
	return label
}

// infer builds D-M-A, or D-M-AM-A when both deep/central and advanced
// midfielders exist, and splits ten outfield slots proportionally.
func infer(lines []Line) ([]group, string) {
	var def, dc, adv, att int
	for _, l := range lines {
		switch l {
		case Defense:
			def++
		case MidfieldDeep, MidfieldCentral:
			dc++
		case MidfieldAdvanced:
			adv++
		case Attack:
			att++
		}
	}

	var (
		counts []int
		gs     []group
	)
	if dc > 0 && adv > 0 {
		counts = []int{def, dc, adv, att}
		gs = []group{
			{lines: []Line{Defense}, band: Defense},
			{lines: midfieldDeepCentral, band: MidfieldCentral},
			{lines: []Line{MidfieldAdvanced}, band: MidfieldAdvanced},
			{lines: []Line{Attack}, band: Attack},
		}
	} else {
		counts = []int{def, dc + adv, att}
		gs = []group{
			{lines: []Line{Defense}, band: Defense},
			{lines: midfieldAll, band: MidfieldCentral},
			{lines: []Line{Attack}, band: Attack},
		}
	}
	for i, t := range apportion(counts, outfieldSlots) {
		gs[i].target = t
	}

	parts := make([]string, len(counts))
	for i, c := range counts {
		parts[i] = strconv.Itoa(c)
	}
	return gs, strings.Join(parts, "-")
}

// apportion splits slots across counts by largest remainder. Ties go to the
// earlier bucket.
func apportion(counts []int, slots int) []int {
	out := make([]int, len(counts))
	total := 0
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return out
	}
	rem := make([]float64, len(counts))
	given := 0
	for i, c := range counts {
		q := float64(slots) * float64(c) / float64(total)
		out[i] = int(math.Floor(q))
		rem[i] = q - float64(out[i])
		given += out[i]
	}
	order := make([]int, len(counts))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int { return cmp.Compare(rem[b], rem[a]) })
	for _, i := range order {
		if given >= slots {
			break
		}
		out[i]++
		given++
	}
	return out
}

type pick struct {
	idx  int
	band Line
}

// selectPlayers fills the keeper slot and every group by minutes, then
// backfills unmet targets from whoever is left. Ties keep input order.
func selectPlayers(players []model.PlayerEntry, lines []Line, gs []group) []pick {
	limit := min(maxOnPitch, len(players))
	used := make([]bool, len(players))
	picks := make([]pick, 0, limit)
	take := func(i int, band Line) {
		used[i] = true
		picks = append(picks, pick{idx: i, band: band})
	}
	byMinutes := func(idx []int) {
		slices.SortStableFunc(idx, func(a, b int) int {
			return cmp.Compare(players[b].Minutes, players[a].Minutes)
		})
	}
	candidates := func(accept func(Line) bool) []int {
		var out []int
		for i, l := range lines {
			if !used[i] && accept(l) {
				out = append(out, i)
			}
		}
		byMinutes(out)
		return out
	}

	if keepers := candidates(func(l Line) bool { return l == Keeper }); len(keepers) > 0 && limit > 0 {
		take(keepers[0], Keeper)
	}

	deficit := make([]int, len(gs))
	for gi, g := range gs {
		n := 0
		for _, i := range candidates(g.accepts) {
			if n >= g.target || len(picks) >= limit {
				break
			}
			take(i, lines[i])
			n++
		}
		deficit[gi] = g.target - n
	}

	pool := candidates(func(Line) bool { return true })
	slices.SortStableFunc(pool, func(a, b int) int {
		return cmp.Compare(boolRank(lines[a] == Keeper), boolRank(lines[b] == Keeper))
	})
	for _, i := range pool {
		if len(picks) >= limit {
			break
		}
		band := lines[i]
		if band == Unknown {
			band = MidfieldCentral
		}
		for gi := range gs {
			if deficit[gi] > 0 {
				deficit[gi]--
				band = gs[gi].band
				break
			}
		}
		take(i, band)
	}
	return picks
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

type side int

const (
	sideLeft side = iota
	sideCentre
	sideRight
)

func sideOf(pos string) side {
	t := Token(pos)
	if _, known := positionLines[t]; !known || len(t) < 2 {
		return sideCentre
	}
	switch t[0] {
	case 'L':
		return sideLeft
	case 'R':
		return sideRight
	default:
		return sideCentre
	}
}

func place(players []model.PlayerEntry, picks []pick) []model.PitchNode {
	bands := make(map[Line][]pick, len(drawOrder))
	for _, p := range picks {
		bands[p.band] = append(bands[p.band], p)
	}
	bias := len(bands[MidfieldCentral]) > 0 && len(bands[MidfieldAdvanced]) > 0

	nodes := make([]model.PitchNode, 0, len(picks))
	for _, line := range drawOrder {
		row := bands[line]
		slices.SortStableFunc(row, func(a, b pick) int {
			return cmp.Compare(sideOf(players[a.idx].Position), sideOf(players[b.idx].Position))
		})
		for i, p := range row {
			x := marginLeft + (marginRight-marginLeft)*float64(i+1)/float64(len(row)+1)
			if bias && line == MidfieldCentral {
				x = math.Min(marginRight, math.Max(marginLeft, x+centralShift))
			}
			pl := players[p.idx]
			nodes = append(nodes, model.PitchNode{
				X:        math.Round(x*100) / 100,
				Y:        bandY[line],
				Name:     pl.Name,
				Position: DisplayPosition(pl.Position),
			})
		}
	}
	return nodes
}
