// Package roster reconciles the per-match player sources into one roster per
// fixture.
//
// Sources are folded by an ordered list of steps. Each step only fills gaps
// left by the steps before it; a populated value is never overwritten.
package roster

import (
	"cmp"
	"slices"
	"strings"

	"github.com/okian/touchline/internal/domain/matchkey"
	"github.com/okian/touchline/internal/domain/model"
)

// Sources holds the raw records of every player-contributing and meta source.
// Any of them may be nil.
type Sources struct {
	Lineups   []model.Record
	Minutes   []model.Record
	Aggregate []model.Record
	Fixtures  []model.Record
	Summary   []model.Record
}

// Stats counts what one step did.
type Stats struct {
	Step      string `json:"step"`
	Rows      int    `json:"rows"`
	Created   int    `json:"created"`
	Filled    int    `json:"filled"`
	Appended  int    `json:"appended"`
	Unmatched int    `json:"unmatched"`
	Skipped   int    `json:"skipped"`
}

// Result is the reconciled roster collection. An empty Rosters slice means
// no data, not failure.
type Result struct {
	Rosters []model.Roster `json:"rosters"`
	Stats   []Stats        `json:"stats"`
}

// Empty reports whether no roster survived reconciliation.
func (r Result) Empty() bool { return len(r.Rosters) == 0 }

// Step is one fold over the index.
type Step struct {
	Name string
	Fold func(ix *Index, src Sources) Stats
}

// Reconciler folds sources relative to one club.
type Reconciler struct {
	norm  *matchkey.Normalizer
	steps []Step
}

// New creates a Reconciler with the default step order.
func New(norm *matchkey.Normalizer) *Reconciler {
	return &Reconciler{norm: norm, steps: DefaultSteps()}
}

// DefaultSteps returns the fold order: lineups, meta, minutes, aggregate.
func DefaultSteps() []Step {
	return []Step{
		{Name: "lineups", Fold: foldLineups},
		{Name: "fixtures", Fold: func(ix *Index, src Sources) Stats { return foldMeta(ix, src.Fixtures) }},
		{Name: "summary", Fold: func(ix *Index, src Sources) Stats { return foldMeta(ix, src.Summary) }},
		{Name: "minutes", Fold: foldMinutes},
		{Name: "aggregate", Fold: foldAggregate},
	}
}

// Steps returns the configured step order.
func (r *Reconciler) Steps() []Step { return slices.Clone(r.steps) }

// Reconcile runs every step over a fresh index and returns sorted rosters.
// The input records are not modified.
func (r *Reconciler) Reconcile(src Sources) Result {
	ix := newIndex(r.norm)
	res := Result{Stats: make([]Stats, 0, len(r.steps))}
	for _, s := range r.steps {
		st := s.Fold(ix, src)
		st.Step = s.Name
		res.Stats = append(res.Stats, st)
	}
	res.Rosters = ix.sorted()
	return res
}

// Index maps a roster key to the roster under construction.
type Index struct {
	norm     *matchkey.Normalizer
	builders map[string]*builder
	order    []string
	// "<date> <rest>" of each primary composite, the dialect of the minutes source.
	aliases map[string]string
	byDate  map[string][]*builder
}

func newIndex(norm *matchkey.Normalizer) *Index {
	return &Index{
		norm:     norm,
		builders: make(map[string]*builder),
		aliases:  make(map[string]string),
		byDate:   make(map[string][]*builder),
	}
}

// Len returns the number of rosters in the index.
func (ix *Index) Len() int { return len(ix.order) }

func (ix *Index) ensure(res matchkey.Result) (*builder, bool) {
	key := res.LookupKey()
	if b, ok := ix.builders[key]; ok {
		return b, false
	}
	b := &builder{
		roster: model.Roster{
			Key:      key,
			MatchKey: res.Key,
			Date:     res.Date,
			Label:    res.Label,
			Meta:     model.MatchMeta{Venue: res.Venue},
		},
		names: make(map[string]int),
	}
	ix.builders[key] = b
	ix.order = append(ix.order, key)
	if d, ok := matchkey.LeadingDate(res.Date); ok {
		ix.byDate[d] = append(ix.byDate[d], b)
	}
	return b, true
}

func (ix *Index) alias(res matchkey.Result) {
	_, rest, found := strings.Cut(res.Raw, " ")
	if !found || res.Date == "" {
		return
	}
	a := res.Date + " " + strings.TrimSpace(rest)
	if _, ok := ix.aliases[a]; !ok {
		ix.aliases[a] = res.LookupKey()
	}
}

func (ix *Index) sorted() []model.Roster {
	out := make([]model.Roster, 0, len(ix.order))
	for _, k := range ix.order {
		out = append(out, ix.builders[k].build())
	}
	slices.SortStableFunc(out, compareRosters)
	return out
}

func compareRosters(a, b model.Roster) int {
	if a.Date != "" && b.Date != "" {
		if c := cmp.Compare(a.Date, b.Date); c != 0 {
			return c
		}
	}
	if c := cmp.Compare(a.Label, b.Label); c != 0 {
		return c
	}
	return cmp.Compare(a.Key, b.Key)
}

type builder struct {
	roster model.Roster
	names  map[string]int
}

// merge adds p or enriches the existing entry with the same name. It reports
// whether an entry was appended and how many fields were filled.
func (b *builder) merge(p model.PlayerEntry) (appended bool, filled int) {
	i, ok := b.names[p.Name]
	if !ok {
		b.names[p.Name] = len(b.roster.Players)
		b.roster.Players = append(b.roster.Players, p)
		return true, 0
	}
	cur := &b.roster.Players[i]
	if p.Placeholder {
		return false, 0
	}
	if (cur.Position == "" || cur.Placeholder) && p.Position != "" {
		cur.Position = p.Position
		filled++
	}
	if cur.Minutes == 0 && p.Minutes > 0 {
		cur.Minutes = p.Minutes
		filled++
	}
	if filled > 0 {
		cur.Placeholder = false
	}
	return false, filled
}

func (b *builder) build() model.Roster {
	r := b.roster
	r.Players = slices.Clone(b.roster.Players)
	if r.MatchKey != nil {
		mk := *r.MatchKey
		r.MatchKey = &mk
	}
	if r.Players == nil {
		r.Players = []model.PlayerEntry{}
	}
	return r
}

func playerFrom(rec model.Record) (model.PlayerEntry, bool) {
	name := strings.TrimSpace(rec.Get("player"))
	if name == "" {
		return model.PlayerEntry{}, false
	}
	minutes, _ := model.ParseInt(rec.Get("minutes_played", "minutes"))
	if minutes < 0 {
		minutes = 0
	}
	return model.PlayerEntry{
		Name:     name,
		Position: strings.TrimSpace(rec.Get("pos", "position")),
		Minutes:  minutes,
	}, true
}
