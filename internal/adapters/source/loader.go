package source

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/touchline/internal/adapters/tabular"
	"github.com/okian/touchline/internal/domain/model"
	"github.com/okian/touchline/pkg/logger"
	"github.com/okian/touchline/pkg/metrics"
)

const defaultTimeout = 10 * time.Second

// Fetch outcomes reported per source.
const (
	OutcomeOK       = "ok"
	OutcomeFailed   = "failed"
	OutcomeDisabled = "disabled"
)

// Report describes what happened to one source in a load.
type Report struct {
	Name     string        `json:"name"`
	Location string        `json:"location,omitempty"`
	Outcome  string        `json:"outcome"`
	Rows     int           `json:"rows"`
	Duration time.Duration `json:"duration_ns"`
	Error    string        `json:"error,omitempty"`
}

// Result holds the parsed records of every source. A failed source maps to
// an empty slice.
type Result struct {
	Records map[string][]model.Record
	Reports []Report
}

// Rows returns the records for name.
func (r Result) Rows(name string) []model.Record { return r.Records[name] }

// Failed counts sources that were configured but could not be loaded.
func (r Result) Failed() int {
	n := 0
	for _, rep := range r.Reports {
		if rep.Outcome == OutcomeFailed {
			n++
		}
	}
	return n
}

// Option configures a Loader.
type Option func(*Loader)

// WithTimeout bounds a whole load.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) {
		if d > 0 {
			l.timeout = d
		}
	}
}

// WithLogger sets a custom logger for the loader.
func WithLogger(log logger.Logger) Option {
	return func(l *Loader) {
		if log != nil {
			l.logger = log
		}
	}
}

// Loader fetches and parses all sources concurrently.
type Loader struct {
	sources []Source
	timeout time.Duration
	logger  logger.Logger
}

// NewLoader creates a Loader over sources.
func NewLoader(sources []Source, opts ...Option) *Loader {
	l := &Loader{sources: sources, timeout: defaultTimeout}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = logger.Get().Named("source")
	}
	return l
}

// Load fetches every source at once and waits for all of them. One source
// failing never fails the load; its records are simply empty.
func (l *Loader) Load(ctx context.Context) Result {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	reports := make([]Report, len(l.sources))
	records := make([][]model.Record, len(l.sources))

	var g errgroup.Group
	for i, src := range l.sources {
		g.Go(func() error {
			records[i], reports[i] = l.loadOne(ctx, src)
			return nil
		})
	}
	_ = g.Wait()

	res := Result{Records: make(map[string][]model.Record, len(l.sources)), Reports: reports}
	for i, src := range l.sources {
		res.Records[src.Name()] = records[i]
	}
	return res
}

func (l *Loader) loadOne(ctx context.Context, src Source) ([]model.Record, Report) {
	start := time.Now()
	rep := Report{Name: src.Name(), Location: src.Location()}

	body, err := src.Fetch(ctx)
	var recs []model.Record
	if err == nil {
		recs, err = tabular.ParseBytes(body)
	}
	rep.Duration = time.Since(start)

	switch {
	case errors.Is(err, ErrDisabled):
		rep.Outcome = OutcomeDisabled
		l.logger.Debug(ctx, "source disabled", logger.String("source", rep.Name))
	case err != nil:
		rep.Outcome = OutcomeFailed
		rep.Error = err.Error()
		recs = nil
		metrics.RecordErrorByComponent("source", "unavailable")
		l.logger.Warn(ctx, "source failed",
			logger.String("source", rep.Name),
			logger.String("location", rep.Location),
			logger.Error(err),
		)
	default:
		rep.Outcome = OutcomeOK
		rep.Rows = len(recs)
		l.logger.Debug(ctx, "source loaded",
			logger.String("source", rep.Name),
			logger.Int("rows", rep.Rows),
			logger.Duration("took", rep.Duration),
		)
	}

	metrics.RecordSourceFetch(rep.Name, rep.Outcome, float64(rep.Duration.Milliseconds()))
	metrics.UpdateSourceRows(rep.Name, rep.Rows)
	return recs, rep
}
