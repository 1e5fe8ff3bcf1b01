// Package service runs load cycles and answers queries over the latest
// reconciled snapshot.
package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/touchline/internal/adapters/mq/queue"
	"github.com/okian/touchline/internal/adapters/mq/worker"
	"github.com/okian/touchline/internal/adapters/repository"
	"github.com/okian/touchline/internal/adapters/source"
	"github.com/okian/touchline/internal/config"
	"github.com/okian/touchline/internal/domain/combos"
	"github.com/okian/touchline/internal/domain/formation"
	"github.com/okian/touchline/internal/domain/matchkey"
	"github.com/okian/touchline/internal/domain/model"
	"github.com/okian/touchline/internal/domain/outcome"
	"github.com/okian/touchline/internal/domain/roster"
	"github.com/okian/touchline/internal/domain/season"
	"github.com/okian/touchline/internal/domain/squad"
	"github.com/okian/touchline/internal/domain/standings"
	"github.com/okian/touchline/internal/domain/teamstats"
	"github.com/okian/touchline/pkg/logger"
	"github.com/okian/touchline/pkg/metrics"
)

const (
	defaultQueueSize    = 16
	defaultFetchTimeout = 10 * time.Second
	shutdownTimeout     = 5 * time.Second
)

// Service implements the API dependencies for the club data service.
type Service struct {
	mu       sync.RWMutex
	reloadMu sync.Mutex

	// Configuration
	clubName        string
	clubAliases     []string
	sources         []source.Source
	fetchTimeout    time.Duration
	exclude         []string
	blend           []outcome.Option
	queueSize       int
	refreshInterval time.Duration

	// Core components
	club       *matchkey.Normalizer
	reconciler *roster.Reconciler
	store      repository.Store
	reloads    *queue.InMemoryQueue
	worker     *worker.InMemoryWorker

	// State
	started bool
	cancel  context.CancelFunc

	logger logger.Logger
}

// New constructs a Service. Without sources every cycle yields an empty
// snapshot.
func New(opts ...Option) *Service {
	s := &Service{
		clubName:     "Lyon",
		fetchTimeout: defaultFetchTimeout,
		exclude:      standings.DefaultExclude,
		queueSize:    defaultQueueSize,
		store:        repository.NewMemoryStore(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.club = matchkey.New(s.clubName, s.clubAliases...)
	s.reconciler = roster.New(s.club)
	return s
}

// Start performs the initial load and starts the reload worker.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	s.logger.Info(ctx, "starting touchline service",
		logger.String("club", s.clubName),
		logger.Int("sources", len(s.sources)),
	)
	s.mu.Unlock()

	if err := s.Reload(ctx, "startup"); err != nil {
		return fmt.Errorf("initial load: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	s.reloads = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
	s.worker = worker.NewInMemoryWorker(s.reloads, s,
		worker.WithLogger(s.logger.Named("reload")),
		worker.WithInterval(s.refreshInterval),
	)
	go s.worker.Run(runCtx)

	s.started = true
	s.logger.Info(ctx, "touchline service started",
		logger.Int("queue_size", s.queueSize),
		logger.Duration("refresh_interval", s.refreshInterval),
	)
	return nil
}

// Stop closes the reload queue and waits for the worker.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	reloads, w, cancel := s.reloads, s.worker, s.cancel
	s.mu.Unlock()

	ctx, done := context.WithTimeout(context.Background(), shutdownTimeout)
	defer done()

	_ = reloads.Close()
	if err := w.Shutdown(ctx); err != nil {
		s.log().Warn(ctx, "reload worker did not stop cleanly", logger.Error(err))
	}
	cancel()
	s.log().Info(ctx, "touchline service stopped")
}

// Reload runs one full load cycle and publishes its snapshot. Cycles never
// overlap. Source failures do not fail the cycle.
func (s *Service) Reload(ctx context.Context, reason string) error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	log := s.log()
	cycle := uuid.NewString()
	start := time.Now()
	log = log.With(logger.String("cycle", cycle))

	res := source.NewLoader(s.sources,
		source.WithTimeout(s.fetchTimeout),
		source.WithLogger(log.Named("source")),
	).Load(ctx)
	if err := ctx.Err(); err != nil {
		metrics.RecordLoadCycle("failed")
		return fmt.Errorf("load cycle %s: %w", cycle, err)
	}

	reconciled := s.reconciler.Reconcile(roster.Sources{
		Lineups:   res.Rows(config.SourceLineups),
		Minutes:   res.Rows(config.SourceMinutes),
		Aggregate: res.Rows(config.SourceAggregate),
		Fixtures:  res.Rows(config.SourceFixtures),
		Summary:   res.Rows(config.SourceSummary),
	})
	for _, st := range reconciled.Stats {
		metrics.RecordFold(st.Step, "created", st.Created)
		metrics.RecordFold(st.Step, "filled", st.Filled)
		metrics.RecordFold(st.Step, "appended", st.Appended)
		metrics.RecordFold(st.Step, "unmatched", st.Unmatched)
		metrics.RecordFold(st.Step, "skipped", st.Skipped)
		if st.Unmatched > 0 {
			metrics.RecordErrorByComponent("fold", st.Step+"_unmatched")
		}
		log.Debug(ctx, "fold step",
			logger.String("step", st.Step),
			logger.Int("rows", st.Rows),
			logger.Int("created", st.Created),
			logger.Int("filled", st.Filled),
			logger.Int("unmatched", st.Unmatched),
		)
	}

	snap := &repository.Snapshot{
		CycleID:    cycle,
		Reason:     reason,
		LoadedAt:   time.Now().UTC(),
		Took:       time.Since(start),
		Rosters:    reconciled.Rosters,
		Folds:      reconciled.Stats,
		Standings:  standings.Parse(res.Rows(config.SourceStandings), s.exclude),
		Season:     season.Summarize(res.Rows(config.SourceSummary)),
		Simulation: res.Rows(config.SourceSimulation),
		Model:      res.Rows(config.SourceModel),
		KeyPlayers: squad.KeyPlayers(res.Rows(config.SourceKeyPlayers)),
		Combos:     combos.BestBySize(res.Rows(config.SourceCombos)),
		TeamStats:  teamstats.Extract(s.club, res.Rows(config.SourceTeamStats)),
		Sources:    res.Reports,
	}
	if err := s.store.Publish(ctx, snap); err != nil {
		metrics.RecordLoadCycle("failed")
		return fmt.Errorf("publish snapshot %s: %w", cycle, err)
	}

	metrics.RecordLoadCycle("ok")
	metrics.RecordLoadDuration(float64(snap.Took.Milliseconds()))
	log.Info(ctx, "load cycle finished",
		logger.String("reason", reason),
		logger.Int("rosters", len(snap.Rosters)),
		logger.Int("players", snap.Players()),
		logger.Int("failed_sources", res.Failed()),
		logger.Duration("took", snap.Took),
	)
	return nil
}

// RequestReload queues an asynchronous reload.
func (s *Service) RequestReload(ctx context.Context, reason string) (model.ReloadRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return model.ReloadRequest{}, ErrNotStarted
	}
	req := model.NewReloadRequest(reason)
	if err := s.reloads.Enqueue(ctx, req); err != nil {
		if errors.Is(err, queue.ErrFull) {
			return model.ReloadRequest{}, fmt.Errorf("%w: %w", ErrReloadBusy, err)
		}
		return model.ReloadRequest{}, err
	}
	return req, nil
}

// Snapshot returns the current snapshot, or nil before the first load.
func (s *Service) Snapshot(ctx context.Context) *repository.Snapshot {
	return s.store.Current(ctx)
}

// Rosters returns every reconciled roster. The result is never nil.
func (s *Service) Rosters(ctx context.Context) []model.Roster {
	if rs := s.store.Rosters(ctx); rs != nil {
		return rs
	}
	return []model.Roster{}
}

// Roster returns one roster by key.
func (s *Service) Roster(ctx context.Context, key string) (model.Roster, error) {
	return s.store.Roster(ctx, key)
}

// Lineup lays out a roster. An empty label falls back to the formation
// recorded for the fixture, then to inference.
func (s *Service) Lineup(ctx context.Context, key, label string) (model.Lineup, error) {
	r, err := s.store.Roster(ctx, key)
	if err != nil {
		return model.Lineup{}, err
	}
	if label == "" {
		label = r.Meta.Formation
	}
	metrics.RecordLineup()
	return formation.Layout(r.Players, label), nil
}

// Predict estimates the outcome against opponent at venue.
func (s *Service) Predict(ctx context.Context, opponent string, venue model.Venue) (model.OutcomeEstimate, error) {
	if opponent == "" {
		return model.OutcomeEstimate{}, ErrMissingOpponent
	}
	var (
		table           standings.Table
		simulation, ext []model.Record
	)
	if snap := s.store.Current(ctx); snap != nil {
		table, simulation, ext = snap.Standings, snap.Simulation, snap.Model
	}
	est := outcome.New(s.club, table, simulation, ext, s.blend...).Estimate(opponent, venue)
	metrics.RecordPrediction(string(est.Source))
	return est, nil
}

// Standings returns the rows of one table view. The result is never nil.
func (s *Service) Standings(ctx context.Context, v standings.View) []standings.Row {
	if snap := s.store.Current(ctx); snap != nil {
		if rows := snap.Standings.View(v); rows != nil {
			return slices.Clone(rows)
		}
	}
	return []standings.Row{}
}

// Season returns the season summary.
func (s *Service) Season(ctx context.Context) season.Summary {
	if snap := s.store.Current(ctx); snap != nil {
		return snap.Season
	}
	return season.Summary{}
}

// KeyPlayers returns the key players, most important first. The result is
// never nil.
func (s *Service) KeyPlayers(ctx context.Context) []squad.Player {
	if snap := s.store.Current(ctx); snap != nil && snap.KeyPlayers != nil {
		return slices.Clone(snap.KeyPlayers)
	}
	return []squad.Player{}
}

// Combos returns the best combination of each size. The result is never nil.
func (s *Service) Combos(ctx context.Context) []combos.Best {
	if snap := s.store.Current(ctx); snap != nil && snap.Combos != nil {
		return slices.Clone(snap.Combos)
	}
	return []combos.Best{}
}

// TeamStats returns the club's FBref line.
func (s *Service) TeamStats(ctx context.Context) teamstats.Stats {
	if snap := s.store.Current(ctx); snap != nil {
		return snap.TeamStats
	}
	return teamstats.Stats{}
}

// Club returns the configured club name.
func (s *Service) Club() string { return s.clubName }

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":   s.started,
		"club":      s.clubName,
		"sources":   len(s.sources),
		"queueSize": s.queueSize,
	}
	if s.started {
		stats["queueLength"] = s.reloads.Len()
	}
	if snap := s.store.Current(ctx); snap != nil {
		stats["cycle"] = snap.CycleID
		stats["loadedAt"] = snap.LoadedAt.Format(time.RFC3339)
		stats["rosters"] = len(snap.Rosters)
		stats["players"] = snap.Players()
		stats["sourceReports"] = snap.Sources
		stats["folds"] = snap.Folds
	}
	return stats
}

func (s *Service) log() logger.Logger {
	s.mu.RLock()
	l := s.logger
	s.mu.RUnlock()
	if l == nil {
		return logger.Get().Named("service")
	}
	return l
}
