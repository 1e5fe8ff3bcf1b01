package service

import (
	"net/http"
	"time"

	"github.com/okian/touchline/internal/adapters/repository"
	"github.com/okian/touchline/internal/adapters/source"
	"github.com/okian/touchline/internal/config"
	"github.com/okian/touchline/internal/domain/outcome"
	"github.com/okian/touchline/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithClub sets the club fixtures are read relative to.
func WithClub(name string, aliases ...string) Option {
	return func(s *Service) {
		if name != "" {
			s.clubName = name
			s.clubAliases = aliases
		}
	}
}

// WithSources replaces the configured sources.
func WithSources(srcs ...source.Source) Option {
	return func(s *Service) {
		s.sources = srcs
	}
}

// WithFetchTimeout bounds the fetch phase of a load cycle.
func WithFetchTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.fetchTimeout = d
		}
	}
}

// WithStandingsExclude sets the markers of non-league table rows.
func WithStandingsExclude(markers []string) Option {
	return func(s *Service) {
		if markers != nil {
			s.exclude = markers
		}
	}
}

// WithBlendOptions passes options to every outcome blender.
func WithBlendOptions(opts ...outcome.Option) Option {
	return func(s *Service) {
		s.blend = append(s.blend, opts...)
	}
}

// WithStore sets the snapshot store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithQueueSize sets how many reload requests may wait.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithRefreshInterval reloads on a timer. Zero disables it.
func WithRefreshInterval(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.refreshInterval = d
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// FromConfig maps a loaded Config onto service options.
func FromConfig(cfg *config.Config, client *http.Client) []Option {
	return []Option{
		WithClub(cfg.ClubName, cfg.ClubAliases...),
		WithSources(source.Resolve(config.SourceNames, cfg.Sources, cfg.DataDir, cfg.BaseURL, client)...),
		WithFetchTimeout(cfg.FetchTimeout()),
		WithStandingsExclude(cfg.StandingsExclude),
		WithBlendOptions(
			outcome.WithWeights(cfg.RankWeight, cfg.PPMWeight),
			outcome.WithVenueAdjustments(cfg.HomeAdjustment, cfg.AwayAdjustment),
		),
		WithQueueSize(cfg.ReloadQueueSize),
		WithRefreshInterval(cfg.RefreshInterval()),
	}
}
