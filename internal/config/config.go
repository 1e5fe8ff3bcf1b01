// Package config defines service configuration and its defaults.
package config

import (
	"context"
	"time"
)

// Source names understood by the loader.
const (
	SourceLineups    = "lineups"
	SourceMinutes    = "minutes"
	SourceAggregate  = "aggregate"
	SourceFixtures   = "fixtures"
	SourceSummary    = "summary"
	SourceStandings  = "standings"
	SourceSimulation = "simulation"
	SourceModel      = "model"
	SourceKeyPlayers = "key_players"
	SourceCombos     = "combos"
	SourceTeamStats  = "team_stats"
)

// SourceNames lists every source in load order.
var SourceNames = []string{
	SourceLineups, SourceMinutes, SourceAggregate, SourceFixtures,
	SourceSummary, SourceStandings, SourceSimulation, SourceModel,
	SourceKeyPlayers, SourceCombos, SourceTeamStats,
}

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel  string `koanf:"log_level" validate:"oneof=debug info warn warning error"`
	LogFormat string `koanf:"log_format" validate:"oneof=text json"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr" validate:"required"`

	// ClubName is the club every fixture is read relative to.
	ClubName    string   `koanf:"club_name" validate:"required"`
	ClubAliases []string `koanf:"club_aliases"`

	// DataDir and BaseURL locate the sources; a file path wins when both are set.
	DataDir string `koanf:"data_dir" validate:"required_without=BaseURL"`
	BaseURL string `koanf:"base_url" validate:"omitempty,url"`

	FetchTimeoutMS int `koanf:"fetch_timeout_ms" validate:"gte=100,lte=600000"`

	// StandingsExclude drops table rows whose team contains any marker.
	StandingsExclude []string `koanf:"standings_exclude"`

	// Blend weights for the outcome heuristic.
	RankWeight     float64 `koanf:"rank_weight" validate:"gte=0"`
	PPMWeight      float64 `koanf:"ppm_weight" validate:"gte=0"`
	HomeAdjustment float64 `koanf:"home_adjustment"`
	AwayAdjustment float64 `koanf:"away_adjustment"`

	// ReloadQueueSize bounds pending reload requests.
	ReloadQueueSize int `koanf:"reload_queue_size" validate:"gte=1,lte=1024"`
	// RefreshIntervalMS reloads on a timer; 0 disables it.
	RefreshIntervalMS int `koanf:"refresh_interval_ms" validate:"gte=0"`

	// MCPPath mounts the MCP endpoint; empty disables it.
	MCPPath string `koanf:"mcp_path" validate:"omitempty,startswith=/"`

	// Sources maps a source name to a path relative to DataDir or BaseURL.
	// An empty value disables the source.
	Sources map[string]string `koanf:"sources"`
}

// New returns a Config with defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Addr:             ":9080",
		ClubName:         "Lyon",
		ClubAliases:      []string{"Olympique Lyonnais", "OL"},
		DataDir:          "data",
		FetchTimeoutMS:   10_000,
		StandingsExclude: []string{"choc", "olympiques"},
		RankWeight:       1.5,
		PPMWeight:        15,
		HomeAdjustment:   10,
		AwayAdjustment:   -10,
		MCPPath:          "/mcp",
		ReloadQueueSize:  16,
		Sources: map[string]string{
			SourceLineups:    "processed/ol_match_lineups.csv",
			SourceMinutes:    "processed/ol_player_minutes.csv",
			SourceAggregate:  "processed/ol_lineups_by_match.csv",
			SourceFixtures:   "processed/ol_matches_with_match_key.csv",
			SourceSummary:    "processed/ol_matches_clean.csv",
			SourceStandings:  "processed/league1_standings_home_away.csv",
			SourceSimulation: "processed/ol_match_proba_dataset.csv",
			SourceModel:      "prediction_engine/match_predictions.csv",
			SourceKeyPlayers: "processed/ol_key_players.csv",
			SourceCombos:     "processed/ol_best_combos_ALL_3_to_11.csv",
			SourceTeamStats:  "ol_stats.csv",
		},
	}
}

// FetchTimeout returns FetchTimeoutMS as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMS) * time.Millisecond
}

// RefreshInterval returns RefreshIntervalMS as a duration.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalMS) * time.Millisecond
}
