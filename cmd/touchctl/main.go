// Package main provides touchctl, a one-shot command line view of the club data.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	service "github.com/okian/touchline/internal/app"
	"github.com/okian/touchline/internal/config"
	"github.com/okian/touchline/pkg/logger"
	"github.com/spf13/cobra"
)

type cli struct {
	configFile string
	dataDir    string
	baseURL    string
	club       string
	verbose    bool

	out io.Writer
	svc *service.Service
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	c := &cli{out: out}
	root := &cobra.Command{
		Use:           "touchctl",
		Short:         "Query rosters, lineups, standings, squad data and estimates",
		Long:          "touchctl loads every configured source once and prints the requested view as JSON.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.load(cmd.Context(), errOut)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	f := root.PersistentFlags()
	f.StringVarP(&c.configFile, "config", "c", "", "YAML config file (overrides "+config.EnvFile+")")
	f.StringVar(&c.dataDir, "data-dir", "", "Directory the source paths are relative to")
	f.StringVar(&c.baseURL, "base-url", "", "URL the source paths are relative to")
	f.StringVar(&c.club, "club", "", "Club the fixtures are read relative to")
	f.BoolVarP(&c.verbose, "verbose", "v", false, "Log load progress to stderr")

	root.AddCommand(
		c.rostersCmd(),
		c.lineupCmd(),
		c.predictCmd(),
		c.standingsCmd(),
		c.seasonCmd(),
		c.playersCmd(),
		c.combosCmd(),
		c.teamStatsCmd(),
	)
	return root
}

// load builds the service from config and flags and runs one load cycle.
func (c *cli) load(ctx context.Context, errOut io.Writer) error {
	level := "warn"
	if c.verbose {
		level = "debug"
	}
	if err := logger.InitWithOptions(logger.Options{Output: errOut, Level: level}); err != nil {
		return err
	}
	if c.configFile != "" {
		if err := os.Setenv(config.EnvFile, c.configFile); err != nil {
			return err
		}
	}
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if c.dataDir != "" {
		cfg.DataDir = c.dataDir
	}
	if c.baseURL != "" {
		cfg.BaseURL = c.baseURL
		if c.dataDir == "" {
			cfg.DataDir = ""
		}
	}
	if c.club != "" {
		cfg.ClubName, cfg.ClubAliases = c.club, nil
	}

	client := &http.Client{Timeout: cfg.FetchTimeout()}
	c.svc = service.New(append(service.FromConfig(cfg, client), service.WithLogger(logger.Named("touchctl")))...)
	if err := c.svc.Reload(ctx, "cli"); err != nil {
		return fmt.Errorf("load: %w", err)
	}
	return nil
}

func (c *cli) print(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	_ = godotenv.Load()

	root := newRootCmd(os.Stdout, os.Stderr)
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
