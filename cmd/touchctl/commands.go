package main

import (
	"fmt"
	"strings"

	"github.com/okian/touchline/internal/domain/combos"
	"github.com/okian/touchline/internal/domain/model"
	"github.com/okian/touchline/internal/domain/standings"
	"github.com/spf13/cobra"
)

type rosterLine struct {
	Key       string      `json:"key"`
	Date      string      `json:"date,omitempty"`
	Label     string      `json:"label"`
	Venue     model.Venue `json:"venue,omitempty"`
	Formation string      `json:"formation,omitempty"`
	Players   int         `json:"players"`
}

func (c *cli) rostersCmd() *cobra.Command {
	var opponent string
	cmd := &cobra.Command{
		Use:   "rosters",
		Short: "List reconciled rosters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			want := strings.ToLower(strings.TrimSpace(opponent))
			out := []rosterLine{}
			for _, r := range c.svc.Rosters(cmd.Context()) {
				if want != "" && !strings.Contains(strings.ToLower(r.Label), want) {
					continue
				}
				out = append(out, rosterLine{
					Key:       r.Key,
					Date:      r.Date,
					Label:     r.Label,
					Venue:     r.Meta.Venue,
					Formation: r.Meta.Formation,
					Players:   len(r.Players),
				})
			}
			return c.print(out)
		},
	}
	cmd.Flags().StringVar(&opponent, "opponent", "", "Only rosters whose label mentions this team")
	return cmd
}

func (c *cli) lineupCmd() *cobra.Command {
	var formation string
	cmd := &cobra.Command{
		Use:   "lineup <key>",
		Short: "Lay out the starting eleven of a roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lu, err := c.svc.Lineup(cmd.Context(), args[0], formation)
			if err != nil {
				return err
			}
			return c.print(lu)
		},
	}
	cmd.Flags().StringVar(&formation, "formation", "", "Formation override such as 4-3-3")
	return cmd
}

func (c *cli) predictCmd() *cobra.Command {
	var venue string
	cmd := &cobra.Command{
		Use:   "predict <opponent>",
		Short: "Estimate the outcome against an opponent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			est, err := c.svc.Predict(cmd.Context(), args[0], model.ParseVenue(venue))
			if err != nil {
				return err
			}
			return c.print(est)
		},
	}
	cmd.Flags().StringVar(&venue, "venue", "home", "home or away")
	return cmd
}

func (c *cli) standingsCmd() *cobra.Command {
	var view string
	cmd := &cobra.Command{
		Use:   "standings",
		Short: "Print a league table view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, ok := standings.ParseView(view)
			if !ok {
				return fmt.Errorf("unknown view %q", view)
			}
			return c.print(c.svc.Standings(cmd.Context(), v))
		},
	}
	cmd.Flags().StringVar(&view, "view", "general", "general, home or away")
	return cmd
}

func (c *cli) seasonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "season",
		Short: "Print the season summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.print(c.svc.Season(cmd.Context()))
		},
	}
}

func (c *cli) playersCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "players",
		Short: "List key players by importance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			players := c.svc.KeyPlayers(cmd.Context())
			if limit > 0 && len(players) > limit {
				players = players[:limit]
			}
			return c.print(players)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum players to print (0 = all)")
	return cmd
}

func (c *cli) combosCmd() *cobra.Command {
	var size int
	cmd := &cobra.Command{
		Use:   "combos",
		Short: "Print the best player combination per size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if size != 0 && (size < combos.MinSize || size > combos.MaxSize) {
				return fmt.Errorf("size must be between %d and %d", combos.MinSize, combos.MaxSize)
			}
			out := []combos.Best{}
			for _, b := range c.svc.Combos(cmd.Context()) {
				if size == 0 || b.Size == size {
					out = append(out, b)
				}
			}
			return c.print(out)
		},
	}
	cmd.Flags().IntVar(&size, "size", 0, "Only this combination size (0 = all)")
	return cmd
}

func (c *cli) teamStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "team-stats",
		Short: "Print the club's team stats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.print(c.svc.TeamStats(cmd.Context()))
		},
	}
}
