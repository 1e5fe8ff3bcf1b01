package tools_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/okian/touchline/internal/adapters/tools"
	"github.com/okian/touchline/internal/domain/combos"
	"github.com/okian/touchline/internal/domain/model"
	"github.com/okian/touchline/internal/domain/season"
	"github.com/okian/touchline/internal/domain/squad"
	"github.com/okian/touchline/internal/domain/standings"
	"github.com/okian/touchline/internal/domain/teamstats"
	"github.com/smartystreets/goconvey/convey"
)

var errUnknownRoster = errors.New("roster not found")

type fakeDeps struct {
	lastVenue model.Venue
}

func (f *fakeDeps) Rosters(context.Context) []model.Roster {
	return []model.Roster{
		{Key: "2023-08-13_strasbourg", Label: "13/08/2023 Lyon vs Strasbourg", Players: make([]model.PlayerEntry, 11)},
		{Key: "2023-08-20_montpellier", Label: "20/08/2023 Montpellier vs Lyon", Players: make([]model.PlayerEntry, 12)},
	}
}

func (f *fakeDeps) Lineup(_ context.Context, key, formation string) (model.Lineup, error) {
	if key != "2023-08-13_strasbourg" {
		return model.Lineup{}, errUnknownRoster
	}
	return model.Lineup{Formation: formation, Nodes: []model.PitchNode{{X: 50, Y: 90, Name: "Lopes", Position: "GK"}}}, nil
}

func (f *fakeDeps) Predict(_ context.Context, opponent string, venue model.Venue) (model.OutcomeEstimate, error) {
	f.lastVenue = venue
	return model.OutcomeEstimate{Opponent: opponent, Venue: venue, WinPercent: 60, Source: model.SourceHeuristic}, nil
}

func (f *fakeDeps) Standings(context.Context, standings.View) []standings.Row { return nil }

func (f *fakeDeps) Season(context.Context) season.Summary { return season.Summary{Matches: 2, Wins: 1} }

func (f *fakeDeps) KeyPlayers(context.Context) []squad.Player {
	return []squad.Player{
		{Name: "Lacazette", Position: "FW", Importance: 0.9},
		{Name: "Tagliafico", Position: "DF", Importance: 0.7},
		{Name: "O'Brien", Position: "DF,MF", Importance: 0.5},
	}
}

func (f *fakeDeps) Combos(context.Context) []combos.Best {
	return []combos.Best{
		{Size: 2, Combo: combos.Combo{Players: "Cherki|Lacazette", Size: 2}},
		{Size: 3, Combo: combos.Combo{Players: "Cherki|Lacazette|Tolisso", Size: 3}},
	}
}

func (f *fakeDeps) TeamStats(context.Context) teamstats.Stats { return teamstats.Stats{} }

func text(res *mcp.CallToolResult) string {
	return res.Content[0].(*mcp.TextContent).Text
}

func TestTools(t *testing.T) {
	convey.Convey("Given the tool server", t, func() {
		ctx := context.Background()
		deps := &fakeDeps{}
		srv := tools.New(deps, "test")

		convey.Convey("Then every tool is registered and served over HTTP", func() {
			convey.So(srv.Tools(), convey.ShouldResemble, []string{
				"list_rosters", "lineup", "predict", "standings", "season",
				"key_players", "best_combos", "team_stats",
			})
			convey.So(srv.Handler(), convey.ShouldNotBeNil)
		})

		convey.Convey("When listing rosters filtered by opponent", func() {
			res, _, err := srv.ListRosters(ctx, nil, tools.ListRostersArgs{Opponent: "montpellier"})

			convey.Convey("Then only matching fixtures are returned", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(res.IsError, convey.ShouldBeFalse)
				var body struct {
					Empty   bool `json:"empty"`
					Rosters []struct {
						Key     string `json:"key"`
						Players int    `json:"players"`
					} `json:"rosters"`
				}
				convey.So(json.Unmarshal([]byte(text(res)), &body), convey.ShouldBeNil)
				convey.So(len(body.Rosters), convey.ShouldEqual, 1)
				convey.So(body.Rosters[0].Players, convey.ShouldEqual, 12)
			})
		})

		convey.Convey("When limiting the roster list", func() {
			res, _, _ := srv.ListRosters(ctx, nil, tools.ListRostersArgs{Limit: 1})
			convey.So(text(res), convey.ShouldContainSubstring, "strasbourg")
			convey.So(text(res), convey.ShouldNotContainSubstring, "montpellier")
		})

		convey.Convey("When a lineup is requested", func() {
			res, _, _ := srv.Lineup(ctx, nil, tools.LineupArgs{Key: "2023-08-13_strasbourg", Formation: " 4-3-3 "})
			convey.So(res.IsError, convey.ShouldBeFalse)
			convey.So(text(res), convey.ShouldContainSubstring, `"formation": "4-3-3"`)

			missing, _, _ := srv.Lineup(ctx, nil, tools.LineupArgs{Key: "nope"})
			convey.So(missing.IsError, convey.ShouldBeTrue)
			empty, _, _ := srv.Lineup(ctx, nil, tools.LineupArgs{})
			convey.So(text(empty), convey.ShouldContainSubstring, "key is required")
		})

		convey.Convey("When predicting", func() {
			res, _, _ := srv.Predict(ctx, nil, tools.PredictArgs{Opponent: "Nice", Venue: "away"})
			convey.So(res.IsError, convey.ShouldBeFalse)
			convey.So(deps.lastVenue, convey.ShouldEqual, model.VenueAway)

			bad, _, _ := srv.Predict(ctx, nil, tools.PredictArgs{})
			convey.So(bad.IsError, convey.ShouldBeTrue)
		})

		convey.Convey("When reading standings and season", func() {
			res, _, _ := srv.Standings(ctx, nil, tools.StandingsArgs{View: "home"})
			convey.So(text(res), convey.ShouldContainSubstring, `"empty": true`)

			bad, _, _ := srv.Standings(ctx, nil, tools.StandingsArgs{View: "neutral"})
			convey.So(bad.IsError, convey.ShouldBeTrue)

			season, _, _ := srv.Season(ctx, nil, tools.SeasonArgs{})
			convey.So(text(season), convey.ShouldContainSubstring, `"wins": 1`)
		})

		convey.Convey("When listing key players by position", func() {
			res, _, _ := srv.KeyPlayers(ctx, nil, tools.KeyPlayersArgs{Position: "df", Limit: 1})
			convey.So(text(res), convey.ShouldContainSubstring, "Tagliafico")
			convey.So(text(res), convey.ShouldNotContainSubstring, "O'Brien")
			convey.So(text(res), convey.ShouldNotContainSubstring, "Lacazette")
		})

		convey.Convey("When reading combinations of one size", func() {
			res, _, _ := srv.BestCombos(ctx, nil, tools.BestCombosArgs{Size: 3})
			convey.So(text(res), convey.ShouldContainSubstring, "Tolisso")
			convey.So(text(res), convey.ShouldNotContainSubstring, `"players": "Cherki|Lacazette"`)

			bad, _, _ := srv.BestCombos(ctx, nil, tools.BestCombosArgs{Size: 12})
			convey.So(bad.IsError, convey.ShouldBeTrue)
		})

		convey.Convey("When team stats are missing", func() {
			res, _, _ := srv.TeamStats(ctx, nil, tools.TeamStatsArgs{})
			convey.So(res.IsError, convey.ShouldBeFalse)
			convey.So(text(res), convey.ShouldContainSubstring, `"empty": true`)
		})
	})
}
