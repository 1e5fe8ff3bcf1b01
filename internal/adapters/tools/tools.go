// Package tools exposes the club queries as MCP tools over streamable HTTP.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/okian/touchline/internal/domain/combos"
	"github.com/okian/touchline/internal/domain/model"
	"github.com/okian/touchline/internal/domain/season"
	"github.com/okian/touchline/internal/domain/squad"
	"github.com/okian/touchline/internal/domain/standings"
	"github.com/okian/touchline/internal/domain/teamstats"
)

// Dependencies are the reads the tools are built on.
type Dependencies interface {
	Rosters(ctx context.Context) []model.Roster
	Lineup(ctx context.Context, key, formation string) (model.Lineup, error)
	Predict(ctx context.Context, opponent string, venue model.Venue) (model.OutcomeEstimate, error)
	Standings(ctx context.Context, v standings.View) []standings.Row
	Season(ctx context.Context) season.Summary
	KeyPlayers(ctx context.Context) []squad.Player
	Combos(ctx context.Context) []combos.Best
	TeamStats(ctx context.Context) teamstats.Stats
}

// ListRostersArgs is the input schema for list_rosters.
type ListRostersArgs struct {
	Opponent string `json:"opponent,omitempty" jsonschema:"Only fixtures whose label mentions this team"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Maximum rosters to return (0 = all)"`
}

// LineupArgs is the input schema for lineup.
type LineupArgs struct {
	Key       string `json:"key" jsonschema:"Roster key from list_rosters (required)"`
	Formation string `json:"formation,omitempty" jsonschema:"Formation override such as 4-3-3"`
}

// PredictArgs is the input schema for predict.
type PredictArgs struct {
	Opponent string `json:"opponent" jsonschema:"Opponent club name (required)"`
	Venue    string `json:"venue,omitempty" jsonschema:"home or away"`
}

// StandingsArgs is the input schema for standings.
type StandingsArgs struct {
	View string `json:"view,omitempty" jsonschema:"general, home or away (default general)"`
}

// SeasonArgs is the input schema for season.
type SeasonArgs struct{}

// KeyPlayersArgs is the input schema for key_players.
type KeyPlayersArgs struct {
	Position string `json:"position,omitempty" jsonschema:"Only players whose position contains this, e.g. DF"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Maximum players to return (0 = all)"`
}

// BestCombosArgs is the input schema for best_combos.
type BestCombosArgs struct {
	Size int `json:"size,omitempty" jsonschema:"Only this combination size, 2 to 11 (0 = all)"`
}

// TeamStatsArgs is the input schema for team_stats.
type TeamStatsArgs struct{}

type toolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Server owns the MCP server and its tool registry.
type Server struct {
	deps     Dependencies
	server   *mcp.Server
	registry []toolInfo
}

// New registers every tool on a fresh MCP server.
func New(deps Dependencies, version string) *Server {
	s := &Server{
		deps:   deps,
		server: mcp.NewServer(&mcp.Implementation{Name: "touchline", Version: version}, nil),
	}
	addTool(s, &mcp.Tool{
		Name:        "list_rosters",
		Description: "Reconciled match rosters with date, label, venue and player count",
	}, s.ListRosters)
	addTool(s, &mcp.Tool{
		Name:        "lineup",
		Description: "Pitch layout (x/y percent, name, position) for one roster",
	}, s.Lineup)
	addTool(s, &mcp.Tool{
		Name:        "predict",
		Description: "Win probability and expected scoreline against an opponent",
	}, s.Predict)
	addTool(s, &mcp.Tool{
		Name:        "standings",
		Description: "League table, general or split by home and away",
	}, s.Standings)
	addTool(s, &mcp.Tool{
		Name:        "season",
		Description: "Season record: matches, wins, draws, losses, points, average rating",
	}, s.Season)
	addTool(s, &mcp.Tool{
		Name:        "key_players",
		Description: "Key players by importance with position, minutes and rating",
	}, s.KeyPlayers)
	addTool(s, &mcp.Tool{
		Name:        "best_combos",
		Description: "Best player combination per size by average points, then average score",
	}, s.BestCombos)
	addTool(s, &mcp.Tool{
		Name:        "team_stats",
		Description: "Club goals, expected goals, shots and possession",
	}, s.TeamStats)
	return s
}

func addTool[T any](s *Server, tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, T) (*mcp.CallToolResult, any, error)) {
	s.registry = append(s.registry, toolInfo{Name: tool.Name, Description: tool.Description})
	mcp.AddTool(s.server, tool, handler)
}

// Tools lists the registered tool names in registration order.
func (s *Server) Tools() []string {
	out := make([]string, len(s.registry))
	for i, t := range s.registry {
		out[i] = t.Name
	}
	return out
}

// Handler serves the tools over streamable HTTP with JSON responses.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})
}

type rosterItem struct {
	Key     string      `json:"key"`
	Date    string      `json:"date,omitempty"`
	Label   string      `json:"label"`
	Venue   model.Venue `json:"venue,omitempty"`
	Players int         `json:"players"`
}

// ListRosters implements list_rosters.
func (s *Server) ListRosters(ctx context.Context, _ *mcp.CallToolRequest, args ListRostersArgs) (*mcp.CallToolResult, any, error) {
	want := strings.ToLower(strings.TrimSpace(args.Opponent))
	items := []rosterItem{}
	for _, r := range s.deps.Rosters(ctx) {
		if want != "" && !strings.Contains(strings.ToLower(r.Label), want) {
			continue
		}
		items = append(items, rosterItem{Key: r.Key, Date: r.Date, Label: r.Label, Venue: r.Meta.Venue, Players: len(r.Players)})
		if args.Limit > 0 && len(items) == args.Limit {
			break
		}
	}
	return toolJSON(map[string]any{"empty": len(items) == 0, "rosters": items})
}

// Lineup implements lineup.
func (s *Server) Lineup(ctx context.Context, _ *mcp.CallToolRequest, args LineupArgs) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(args.Key) == "" {
		return toolError(fmt.Errorf("key is required")), nil, nil
	}
	lu, err := s.deps.Lineup(ctx, args.Key, strings.TrimSpace(args.Formation))
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolJSON(lu)
}

// Predict implements predict.
func (s *Server) Predict(ctx context.Context, _ *mcp.CallToolRequest, args PredictArgs) (*mcp.CallToolResult, any, error) {
	opponent := strings.TrimSpace(args.Opponent)
	if opponent == "" {
		return toolError(fmt.Errorf("opponent is required")), nil, nil
	}
	est, err := s.deps.Predict(ctx, opponent, model.ParseVenue(args.Venue))
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolJSON(est)
}

// Standings implements standings.
func (s *Server) Standings(ctx context.Context, _ *mcp.CallToolRequest, args StandingsArgs) (*mcp.CallToolResult, any, error) {
	view, ok := standings.ParseView(args.View)
	if !ok {
		return toolError(fmt.Errorf("unknown view %q", args.View)), nil, nil
	}
	rows := s.deps.Standings(ctx, view)
	if rows == nil {
		rows = []standings.Row{}
	}
	return toolJSON(map[string]any{"view": view, "empty": len(rows) == 0, "rows": rows})
}

// Season implements season.
func (s *Server) Season(ctx context.Context, _ *mcp.CallToolRequest, _ SeasonArgs) (*mcp.CallToolResult, any, error) {
	return toolJSON(s.deps.Season(ctx))
}

// KeyPlayers implements key_players.
func (s *Server) KeyPlayers(ctx context.Context, _ *mcp.CallToolRequest, args KeyPlayersArgs) (*mcp.CallToolResult, any, error) {
	want := strings.ToUpper(strings.TrimSpace(args.Position))
	players := []squad.Player{}
	for _, p := range s.deps.KeyPlayers(ctx) {
		if want != "" && !strings.Contains(strings.ToUpper(p.Position), want) {
			continue
		}
		players = append(players, p)
		if args.Limit > 0 && len(players) == args.Limit {
			break
		}
	}
	return toolJSON(map[string]any{"empty": len(players) == 0, "players": players})
}

// BestCombos implements best_combos.
func (s *Server) BestCombos(ctx context.Context, _ *mcp.CallToolRequest, args BestCombosArgs) (*mcp.CallToolResult, any, error) {
	if args.Size != 0 && (args.Size < combos.MinSize || args.Size > combos.MaxSize) {
		return toolError(fmt.Errorf("size must be between %d and %d", combos.MinSize, combos.MaxSize)), nil, nil
	}
	best := []combos.Best{}
	for _, b := range s.deps.Combos(ctx) {
		if args.Size == 0 || b.Size == args.Size {
			best = append(best, b)
		}
	}
	return toolJSON(map[string]any{"empty": len(best) == 0, "combos": best})
}

// TeamStats implements team_stats.
func (s *Server) TeamStats(ctx context.Context, _ *mcp.CallToolRequest, _ TeamStatsArgs) (*mcp.CallToolResult, any, error) {
	st := s.deps.TeamStats(ctx)
	return toolJSON(struct {
		Empty bool `json:"empty"`
		teamstats.Stats
	}{Empty: st.Empty(), Stats: st})
}

func toolJSON(v any) (*mcp.CallToolResult, any, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError(err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(b)}},
	}, nil, nil
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)}},
	}
}
