package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	domaingames "github.com/preston-bernstein/nba-edge-service/internal/domain/games"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/matchups"
	"github.com/preston-bernstein/nba-edge-service/internal/engine"
	"github.com/preston-bernstein/nba-edge-service/internal/http/handlers"
	"github.com/preston-bernstein/nba-edge-service/internal/timeutil"
)

// slateService is the slice of analysis.Service the tools use.
type slateService interface {
	AnalyzeSlate(ctx context.Context, date string) (domaingames.Board, error)
	Analyze(in engine.MatchupInput) (matchups.MatchupAnalysis, error)
}

type BestBetsArgs struct {
	Date string `json:"date,omitempty" jsonschema:"Slate date as YYYY-MM-DD (default today in the configured timezone)"`
}

type tools struct {
	svc slateService
	loc *time.Location
	now func() time.Time
}

func newTools(svc slateService, loc *time.Location) *tools {
	if loc == nil {
		loc = time.UTC
	}
	return &tools{svc: svc, loc: loc, now: time.Now}
}

func (t *tools) register(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_matchup",
		Description: "Projects both rosters of a matchup and returns the win estimate and best bet. Input is a full matchup record; nothing is fetched.",
	}, t.analyzeMatchup)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "best_bets",
		Description: "Analyzes every game on a date with the configured data provider and lists the actionable best bets.",
	}, t.bestBets)
}

func (t *tools) analyzeMatchup(ctx context.Context, req *mcp.CallToolRequest, args engine.MatchupInput) (*mcp.CallToolResult, any, error) {
	a, err := t.svc.Analyze(args)
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolJSON(a), nil, nil
}

func (t *tools) bestBets(ctx context.Context, req *mcp.CallToolRequest, args BestBetsArgs) (*mcp.CallToolResult, any, error) {
	date := args.Date
	if date == "" {
		date = timeutil.Today(t.now(), t.loc)
	} else if _, err := timeutil.ParseDate(date); err != nil {
		return toolError(fmt.Errorf("date must be YYYY-MM-DD: %w", err)), nil, nil
	}

	board, err := t.svc.AnalyzeSlate(ctx, date)
	if err != nil {
		return toolError(err), nil, nil
	}
	out := map[string]any{
		"date":     board.Date,
		"matchups": len(board.Matchups),
		"picks":    handlers.BuildPicks(board).Picks,
	}
	return toolJSON(out), nil, nil
}

func toolJSON(v any) *mcp.CallToolResult {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError(err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(b)},
		},
	}
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
