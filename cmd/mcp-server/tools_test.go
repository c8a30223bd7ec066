package main

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/preston-bernstein/nba-edge-service/internal/engine"
	"github.com/preston-bernstein/nba-edge-service/internal/testutil"
)

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if res == nil || len(res.Content) != 1 {
		t.Fatalf("expected one content block, got %+v", res)
	}
	text, ok := res.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", res.Content[0])
	}
	return text.Text
}

func TestAnalyzeMatchupReturnsAnalysis(t *testing.T) {
	tl := newTools(testutil.NewFixtureService(), nil)

	res, _, err := tl.analyzeMatchup(context.Background(), nil, testutil.SampleMatchupInput())
	if err != nil || res.IsError {
		t.Fatalf("unexpected failure: %v %+v", err, res)
	}
	var out struct {
		GameID  string         `json:"gameId"`
		BestBet map[string]any `json:"bestBet"`
	}
	if err := json.Unmarshal([]byte(resultText(t, res)), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.GameID != "sample-game" || out.BestBet["kind"] == nil {
		t.Fatalf("unexpected analysis %+v", out)
	}
}

func TestAnalyzeMatchupReportsRosterUnavailable(t *testing.T) {
	tl := newTools(testutil.NewFixtureService(), nil)

	res, _, err := tl.analyzeMatchup(context.Background(), nil, engine.MatchupInput{})
	if err != nil {
		t.Fatalf("tool errors belong in the result, got %v", err)
	}
	if !res.IsError || !strings.Contains(resultText(t, res), "roster") {
		t.Fatalf("expected roster error result, got %+v", res)
	}
}

func TestBestBetsForDate(t *testing.T) {
	tl := newTools(testutil.NewFixtureService(), nil)

	res, _, err := tl.bestBets(context.Background(), nil, BestBetsArgs{Date: "2024-01-02"})
	if err != nil || res.IsError {
		t.Fatalf("unexpected failure: %v %+v", err, res)
	}
	var out struct {
		Date     string           `json:"date"`
		Matchups int              `json:"matchups"`
		Picks    []map[string]any `json:"picks"`
	}
	if err := json.Unmarshal([]byte(resultText(t, res)), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Date != "2024-01-02" || out.Matchups == 0 || out.Picks == nil {
		t.Fatalf("unexpected best bets %+v", out)
	}
}

func TestBestBetsDefaultsToToday(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	tl := newTools(testutil.NewFixtureService(), ny)
	tl.now = testutil.NowAt(time.Date(2024, 1, 3, 2, 0, 0, 0, time.UTC))

	res, _, _ := tl.bestBets(context.Background(), nil, BestBetsArgs{})
	if !strings.Contains(resultText(t, res), `"date": "2024-01-02"`) {
		t.Fatalf("expected New York date, got %s", resultText(t, res))
	}
}

func TestBestBetsRejectsBadDate(t *testing.T) {
	tl := newTools(testutil.NewFixtureService(), nil)

	res, _, err := tl.bestBets(context.Background(), nil, BestBetsArgs{Date: "01/02/2024"})
	if err != nil || !res.IsError {
		t.Fatalf("expected error result, got %v %+v", err, res)
	}
}

func TestRegisterAddsTools(t *testing.T) {
	srv := mcp.NewServer(&mcp.Implementation{Name: "test", Version: "0"}, nil)
	newTools(testutil.NewFixtureService(), nil).register(srv)
}
