// Command mcp-server exposes the matchup engine as MCP tools over stdio.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/preston-bernstein/nba-edge-service/internal/config"
	"github.com/preston-bernstein/nba-edge-service/internal/logging"
	"github.com/preston-bernstein/nba-edge-service/internal/server"
	"github.com/preston-bernstein/nba-edge-service/internal/timeutil"
)

const appVersion = "dev"

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	// stdout carries the protocol.
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: "nba-edge-mcp",
		Version: appVersion,
		Output:  os.Stderr,
	})

	svc, closeFn := server.NewAnalysisService(cfg, logger)
	if closeFn != nil {
		defer func() {
			if err := closeFn(); err != nil {
				logging.Warn(logger, "resource close failed", "error", err)
			}
		}()
	}

	loc := timeutil.Location(cfg.Timezone, time.UTC)
	srv := mcp.NewServer(&mcp.Implementation{Name: "nba-edge-mcp", Version: appVersion}, nil)
	newTools(svc, loc).register(srv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		logging.Error(logger, "mcp server stopped", err)
	}
}
