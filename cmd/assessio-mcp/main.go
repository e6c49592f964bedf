package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "assessio/internal/adapters/mcp"
	"assessio/internal/bootstrap"
	"assessio/pkg/logger"
)

func main() {
	ctx := context.Background()

	// Stdout carries the protocol, so logs go to stderr
	rt, err := bootstrap.Load(ctx, os.Stderr)
	if err != nil {
		log.Fatalf("assessio-mcp: %v", err)
	}
	defer rt.Close()

	if addr := rt.Config.MetricsAddr; addr != "" {
		srv := &http.Server{Addr: addr, Handler: metricsMux(rt), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			rt.Logger.Info(ctx, "serving metrics", logger.String("addr", addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				rt.Logger.Error(ctx, "metrics server stopped", logger.Error(err))
			}
		}()
		defer srv.Shutdown(ctx)
	}

	mcpServer := server.NewMCPServer(
		"assessio-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.NewTools(rt.Workspace).Register(mcpServer)

	if err := server.ServeStdio(mcpServer); err != nil {
		rt.Close()
		log.Fatalf("assessio-mcp: %v", err)
	}
}

func metricsMux(rt *bootstrap.Runtime) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", rt.Metrics.Handler())
	return mux
}
