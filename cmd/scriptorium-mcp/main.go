package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "scriptorium/internal/adapters/mcp"
	"scriptorium/internal/app"
	"scriptorium/internal/config"
)

var version = "dev"

func main() {
	v := config.New()
	dataDir := flag.String("data-dir", v.GetString(config.KeyDataDir), "directory holding state and the content cache")
	contentURL := flag.String("content-url", v.GetString(config.KeyContentURL), "base URL of the content server")
	flag.Parse()

	v.Set(config.KeyDataDir, *dataDir)
	v.Set(config.KeyContentURL, *contentURL)
	cfg, err := config.Load(v)
	if err != nil {
		log.Fatalf("scriptorium-mcp: %v", err)
	}

	// stdout carries the protocol, so logs go to the log file
	logFile, err := app.OpenLogFile(cfg)
	if err != nil {
		log.Fatalf("scriptorium-mcp: %v", err)
	}
	defer logFile.Close()

	rt, err := app.Open(cfg, app.NewLogger(logFile))
	if err != nil {
		log.Fatalf("scriptorium-mcp: %v", err)
	}
	defer rt.Close()

	mcpServer := server.NewMCPServer(
		"scriptorium-mcp",
		version,
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

	mcpadapter.RegisterReadTools(mcpServer, rt)
	mcpadapter.RegisterWriteTools(mcpServer, rt)

	if err := server.ServeStdio(mcpServer); err != nil {
		rt.Logger.Printf("serve: %v", err)
		log.Fatalf("scriptorium-mcp: %v", err)
	}
}
