package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"docsorter/internal/adapters/filesystem"
	mcpadapter "docsorter/internal/adapters/mcp"
	"docsorter/internal/config"
)

func main() {
	configFlag := flag.String("config", "", "config file")
	rulesFlag := flag.String("rules", "", "path to the rule file")
	flag.Parse()

	v, err := config.New(*configFlag)
	if err != nil {
		log.Fatalf("docsorter-mcp: %v", err)
	}
	if *rulesFlag != "" {
		v.Set(config.KeyRules, *rulesFlag)
	}
	cfg := config.FromViper(v)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("docsorter-mcp: %v", err)
	}

	// stdout carries the protocol; logs go to stderr and the optional file.
	logger, closeLog := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer closeLog()

	extractor, closeCache := cfg.NewExtractor(logger)
	defer closeCache()

	mcpServer := server.NewMCPServer(
		"docsorter-mcp",
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

	mcpadapter.RegisterReadTools(mcpServer, filesystem.NewRuleFile(cfg.RulesPath), extractor)

	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Error("server stopped", "error", err)
		log.Fatalf("docsorter-mcp: %v", err)
	}
}
