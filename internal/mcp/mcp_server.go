// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"
	"time"

	"github.com/huangsam/commitstreak/core"
	"github.com/huangsam/commitstreak/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the streak MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	return newMCPServer(&toolHandler{
		baseCfg: baseCfg,
		newProvider: func(cfg *contract.Config) (contract.CommitCountProvider, error) {
			return core.NewProvider(cfg, mgr)
		},
		now: time.Now,
	})
}

func newMCPServer(h *toolHandler) *server.MCPServer {
	s := server.NewMCPServer(
		"Commit Streak Server",
		"1.0.0",
		server.WithLogging(),
	)

	// --- 1. Tool: get_challenge_stats ---
	s.AddTool(mcp.NewTool("get_challenge_stats",
		mcp.WithDescription("Evaluate the commit streak challenge and report actual versus expected progress."),
		mcp.WithNumber("required_commits", mcp.Description("Commits required to complete the challenge (defaults to the configured value).")),
		mcp.WithString("start", mcp.Description("Challenge start: RFC3339, YYYY-MM-DD or a relative time like '30 days ago'.")),
		mcp.WithString("end", mcp.Description("Challenge end, in the same formats as start.")),
		mcp.WithString("demo", mcp.Description("Replace the challenge with a demo scenario."), mcp.Enum("pending", "in_progress", "finished")),
		mcp.WithString("demo_result", mcp.Description("Result the demo scenario should reach."), mcp.Enum("unknown", "succeeded", "failed")),
	), h.handleGetChallengeStats)

	// --- 2. Tool: explain_pace ---
	s.AddTool(mcp.NewTool("explain_pace",
		mcp.WithDescription("Explain the pace of a challenge for a given commit count without fetching commits."),
		mcp.WithNumber("commits", mcp.Description("Observed commit count."), mcp.Required()),
		mcp.WithNumber("required_commits", mcp.Description("Commits required to complete the challenge.")),
		mcp.WithString("start", mcp.Description("Challenge start.")),
		mcp.WithString("end", mcp.Description("Challenge end.")),
	), h.handleExplainPace)

	return s
}

// StartMCPServer starts the streak MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
