package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/commitstreak/core"
	"github.com/huangsam/commitstreak/internal/contract"
	"github.com/huangsam/commitstreak/internal/provider"
	"github.com/huangsam/commitstreak/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg     *contract.Config
	newProvider func(cfg *contract.Config) (contract.CommitCountProvider, error)
	now         func() time.Time
}

// configFor clones the base config and applies the challenge arguments of request.
func (h *toolHandler) configFor(request mcp.CallToolRequest, withDemo bool) (*contract.Config, time.Time, error) {
	now := h.now()
	cfg := h.baseCfg.Clone()
	o := contract.ChallengeOverrides{
		Start: request.GetString("start", ""),
		End:   request.GetString("end", ""),
	}
	if _, ok := request.GetArguments()["required_commits"]; ok {
		required := request.GetInt("required_commits", 0)
		o.RequiredCommits = &required
	}
	if withDemo {
		o.Demo = request.GetString("demo", "")
		o.DemoResult = request.GetString("demo_result", "")
	}
	if err := contract.ApplyChallengeOverrides(cfg, o, now); err != nil {
		return nil, now, err
	}
	return cfg, now, nil
}

func (h *toolHandler) handleGetChallengeStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, now, err := h.configFor(request, true)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid challenge parameters: %v", err)), nil
	}

	p, err := h.newProvider(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("commit source unavailable: %v", err)), nil
	}
	report, err := core.BuildReport(ctx, cfg, p, now)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("evaluation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleExplainPace(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	commits, err := request.RequireInt("commits")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cfg, now, err := h.configFor(request, false)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid challenge parameters: %v", err)), nil
	}
	cfg.DemoState = ""

	report, err := core.BuildReport(ctx, cfg, provider.NewFixed(commits), now)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("evaluation failed: %v", err)), nil
	}
	return mcp.NewToolResultText(explainPace(report)), nil
}

// explainPace summarizes a report in plain sentences.
func explainPace(report *schema.ChallengeReport) string {
	c, s := report.Challenge, report.Stats
	var b strings.Builder

	switch c.State {
	case schema.PendingState:
		fmt.Fprintf(&b, "The challenge has not started; it begins in %d days and runs for %d days.\n", -c.DaysFromStart, c.TotalDays)
	case schema.InProgressState:
		fmt.Fprintf(&b, "Day %d of %d, with %d days left.\n", c.DaysFromStart, c.TotalDays, c.DaysToEnd)
	default:
		fmt.Fprintf(&b, "The challenge ended %d days ago after %d days.\n", -c.DaysToEnd, c.TotalDays)
	}
	fmt.Fprintf(&b, "%d of %d required commits are done (%.1f%%); a linear pace expects %d by now.\n",
		s.Actual.CommitsDone, c.RequiredCommitCount, s.Actual.PercentageDone, s.Expected.CommitsDone)
	fmt.Fprintf(&b, "That is %s. Result: %s.", schema.DescribePace(s.CommitDifference), s.Result)

	return b.String()
}
