// Package core has core logic for evaluating commit streak challenges.
package core

import (
	"context"
	"errors"
	"time"

	"github.com/huangsam/commitstreak/internal/contract"
	"github.com/huangsam/commitstreak/internal/outwriter"
)

// ErrCheckFailed is returned by ExecuteCheck when the challenge misses the gate.
var ErrCheckFailed = errors.New("challenge check failed")

// ExecutorFunc defines the function signature for executing different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

// ExecuteStats evaluates the configured challenge and prints its report.
// It serves as the main entry point for the 'stats' command.
func ExecuteStats(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	provider, err := NewProvider(cfg, mgr)
	if err != nil {
		return err
	}
	report, err := BuildReport(ctx, cfg, provider, start)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		contract.LogInfo("Evaluated challenge in %v", time.Since(start))
	}
	return outwriter.NewOutWriter().WriteReport(report, cfg)
}

// ExecuteCheck runs the check command for CI/CD gating.
// It prints the verdict and returns ErrCheckFailed when the challenge has
// failed or is further behind pace than the configured tolerance.
func ExecuteCheck(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	provider, err := NewProvider(cfg, mgr)
	if err != nil {
		return err
	}
	report, err := BuildReport(ctx, cfg, provider, time.Now())
	if err != nil {
		return err
	}

	result := EvaluateCheck(report, cfg.Tolerance)
	if err := outwriter.NewOutWriter().WriteCheck(report, result, cfg); err != nil {
		return err
	}
	if !result.Passed {
		return ErrCheckFailed
	}
	return nil
}
