package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/huangsam/commitstreak/core/challenge"
	"github.com/huangsam/commitstreak/internal/contract"
	"github.com/huangsam/commitstreak/internal/provider"
	"github.com/huangsam/commitstreak/schema"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ErrProvider marks failures to obtain the observed commit count.
var ErrProvider = errors.New("commit count provider failed")

var tracer = otel.Tracer("github.com/huangsam/commitstreak/core")

// ReportBuilder builds a challenge report using a builder pattern.
type ReportBuilder struct {
	ctx      context.Context
	cfg      *contract.Config
	provider contract.CommitCountProvider
	now      time.Time

	settings schema.ChallengeSettings
	window   schema.ChallengeWindow
	count    int
	stats    schema.ChallengeStatistics
}

// NewReportBuilder creates a new builder evaluating the challenge at now.
func NewReportBuilder(ctx context.Context, cfg *contract.Config, provider contract.CommitCountProvider, now time.Time) *ReportBuilder {
	return &ReportBuilder{
		ctx:      ctx,
		cfg:      cfg,
		provider: provider,
		now:      now,
	}
}

// ResolveChallenge picks the configured challenge or the demo scenario.
func (b *ReportBuilder) ResolveChallenge() (*ReportBuilder, error) {
	settings, err := ResolveChallenge(b.cfg, b.now)
	if err != nil {
		return nil, err
	}
	b.settings = settings
	return b, nil
}

// BuildWindow evaluates the challenge window at the builder's instant.
func (b *ReportBuilder) BuildWindow() (*ReportBuilder, error) {
	window, err := challenge.NewWindowFromSettings(b.settings, b.now)
	if err != nil {
		return nil, err
	}
	b.window = window
	return b, nil
}

// FetchCommitCount asks the provider for the observed commit count.
func (b *ReportBuilder) FetchCommitCount() (*ReportBuilder, error) {
	count, err := b.provider.CommitCount(b.ctx, b.window)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProvider, err)
	}
	b.count = count
	return b, nil
}

// ComputeStatistics derives the progress statistics.
func (b *ReportBuilder) ComputeStatistics() (*ReportBuilder, error) {
	stats, err := challenge.NewStatistics(b.window, b.count)
	if err != nil {
		return nil, err
	}
	b.stats = stats
	return b, nil
}

// GetResult returns the finished report.
func (b *ReportBuilder) GetResult() *schema.ChallengeReport {
	return &schema.ChallengeReport{
		Challenge:   b.window,
		Stats:       b.stats,
		Source:      b.cfg.Source,
		Demo:        b.cfg.DemoEnabled(),
		GeneratedAt: b.now,
	}
}

// BuildReport evaluates the configured challenge at now with counts from provider.
func BuildReport(ctx context.Context, cfg *contract.Config, provider contract.CommitCountProvider, now time.Time) (*schema.ChallengeReport, error) {
	ctx, span := tracer.Start(ctx, "core.BuildReport")
	defer span.End()
	span.SetAttributes(
		attribute.String("streak.source", string(cfg.Source)),
		attribute.Bool("streak.demo", cfg.DemoEnabled()),
	)

	b := NewReportBuilder(ctx, cfg, provider, now)
	steps := []func() (*ReportBuilder, error){
		b.ResolveChallenge,
		b.BuildWindow,
		b.FetchCommitCount,
		b.ComputeStatistics,
	}
	for _, step := range steps {
		if _, err := step(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
	}

	report := b.GetResult()
	span.SetAttributes(
		attribute.String("streak.state", string(report.Challenge.State)),
		attribute.String("streak.result", string(report.Stats.Result)),
		attribute.Int("streak.commit_count", report.Stats.CommitCount),
	)
	return report, nil
}

// ResolveChallenge returns the challenge settings to evaluate.
// A demo scenario replaces the configured challenge when enabled.
func ResolveChallenge(cfg *contract.Config, now time.Time) (schema.ChallengeSettings, error) {
	if !cfg.DemoEnabled() {
		return cfg.ChallengeSettingsAt(now), nil
	}
	settings, _, err := provider.DemoScenario(cfg.DemoState, cfg.DemoResult, now)
	return settings, err
}

// IsChallengeError reports whether err is a rejected challenge definition.
func IsChallengeError(err error) bool {
	var rangeErr *challenge.InvalidRangeError
	var countErr *challenge.InvalidCountError
	return errors.As(err, &rangeErr) || errors.As(err, &countErr)
}
