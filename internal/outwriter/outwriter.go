// Package outwriter has output and writer logic.
package outwriter

import (
	"io"

	"github.com/huangsam/commitstreak/internal/contract"
	"github.com/huangsam/commitstreak/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteReport prints a challenge report using the configured output format.
func (ow *OutWriter) WriteReport(report *schema.ChallengeReport, cfg *contract.Config) error {
	return PrintReport(report, cfg)
}

// WriteCheck prints a check verdict using the configured output format.
func (ow *OutWriter) WriteCheck(report *schema.ChallengeReport, result schema.CheckResult, cfg *contract.Config) error {
	return PrintCheck(report, result, cfg)
}

// RenderReport writes a report to w without touching files.
func (ow *OutWriter) RenderReport(w io.Writer, report *schema.ChallengeReport, cfg *contract.Config) error {
	return WriteReport(w, report, cfg)
}
