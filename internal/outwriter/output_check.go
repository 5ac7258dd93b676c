package outwriter

import (
	"fmt"
	"io"

	"github.com/huangsam/commitstreak/internal/contract"
	"github.com/huangsam/commitstreak/schema"
)

// checkDocument is the structured form of a check verdict.
type checkDocument struct {
	Check  schema.CheckResult      `json:"check" yaml:"check"`
	Report *schema.ChallengeReport `json:"report" yaml:"report"`
}

// PrintCheck outputs a check verdict in a concise format suitable for CI/CD.
func PrintCheck(report *schema.ChallengeReport, result schema.CheckResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteCheck(w, report, result, cfg)
	}, "Wrote check result")
}

// WriteCheck writes a check verdict to w.
func WriteCheck(w io.Writer, report *schema.ChallengeReport, result schema.CheckResult, cfg *contract.Config) error {
	doc := checkDocument{Check: result, Report: report}
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, doc)
	case schema.YAMLOut:
		return writeYAML(w, doc)
	}

	status := "PASSED"
	glyph := "✅"
	if !result.Passed {
		status = "FAILED"
		glyph = "❌"
	}
	if cfg.UseColors {
		if result.Passed {
			status = contract.SucceededColor.Sprint(status)
		} else {
			status = contract.FailedColor.Sprint(status)
		}
	}
	line := fmt.Sprintf("Check %s: %d/%d commits, %s (tolerance %d)",
		status,
		report.Stats.Actual.CommitsDone,
		report.Challenge.RequiredCommitCount,
		schema.DescribePace(result.CommitDifference),
		result.Tolerance)
	if cfg.UseEmojis {
		line = glyph + " " + line
	}
	if _, err := fmt.Fprintln(w, line); err != nil {
		return err
	}
	for _, reason := range result.Reasons {
		if _, err := fmt.Fprintf(w, "  - %s\n", reason); err != nil {
			return err
		}
	}
	return nil
}
