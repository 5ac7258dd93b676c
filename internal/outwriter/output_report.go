package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/huangsam/commitstreak/internal/contract"
	"github.com/huangsam/commitstreak/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintReport outputs a challenge report to the configured destination.
func PrintReport(report *schema.ChallengeReport, cfg *contract.Config) error {
	successMsg := fmt.Sprintf("Wrote %s", strings.ToUpper(string(cfg.Output)))
	if cfg.Output == schema.TextOut {
		successMsg = "Wrote table"
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteReport(w, report, cfg)
	}, successMsg)
}

// WriteReport writes a challenge report to w, dispatching based on the output format configured.
func WriteReport(w io.Writer, report *schema.ChallengeReport, cfg *contract.Config) error {
	// Create formatters using helper
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, report); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.YAMLOut:
		if err := writeYAML(w, report); err != nil {
			return fmt.Errorf("error writing YAML output: %w", err)
		}
	case schema.CSVOut:
		if err := writeReportCSV(w, report, fmtFloat, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeReportText(w, report, cfg, fmtFloat, intFmt)
	}
	return nil
}

// reportCSVHeader flattens a report into one CSV row.
var reportCSVHeader = []string{
	"required_commit_count",
	"start_date",
	"end_date",
	"state",
	"days_from_start",
	"days_to_end",
	"total_days",
	"commit_count",
	"actual_done",
	"actual_todo",
	"actual_percentage",
	"expected_done",
	"expected_todo",
	"expected_percentage",
	"commit_difference",
	"result",
	"source",
}

// writeReportCSV writes the report in CSV format.
func writeReportCSV(w io.Writer, report *schema.ChallengeReport, fmtFloat func(float64) string, intFmt string) error {
	c, s := report.Challenge, report.Stats
	return writeCSVWithHeader(w, reportCSVHeader, func(cw *csv.Writer) error {
		return cw.Write([]string{
			fmt.Sprintf(intFmt, c.RequiredCommitCount),
			c.StartDate.Format(contract.DateTimeFormat),
			c.EndDate.Format(contract.DateTimeFormat),
			string(c.State),
			fmt.Sprintf(intFmt, c.DaysFromStart),
			fmt.Sprintf(intFmt, c.DaysToEnd),
			fmt.Sprintf(intFmt, c.TotalDays),
			fmt.Sprintf(intFmt, s.CommitCount),
			fmt.Sprintf(intFmt, s.Actual.CommitsDone),
			fmt.Sprintf(intFmt, s.Actual.CommitsTodo),
			fmtFloat(s.Actual.PercentageDone),
			fmt.Sprintf(intFmt, s.Expected.CommitsDone),
			fmt.Sprintf(intFmt, s.Expected.CommitsTodo),
			fmtFloat(s.Expected.PercentageDone),
			fmt.Sprintf(intFmt, s.CommitDifference),
			string(s.Result),
			string(report.Source),
		})
	})
}

// writeReportText generates and writes the human-readable report.
func writeReportText(w io.Writer, report *schema.ChallengeReport, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	c, s := report.Challenge, report.Stats

	// 1. Header
	title := "Commit streak challenge"
	if cfg.UseEmojis {
		title = "🔥 " + title
	}
	if report.Demo {
		title += " [demo]"
	}
	if _, err := fmt.Fprintf(w, "%s (%s)\n", title, schema.DescribeState(c.State)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s to %s, %s\n",
		c.StartDate.Format(contract.DateFormat), c.EndDate.Format(contract.DateFormat), describeDays(c)); err != nil {
		return err
	}

	// 2. Status table
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Status", "Done", "Todo", "Percent"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	data := [][]string{
		statusRow("Actual", s.Actual, fmtFloat, intFmt),
		statusRow("Expected", s.Expected, fmtFloat, intFmt),
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// 3. Progress, pace and verdict
	if _, err := fmt.Fprintf(w, "Progress %s %s%%\n",
		progressBar(s.Actual.PercentageDone, GetProgressBarWidth(cfg)), fmtFloat(s.Actual.PercentageDone)); err != nil {
		return err
	}
	pace := schema.DescribePace(s.CommitDifference)
	label := contract.GetPlainLabel(s.Result)
	if cfg.UseColors {
		pace = contract.GetColorPace(s.CommitDifference)
		label = contract.GetColorLabel(s.Result)
	}
	if _, err := fmt.Fprintf(w, "Pace: %s\n", pace); err != nil {
		return err
	}
	result := fmt.Sprintf("Result: %s", label)
	if cfg.UseEmojis {
		result = fmt.Sprintf("%s %s", schema.ResultEmoji(s.Result), result)
	}
	if _, err := fmt.Fprintln(w, result); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Source: %s. Generated at %s\n", report.Source, report.GeneratedAt.Format(contract.DateTimeFormat))
	return err
}

// statusRow formats one progress snapshot as a table row.
func statusRow(name string, st schema.ChallengeStatus, fmtFloat func(float64) string, intFmt string) []string {
	return []string{
		name,
		fmt.Sprintf(intFmt, st.CommitsDone),
		fmt.Sprintf(intFmt, st.CommitsTodo),
		fmtFloat(st.PercentageDone) + "%",
	}
}

// describeDays summarizes where the evaluation instant sits in the window.
func describeDays(c schema.ChallengeWindow) string {
	switch c.State {
	case schema.PendingState:
		return fmt.Sprintf("starts in %s", pluralDays(-c.DaysFromStart))
	case schema.InProgressState:
		return fmt.Sprintf("day %d of %d, %s left", c.DaysFromStart, c.TotalDays, pluralDays(c.DaysToEnd))
	default:
		return fmt.Sprintf("ended %s ago", pluralDays(-c.DaysToEnd))
	}
}

// pluralDays renders a day count with its unit.
func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return strconv.Itoa(n) + " days"
}

// progressBar renders percent (0 to 100) as a fixed width bar.
func progressBar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	filled = max(0, min(filled, width))
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
