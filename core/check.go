package core

import (
	"fmt"

	"github.com/huangsam/commitstreak/schema"
)

// EvaluateCheck gates a report for CI/CD. The check fails when the challenge
// has failed or the pace deficit exceeds tolerance commits.
func EvaluateCheck(report *schema.ChallengeReport, tolerance int) schema.CheckResult {
	tolerance = max(tolerance, 0)
	stats := report.Stats
	result := schema.CheckResult{
		Passed:           true,
		Result:           stats.Result,
		CommitDifference: stats.CommitDifference,
		Tolerance:        tolerance,
	}

	if stats.Result == schema.FailedResult {
		result.Passed = false
		result.Reasons = append(result.Reasons, fmt.Sprintf("challenge finished with %d of %d required commits",
			stats.CommitCount, report.Challenge.RequiredCommitCount))
	}
	if stats.CommitDifference < -tolerance {
		result.Passed = false
		result.Reasons = append(result.Reasons, fmt.Sprintf("%d commits behind pace exceeds tolerance of %d",
			-stats.CommitDifference, tolerance))
	}
	return result
}
