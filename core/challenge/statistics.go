package challenge

import (
	"math"

	"github.com/huangsam/commitstreak/schema"
)

// NewStatistics derives progress statistics for an observed commit count.
// It is a pure function of its inputs.
func NewStatistics(window schema.ChallengeWindow, commitCount int) (schema.ChallengeStatistics, error) {
	if window.RequiredCommitCount == 0 || window.TotalDays == 0 {
		return schema.ChallengeStatistics{}, ErrDivisionByZero
	}
	if commitCount < 0 {
		return schema.ChallengeStatistics{}, &InvalidCountError{Observed: true, Count: commitCount}
	}

	actual := newStatus(commitCount, window.RequiredCommitCount)
	expected := newStatus(ExpectedCommits(window), window.RequiredCommitCount)

	return schema.ChallengeStatistics{
		CommitCount:      commitCount,
		Actual:           actual,
		Expected:         expected,
		CommitDifference: actual.CommitsDone - expected.CommitsDone,
		Result:           resultFor(window, commitCount),
	}, nil
}

// ExpectedCommits returns how many commits a linear pace requires by the
// window's evaluation instant. In-progress windows round up.
func ExpectedCommits(window schema.ChallengeWindow) int {
	switch window.State {
	case schema.FinishedState:
		return window.RequiredCommitCount
	case schema.InProgressState:
		return ceilDiv(window.DaysFromStart*window.RequiredCommitCount, window.TotalDays)
	default:
		return 0
	}
}

// newStatus builds a status for done commits out of required.
func newStatus(done, required int) schema.ChallengeStatus {
	return schema.ChallengeStatus{
		CommitsDone:    done,
		CommitsTodo:    required - done,
		PercentageDone: math.Min(100.0*float64(done)/float64(required), 100.0),
	}
}

// resultFor applies the verdict policy. Reaching the target wins even
// before the window closes.
func resultFor(window schema.ChallengeWindow, commitCount int) schema.ChallengeResult {
	switch {
	case commitCount >= window.RequiredCommitCount:
		return schema.SucceededResult
	case window.State == schema.FinishedState:
		return schema.FailedResult
	default:
		return schema.UnknownResult
	}
}
