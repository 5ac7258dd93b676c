package provider

import (
	"fmt"
	"time"

	"github.com/huangsam/commitstreak/schema"
)

// Demo scenario shape.
const (
	demoRequiredCommits  = 5
	demoSucceededCommits = 6
	demoFallbackCommits  = 3
	demoOffset           = 10 * 24 * time.Hour
)

// DemoScenario returns a canned challenge in the given state along with the
// commit count to report for it. Only a succeeded result reaches the target.
func DemoScenario(state schema.ChallengeState, result schema.ChallengeResult, now time.Time) (schema.ChallengeSettings, int, error) {
	commits := demoFallbackCommits
	if result == schema.SucceededResult {
		commits = demoSucceededCommits
	}

	var start, end time.Time
	switch state {
	case schema.PendingState:
		start, end = now.Add(demoOffset), now.Add(2*demoOffset)
	case schema.InProgressState:
		start, end = now.Add(-demoOffset), now.Add(demoOffset)
	case schema.FinishedState:
		start, end = now.Add(-2*demoOffset), now.Add(-demoOffset)
	default:
		return schema.ChallengeSettings{}, 0, fmt.Errorf("unknown demo state: %q", state)
	}

	return schema.ChallengeSettings{
		RequiredCommitCount: demoRequiredCommits,
		StartDate:           start,
		EndDate:             end,
	}, commits, nil
}
