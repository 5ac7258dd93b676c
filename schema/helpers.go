package schema

import "fmt"

// DescribePace turns a commit difference into a short human phrase.
func DescribePace(difference int) string {
	switch {
	case difference > 0:
		return fmt.Sprintf("%d ahead of pace", difference)
	case difference < 0:
		return fmt.Sprintf("%d behind pace", -difference)
	default:
		return "on pace"
	}
}

// DescribeState returns a display name for a challenge state.
func DescribeState(state ChallengeState) string {
	switch state {
	case PendingState:
		return "Pending"
	case InProgressState:
		return "In progress"
	case FinishedState:
		return "Finished"
	default:
		return string(state)
	}
}

// ResultEmoji returns the status glyph used in text output for a result.
func ResultEmoji(result ChallengeResult) string {
	switch result {
	case SucceededResult:
		return "✅"
	case FailedResult:
		return "❌"
	default:
		return "⏳"
	}
}
