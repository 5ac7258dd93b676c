// Package challenge evaluates commit streak challenges: the window a
// challenge spans and the progress statistics derived from it.
package challenge

import (
	"time"

	"github.com/huangsam/commitstreak/schema"
)

// NewWindow evaluates a challenge at the instant now.
// The range is validated before the count.
func NewWindow(requiredCommitCount int, startDate, endDate, now time.Time) (schema.ChallengeWindow, error) {
	if !endDate.After(startDate) {
		return schema.ChallengeWindow{}, &InvalidRangeError{Start: startDate, End: endDate}
	}
	if requiredCommitCount <= 0 {
		return schema.ChallengeWindow{}, &InvalidCountError{Count: requiredCommitCount}
	}

	return schema.ChallengeWindow{
		RequiredCommitCount: requiredCommitCount,
		StartDate:           startDate,
		EndDate:             endDate,
		State:               StateAt(startDate, endDate, now),
		DaysFromStart:       TotalDaysBetween(now, startDate),
		DaysToEnd:           TotalDaysBetween(endDate, now),
		TotalDays:           TotalDaysBetween(endDate, startDate),
	}, nil
}

// NewWindowFromSettings is NewWindow for a settings value.
func NewWindowFromSettings(settings schema.ChallengeSettings, now time.Time) (schema.ChallengeWindow, error) {
	return NewWindow(settings.RequiredCommitCount, settings.StartDate, settings.EndDate, now)
}

// StateAt returns the temporal state of [start, end) at now.
func StateAt(start, end, now time.Time) schema.ChallengeState {
	switch {
	case now.Before(start):
		return schema.PendingState
	case now.Before(end):
		return schema.InProgressState
	default:
		return schema.FinishedState
	}
}
