package contract

import (
	"testing"
	"time"
)

// FuzzParseRelativeTime fuzzes ParseRelativeTime with random inputs.
func FuzzParseRelativeTime(f *testing.F) {
	seeds := []string{
		"1 year ago",
		"2 months ago",
		"3 weeks ago",
		"4 days ago",
		"5 hours ago",
		"6 minutes ago",
		"0 years ago", // edge case
		"99999999999999999999 days ago",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	f.Fuzz(func(t *testing.T, input string) {
		got, err := ParseRelativeTime(input, now)
		if err == nil && got.After(now) {
			t.Errorf("ParseRelativeTime(%q) = %v, after now", input, got)
		}
	})
}

// FuzzParseDateTime fuzzes ParseDateTime, which only needs to not panic.
func FuzzParseDateTime(f *testing.F) {
	seeds := []string{
		"now",
		"2026-03-01",
		"2026-03-01T10:00:00Z",
		"3 days ago",
		"",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(_ *testing.T, input string) {
		_, _ = ParseDateTime(input, time.Now())
	})
}
