package schema

import "time"

// ChallengeSettings is the configured shape of a challenge before it is
// evaluated against a point in time.
type ChallengeSettings struct {
	RequiredCommitCount int       `json:"required_commit_count" yaml:"required_commit_count"`
	StartDate           time.Time `json:"start_date" yaml:"start_date"`
	EndDate             time.Time `json:"end_date" yaml:"end_date"`
}

// ChallengeWindow is a challenge evaluated at a specific instant.
// Values are built by core/challenge.NewWindow and never mutated afterwards.
type ChallengeWindow struct {
	RequiredCommitCount int            `json:"required_commit_count" yaml:"required_commit_count"`
	StartDate           time.Time      `json:"start_date" yaml:"start_date"`
	EndDate             time.Time      `json:"end_date" yaml:"end_date"`
	State               ChallengeState `json:"state" yaml:"state"`
	DaysFromStart       int            `json:"days_from_start" yaml:"days_from_start"` // negative while pending
	DaysToEnd           int            `json:"days_to_end" yaml:"days_to_end"`         // negative once finished
	TotalDays           int            `json:"total_days" yaml:"total_days"`
}

// ChallengeStatus is one progress snapshot, either observed or expected.
type ChallengeStatus struct {
	CommitsDone    int     `json:"commits_done" yaml:"commits_done"`
	CommitsTodo    int     `json:"commits_todo" yaml:"commits_todo"` // negative once overshot
	PercentageDone float64 `json:"percentage_done" yaml:"percentage_done"`
}

// ChallengeStatistics is the progress report derived from a window and an
// observed commit count.
type ChallengeStatistics struct {
	CommitCount      int             `json:"commit_count" yaml:"commit_count"`
	Actual           ChallengeStatus `json:"actual" yaml:"actual"`
	Expected         ChallengeStatus `json:"expected" yaml:"expected"`
	CommitDifference int             `json:"commit_difference" yaml:"commit_difference"`
	Result           ChallengeResult `json:"result" yaml:"result"`
}

// ChallengeReport bundles a window with its statistics for presentation.
type ChallengeReport struct {
	Challenge   ChallengeWindow     `json:"challenge" yaml:"challenge"`
	Stats       ChallengeStatistics `json:"stats" yaml:"stats"`
	Source      CommitSource        `json:"source" yaml:"source"`
	Demo        bool                `json:"demo,omitempty" yaml:"demo,omitempty"`
	GeneratedAt time.Time           `json:"generated_at" yaml:"generated_at"`
}

// CheckResult is the verdict of the CI gate for a report.
type CheckResult struct {
	Passed           bool            `json:"passed" yaml:"passed"`
	Result           ChallengeResult `json:"result" yaml:"result"`
	CommitDifference int             `json:"commit_difference" yaml:"commit_difference"`
	Tolerance        int             `json:"tolerance" yaml:"tolerance"`
	Reasons          []string        `json:"reasons,omitempty" yaml:"reasons,omitempty"`
}
