package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for caching.
	DatabaseBackend string

	// CommitSource represents where observed commits are fetched from.
	CommitSource string

	// ChallengeState represents the temporal state of a challenge window.
	ChallengeState string

	// ChallengeResult represents the verdict of a challenge.
	ChallengeResult string
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
	YAMLOut OutputMode = "yaml"
)

// All cache backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All commit sources supported.
const (
	GitHubSource CommitSource = "github" // default
	GitSource    CommitSource = "git"
	FixedSource  CommitSource = "fixed"
)

// All challenge states. A window is in exactly one of them.
const (
	PendingState    ChallengeState = "pending"
	InProgressState ChallengeState = "in_progress"
	FinishedState   ChallengeState = "finished"
)

// All challenge results.
const (
	UnknownResult   ChallengeResult = "unknown"
	SucceededResult ChallengeResult = "succeeded"
	FailedResult    ChallengeResult = "failed"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	CSVOut:  {},
	JSONOut: {},
	YAMLOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidCommitSources lists all valid commit sources.
var ValidCommitSources = map[CommitSource]struct{}{
	GitHubSource: {},
	GitSource:    {},
	FixedSource:  {},
}

// ValidChallengeStates lists all valid challenge states.
var ValidChallengeStates = map[ChallengeState]struct{}{
	PendingState:    {},
	InProgressState: {},
	FinishedState:   {},
}

// ValidChallengeResults lists all valid challenge results.
var ValidChallengeResults = map[ChallengeResult]struct{}{
	UnknownResult:   {},
	SucceededResult: {},
	FailedResult:    {},
}
