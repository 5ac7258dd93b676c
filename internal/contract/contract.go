// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/commitstreak/schema"
)

// GitClient defines the Git operations needed to count commits in local repositories.
// This allows the commit listers to be tested without needing a real git executable.
type GitClient interface {
	// Run executes a git command and returns its standard output.
	// Its use should be minimized in favor of the explicit methods below.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// GetRepoRoot returns the absolute path to the root of the Git repository
	// containing the given context path.
	GetRepoRoot(ctx context.Context, contextPath string) (string, error)

	// GetRepoHash returns the current HEAD commit hash of the repository.
	GetRepoHash(ctx context.Context, repoPath string) (string, error)

	// GetConfigValue returns a git config value such as user.email.
	GetConfigValue(ctx context.Context, repoPath string, key string) (string, error)

	// GetAuthorLog returns one "hash|author|date" line per commit by author in [start, end].
	// An empty author matches every commit.
	GetAuthorLog(ctx context.Context, repoPath string, author string, start, end time.Time) ([]byte, error)
}

// CommitLister fetches the commits observed during a challenge window.
type CommitLister interface {
	// ListCommits returns the qualifying commits between the window's start and end dates.
	ListCommits(ctx context.Context, window schema.ChallengeWindow) ([]schema.CommitRecord, error)

	// Identity describes what is listed (user, repositories), for cache keys and logs.
	Identity() string
}

// CommitCountProvider supplies the observed commit count for a challenge window.
// The statistics engine only ever sees the resolved integer.
type CommitCountProvider interface {
	CommitCount(ctx context.Context, window schema.ChallengeWindow) (int, error)
}

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetCommitStore() CacheStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	Entries() ([]schema.CacheEntry, error)
	GetStatus() (schema.CacheStatus, error)
	Close() error
}
