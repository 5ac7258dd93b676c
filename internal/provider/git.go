package provider

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/huangsam/commitstreak/internal/contract"
	"github.com/huangsam/commitstreak/schema"
)

// GitLister lists commits from local repositories through the git binary.
type GitLister struct {
	client    contract.GitClient
	repoPaths []string
	author    string // Empty means each repository's user.email
	verbose   bool
}

var _ contract.CommitLister = &GitLister{} // Compile-time check

// NewGitLister creates a lister over resolved repository roots.
func NewGitLister(client contract.GitClient, repoPaths []string, author string, verbose bool) *GitLister {
	return &GitLister{
		client:    client,
		repoPaths: repoPaths,
		author:    author,
		verbose:   verbose,
	}
}

// Identity implements the CommitLister interface.
func (g *GitLister) Identity() string {
	author := g.author
	if author == "" {
		author = "user.email"
	}
	return fmt.Sprintf("git:%s:%s", author, strings.Join(g.repoPaths, ","))
}

// Fingerprint returns the HEAD hashes of all repositories, so that new
// local commits invalidate cached listings.
func (g *GitLister) Fingerprint(ctx context.Context) (string, error) {
	hashes := make([]string, 0, len(g.repoPaths))
	for _, path := range g.repoPaths {
		hash, err := g.client.GetRepoHash(ctx, path)
		if err != nil {
			return "", fmt.Errorf("failed to read HEAD of %s: %w", path, err)
		}
		hashes = append(hashes, hash)
	}
	return strings.Join(hashes, ","), nil
}

// ListCommits implements the CommitLister interface.
func (g *GitLister) ListCommits(ctx context.Context, window schema.ChallengeWindow) ([]schema.CommitRecord, error) {
	ctx, span := tracer.Start(ctx, "git.ListCommits")
	defer span.End()

	var records []schema.CommitRecord
	for _, path := range g.repoPaths {
		author := g.resolveAuthor(ctx, path)
		out, err := g.client.GetAuthorLog(ctx, path, author, window.StartDate, window.EndDate)
		if err != nil {
			return nil, err
		}
		repoRecords, err := parseAuthorLog(filepath.Base(path), out)
		if err != nil {
			return nil, fmt.Errorf("failed to parse log of %s: %w", path, err)
		}
		if g.verbose {
			contract.LogInfo("Found %d commits in %s", len(repoRecords), path)
		}
		records = append(records, repoRecords...)
	}

	schema.SortCommitRecords(records)
	return records, nil
}

// resolveAuthor falls back to the repository's user.email, then to all authors.
func (g *GitLister) resolveAuthor(ctx context.Context, path string) string {
	if g.author != "" {
		return g.author
	}
	email, err := g.client.GetConfigValue(ctx, path, "user.email")
	if err == nil && email == "" {
		err = errors.New("empty value")
	}
	if err != nil {
		contract.LogWarn(fmt.Sprintf("No user.email in %s, counting all authors", path), err)
		return ""
	}
	return email
}

// parseAuthorLog parses "hash|author|date" lines. The author may contain '|'.
func parseAuthorLog(repository string, out []byte) ([]schema.CommitRecord, error) {
	var records []schema.CommitRecord
	for line := range strings.SplitSeq(strings.TrimSpace(string(out)), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		first := strings.Index(line, "|")
		last := strings.LastIndex(line, "|")
		if first < 0 || first == last {
			return nil, fmt.Errorf("malformed log line %q", line)
		}
		date, err := time.Parse(time.RFC3339, line[last+1:])
		if err != nil {
			return nil, fmt.Errorf("malformed date in log line %q: %w", line, err)
		}
		records = append(records, schema.CommitRecord{
			SHA:        line[:first],
			Repository: repository,
			Author:     line[first+1 : last],
			Date:       date,
		})
	}
	return records, nil
}
