package provider

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-github/v69/github"
	"github.com/huangsam/commitstreak/internal/contract"
	"github.com/huangsam/commitstreak/schema"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// githubPageSize is the largest page the GitHub REST API serves.
const githubPageSize = 100

var tracer = otel.Tracer("github.com/huangsam/commitstreak/internal/provider")

// GitHubLister lists the commits of the authenticated user across all of
// their repositories.
type GitHubLister struct {
	client  *github.Client
	author  string // Empty means the owner of each repository
	tokenID string
	verbose bool
	now     func() time.Time
}

var _ contract.CommitLister = &GitHubLister{} // Compile-time check

// NewGitHubLister creates a lister authenticated with token.
func NewGitHubLister(token, author string, verbose bool) *GitHubLister {
	httpClient := &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	client := github.NewClient(httpClient).WithAuthToken(token)
	return NewGitHubListerWithClient(client, token, author, verbose)
}

// NewGitHubListerWithClient creates a lister around an existing client.
// The token only feeds the lister identity.
func NewGitHubListerWithClient(client *github.Client, token, author string, verbose bool) *GitHubLister {
	sum := sha256.Sum256([]byte(token))
	return &GitHubLister{
		client:  client,
		author:  author,
		tokenID: hex.EncodeToString(sum[:6]),
		verbose: verbose,
		now:     time.Now,
	}
}

// Identity implements the CommitLister interface.
func (g *GitHubLister) Identity() string {
	author := g.author
	if author == "" {
		author = "owner"
	}
	return fmt.Sprintf("github:%s:%s", author, g.tokenID)
}

// ListCommits implements the CommitLister interface.
func (g *GitHubLister) ListCommits(ctx context.Context, window schema.ChallengeWindow) ([]schema.CommitRecord, error) {
	ctx, span := tracer.Start(ctx, "github.ListCommits")
	defer span.End()

	until := window.EndDate
	if now := g.now(); now.Before(until) {
		until = now
	}
	if !until.After(window.StartDate) {
		return nil, nil
	}

	repos, err := g.listRepositories(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if g.verbose {
		contract.LogInfo("Found %d repositories", len(repos))
	}

	var records []schema.CommitRecord
	for _, repo := range repos {
		repoRecords, err := g.listRepositoryCommits(ctx, repo, window.StartDate, until)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			contract.LogWarn(fmt.Sprintf("Skipping repository %s", repo.GetFullName()), err)
			continue
		}
		if g.verbose {
			contract.LogInfo("Found %d commits in %s", len(repoRecords), repo.GetFullName())
		}
		records = append(records, repoRecords...)
	}

	span.SetAttributes(
		attribute.Int("streak.repositories", len(repos)),
		attribute.Int("streak.commits", len(records)),
	)
	schema.SortCommitRecords(records)
	return records, nil
}

// listRepositories pages through every repository of the authenticated user.
func (g *GitHubLister) listRepositories(ctx context.Context) ([]*github.Repository, error) {
	opts := &github.RepositoryListByAuthenticatedUserOptions{
		ListOptions: github.ListOptions{PerPage: githubPageSize},
	}

	var all []*github.Repository
	for {
		repos, resp, err := g.client.Repositories.ListByAuthenticatedUser(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list repositories: %w", err)
		}
		all = append(all, repos...)
		if resp.NextPage == 0 {
			return all, nil
		}
		opts.Page = resp.NextPage
	}
}

// listRepositoryCommits pages through the commits of one repository in [since, until].
func (g *GitHubLister) listRepositoryCommits(ctx context.Context, repo *github.Repository, since, until time.Time) ([]schema.CommitRecord, error) {
	owner := repo.GetOwner().GetLogin()
	author := g.author
	if author == "" {
		author = owner
	}

	opts := &github.CommitsListOptions{
		Author:      author,
		Since:       since,
		Until:       until,
		ListOptions: github.ListOptions{PerPage: githubPageSize},
	}

	var records []schema.CommitRecord
	for {
		commits, resp, err := g.client.Repositories.ListCommits(ctx, owner, repo.GetName(), opts)
		if err != nil {
			return nil, err
		}
		for _, c := range commits {
			records = append(records, schema.CommitRecord{
				SHA:        c.GetSHA(),
				Repository: repo.GetFullName(),
				Author:     commitAuthor(c),
				Date:       c.GetCommit().GetAuthor().GetDate().Time,
			})
		}
		if resp.NextPage == 0 {
			return records, nil
		}
		opts.Page = resp.NextPage
	}
}

// commitAuthor prefers the GitHub login over the git author name.
func commitAuthor(c *github.RepositoryCommit) string {
	if login := c.GetAuthor().GetLogin(); login != "" {
		return login
	}
	return c.GetCommit().GetAuthor().GetName()
}
