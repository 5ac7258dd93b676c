// Package provider supplies observed commit counts to the challenge engine.
// Listers fetch commit records from GitHub or local repositories, and
// providers reduce them to the single integer the statistics need.
package provider

import (
	"context"
	"fmt"

	"github.com/huangsam/commitstreak/internal/contract"
	"github.com/huangsam/commitstreak/schema"
)

// Fixed reports the same commit count for every window.
type Fixed struct {
	Count int
}

var _ contract.CommitCountProvider = &Fixed{} // Compile-time check

// NewFixed creates a provider for a known commit count.
func NewFixed(count int) *Fixed {
	return &Fixed{Count: count}
}

// CommitCount implements the CommitCountProvider interface.
func (f *Fixed) CommitCount(ctx context.Context, _ schema.ChallengeWindow) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return f.Count, nil
}

// Counter adapts a CommitLister into a CommitCountProvider.
type Counter struct {
	Lister contract.CommitLister
}

var _ contract.CommitCountProvider = &Counter{} // Compile-time check

// NewCounter creates a provider that counts the records of a lister.
func NewCounter(lister contract.CommitLister) *Counter {
	return &Counter{Lister: lister}
}

// CommitCount implements the CommitCountProvider interface.
func (c *Counter) CommitCount(ctx context.Context, window schema.ChallengeWindow) (int, error) {
	records, err := c.Lister.ListCommits(ctx, window)
	if err != nil {
		return 0, fmt.Errorf("failed to list commits for %s: %w", c.Lister.Identity(), err)
	}
	return len(records), nil
}
