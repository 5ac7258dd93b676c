package provider

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/commitstreak/internal/contract"
	"github.com/huangsam/commitstreak/schema"
)

// currentCacheVersion is bumped whenever the cached payload format changes.
const currentCacheVersion = 1

// fingerprinter is implemented by listers whose results also depend on local state.
type fingerprinter interface {
	Fingerprint(ctx context.Context) (string, error)
}

// Cached wraps a CommitLister with a durable cache store.
type Cached struct {
	lister contract.CommitLister
	store  contract.CacheStore
	source schema.CommitSource
	ttl    time.Duration
	now    func() time.Time
}

var _ contract.CommitLister = &Cached{} // Compile-time check

// NewCached creates a lister that serves fresh entries from the store.
func NewCached(lister contract.CommitLister, store contract.CacheStore, source schema.CommitSource, ttl time.Duration) *Cached {
	return &Cached{
		lister: lister,
		store:  store,
		source: source,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Identity implements the CommitLister interface.
func (c *Cached) Identity() string {
	return c.lister.Identity()
}

// ListCommits implements the CommitLister interface.
// Store failures are logged and never fail the listing.
func (c *Cached) ListCommits(ctx context.Context, window schema.ChallengeWindow) ([]schema.CommitRecord, error) {
	key, err := c.cacheKey(ctx, window)
	if err != nil {
		return nil, err
	}

	if records, ok := c.lookup(key); ok {
		return records, nil
	}

	records, err := c.lister.ListCommits(ctx, window)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(records)
	if err != nil {
		contract.LogWarn("Cannot encode commits for cache", err)
		return records, nil
	}
	if err := c.store.Set(key, data, currentCacheVersion, c.now().Unix()); err != nil {
		contract.LogWarn("Cannot write commits to cache", err)
	}
	return records, nil
}

// lookup returns the cached records for key when they are present and fresh.
func (c *Cached) lookup(key string) ([]schema.CommitRecord, bool) {
	value, version, ts, err := c.store.Get(key)
	if err != nil || version != currentCacheVersion {
		return nil, false
	}
	if c.now().Sub(time.Unix(ts, 0)) >= c.ttl {
		return nil, false
	}
	var records []schema.CommitRecord
	if err := json.Unmarshal(value, &records); err != nil {
		return nil, false
	}
	return records, true
}

// cacheKey hashes everything that determines the result of a listing.
func (c *Cached) cacheKey(ctx context.Context, window schema.ChallengeWindow) (string, error) {
	var fingerprint string
	if fp, ok := c.lister.(fingerprinter); ok {
		var err error
		if fingerprint, err = fp.Fingerprint(ctx); err != nil {
			return "", err
		}
	}
	start := contract.CacheStartTime(window.StartDate)
	end := contract.CacheStartTime(window.EndDate)
	raw := fmt.Sprintf("%s:%s:%s:%d:%d", c.source, c.lister.Identity(), fingerprint, start.Unix(), end.Unix())
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:]), nil
}
