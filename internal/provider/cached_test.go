package provider

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/huangsam/commitstreak/internal/contract"
	"github.com/huangsam/commitstreak/internal/iocache"
	"github.com/huangsam/commitstreak/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []schema.CommitRecord {
	return []schema.CommitRecord{
		{SHA: "aaa", Repository: "octo/one", Author: "octo", Date: fixedNow.AddDate(0, 0, -2)},
		{SHA: "bbb", Repository: "octo/two", Author: "octo", Date: fixedNow.AddDate(0, 0, -1)},
	}
}

func newSQLiteStore(t *testing.T) contract.CacheStore {
	t.Helper()
	store, err := iocache.NewCacheStore("commit_cache", schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestCachedRoundTrip(t *testing.T) {
	ctx := context.Background()
	window := testWindow()

	lister := &contract.MockCommitLister{}
	lister.On("Identity").Return("github:owner:abc")
	lister.On("ListCommits", mock.Anything, window).Return(sampleRecords(), nil).Once()

	cached := NewCached(lister, newSQLiteStore(t), schema.GitHubSource, time.Hour)
	cached.now = func() time.Time { return fixedNow }

	first, err := cached.ListCommits(ctx, window)
	require.NoError(t, err)
	assert.Len(t, first, 2)

	// Served from the store; the lister expects a single call
	second, err := cached.ListCommits(ctx, window)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	lister.AssertExpectations(t)
}

func TestCachedExpiry(t *testing.T) {
	ctx := context.Background()
	window := testWindow()

	lister := &contract.MockCommitLister{}
	lister.On("Identity").Return("github:owner:abc")
	lister.On("ListCommits", mock.Anything, window).Return(sampleRecords(), nil).Twice()

	clock := fixedNow
	cached := NewCached(lister, newSQLiteStore(t), schema.GitHubSource, time.Hour)
	cached.now = func() time.Time { return clock }

	_, err := cached.ListCommits(ctx, window)
	require.NoError(t, err)

	clock = clock.Add(time.Hour)
	_, err = cached.ListCommits(ctx, window)
	require.NoError(t, err)
	lister.AssertExpectations(t)
}

func TestCachedIgnoresOtherVersions(t *testing.T) {
	ctx := context.Background()
	window := testWindow()

	lister := &contract.MockCommitLister{}
	lister.On("Identity").Return("github:owner:abc")
	lister.On("ListCommits", mock.Anything, window).Return(sampleRecords(), nil).Once()

	store := &iocache.MockCacheStore{}
	stale, _ := json.Marshal([]schema.CommitRecord{{SHA: "old"}})
	store.On("Get", mock.Anything).Return(stale, currentCacheVersion+1, fixedNow.Unix(), nil)
	store.On("Set", mock.Anything, mock.Anything, currentCacheVersion, fixedNow.Unix()).Return(nil)

	cached := NewCached(lister, store, schema.GitHubSource, time.Hour)
	cached.now = func() time.Time { return fixedNow }

	records, err := cached.ListCommits(ctx, window)
	require.NoError(t, err)
	assert.Len(t, records, 2)
	store.AssertExpectations(t)
}

func TestCachedWriteFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	window := testWindow()

	lister := &contract.MockCommitLister{}
	lister.On("Identity").Return("github:owner:abc")
	lister.On("ListCommits", mock.Anything, window).Return(sampleRecords(), nil)

	store := &iocache.MockCacheStore{}
	store.On("Get", mock.Anything).Return(nil, 0, int64(0), sql.ErrNoRows)
	store.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("disk full"))

	records, err := NewCached(lister, store, schema.GitHubSource, time.Hour).ListCommits(ctx, window)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestCachedListerError(t *testing.T) {
	ctx := context.Background()
	window := testWindow()
	boom := errors.New("bad credentials")

	lister := &contract.MockCommitLister{}
	lister.On("Identity").Return("github:owner:abc")
	lister.On("ListCommits", mock.Anything, window).Return(nil, boom)

	store := &iocache.MockCacheStore{}
	store.On("Get", mock.Anything).Return(nil, 0, int64(0), sql.ErrNoRows)

	_, err := NewCached(lister, store, schema.GitHubSource, time.Hour).ListCommits(ctx, window)
	assert.ErrorIs(t, err, boom)
	store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCacheKey(t *testing.T) {
	ctx := context.Background()
	window := testWindow()

	lister := &contract.MockCommitLister{}
	lister.On("Identity").Return("github:owner:abc")
	cached := NewCached(lister, &iocache.MockCacheStore{}, schema.GitHubSource, time.Hour)

	key1, err := cached.cacheKey(ctx, window)
	require.NoError(t, err)
	assert.Len(t, key1, 64)

	// Sub-hour changes share a key
	shifted := window
	shifted.StartDate = window.StartDate.Truncate(time.Hour).Add(30 * time.Minute)
	key2, err := cached.cacheKey(ctx, shifted)
	require.NoError(t, err)
	assert.Equal(t, key1, key2)

	// A different source does not
	other := NewCached(lister, &iocache.MockCacheStore{}, schema.GitSource, time.Hour)
	key3, err := other.cacheKey(ctx, window)
	require.NoError(t, err)
	assert.NotEqual(t, key1, key3)
}

func TestCacheKeyUsesFingerprint(t *testing.T) {
	ctx := context.Background()
	window := testWindow()

	client := &contract.MockGitClient{}
	client.On("GetRepoHash", mock.Anything, "/repo").Return("head1", nil).Once()
	client.On("GetRepoHash", mock.Anything, "/repo").Return("head2", nil).Once()

	lister := NewGitLister(client, []string{"/repo"}, "dev@example.com", false)
	cached := NewCached(lister, &iocache.MockCacheStore{}, schema.GitSource, time.Hour)

	key1, err := cached.cacheKey(ctx, window)
	require.NoError(t, err)
	key2, err := cached.cacheKey(ctx, window)
	require.NoError(t, err)
	assert.NotEqual(t, key1, key2, "a new HEAD must produce a new key")
	client.AssertExpectations(t)
}
