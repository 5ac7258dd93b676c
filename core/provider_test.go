package core

import (
	"context"
	"testing"

	"github.com/huangsam/commitstreak/internal/contract"
	"github.com/huangsam/commitstreak/internal/iocache"
	"github.com/huangsam/commitstreak/internal/provider"
	"github.com/huangsam/commitstreak/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	t.Run("fixed", func(t *testing.T) {
		p, err := newProvider(testConfig(7), nil, &contract.MockGitClient{})
		require.NoError(t, err)
		count, err := p.CommitCount(context.Background(), schema.ChallengeWindow{})
		require.NoError(t, err)
		assert.Equal(t, 7, count)
	})

	t.Run("demo overrides source", func(t *testing.T) {
		cfg := testConfig(0)
		cfg.Source = schema.GitHubSource
		cfg.DemoState = schema.PendingState
		cfg.DemoResult = schema.UnknownResult
		p, err := newProvider(cfg, nil, &contract.MockGitClient{})
		require.NoError(t, err)
		assert.IsType(t, &provider.Fixed{}, p)
	})

	t.Run("github without token", func(t *testing.T) {
		cfg := testConfig(0)
		cfg.Source = schema.GitHubSource
		_, err := newProvider(cfg, nil, &contract.MockGitClient{})
		assert.Error(t, err)
	})

	t.Run("github", func(t *testing.T) {
		cfg := testConfig(0)
		cfg.Source = schema.GitHubSource
		cfg.GitHubToken = "ghp_test"
		p, err := newProvider(cfg, nil, &contract.MockGitClient{})
		require.NoError(t, err)
		counter, ok := p.(*provider.Counter)
		require.True(t, ok)
		assert.IsType(t, &provider.GitHubLister{}, counter.Lister)
	})

	t.Run("git with cache", func(t *testing.T) {
		cfg := testConfig(0)
		cfg.Source = schema.GitSource
		cfg.RepoPaths = []string{"/repo"}
		cfg.CacheBackend = schema.SQLiteBackend

		mgr := &iocache.MockCacheManager{}
		mgr.On("GetCommitStore").Return(&iocache.MockCacheStore{})

		p, err := newProvider(cfg, mgr, &contract.MockGitClient{})
		require.NoError(t, err)
		counter, ok := p.(*provider.Counter)
		require.True(t, ok)
		assert.IsType(t, &provider.Cached{}, counter.Lister)
		mgr.AssertExpectations(t)
	})

	t.Run("git with caching off", func(t *testing.T) {
		cfg := testConfig(0)
		cfg.Source = schema.GitSource
		cfg.RepoPaths = []string{"/repo"}

		mgr := &iocache.MockCacheManager{}
		p, err := newProvider(cfg, mgr, &contract.MockGitClient{})
		require.NoError(t, err)
		counter, ok := p.(*provider.Counter)
		require.True(t, ok)
		assert.IsType(t, &provider.GitLister{}, counter.Lister)
		mgr.AssertNotCalled(t, "GetCommitStore")
	})

	t.Run("unknown source", func(t *testing.T) {
		cfg := testConfig(0)
		cfg.Source = "svn"
		_, err := newProvider(cfg, nil, &contract.MockGitClient{})
		assert.Error(t, err)
	})
}
