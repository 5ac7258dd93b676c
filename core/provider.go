package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/huangsam/commitstreak/internal/contract"
	"github.com/huangsam/commitstreak/internal/provider"
	"github.com/huangsam/commitstreak/schema"
)

// NewProvider returns the commit count provider for the configured source.
// Live sources are cached through the commit store of mgr when caching is on.
func NewProvider(cfg *contract.Config, mgr contract.CacheManager) (contract.CommitCountProvider, error) {
	return newProvider(cfg, mgr, contract.NewLocalGitClient())
}

func newProvider(cfg *contract.Config, mgr contract.CacheManager, client contract.GitClient) (contract.CommitCountProvider, error) {
	if cfg.DemoEnabled() {
		_, commits, err := provider.DemoScenario(cfg.DemoState, cfg.DemoResult, time.Now())
		if err != nil {
			return nil, err
		}
		return provider.NewFixed(commits), nil
	}

	var lister contract.CommitLister
	switch cfg.Source {
	case schema.FixedSource:
		return provider.NewFixed(cfg.FixedCommits), nil
	case schema.GitHubSource:
		if cfg.GitHubToken == "" {
			return nil, errors.New("github source requires a token. Set GITHUB_TOKEN or --github-token")
		}
		lister = provider.NewGitHubLister(cfg.GitHubToken, cfg.Author, cfg.Verbose)
	case schema.GitSource:
		lister = provider.NewGitLister(client, cfg.RepoPaths, cfg.Author, cfg.Verbose)
	default:
		return nil, fmt.Errorf("unknown commit source: %q", cfg.Source)
	}

	if store := commitStore(cfg, mgr); store != nil {
		lister = provider.NewCached(lister, store, cfg.Source, cfg.CacheTTL)
	}
	return provider.NewCounter(lister), nil
}

// commitStore returns the store backing the commit cache, or nil when caching is off.
func commitStore(cfg *contract.Config, mgr contract.CacheManager) contract.CacheStore {
	if mgr == nil || cfg.CacheBackend == schema.NoneBackend {
		return nil
	}
	return mgr.GetCommitStore()
}
