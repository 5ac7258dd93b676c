// Package iocache is for caching I/O calls.
package iocache

import (
	"sync"

	"github.com/huangsam/commitstreak/internal/contract"
)

// CacheStoreManager manages the CacheStore instances.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	commits      contract.CacheStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetCommitStore returns the commit CacheStore.
func (mgr *CacheStoreManager) GetCommitStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.commits
}
