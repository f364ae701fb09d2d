// Package iocache is for persisting simulation runs.
package iocache

import (
	"sync"

	"github.com/huangsam/tradeoff/internal/contract"
)

// RunStoreManager manages the RunStore instance.
type RunStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	runs         contract.RunStore
}

var _ contract.RunManager = &RunStoreManager{} // Compile-time check

// GetRunStore returns the run history RunStore.
func (mgr *RunStoreManager) GetRunStore() contract.RunStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.runs
}
