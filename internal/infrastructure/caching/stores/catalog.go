// Package stores provides concrete cache store implementations
package stores

import (
	"sync"
	"time"

	"github.com/buildsight/hubview-go/internal/infrastructure/caching/types"
)

// CatalogStore implements memoized catalog storage. Entries never change
// after insertion; staleness is handled purely by TTL expiry or explicit
// invalidation, matching the never-evict-within-session contract.
type CatalogStore struct {
	snapshots map[string]*types.CatalogSnapshot
	mu        sync.RWMutex
}

// NewCatalogStore creates a new catalog cache store
func NewCatalogStore() *CatalogStore {
	return &CatalogStore{
		snapshots: make(map[string]*types.CatalogSnapshot),
	}
}

// GetCatalog retrieves a memoized snapshot by its parameter key
func (cs *CatalogStore) GetCatalog(key string) (*types.CatalogSnapshot, bool) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	snapshot, exists := cs.snapshots[key]
	if !exists {
		return nil, false
	}
	snapshot.LastAccessed = time.Now().UTC()
	return snapshot, true
}

// SetCatalog stores a snapshot under its parameter key
func (cs *CatalogStore) SetCatalog(key string, snapshot *types.CatalogSnapshot) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	snapshot.LastAccessed = time.Now().UTC()
	cs.snapshots[key] = snapshot
}

// InvalidateCatalog drops a single memoized snapshot
func (cs *CatalogStore) InvalidateCatalog(key string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	delete(cs.snapshots, key)
}

// InvalidateAll drops every memoized snapshot and returns how many were dropped
func (cs *CatalogStore) InvalidateAll() int {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	count := len(cs.snapshots)
	cs.snapshots = make(map[string]*types.CatalogSnapshot)
	return count
}

// GetAllCatalogKeys returns the keys of all memoized snapshots
func (cs *CatalogStore) GetAllCatalogKeys() []string {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	keys := make([]string, 0, len(cs.snapshots))
	for key := range cs.snapshots {
		keys = append(keys, key)
	}
	return keys
}

// CleanupExpired removes snapshots older than the session TTL and returns
// how many were removed
func (cs *CatalogStore) CleanupExpired(ttl time.Duration) int {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	now := time.Now().UTC()
	removed := 0
	for key, snapshot := range cs.snapshots {
		if snapshot.Expired(ttl, now) {
			delete(cs.snapshots, key)
			removed++
		}
	}
	return removed
}
