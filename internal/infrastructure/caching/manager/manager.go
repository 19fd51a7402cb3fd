// Package manager provides centralized cache operations for memoized catalogs
package manager

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/buildsight/hubview-go/internal/infrastructure/caching/stores"
	"github.com/buildsight/hubview-go/internal/infrastructure/caching/types"
)

// Manager owns the cache stores and exposes the catalog memoization surface
type Manager struct {
	Catalogs *stores.CatalogStore
}

// NewManager creates a cache manager with initialized stores
func NewManager() *Manager {
	return &Manager{
		Catalogs: stores.NewCatalogStore(),
	}
}

// CatalogKey canonicalizes the (token, hubID) input tuple into a cache key.
// The token is hashed so bearer tokens never appear in keys, logs, or the
// admin cache inventory.
func CatalogKey(token, hubID string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:8]) + ":" + hubID
}

// GetCatalog retrieves a memoized catalog snapshot
func (m *Manager) GetCatalog(key string) (*types.CatalogSnapshot, bool) {
	return m.Catalogs.GetCatalog(key)
}

// SetCatalog memoizes a catalog snapshot
func (m *Manager) SetCatalog(key string, snapshot *types.CatalogSnapshot) {
	m.Catalogs.SetCatalog(key, snapshot)
}

// InvalidateCatalog drops one memoized catalog by its parameter key
func (m *Manager) InvalidateCatalog(key string) {
	m.Catalogs.InvalidateCatalog(key)
}

// InvalidateAll drops every memoized catalog
func (m *Manager) InvalidateAll() int {
	return m.Catalogs.InvalidateAll()
}

// GetAllCatalogKeys lists the memoized parameter keys
func (m *Manager) GetAllCatalogKeys() []string {
	return m.Catalogs.GetAllCatalogKeys()
}

// CleanupExpired removes snapshots past the session TTL
func (m *Manager) CleanupExpired(ttl time.Duration) int {
	return m.Catalogs.CleanupExpired(ttl)
}
