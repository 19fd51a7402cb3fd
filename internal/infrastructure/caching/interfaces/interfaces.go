// Package interfaces defines cache operation contracts for memoized catalog results.
package interfaces

import (
	"time"

	"github.com/buildsight/hubview-go/internal/infrastructure/caching/types"
)

// CatalogCache defines operations for memoized catalog-build results.
type CatalogCache interface {
	GetCatalog(key string) (*types.CatalogSnapshot, bool)
	SetCatalog(key string, snapshot *types.CatalogSnapshot)
	InvalidateCatalog(key string)
	InvalidateAll() int
	GetAllCatalogKeys() []string
	CleanupExpired(ttl time.Duration) int
}
