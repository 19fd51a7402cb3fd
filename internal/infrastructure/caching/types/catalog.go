// Package types defines the cached value shapes for memoized catalogs.
package types

import (
	"time"

	"github.com/buildsight/hubview-go/internal/domain/entities/catalog"
)

// CatalogSnapshot is one memoized catalog-build result, keyed by the exact
// (token, hub) input tuple that produced it.
type CatalogSnapshot struct {
	Catalog      catalog.Catalog `json:"catalog"`
	HubID        string          `json:"hubId"`
	BuiltAt      time.Time       `json:"builtAt"`
	LastAccessed time.Time       `json:"lastAccessed"`
	WalkDuration time.Duration   `json:"walkDuration"`
	APICalls     int             `json:"apiCalls"`
	FileCount    int             `json:"fileCount"`
}

// Expired reports whether the snapshot has outlived the session TTL.
func (s *CatalogSnapshot) Expired(ttl time.Duration, now time.Time) bool {
	return now.Sub(s.BuiltAt) > ttl
}
