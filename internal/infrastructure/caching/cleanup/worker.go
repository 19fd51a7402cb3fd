// Package cleanup provides the background worker that expires memoized catalogs
package cleanup

import (
	"context"
	"time"

	"github.com/buildsight/hubview-go/internal/infrastructure/caching/interfaces"
	"github.com/buildsight/hubview-go/internal/infrastructure/observability/logging"
)

// Worker handles background cache cleanup operations
type Worker struct {
	cache  interfaces.CatalogCache
	config *Config
	logger *logging.ChanneledLogger
}

// NewWorker creates a new cleanup worker with injected configuration
func NewWorker(cache interfaces.CatalogCache, config *Config, logger *logging.ChanneledLogger) *Worker {
	return &Worker{
		cache:  cache,
		config: config,
		logger: logger,
	}
}

// Start begins the cleanup worker routine, using the configured interval
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.config.CleanupInterval)
	defer ticker.Stop()

	w.logger.Cache().Info("Cache cleanup worker started",
		"interval", w.config.CleanupInterval,
		"sessionTTL", w.config.CatalogSessionTTL)

	for {
		select {
		case <-ctx.Done():
			w.logger.Cache().Info("Cache cleanup worker stopping")
			return
		case <-ticker.C:
			w.performCleanup()
		}
	}
}

// performCleanup expires memoized catalogs past the session TTL
func (w *Worker) performCleanup() {
	start := time.Now()
	removed := w.cache.CleanupExpired(w.config.CatalogSessionTTL)
	if removed > 0 {
		w.logger.Cache().Info("Expired memoized catalogs",
			"removed", removed,
			"remaining", len(w.cache.GetAllCatalogKeys()),
			"duration", time.Since(start))
	}
}
