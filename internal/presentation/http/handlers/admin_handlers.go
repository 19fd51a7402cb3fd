package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/buildsight/hubview-go/internal/infrastructure/caching/manager"
	"github.com/buildsight/hubview-go/internal/infrastructure/observability/logging"
	"github.com/buildsight/hubview-go/internal/infrastructure/observability/performance"
)

// AdminHandlers contains the cache management HTTP handlers
type AdminHandlers struct {
	cache       *manager.Manager
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewAdminHandlers creates admin handlers with injected dependencies
func NewAdminHandlers(cache *manager.Manager, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *AdminHandlers {
	return &AdminHandlers{
		cache:       cache,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// GetCacheStatus reports the memoized catalog keys and recent slow-walk
// alerts. Keys carry hashed tokens only, so they are safe to expose here.
func (h *AdminHandlers) GetCacheStatus(c *gin.Context) {
	keys := h.cache.GetAllCatalogKeys()
	c.JSON(http.StatusOK, gin.H{
		"catalogKeys": keys,
		"count":       len(keys),
		"uptime":      h.perfTracker.Uptime().String(),
		"alerts":      h.perfTracker.GetRecentAlerts(20),
	})
}

// PostCacheInvalidate drops every memoized catalog. The next catalog request
// walks the hierarchy again.
func (h *AdminHandlers) PostCacheInvalidate(c *gin.Context) {
	removed := h.cache.InvalidateAll()
	h.logger.Cache().Info("Admin invalidated all memoized catalogs", "removed", removed)
	c.JSON(http.StatusOK, gin.H{"invalidated": removed})
}
