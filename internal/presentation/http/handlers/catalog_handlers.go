package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/buildsight/hubview-go/internal/application/services"
	"github.com/buildsight/hubview-go/internal/domain/entities/catalog"
	"github.com/buildsight/hubview-go/internal/infrastructure/aps"
	"github.com/buildsight/hubview-go/internal/infrastructure/observability/logging"
	"github.com/buildsight/hubview-go/internal/infrastructure/observability/performance"
)

// Placeholders for the file selection widget.
const (
	PlaceholderSelectHub = "Select a hub first!"
	PlaceholderNoFiles   = "No viewable files in the hub"
)

// CatalogHandlers contains the catalog HTTP handlers
type CatalogHandlers struct {
	catalogService *services.CatalogService
	tokens         aps.TokenSource
	logger         *logging.ChanneledLogger
	perfTracker    *performance.Tracker
}

// NewCatalogHandlers creates catalog handlers with injected dependencies
func NewCatalogHandlers(catalogService *services.CatalogService, tokens aps.TokenSource, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *CatalogHandlers {
	return &CatalogHandlers{
		catalogService: catalogService,
		tokens:         tokens,
		logger:         logger,
		perfTracker:    perfTracker,
	}
}

// GetCatalog builds (or returns the memoized) viewable-file catalog for the
// hub named by the "hub" query parameter. The files list always carries at
// least a placeholder so the selection widget never renders blank.
func (h *CatalogHandlers) GetCatalog(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("get_catalog_request")
	defer marker.Complete()

	hubName := c.Query("hub")
	if hubName == "" || hubName == PlaceholderNoHubs {
		c.JSON(http.StatusOK, gin.H{
			"hub":     hubName,
			"catalog": catalog.New(),
			"files":   []string{PlaceholderSelectHub},
		})
		return
	}

	token, err := h.tokens.AccessToken(c.Request.Context())
	if err != nil {
		h.logger.LogError(logging.ChannelAuth, "aps_access_token", err, nil)
		marker.SetError(err)
		c.JSON(http.StatusOK, gin.H{
			"hub":     hubName,
			"catalog": catalog.New(),
			"files":   []string{PlaceholderNoFiles},
		})
		return
	}

	snapshot, err := h.catalogService.BuildCatalogForHubName(c.Request.Context(), token, hubName)
	if err != nil {
		h.logger.LogError(logging.ChannelCatalog, "build_catalog", err, map[string]any{"hub": hubName})
		marker.SetError(err)
		c.JSON(http.StatusOK, gin.H{
			"hub":     hubName,
			"catalog": catalog.New(),
			"files":   []string{PlaceholderNoFiles},
		})
		return
	}

	files := snapshot.Catalog.Names()
	if len(files) == 0 {
		files = []string{PlaceholderNoFiles}
	}

	marker.SetSuccess(true)
	marker.AddMetadata("fileCount", snapshot.FileCount)
	h.logger.Catalog().Info("Catalog request completed",
		"hub", hubName,
		"files", snapshot.FileCount,
		"duration", time.Since(start))
	c.JSON(http.StatusOK, gin.H{
		"hub":     hubName,
		"catalog": snapshot.Catalog,
		"files":   files,
	})
}
