// Package handlers provides HTTP request handlers for the presentation layer.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/buildsight/hubview-go/internal/application/services"
	"github.com/buildsight/hubview-go/internal/infrastructure/aps"
	"github.com/buildsight/hubview-go/internal/infrastructure/observability/logging"
	"github.com/buildsight/hubview-go/internal/infrastructure/observability/performance"
)

// PlaceholderNoHubs is shown when no hub is visible or the hub listing fails.
// Selection widgets never render blank.
const PlaceholderNoHubs = "No hubs found"

// HubHandlers contains the hub listing HTTP handlers
type HubHandlers struct {
	catalogService *services.CatalogService
	tokens         aps.TokenSource
	logger         *logging.ChanneledLogger
	perfTracker    *performance.Tracker
}

// NewHubHandlers creates hub handlers with injected dependencies
func NewHubHandlers(catalogService *services.CatalogService, tokens aps.TokenSource, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *HubHandlers {
	return &HubHandlers{
		catalogService: catalogService,
		tokens:         tokens,
		logger:         logger,
		perfTracker:    perfTracker,
	}
}

// GetHubs returns the hub names for the hub selection widget. Failures and
// empty results degrade to the placeholder list, never an empty response.
func (h *HubHandlers) GetHubs(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("get_hubs_request")
	defer marker.Complete()

	token, err := h.tokens.AccessToken(c.Request.Context())
	if err != nil {
		h.logger.LogError(logging.ChannelAuth, "aps_access_token", err, nil)
		marker.SetError(err)
		c.JSON(http.StatusOK, gin.H{"hubs": []string{PlaceholderNoHubs}})
		return
	}

	names, err := h.catalogService.ListHubNames(c.Request.Context(), token)
	if err != nil {
		h.logger.LogError(logging.ChannelCatalog, "list_hub_names", err, nil)
		marker.SetError(err)
		c.JSON(http.StatusOK, gin.H{"hubs": []string{PlaceholderNoHubs}})
		return
	}
	if len(names) == 0 {
		names = []string{PlaceholderNoHubs}
	}

	marker.SetSuccess(true)
	h.logger.Catalog().Debug("Hub list request completed", "count", len(names), "duration", time.Since(start))
	c.JSON(http.StatusOK, gin.H{"hubs": names})
}
