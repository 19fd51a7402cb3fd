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

// PlaceholderNoViews is shown when a design has no navigable views yet.
const PlaceholderNoViews = "No views found"

// ViewsHandlers contains the manifest view HTTP handlers
type ViewsHandlers struct {
	viewsService *services.ViewsService
	tokens       aps.TokenSource
	logger       *logging.ChanneledLogger
	perfTracker  *performance.Tracker
}

// NewViewsHandlers creates views handlers with injected dependencies
func NewViewsHandlers(viewsService *services.ViewsService, tokens aps.TokenSource, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *ViewsHandlers {
	return &ViewsHandlers{
		viewsService: viewsService,
		tokens:       tokens,
		logger:       logger,
		perfTracker:  perfTracker,
	}
}

// GetViews returns the view options for the design named by the "urn" query
// parameter. Untranslated designs and failures degrade to the placeholder
// option so the view widget never renders blank.
func (h *ViewsHandlers) GetViews(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("get_views_request")
	defer marker.Complete()

	urn := c.Query("urn")
	if urn == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "urn query parameter is required"})
		return
	}

	placeholder := []catalog.ViewOption{{Label: PlaceholderNoViews, GUID: ""}}

	token, err := h.tokens.AccessToken(c.Request.Context())
	if err != nil {
		h.logger.LogError(logging.ChannelAuth, "aps_access_token", err, nil)
		marker.SetError(err)
		c.JSON(http.StatusOK, gin.H{"urn": urn, "views": placeholder})
		return
	}

	options, err := h.viewsService.GetViewOptions(c.Request.Context(), token, urn)
	if err != nil {
		h.logger.LogError(logging.ChannelViewer, "get_view_options", err, map[string]any{"urn": urn})
		marker.SetError(err)
		c.JSON(http.StatusOK, gin.H{"urn": urn, "views": placeholder})
		return
	}
	if len(options) == 0 {
		options = placeholder
	}

	marker.SetSuccess(true)
	h.logger.Viewer().Debug("Views request completed", "urn", urn, "count", len(options), "duration", time.Since(start))
	c.JSON(http.StatusOK, gin.H{"urn": urn, "views": options})
}

// GetMetadata passes through the model-view metadata listing for a URN.
func (h *ViewsHandlers) GetMetadata(c *gin.Context) {
	urn := c.Query("urn")
	if urn == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "urn query parameter is required"})
		return
	}

	token, err := h.tokens.AccessToken(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	envelope, err := h.viewsService.GetModelMetadata(c.Request.Context(), token, urn)
	if err != nil {
		h.logger.LogError(logging.ChannelViewer, "get_model_metadata", err, map[string]any{"urn": urn})
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, envelope)
}
