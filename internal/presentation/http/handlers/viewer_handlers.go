package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/buildsight/hubview-go/internal/application/services"
	"github.com/buildsight/hubview-go/internal/infrastructure/aps"
	"github.com/buildsight/hubview-go/internal/infrastructure/observability/logging"
	"github.com/buildsight/hubview-go/internal/infrastructure/observability/performance"
	"github.com/buildsight/hubview-go/internal/presentation/templates"
)

// ViewerHandlers serves the file picker index and the embedded viewer page
type ViewerHandlers struct {
	viewerService *services.ViewerService
	tokens        aps.TokenSource
	logger        *logging.ChanneledLogger
	perfTracker   *performance.Tracker
}

// NewViewerHandlers creates viewer handlers with injected dependencies
func NewViewerHandlers(viewerService *services.ViewerService, tokens aps.TokenSource, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *ViewerHandlers {
	return &ViewerHandlers{
		viewerService: viewerService,
		tokens:        tokens,
		logger:        logger,
		perfTracker:   perfTracker,
	}
}

// GetIndex serves the cascading hub / file / view picker page.
func (h *ViewerHandlers) GetIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(templates.IndexHTML))
}

// GetViewer renders the embedded viewer page for the design named by the
// "urn" query parameter. The optional "guid" parameter scopes the page to one
// view; when absent the viewer loads the default geometry.
func (h *ViewerHandlers) GetViewer(c *gin.Context) {
	marker := h.perfTracker.StartOperation("get_viewer_request")
	defer marker.Complete()

	urn := c.Query("urn")
	if urn == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "urn query parameter is required"})
		return
	}
	guid := c.Query("guid")

	token, err := h.tokens.AccessToken(c.Request.Context())
	if err != nil {
		h.logger.LogError(logging.ChannelAuth, "aps_access_token", err, nil)
		marker.SetError(err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to obtain access token"})
		return
	}

	html := h.viewerService.RenderViewerPage(token, urn, guid)
	marker.SetSuccess(true)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
