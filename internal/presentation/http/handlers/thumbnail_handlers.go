package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/buildsight/hubview-go/internal/application/services"
	"github.com/buildsight/hubview-go/internal/infrastructure/aps"
	"github.com/buildsight/hubview-go/internal/infrastructure/observability/logging"
	"github.com/buildsight/hubview-go/internal/infrastructure/observability/performance"
)

// ThumbnailHandlers serves webp thumbnails for catalog entries
type ThumbnailHandlers struct {
	thumbnailService *services.ThumbnailService
	tokens           aps.TokenSource
	logger           *logging.ChanneledLogger
	perfTracker      *performance.Tracker
}

// NewThumbnailHandlers creates thumbnail handlers with injected dependencies
func NewThumbnailHandlers(thumbnailService *services.ThumbnailService, tokens aps.TokenSource, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *ThumbnailHandlers {
	return &ThumbnailHandlers{
		thumbnailService: thumbnailService,
		tokens:           tokens,
		logger:           logger,
		perfTracker:      perfTracker,
	}
}

// GetThumbnail serves the webp thumbnail for the design named by the "urn"
// query parameter. A design without a rendered thumbnail answers 404.
func (h *ThumbnailHandlers) GetThumbnail(c *gin.Context) {
	marker := h.perfTracker.StartOperation("get_thumbnail_request")
	defer marker.Complete()

	urn := c.Query("urn")
	if urn == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "urn query parameter is required"})
		return
	}

	width := 0
	if raw := c.Query("width"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "width must be an integer"})
			return
		}
		width = parsed
	}

	token, err := h.tokens.AccessToken(c.Request.Context())
	if err != nil {
		h.logger.LogError(logging.ChannelAuth, "aps_access_token", err, nil)
		marker.SetError(err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to obtain access token"})
		return
	}

	encoded, err := h.thumbnailService.GetThumbnail(c.Request.Context(), token, urn, width)
	if err != nil {
		h.logger.LogError(logging.ChannelViewer, "get_thumbnail", err, map[string]any{"urn": urn})
		marker.SetError(err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	if encoded == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no thumbnail available"})
		return
	}

	marker.SetSuccess(true)
	c.Data(http.StatusOK, "image/webp", encoded)
}
