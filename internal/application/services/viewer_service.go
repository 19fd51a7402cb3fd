package services

import (
	"strings"

	"github.com/buildsight/hubview-go/internal/infrastructure/aps"
	"github.com/buildsight/hubview-go/internal/infrastructure/observability/logging"
	"github.com/buildsight/hubview-go/internal/presentation/templates"
)

// ViewerService renders the embedded viewer page for a selected design.
type ViewerService struct {
	logger *logging.ChanneledLogger
}

// NewViewerService creates the viewer service.
func NewViewerService(logger *logging.ChanneledLogger) *ViewerService {
	return &ViewerService{logger: logger}
}

// RenderViewerPage substitutes the three embedding placeholders into the
// viewer shell: the access token, the base64url-encoded URN (padding
// stripped) and the selected view guid. An empty guid loads the design's
// default geometry.
func (s *ViewerService) RenderViewerPage(token, rawURN, viewGUID string) string {
	html := templates.ViewerHTML
	html = strings.ReplaceAll(html, templates.TokenPlaceholder, token)
	html = strings.ReplaceAll(html, templates.URNPlaceholder, aps.EncodeURN(rawURN))
	html = strings.ReplaceAll(html, templates.GUIDPlaceholder, viewGUID)

	s.logger.Viewer().Debug("Rendered viewer page", "urn", rawURN, "guid", viewGUID)
	return html
}
