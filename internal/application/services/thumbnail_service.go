package services

import (
	"context"

	"github.com/buildsight/hubview-go/internal/infrastructure/media"
	"github.com/buildsight/hubview-go/internal/infrastructure/observability/logging"
	"github.com/buildsight/hubview-go/internal/infrastructure/observability/performance"
)

// ThumbnailFetcher is the slice of the APS client the thumbnail service
// consumes.
type ThumbnailFetcher interface {
	GetThumbnail(ctx context.Context, token, urn string, width int) ([]byte, error)
}

// ThumbnailService serves webp thumbnails for catalog entries.
type ThumbnailService struct {
	client      ThumbnailFetcher
	processor   *media.ThumbnailProcessor
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewThumbnailService creates the thumbnail service.
func NewThumbnailService(client ThumbnailFetcher, processor *media.ThumbnailProcessor, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *ThumbnailService {
	return &ThumbnailService{
		client:      client,
		processor:   processor,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// GetThumbnail fetches the rendered thumbnail for a URN and re-encodes it as
// webp at the requested width. A design without a thumbnail yields (nil, nil)
// and the handler answers 404.
func (s *ThumbnailService) GetThumbnail(ctx context.Context, token, urn string, width int) ([]byte, error) {
	marker := s.perfTracker.StartOperation("thumbnail:fetch")
	defer s.perfTracker.CompleteOperation(marker)

	raw, err := s.client.GetThumbnail(ctx, token, urn, width)
	if err != nil {
		marker.SetError(err)
		return nil, err
	}
	if raw == nil {
		s.logger.Viewer().Debug("No thumbnail available", "urn", urn)
		return nil, nil
	}

	encoded, err := s.processor.Process(raw, width)
	if err != nil {
		marker.SetError(err)
		return nil, err
	}
	marker.AddMetadata("bytes", len(encoded))
	return encoded, nil
}
