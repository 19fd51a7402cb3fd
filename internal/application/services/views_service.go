package services

import (
	"context"
	"strings"

	aps "github.com/buildsight/hubview-go/internal/domain/entities/aps"
	"github.com/buildsight/hubview-go/internal/domain/entities/catalog"
	"github.com/buildsight/hubview-go/internal/infrastructure/observability/logging"
	"github.com/buildsight/hubview-go/internal/infrastructure/observability/performance"
)

// sheetNamePrefix marks 2D sheet views whose name lives on the view node
// instead of the geometry container.
const sheetNamePrefix = "Sheet:"

// ManifestFetcher is the slice of the APS client the views service consumes.
type ManifestFetcher interface {
	GetManifest(ctx context.Context, token, urn string) (*aps.Manifest, error)
	GetMetadata(ctx context.Context, token, urn string) (*aps.MetadataEnvelope, error)
}

// ViewsService extracts the navigable 3D scenes and 2D sheets from a design's
// translation manifest.
type ViewsService struct {
	client      ManifestFetcher
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewViewsService creates the views service.
func NewViewsService(client ManifestFetcher, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *ViewsService {
	return &ViewsService{
		client:      client,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// ExtractViews walks a parsed manifest and returns the navigable views in
// manifest order. Only svf/svf2 derivatives are viewer-compatible; within
// them, each 3d or 2d geometry node is a candidate container whose first
// "view" child supplies the guid. Containers lacking a name or a guid are
// dropped. A nil manifest or one without views yields an empty slice.
func ExtractViews(m *aps.Manifest) []catalog.ManifestView {
	views := []catalog.ManifestView{}
	if m == nil {
		return views
	}

	for _, derivative := range m.Derivatives {
		if derivative.OutputType != aps.OutputTypeSVF && derivative.OutputType != aps.OutputTypeSVF2 {
			continue
		}
		for _, node := range derivative.Children {
			if node.Type != aps.NodeTypeGeometry {
				continue
			}
			if node.Role != aps.Role3D && node.Role != aps.Role2D {
				continue
			}

			name := node.Name
			guid := ""
			for _, child := range node.Children {
				if child.Type != aps.NodeTypeView {
					continue
				}
				guid = child.GUID
				// 2D sheets carry their name on the view node.
				if strings.HasPrefix(child.Name, sheetNamePrefix) {
					name = child.Name
				}
				break
			}
			if name == "" || guid == "" {
				continue
			}
			views = append(views, catalog.ManifestView{Name: name, GUID: guid, Role: node.Role})
		}
	}
	return views
}

// GetViews fetches the manifest for a raw URN and extracts its views. A
// design that was never translated (manifest 404) or whose translation has
// not finished yields an empty slice, not an error.
func (s *ViewsService) GetViews(ctx context.Context, token, urn string) ([]catalog.ManifestView, error) {
	marker := s.perfTracker.StartOperation("views:extract")
	defer s.perfTracker.CompleteOperation(marker)

	manifest, err := s.client.GetManifest(ctx, token, urn)
	if err != nil {
		marker.SetError(err)
		return nil, err
	}
	if manifest == nil {
		s.logger.Viewer().Info("Design has no manifest yet", "urn", urn)
		return []catalog.ManifestView{}, nil
	}
	if !manifest.IsComplete() {
		s.logger.Viewer().Info("Translation not complete, no views available",
			"urn", urn,
			"status", manifest.Status,
			"progress", manifest.Progress)
		return []catalog.ManifestView{}, nil
	}

	views := ExtractViews(manifest)
	marker.AddMetadata("viewCount", len(views))
	return views, nil
}

// GetViewOptions maps the extracted views into the label/guid pairs the view
// selection widget consumes, applying the "[3D] " / "[2D] " label convention.
func (s *ViewsService) GetViewOptions(ctx context.Context, token, urn string) ([]catalog.ViewOption, error) {
	views, err := s.GetViews(ctx, token, urn)
	if err != nil {
		return nil, err
	}

	options := make([]catalog.ViewOption, 0, len(views))
	for _, view := range views {
		options = append(options, catalog.ViewOption{Label: view.Label(), GUID: view.GUID})
	}
	return options, nil
}

// GetModelMetadata passes through the model-view metadata listing for a URN.
func (s *ViewsService) GetModelMetadata(ctx context.Context, token, urn string) (*aps.MetadataEnvelope, error) {
	return s.client.GetMetadata(ctx, token, urn)
}
