package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	aps "github.com/buildsight/hubview-go/internal/domain/entities/aps"
	"github.com/buildsight/hubview-go/internal/domain/entities/catalog"
	"github.com/buildsight/hubview-go/internal/infrastructure/observability/performance"
)

// fakeManifests serves canned manifests keyed by raw URN.
type fakeManifests struct {
	manifests map[string]*aps.Manifest
	metadata  map[string]*aps.MetadataEnvelope
}

func (f *fakeManifests) GetManifest(ctx context.Context, token, urn string) (*aps.Manifest, error) {
	return f.manifests[urn], nil
}

func (f *fakeManifests) GetMetadata(ctx context.Context, token, urn string) (*aps.MetadataEnvelope, error) {
	return f.metadata[urn], nil
}

func newViewsService(t *testing.T, fetcher ManifestFetcher) *ViewsService {
	t.Helper()
	return NewViewsService(fetcher, newTestLogger(t), performance.NewTracker(performance.DefaultTrackerConfig()))
}

// translatedManifest holds one svf2 derivative with a 3D model scene and a 2D
// sheet whose name lives on the view node.
func translatedManifest() *aps.Manifest {
	return &aps.Manifest{
		Type:   "manifest",
		URN:    "dXJuOmZpbGU",
		Status: aps.StatusSuccess,
		Derivatives: []aps.Derivative{
			{
				OutputType: aps.OutputTypeSVF2,
				Status:     aps.StatusSuccess,
				Children: []aps.DerivativeNode{
					{
						Type: aps.NodeTypeGeometry,
						Role: aps.Role3D,
						Name: "Model",
						Children: []aps.DerivativeNode{
							{Type: aps.NodeTypeView, Name: "Model", GUID: "G1"},
						},
					},
					{
						Type: aps.NodeTypeGeometry,
						Role: aps.Role2D,
						Name: "A101",
						Children: []aps.DerivativeNode{
							{Type: aps.NodeTypeView, Name: "Sheet: A101", GUID: "G2"},
						},
					},
				},
			},
		},
	}
}

func TestExtractViews(t *testing.T) {
	views := ExtractViews(translatedManifest())

	require.Len(t, views, 2)
	assert.Equal(t, catalog.ManifestView{Name: "Model", GUID: "G1", Role: aps.Role3D}, views[0])
	assert.Equal(t, catalog.ManifestView{Name: "Sheet: A101", GUID: "G2", Role: aps.Role2D}, views[1])
}

func TestExtractViewsSkipsNonViewerDerivatives(t *testing.T) {
	m := translatedManifest()
	m.Derivatives[0].OutputType = "thumbnail"

	assert.Empty(t, ExtractViews(m))
}

func TestExtractViewsDropsContainersWithoutViewChild(t *testing.T) {
	m := translatedManifest()
	m.Derivatives[0].Children[0].Children = nil // 3D container loses its view

	views := ExtractViews(m)
	require.Len(t, views, 1)
	assert.Equal(t, "G2", views[0].GUID)
}

func TestExtractViewsNilManifest(t *testing.T) {
	views := ExtractViews(nil)
	require.NotNil(t, views)
	assert.Empty(t, views)
}

func TestGetViewsUntranslatedDesign(t *testing.T) {
	svc := newViewsService(t, &fakeManifests{manifests: map[string]*aps.Manifest{}})

	views, err := svc.GetViews(context.Background(), "tok", "urn:missing")
	require.NoError(t, err)
	require.NotNil(t, views)
	assert.Empty(t, views)
}

func TestGetViewsTranslationInProgress(t *testing.T) {
	m := translatedManifest()
	m.Status = "inprogress"
	m.Progress = "42% complete"
	svc := newViewsService(t, &fakeManifests{manifests: map[string]*aps.Manifest{"urn:file": m}})

	views, err := svc.GetViews(context.Background(), "tok", "urn:file")
	require.NoError(t, err)
	assert.Empty(t, views, "incomplete translations expose no views")
}

func TestGetViewOptionsLabels(t *testing.T) {
	svc := newViewsService(t, &fakeManifests{manifests: map[string]*aps.Manifest{"urn:file": translatedManifest()}})

	options, err := svc.GetViewOptions(context.Background(), "tok", "urn:file")
	require.NoError(t, err)

	require.Len(t, options, 2)
	assert.Equal(t, catalog.ViewOption{Label: "[3D] Model", GUID: "G1"}, options[0])
	assert.Equal(t, catalog.ViewOption{Label: "[2D] Sheet: A101", GUID: "G2"}, options[1])
}
