package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	aps "github.com/buildsight/hubview-go/internal/domain/entities/aps"
	"github.com/buildsight/hubview-go/internal/infrastructure/caching/manager"
	"github.com/buildsight/hubview-go/internal/infrastructure/messaging"
	"github.com/buildsight/hubview-go/internal/infrastructure/observability/logging"
	"github.com/buildsight/hubview-go/internal/infrastructure/observability/performance"
)

func newTestLogger(t *testing.T) *logging.ChanneledLogger {
	t.Helper()
	logger, err := logging.NewChanneledLogger(&logging.LoggerConfig{
		OutputToFile:    false,
		OutputToConsole: false,
		DefaultLevel:    slog.LevelError,
	})
	require.NoError(t, err)
	return logger
}

// fakeAPS is an in-memory hierarchy standing in for the data-management API.
type fakeAPS struct {
	hubs       []aps.Resource
	projects   map[string][]aps.Resource // hubID -> projects
	topFolders map[string][]aps.Resource // projectID -> folders
	contents   map[string][]aps.Resource // folderID -> entries
	versions   map[string][]aps.Resource // itemID -> versions

	failFolders map[string]bool // folderID -> contents listing fails
	failItems   map[string]bool // itemID -> versions listing fails

	calls map[string]int
}

func newFakeAPS() *fakeAPS {
	return &fakeAPS{
		projects:    make(map[string][]aps.Resource),
		topFolders:  make(map[string][]aps.Resource),
		contents:    make(map[string][]aps.Resource),
		versions:    make(map[string][]aps.Resource),
		failFolders: make(map[string]bool),
		failItems:   make(map[string]bool),
		calls:       make(map[string]int),
	}
}

func (f *fakeAPS) totalCalls() int {
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

func (f *fakeAPS) ListHubs(ctx context.Context, token string) (*aps.ResourceList, error) {
	f.calls["hubs"]++
	return &aps.ResourceList{Data: f.hubs}, nil
}

func (f *fakeAPS) ListProjects(ctx context.Context, token, hubID string) (*aps.ResourceList, error) {
	f.calls["projects"]++
	projects, ok := f.projects[hubID]
	if !ok {
		return nil, errors.New("hub not found")
	}
	return &aps.ResourceList{Data: projects}, nil
}

func (f *fakeAPS) ListTopFolders(ctx context.Context, token, hubID, projectID string) (*aps.ResourceList, error) {
	f.calls["topFolders"]++
	return &aps.ResourceList{Data: f.topFolders[projectID]}, nil
}

func (f *fakeAPS) ListFolderContents(ctx context.Context, token, projectID, folderID string) (*aps.ResourceList, error) {
	f.calls["contents"]++
	if f.failFolders[folderID] {
		return nil, errors.New("folder listing failed")
	}
	return &aps.ResourceList{Data: f.contents[folderID]}, nil
}

func (f *fakeAPS) ListItemVersions(ctx context.Context, token, projectID, itemID string) (*aps.ResourceList, error) {
	f.calls["versions"]++
	if f.failItems[itemID] {
		return nil, errors.New("versions listing failed")
	}
	return &aps.ResourceList{Data: f.versions[itemID]}, nil
}

func resource(resType, id, name string) aps.Resource {
	return aps.Resource{Type: resType, ID: id, Attributes: &aps.ResourceAttributes{Name: name}}
}

func item(id, displayName string) aps.Resource {
	return aps.Resource{Type: aps.TypeItems, ID: id, Attributes: &aps.ResourceAttributes{DisplayName: displayName}}
}

func version(urn string) aps.Resource {
	return aps.Resource{Type: aps.TypeVersions, ID: urn}
}

func newCatalogService(t *testing.T, client APSDataClient) *CatalogService {
	t.Helper()
	logger := newTestLogger(t)
	return NewCatalogService(
		client,
		manager.NewManager(),
		messaging.NewProgressBroadcaster(logger),
		logger,
		performance.NewTracker(performance.DefaultTrackerConfig()),
	)
}

// singleHubFixture builds one hub with one project, a top folder holding a
// Revit model and a subfolder with a DWG plus a non-CAD text file.
func singleHubFixture() *fakeAPS {
	f := newFakeAPS()
	f.hubs = []aps.Resource{resource(aps.TypeHubs, "h1", "Main Hub")}
	f.projects["h1"] = []aps.Resource{resource(aps.TypeProjects, "b.p1", "Tower")}
	f.topFolders["b.p1"] = []aps.Resource{resource(aps.TypeFolders, "f.root", "Project Files")}
	f.contents["f.root"] = []aps.Resource{
		item("i.model", "model.RVT"),
		resource(aps.TypeFolders, "f.plans", "Plans"),
	}
	f.contents["f.plans"] = []aps.Resource{
		item("i.plan", "plan.dwg"),
		item("i.notes", "notes.txt"),
	}
	f.versions["i.model"] = []aps.Resource{version("urn:model:v2"), version("urn:model:v1")}
	f.versions["i.plan"] = []aps.Resource{version("urn:plan:v1")}
	f.versions["i.notes"] = []aps.Resource{version("urn:notes:v1")}
	return f
}

func TestBuildCatalogForHubNameEmptySelection(t *testing.T) {
	f := singleHubFixture()
	svc := newCatalogService(t, f)

	snapshot, err := svc.BuildCatalogForHubName(context.Background(), "tok", "")
	require.NoError(t, err)

	require.NotNil(t, snapshot.Catalog, "empty selection must yield an empty catalog, never nil")
	assert.Empty(t, snapshot.Catalog)
	assert.Zero(t, f.totalCalls(), "no API traffic without a hub selection")
}

func TestBuildCatalogForHubNameUnknownHub(t *testing.T) {
	f := singleHubFixture()
	svc := newCatalogService(t, f)

	snapshot, err := svc.BuildCatalogForHubName(context.Background(), "tok", "Ghost Hub")
	require.NoError(t, err)
	require.NotNil(t, snapshot.Catalog)
	assert.Empty(t, snapshot.Catalog)
}

func TestBuildCatalogFlattensAndFilters(t *testing.T) {
	f := singleHubFixture()
	svc := newCatalogService(t, f)

	snapshot, err := svc.BuildCatalogForHubName(context.Background(), "tok", "Main Hub")
	require.NoError(t, err)

	cat := snapshot.Catalog
	require.Len(t, cat, 2)
	assert.Equal(t, "urn:model:v2", cat["model.RVT"].URN, "extension match is case-insensitive")
	assert.Equal(t, "urn:plan:v1", cat["plan.dwg"].URN)
	assert.NotContains(t, cat, "notes.txt", "non-CAD items are skipped")
	assert.Equal(t, 2, snapshot.FileCount)
}

func TestBuildCatalogFolderFailureIsolation(t *testing.T) {
	buildFixture := func() *fakeAPS {
		f := newFakeAPS()
		f.hubs = []aps.Resource{resource(aps.TypeHubs, "h1", "Main Hub")}
		f.projects["h1"] = []aps.Resource{resource(aps.TypeProjects, "b.p1", "Tower")}
		f.topFolders["b.p1"] = []aps.Resource{
			resource(aps.TypeFolders, "f.good", "Good"),
			resource(aps.TypeFolders, "f.bad", "Bad"),
		}
		f.contents["f.good"] = []aps.Resource{item("i.good", "good.ifc")}
		f.contents["f.bad"] = []aps.Resource{item("i.bad", "bad.ipt")}
		f.versions["i.good"] = []aps.Resource{version("urn:good:v1")}
		f.versions["i.bad"] = []aps.Resource{version("urn:bad:v1")}
		return f
	}

	// Walk the full tree, then walk again with one folder failing. The
	// failing subtree must vanish without disturbing its sibling.
	failing := buildFixture()
	failing.failFolders["f.bad"] = true
	snapshot, err := newCatalogService(t, failing).BuildCatalog(context.Background(), "tok", "h1")
	require.NoError(t, err)

	pruned := buildFixture()
	pruned.topFolders["b.p1"] = pruned.topFolders["b.p1"][:1]
	expected, err := newCatalogService(t, pruned).BuildCatalog(context.Background(), "tok", "h1")
	require.NoError(t, err)

	assert.Equal(t, expected.Catalog, snapshot.Catalog)
}

func TestBuildCatalogItemFailureSkipsItem(t *testing.T) {
	f := singleHubFixture()
	f.failItems["i.model"] = true
	svc := newCatalogService(t, f)

	snapshot, err := svc.BuildCatalog(context.Background(), "tok", "h1")
	require.NoError(t, err)
	assert.NotContains(t, snapshot.Catalog, "model.RVT")
	assert.Contains(t, snapshot.Catalog, "plan.dwg")
}

func TestBuildCatalogCollisionLaterWins(t *testing.T) {
	f := newFakeAPS()
	f.hubs = []aps.Resource{resource(aps.TypeHubs, "h1", "Main Hub")}
	f.projects["h1"] = []aps.Resource{resource(aps.TypeProjects, "b.p1", "Tower")}
	f.topFolders["b.p1"] = []aps.Resource{
		resource(aps.TypeFolders, "f.first", "First"),
		resource(aps.TypeFolders, "f.second", "Second"),
	}
	f.contents["f.first"] = []aps.Resource{item("i.a", "shared.rvt")}
	f.contents["f.second"] = []aps.Resource{item("i.b", "shared.rvt")}
	f.versions["i.a"] = []aps.Resource{version("urn:first")}
	f.versions["i.b"] = []aps.Resource{version("urn:second")}

	snapshot, err := newCatalogService(t, f).BuildCatalog(context.Background(), "tok", "h1")
	require.NoError(t, err)

	require.Len(t, snapshot.Catalog, 1)
	assert.Equal(t, "urn:second", snapshot.Catalog["shared.rvt"].URN, "later-visited item overwrites on collision")
}

func TestBuildCatalogMemoizesPerParams(t *testing.T) {
	f := singleHubFixture()
	svc := newCatalogService(t, f)

	first, err := svc.BuildCatalog(context.Background(), "tok", "h1")
	require.NoError(t, err)
	callsAfterFirst := f.totalCalls()

	second, err := svc.BuildCatalog(context.Background(), "tok", "h1")
	require.NoError(t, err)

	assert.Equal(t, callsAfterFirst, f.totalCalls(), "memoized walk must not re-issue API calls")
	assert.Equal(t, first.Catalog, second.Catalog)

	// A different hub selection is a different memoization key.
	_, err = svc.BuildCatalog(context.Background(), "tok", "")
	require.NoError(t, err)
	assert.Greater(t, f.totalCalls(), callsAfterFirst)
}

func TestBuildCatalogAllHubs(t *testing.T) {
	f := singleHubFixture()
	f.hubs = append(f.hubs, resource(aps.TypeHubs, "h2", "Second Hub"))
	f.projects["h2"] = []aps.Resource{resource(aps.TypeProjects, "b.p2", "Bridge")}
	f.topFolders["b.p2"] = []aps.Resource{resource(aps.TypeFolders, "f.other", "Files")}
	f.contents["f.other"] = []aps.Resource{item("i.step", "part.step")}
	f.versions["i.step"] = []aps.Resource{version("urn:part:v1")}

	snapshot, err := newCatalogService(t, f).BuildCatalog(context.Background(), "tok", "")
	require.NoError(t, err)

	assert.Contains(t, snapshot.Catalog, "model.RVT")
	assert.Contains(t, snapshot.Catalog, "part.step")
}

func TestBuildCatalogProjectListingFailureIsFatal(t *testing.T) {
	f := singleHubFixture()

	_, err := newCatalogService(t, f).BuildCatalog(context.Background(), "tok", "h-unknown")
	require.Error(t, err)
}

func TestListHubNames(t *testing.T) {
	f := singleHubFixture()
	f.hubs = append(f.hubs, aps.Resource{Type: aps.TypeHubs, ID: "h-anon"}) // no name attribute

	names, err := newCatalogService(t, f).ListHubNames(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, []string{"Main Hub"}, names, "hubs without a name are skipped")
}

func TestResolveHubID(t *testing.T) {
	f := singleHubFixture()
	svc := newCatalogService(t, f)

	id, err := svc.ResolveHubID(context.Background(), "tok", "Main Hub")
	require.NoError(t, err)
	assert.Equal(t, "h1", id)

	id, err = svc.ResolveHubID(context.Background(), "tok", "Nope")
	require.NoError(t, err)
	assert.Empty(t, id)
}
