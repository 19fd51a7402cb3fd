package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildsight/hubview-go/internal/application/services"
	entities "github.com/buildsight/hubview-go/internal/domain/entities/aps"
	"github.com/buildsight/hubview-go/internal/infrastructure/aps"
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

// emptyAPS is a data client with a hub that contains nothing viewable.
type emptyAPS struct{ hubs []entities.Resource }

func (e *emptyAPS) ListHubs(ctx context.Context, token string) (*entities.ResourceList, error) {
	return &entities.ResourceList{Data: e.hubs}, nil
}

func (e *emptyAPS) ListProjects(ctx context.Context, token, hubID string) (*entities.ResourceList, error) {
	return &entities.ResourceList{}, nil
}

func (e *emptyAPS) ListTopFolders(ctx context.Context, token, hubID, projectID string) (*entities.ResourceList, error) {
	return &entities.ResourceList{}, nil
}

func (e *emptyAPS) ListFolderContents(ctx context.Context, token, projectID, folderID string) (*entities.ResourceList, error) {
	return &entities.ResourceList{}, nil
}

func (e *emptyAPS) ListItemVersions(ctx context.Context, token, projectID, itemID string) (*entities.ResourceList, error) {
	return &entities.ResourceList{}, nil
}

// noManifests reports every design as untranslated.
type noManifests struct{}

func (noManifests) GetManifest(ctx context.Context, token, urn string) (*entities.Manifest, error) {
	return nil, nil
}

func (noManifests) GetMetadata(ctx context.Context, token, urn string) (*entities.MetadataEnvelope, error) {
	return &entities.MetadataEnvelope{}, nil
}

func pickerRouter(t *testing.T, client services.APSDataClient) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := newTestLogger(t)
	tracker := performance.NewTracker(performance.DefaultTrackerConfig())
	tokens := aps.NewStaticTokenSource("tok")
	catalogService := services.NewCatalogService(client, manager.NewManager(), messaging.NewProgressBroadcaster(logger), logger, tracker)
	viewsService := services.NewViewsService(noManifests{}, logger, tracker)

	hubHandlers := NewHubHandlers(catalogService, tokens, logger, tracker)
	catalogHandlers := NewCatalogHandlers(catalogService, tokens, logger, tracker)
	viewsHandlers := NewViewsHandlers(viewsService, tokens, logger, tracker)

	r := gin.New()
	r.GET("/api/v1/hubs", hubHandlers.GetHubs)
	r.GET("/api/v1/catalog", catalogHandlers.GetCatalog)
	r.GET("/api/v1/views", viewsHandlers.GetViews)
	return r
}

func getJSON(t *testing.T, r *gin.Engine, path string) (int, map[string]json.RawMessage) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)

	body := make(map[string]json.RawMessage)
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	}
	return w.Code, body
}

func TestGetHubsPlaceholderWhenEmpty(t *testing.T) {
	r := pickerRouter(t, &emptyAPS{})

	code, body := getJSON(t, r, "/api/v1/hubs")
	require.Equal(t, http.StatusOK, code)

	var hubs []string
	require.NoError(t, json.Unmarshal(body["hubs"], &hubs))
	assert.Equal(t, []string{PlaceholderNoHubs}, hubs)
}

func TestGetCatalogWithoutHubSelection(t *testing.T) {
	r := pickerRouter(t, &emptyAPS{})

	code, body := getJSON(t, r, "/api/v1/catalog")
	require.Equal(t, http.StatusOK, code)

	var files []string
	require.NoError(t, json.Unmarshal(body["files"], &files))
	assert.Equal(t, []string{PlaceholderSelectHub}, files)

	// The catalog itself is empty but present, never null.
	assert.Equal(t, "{}", string(body["catalog"]))
}

func TestGetCatalogPlaceholderWhenHubIsEmpty(t *testing.T) {
	hub := entities.Resource{Type: entities.TypeHubs, ID: "h1", Attributes: &entities.ResourceAttributes{Name: "Main Hub"}}
	r := pickerRouter(t, &emptyAPS{hubs: []entities.Resource{hub}})

	code, body := getJSON(t, r, "/api/v1/catalog?hub=Main%20Hub")
	require.Equal(t, http.StatusOK, code)

	var files []string
	require.NoError(t, json.Unmarshal(body["files"], &files))
	assert.Equal(t, []string{PlaceholderNoFiles}, files)
}

func TestGetViewsRequiresURN(t *testing.T) {
	r := pickerRouter(t, &emptyAPS{})

	code, _ := getJSON(t, r, "/api/v1/views")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestGetViewsPlaceholderWhenUntranslated(t *testing.T) {
	r := pickerRouter(t, &emptyAPS{})

	code, body := getJSON(t, r, "/api/v1/views?urn=urn%3Afile")
	require.Equal(t, http.StatusOK, code)

	var views []struct {
		Label string `json:"label"`
		GUID  string `json:"guid"`
	}
	require.NoError(t, json.Unmarshal(body["views"], &views))
	require.Len(t, views, 1)
	assert.Equal(t, PlaceholderNoViews, views[0].Label)
	assert.Empty(t, views[0].GUID)
}
