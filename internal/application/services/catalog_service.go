// Package services contains the application services that sit between the
// HTTP handlers and the APS infrastructure.
package services

import (
	"context"
	"fmt"
	"time"

	aps "github.com/buildsight/hubview-go/internal/domain/entities/aps"
	"github.com/buildsight/hubview-go/internal/domain/entities/catalog"
	"github.com/buildsight/hubview-go/internal/infrastructure/caching/manager"
	cachetypes "github.com/buildsight/hubview-go/internal/infrastructure/caching/types"
	"github.com/buildsight/hubview-go/internal/infrastructure/messaging"
	"github.com/buildsight/hubview-go/internal/infrastructure/observability/logging"
	"github.com/buildsight/hubview-go/internal/infrastructure/observability/performance"
)

// APSDataClient is the slice of the APS client the hierarchy walker consumes.
type APSDataClient interface {
	ListHubs(ctx context.Context, token string) (*aps.ResourceList, error)
	ListProjects(ctx context.Context, token, hubID string) (*aps.ResourceList, error)
	ListTopFolders(ctx context.Context, token, hubID, projectID string) (*aps.ResourceList, error)
	ListFolderContents(ctx context.Context, token, projectID, folderID string) (*aps.ResourceList, error)
	ListItemVersions(ctx context.Context, token, projectID, itemID string) (*aps.ResourceList, error)
}

// CatalogService walks the hub -> project -> folder -> item hierarchy and
// flattens it into a catalog of viewable CAD files keyed by display name.
// Walks are memoized per (token, hubID) for the lifetime of one session.
type CatalogService struct {
	client      APSDataClient
	cache       *manager.Manager
	broadcaster *messaging.ProgressBroadcaster
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// hierarchyWalk carries the counters of one catalog build.
type hierarchyWalk struct {
	token    string
	apiCalls int
}

// NewCatalogService creates the catalog service.
func NewCatalogService(client APSDataClient, cache *manager.Manager, broadcaster *messaging.ProgressBroadcaster, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *CatalogService {
	return &CatalogService{
		client:      client,
		cache:       cache,
		broadcaster: broadcaster,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// ListHubNames returns the names of every hub the token can see, for the hub
// selection widget. Hubs without a name attribute are skipped.
func (s *CatalogService) ListHubNames(ctx context.Context, token string) ([]string, error) {
	hubs, err := s.client.ListHubs(ctx, token)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(hubs.Data))
	for _, hub := range hubs.Data {
		name, ok := hub.Name()
		if !ok {
			s.logger.Catalog().Warn("Skipping hub without name attribute", "hubId", hub.ID)
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

// ResolveHubID maps a hub display name back to its ID. Returns "" when no
// visible hub carries that name.
func (s *CatalogService) ResolveHubID(ctx context.Context, token, hubName string) (string, error) {
	hubs, err := s.client.ListHubs(ctx, token)
	if err != nil {
		return "", err
	}
	for _, hub := range hubs.Data {
		if name, ok := hub.Name(); ok && name == hubName {
			return hub.ID, nil
		}
	}
	return "", nil
}

// BuildCatalogForHubName builds the catalog for a hub selected by display
// name. An empty or unknown name yields an empty catalog, never an error;
// the selection widget degrades to a placeholder instead.
func (s *CatalogService) BuildCatalogForHubName(ctx context.Context, token, hubName string) (*cachetypes.CatalogSnapshot, error) {
	if hubName == "" {
		return emptySnapshot(""), nil
	}

	hubID, err := s.ResolveHubID(ctx, token, hubName)
	if err != nil {
		return nil, err
	}
	if hubID == "" {
		s.logger.Catalog().Warn("Hub name did not resolve to a visible hub", "hubName", hubName)
		return emptySnapshot(""), nil
	}
	return s.BuildCatalog(ctx, token, hubID)
}

// BuildCatalog walks the hierarchy under hubID and returns the flattened
// catalog. An empty hubID means "every hub visible to this token." Repeated
// calls with the same (token, hubID) return the memoized snapshot without
// touching the API.
func (s *CatalogService) BuildCatalog(ctx context.Context, token, hubID string) (*cachetypes.CatalogSnapshot, error) {
	marker := s.perfTracker.StartOperation("catalog:build")
	defer s.perfTracker.CompleteOperation(marker)

	key := manager.CatalogKey(token, hubID)
	start := time.Now()

	if snapshot, found := s.cache.GetCatalog(key); found {
		marker.AddCacheHit()
		s.logger.LogCacheOperation("catalog_build", key, true, time.Since(start))
		return snapshot, nil
	}
	marker.AddCacheMiss()

	walk := &hierarchyWalk{token: token}
	cat := catalog.New()

	if hubID == "" {
		hubs, err := s.client.ListHubs(ctx, token)
		if err != nil {
			marker.SetError(err)
			return nil, fmt.Errorf("failed to list hubs: %w", err)
		}
		walk.apiCalls++
		for _, hub := range hubs.Data {
			partial, err := s.walkHub(ctx, walk, hub)
			if err != nil {
				marker.SetError(err)
				return nil, err
			}
			cat.Merge(partial)
		}
	} else {
		partial, err := s.walkHub(ctx, walk, aps.Resource{Type: aps.TypeHubs, ID: hubID})
		if err != nil {
			marker.SetError(err)
			return nil, err
		}
		cat.Merge(partial)
	}

	snapshot := &cachetypes.CatalogSnapshot{
		Catalog:      cat,
		HubID:        hubID,
		BuiltAt:      time.Now().UTC(),
		LastAccessed: time.Now().UTC(),
		WalkDuration: time.Since(start),
		APICalls:     walk.apiCalls,
		FileCount:    len(cat),
	}
	s.cache.SetCatalog(key, snapshot)
	s.broadcaster.Broadcast("done", hubID, fmt.Sprintf("%d viewable files", len(cat)))

	marker.AddMetadata("hubId", hubID)
	marker.AddMetadata("fileCount", len(cat))
	marker.AddMetadata("apiCalls", walk.apiCalls)
	s.logger.Catalog().Info("Catalog walk complete",
		"hubId", hubID,
		"files", len(cat),
		"apiCalls", walk.apiCalls,
		"duration", snapshot.WalkDuration)
	return snapshot, nil
}

// walkHub walks every project of one hub. A project or top-folder listing
// failure has no enclosing recovery boundary and aborts the whole build.
func (s *CatalogService) walkHub(ctx context.Context, walk *hierarchyWalk, hub aps.Resource) (catalog.Catalog, error) {
	hubName, _ := hub.Name()
	s.broadcaster.Broadcast("hub", hubName, hub.ID)

	projects, err := s.client.ListProjects(ctx, walk.token, hub.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects for hub %s: %w", hub.ID, err)
	}
	walk.apiCalls++

	cat := catalog.New()
	for _, project := range projects.Data {
		projectName, _ := project.Name()
		s.broadcaster.Broadcast("project", projectName, project.ID)

		topFolders, err := s.client.ListTopFolders(ctx, walk.token, hub.ID, project.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list top folders for project %s: %w", project.ID, err)
		}
		walk.apiCalls++

		for _, folder := range topFolders.Data {
			cat.Merge(s.walkFolder(ctx, walk, project.ID, folder))
		}
	}
	return cat, nil
}

// walkFolder recursively flattens one folder subtree. A listing failure is
// isolated to this subtree: the partial catalog accumulated so far is
// returned and siblings keep walking.
func (s *CatalogService) walkFolder(ctx context.Context, walk *hierarchyWalk, projectID string, folder aps.Resource) catalog.Catalog {
	cat := catalog.New()

	folderName, _ := folder.Name()
	s.broadcaster.Broadcast("folder", folderName, folder.ID)

	contents, err := s.client.ListFolderContents(ctx, walk.token, projectID, folder.ID)
	if err != nil {
		s.logger.LogError(logging.ChannelCatalog, "list_folder_contents", err, map[string]any{
			"projectId": projectID,
			"folderId":  folder.ID,
		})
		return cat
	}
	walk.apiCalls++

	for _, entry := range contents.Data {
		switch entry.Type {
		case aps.TypeFolders:
			cat.Merge(s.walkFolder(ctx, walk, projectID, entry))
		case aps.TypeItems:
			name, item, ok := s.resolveItem(ctx, walk, projectID, entry)
			if ok {
				cat[name] = item
				s.broadcaster.Broadcast("file", name, item.URN)
			}
		}
	}
	return cat
}

// resolveItem turns one item record into a catalog entry. Items without a
// display name, without a supported CAD extension, or without any version are
// skipped; a versions-listing failure is caught per item and skipped too.
func (s *CatalogService) resolveItem(ctx context.Context, walk *hierarchyWalk, projectID string, item aps.Resource) (string, catalog.Entry, bool) {
	displayName, ok := item.DisplayName()
	if !ok {
		s.logger.Catalog().Debug("Skipping item without displayName attribute", "itemId", item.ID)
		return "", catalog.Entry{}, false
	}
	if !catalog.IsSupportedCADFile(displayName) {
		return "", catalog.Entry{}, false
	}

	versions, err := s.client.ListItemVersions(ctx, walk.token, projectID, item.ID)
	if err != nil {
		s.logger.LogError(logging.ChannelCatalog, "list_item_versions", err, map[string]any{
			"projectId": projectID,
			"itemId":    item.ID,
		})
		return "", catalog.Entry{}, false
	}
	walk.apiCalls++

	urn, ok := LatestVersionURN(versions)
	if !ok {
		s.logger.Catalog().Debug("Skipping item without versions", "itemId", item.ID, "displayName", displayName)
		return "", catalog.Entry{}, false
	}
	return displayName, catalog.Entry{URN: urn}, true
}

// emptySnapshot is the degenerate snapshot for an absent hub selection. The
// catalog is empty but never nil, so callers never branch on missing vs empty.
func emptySnapshot(hubID string) *cachetypes.CatalogSnapshot {
	return &cachetypes.CatalogSnapshot{
		Catalog:      catalog.New(),
		HubID:        hubID,
		BuiltAt:      time.Now().UTC(),
		LastAccessed: time.Now().UTC(),
	}
}
