// Package container provides dependency injection for all singleton services
package container

import (
	"github.com/buildsight/hubview-go/internal/application/services"
	"github.com/buildsight/hubview-go/internal/infrastructure/aps"
	"github.com/buildsight/hubview-go/internal/infrastructure/caching/manager"
	"github.com/buildsight/hubview-go/internal/infrastructure/media"
	"github.com/buildsight/hubview-go/internal/infrastructure/messaging"
	"github.com/buildsight/hubview-go/internal/infrastructure/observability/logging"
	"github.com/buildsight/hubview-go/internal/infrastructure/observability/performance"
	"github.com/buildsight/hubview-go/pkg/config"
)

// Container holds all singleton services and infrastructure dependencies
type Container struct {
	// Application services (stateless singletons)
	CatalogService   *services.CatalogService
	ViewsService     *services.ViewsService
	ViewerService    *services.ViewerService
	ThumbnailService *services.ThumbnailService
	AuthService      *services.AuthService

	// Infrastructure dependencies
	APSClient    *aps.Client
	TokenSource  aps.TokenSource
	CacheManager *manager.Manager
	Broadcaster  *messaging.ProgressBroadcaster
	Logger       *logging.ChanneledLogger
	PerfTracker  *performance.Tracker
}

// NewContainer creates and wires all singleton services
func NewContainer() (*Container, error) {
	logger, err := logging.NewChanneledLogger(logging.DefaultLoggerConfig())
	if err != nil {
		return nil, err
	}

	trackerConfig := performance.DefaultTrackerConfig()
	trackerConfig.SlowWalkThreshold = config.SlowWalkThreshold
	perfTracker := performance.NewTracker(trackerConfig)

	cacheManager := manager.NewManager()
	broadcaster := messaging.NewProgressBroadcaster(logger)
	apsClient := aps.NewClient(config.APSBaseURL, config.APSHTTPTimeout, logger)
	tokenSource := newTokenSource(logger)
	thumbnailProcessor := media.NewThumbnailProcessor(config.ThumbnailMaxWidth, config.ThumbnailWebPQuality)

	return &Container{
		CatalogService:   services.NewCatalogService(apsClient, cacheManager, broadcaster, logger, perfTracker),
		ViewsService:     services.NewViewsService(apsClient, logger, perfTracker),
		ViewerService:    services.NewViewerService(logger),
		ThumbnailService: services.NewThumbnailService(apsClient, thumbnailProcessor, logger, perfTracker),
		AuthService:      services.NewAuthService(logger),

		APSClient:    apsClient,
		TokenSource:  tokenSource,
		CacheManager: cacheManager,
		Broadcaster:  broadcaster,
		Logger:       logger,
		PerfTracker:  perfTracker,
	}, nil
}

// newTokenSource prefers an externally provisioned token and falls back to
// the two-legged client-credentials grant.
func newTokenSource(logger *logging.ChanneledLogger) aps.TokenSource {
	if config.APSAccessToken != "" {
		logger.Auth().Info("Using externally provisioned APS access token")
		return aps.NewStaticTokenSource(config.APSAccessToken)
	}
	return aps.NewClientCredentialsTokenSource(
		config.APSBaseURL,
		config.APSClientID,
		config.APSClientSecret,
		config.APSTokenScopes,
		config.APSHTTPTimeout,
		logger,
	)
}
