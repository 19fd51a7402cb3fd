// Package routes provides HTTP route configuration for the presentation layer.
package routes

import (
	"net/http"

	"github.com/buildsight/hubview-go/internal/application/container"
	"github.com/buildsight/hubview-go/internal/presentation/http/handlers"
	"github.com/buildsight/hubview-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all HTTP routes and middleware with dependency injection.
func SetupRoutes(container *container.Container) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestIDMiddleware())

	// Initialize handlers
	hubHandlers := handlers.NewHubHandlers(container.CatalogService, container.TokenSource, container.Logger, container.PerfTracker)
	catalogHandlers := handlers.NewCatalogHandlers(container.CatalogService, container.TokenSource, container.Logger, container.PerfTracker)
	viewsHandlers := handlers.NewViewsHandlers(container.ViewsService, container.TokenSource, container.Logger, container.PerfTracker)
	viewerHandlers := handlers.NewViewerHandlers(container.ViewerService, container.TokenSource, container.Logger, container.PerfTracker)
	thumbnailHandlers := handlers.NewThumbnailHandlers(container.ThumbnailService, container.TokenSource, container.Logger, container.PerfTracker)
	authHandlers := handlers.NewAuthHandlers(container.AuthService, container.Logger, container.PerfTracker)
	adminHandlers := handlers.NewAdminHandlers(container.CacheManager, container.Logger, container.PerfTracker)
	progressHandlers := handlers.NewProgressHandlers(container.Broadcaster, container.Logger)

	// Picker UI and health check
	r.GET("/", viewerHandlers.GetIndex)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		// Catalog pipeline
		api.GET("/hubs", hubHandlers.GetHubs)
		api.GET("/catalog", catalogHandlers.GetCatalog)
		api.GET("/catalog/progress", progressHandlers.StreamProgress)

		// Viewer pipeline
		api.GET("/views", viewsHandlers.GetViews)
		api.GET("/metadata", viewsHandlers.GetMetadata)
		api.GET("/viewer", viewerHandlers.GetViewer)
		api.GET("/thumbnail", thumbnailHandlers.GetThumbnail)

		// Admin authentication
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandlers.PostLogin)
			auth.GET("/status", authHandlers.GetAuthStatus)
		}

		// Cache management, admin session required
		admin := api.Group("/admin")
		admin.Use(authHandlers.AuthMiddleware())
		{
			admin.GET("/cache/status", adminHandlers.GetCacheStatus)
			admin.POST("/cache/invalidate", adminHandlers.PostCacheInvalidate)
		}
	}

	return r
}
