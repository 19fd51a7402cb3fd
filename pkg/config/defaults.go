// Package config provides centralized default values for hubview
package config

import (
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

var envLoaded sync.Once

func loadEnvFile() {
	envLoaded.Do(func() {
		if err := godotenv.Load(); err != nil {
			return
		}
		log.Println("Loading configuration overrides from .env file...")
	})
}

func getEnvInt(key string, defaultValue int) int {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.Atoi(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%d (default: %d)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvString(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		if val != defaultValue {
			log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
		}
		return val
	}
	return defaultValue
}

// getEnvSecret reads like getEnvString but never logs the value.
func getEnvSecret(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := time.ParseDuration(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

var (
	// Server Configuration
	Port               string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration

	// APS Configuration
	APSBaseURL      string
	APSClientID     string
	APSClientSecret string
	APSAccessToken  string
	APSTokenScopes  string
	APSHTTPTimeout  time.Duration

	// Catalog / Cache Configuration
	CatalogSessionTTL    time.Duration
	CacheCleanupInterval time.Duration
	SlowWalkThreshold    time.Duration

	// Thumbnail Configuration
	ThumbnailMaxWidth    int
	ThumbnailWebPQuality int

	// Admin auth
	JWTSecret          string
	AdminPasswordHash  string
	SessionTokenExpiry time.Duration
)

func init() {
	loadEnvFile()

	// Server Configuration
	Port = getEnvString("PORT", "8080")
	ServerReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second)
	ServerWriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", 60*time.Second)
	ServerIdleTimeout = getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second)

	// APS Configuration
	APSBaseURL = getEnvString("APS_BASE_URL", "https://developer.api.autodesk.com")
	APSClientID = getEnvSecret("APS_CLIENT_ID", "")
	APSClientSecret = getEnvSecret("APS_CLIENT_SECRET", "")
	APSAccessToken = getEnvSecret("APS_ACCESS_TOKEN", "")
	APSTokenScopes = getEnvString("APS_TOKEN_SCOPES", "data:read viewables:read")
	APSHTTPTimeout = getEnvDuration("APS_HTTP_TIMEOUT", 30*time.Second)

	// Catalog / Cache Configuration
	CatalogSessionTTL = getEnvDuration("CATALOG_SESSION_TTL", 30*time.Minute)
	CacheCleanupInterval = getEnvDuration("CACHE_CLEANUP_INTERVAL", 5*time.Minute)
	SlowWalkThreshold = getEnvDuration("SLOW_WALK_THRESHOLD", 40*time.Second)

	// Thumbnail Configuration
	ThumbnailMaxWidth = getEnvInt("THUMBNAIL_MAX_WIDTH", 400)
	ThumbnailWebPQuality = getEnvInt("THUMBNAIL_WEBP_QUALITY", 80)

	// Admin auth
	JWTSecret = getEnvSecret("JWT_SECRET", "")
	AdminPasswordHash = getEnvSecret("ADMIN_PASSWORD_HASH", "")
	SessionTokenExpiry = getEnvDuration("SESSION_TOKEN_EXPIRY", 24*time.Hour)
}
