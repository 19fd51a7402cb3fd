package performance

import (
	"fmt"
	"sync"
	"time"
)

// Tracker manages performance markers and surfaces slow-operation alerts
type Tracker struct {
	markers map[string]*Marker // Active and completed markers by unique ID
	alerts  []*Alert           // Recent slow-operation alerts
	config  *TrackerConfig
	mu      sync.RWMutex
	started time.Time
}

// TrackerConfig contains configuration options for the performance tracker
type TrackerConfig struct {
	MaxMarkers        int           `json:"maxMarkers"`        // Maximum number of markers to retain
	MaxAlerts         int           `json:"maxAlerts"`         // Maximum number of alerts to retain
	SlowWalkThreshold time.Duration `json:"slowWalkThreshold"` // Catalog walks slower than this raise an alert
	EnableAlerts      bool          `json:"enableAlerts"`      // Whether to generate alerts
}

// DefaultTrackerConfig returns a sensible default configuration
func DefaultTrackerConfig() *TrackerConfig {
	return &TrackerConfig{
		MaxMarkers:        10000,
		MaxAlerts:         500,
		SlowWalkThreshold: 40 * time.Second,
		EnableAlerts:      true,
	}
}

// Alert records an operation that exceeded its threshold
type Alert struct {
	Operation string        `json:"operation"`
	Duration  time.Duration `json:"duration"`
	Threshold time.Duration `json:"threshold"`
	Timestamp time.Time     `json:"timestamp"`
}

// NewTracker creates a new performance tracker with the given configuration
func NewTracker(config *TrackerConfig) *Tracker {
	if config == nil {
		config = DefaultTrackerConfig()
	}

	return &Tracker{
		markers: make(map[string]*Marker),
		alerts:  make([]*Alert, 0),
		config:  config,
		started: time.Now(),
	}
}

// StartOperation creates and tracks a new performance marker for an operation
func (t *Tracker) StartOperation(operation string) *Marker {
	marker := &Marker{
		Operation: operation,
		StartTime: time.Now(),
		Metadata:  make(map[string]any),
		Success:   true, // Assume success until proven otherwise
	}

	markerID := fmt.Sprintf("%s_%d", operation, time.Now().UnixNano())

	t.mu.Lock()
	if len(t.markers) < t.config.MaxMarkers {
		t.markers[markerID] = marker
	}
	t.mu.Unlock()

	return marker
}

// CompleteOperation manually completes an operation and checks for alerts
func (t *Tracker) CompleteOperation(marker *Marker) {
	if marker == nil || marker.Completed {
		return
	}

	marker.Complete()

	if t.config.EnableAlerts && marker.Duration > t.config.SlowWalkThreshold {
		t.mu.Lock()
		t.alerts = append(t.alerts, &Alert{
			Operation: marker.Operation,
			Duration:  marker.Duration,
			Threshold: t.config.SlowWalkThreshold,
			Timestamp: marker.EndTime,
		})
		if len(t.alerts) > t.config.MaxAlerts {
			t.alerts = t.alerts[len(t.alerts)-t.config.MaxAlerts:]
		}
		t.mu.Unlock()
	}
}

// GetRecentAlerts returns up to limit of the most recent alerts
func (t *Tracker) GetRecentAlerts(limit int) []*Alert {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if limit <= 0 || limit > len(t.alerts) {
		limit = len(t.alerts)
	}
	recent := make([]*Alert, limit)
	copy(recent, t.alerts[len(t.alerts)-limit:])
	return recent
}

// Uptime returns how long the tracker has been running
func (t *Tracker) Uptime() time.Duration {
	return time.Since(t.started)
}
