// Package messaging provides the catalog-walk progress broadcaster.
package messaging

import (
	"sync"
	"time"

	"github.com/buildsight/hubview-go/internal/infrastructure/observability/logging"
)

// ProgressEvent is one step of a running hierarchy walk.
type ProgressEvent struct {
	Stage     string    `json:"stage"` // "hub", "project", "folder", "file", "done"
	Name      string    `json:"name"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ProgressBroadcaster fans walk progress out to connected stream clients.
// Broadcasting never blocks the walk: slow clients drop events.
type ProgressBroadcaster struct {
	clients map[chan ProgressEvent]struct{}
	mu      sync.Mutex
	logger  *logging.ChanneledLogger
}

// NewProgressBroadcaster creates a progress broadcaster.
func NewProgressBroadcaster(logger *logging.ChanneledLogger) *ProgressBroadcaster {
	return &ProgressBroadcaster{
		clients: make(map[chan ProgressEvent]struct{}),
		logger:  logger,
	}
}

// AddClient registers a new stream client and returns its event channel.
func (b *ProgressBroadcaster) AddClient() chan ProgressEvent {
	ch := make(chan ProgressEvent, 64)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.clients[ch] = struct{}{}
	b.logger.Catalog().Debug("Progress stream client connected", "clients", len(b.clients))
	return ch
}

// RemoveClient unregisters a stream client and closes its channel.
func (b *ProgressBroadcaster) RemoveClient(ch chan ProgressEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.clients[ch]; exists {
		delete(b.clients, ch)
		close(ch)
	}
	b.logger.Catalog().Debug("Progress stream client disconnected", "clients", len(b.clients))
}

// Broadcast sends an event to every connected client without blocking.
func (b *ProgressBroadcaster) Broadcast(stage, name, detail string) {
	event := ProgressEvent{
		Stage:     stage,
		Name:      name,
		Detail:    detail,
		Timestamp: time.Now().UTC(),
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.clients {
		select {
		case ch <- event:
		default:
			// client is not keeping up; drop the event
		}
	}
}
