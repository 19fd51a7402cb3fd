package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/buildsight/hubview-go/internal/infrastructure/messaging"
	"github.com/buildsight/hubview-go/internal/infrastructure/observability/logging"
)

// ProgressHandlers streams catalog walk progress over a websocket
type ProgressHandlers struct {
	broadcaster *messaging.ProgressBroadcaster
	logger      *logging.ChanneledLogger
	upgrader    websocket.Upgrader
}

// NewProgressHandlers creates progress handlers with injected dependencies
func NewProgressHandlers(broadcaster *messaging.ProgressBroadcaster, logger *logging.ChanneledLogger) *ProgressHandlers {
	return &ProgressHandlers{
		broadcaster: broadcaster,
		logger:      logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The picker page is same-origin; CORS already guards the API.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// StreamProgress upgrades the connection and relays walk progress events
// until the client disconnects.
func (h *ProgressHandlers) StreamProgress(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.LogError(logging.ChannelCatalog, "progress_ws_upgrade", err, nil)
		return
	}
	defer conn.Close()

	events := h.broadcaster.AddClient()
	defer h.broadcaster.RemoveClient(events)

	// Drain reads so close frames are processed; the stream is one-way.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		}
	}
}
