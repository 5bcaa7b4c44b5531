package ws

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/gamedock/gamedock/internal/logging"
	"github.com/gamedock/gamedock/internal/monitoring"
	"github.com/gamedock/gamedock/internal/notify"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in dev
	},
}

// Handler streams lifecycle notifications to UI clients.
type Handler struct {
	hub     *notify.Hub
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// NewHandler creates a new WebSocket handler.
func NewHandler(hub *notify.Hub, logger *logging.Logger, metrics *monitoring.Metrics) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handler{hub: hub, logger: logger, metrics: metrics}
}

// HandleConnection handles WebSocket upgrade and streams hub messages
// until the client disconnects.
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	if h.metrics != nil {
		h.metrics.WSConnections.Inc()
		defer h.metrics.WSConnections.Dec()
	}

	messages, cancel := h.hub.Subscribe()
	defer cancel()

	// Send welcome message
	h.send(conn, map[string]interface{}{
		"type":    "system",
		"message": "Connected to GameDock event stream",
	})

	// Reader goroutine: its only jobs are requesting pongs and detecting
	// disconnect. The loop below is the connection's only writer; gorilla
	// connections support exactly one concurrent writer.
	pings := make(chan struct{}, 1)
	disconnected := make(chan struct{})
	go func() {
		defer close(disconnected)
		for {
			var msg map[string]interface{}
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			if t, _ := msg["type"].(string); t == "ping" {
				select {
				case pings <- struct{}{}:
				default: // a pong is already pending
				}
			}
		}
	}()

	for {
		select {
		case msg, ok := <-messages:
			if !ok {
				return
			}
			h.send(conn, map[string]interface{}{
				"type":      "event",
				"event":     msg,
				"timestamp": time.Now().Unix(),
			})
		case <-pings:
			h.send(conn, map[string]interface{}{"type": "pong"})
		case <-disconnected:
			return
		}
	}
}

func (h *Handler) send(conn *websocket.Conn, data interface{}) {
	if err := conn.WriteJSON(data); err != nil {
		h.logger.Debug("websocket write failed", zap.Error(err))
	}
}
