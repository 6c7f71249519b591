package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/logbook/internal/interfaces"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

const surfaceWriteTimeout = 5 * time.Second

// WebSocketHandler attaches foreground surfaces to the presentation
// bridge. Each connected client becomes a surface that receives
// reminder, test, and show/hide events as JSON frames.
type WebSocketHandler struct {
	bridge           interfaces.PresentationService
	logger           arbor.ILogger
	serverInstanceID string // Clients use this to detect server restart
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(bridge interfaces.PresentationService, logger arbor.ILogger) *WebSocketHandler {
	return &WebSocketHandler{
		bridge:           bridge,
		logger:           logger,
		serverInstanceID: uuid.New().String(),
	}
}

// HandleWebSocket upgrades the connection and registers it as a
// presentation surface until the client disconnects.
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	surface := &wsSurface{
		id:   uuid.New().String(),
		conn: conn,
	}

	hello := map[string]string{
		"type":               "hello",
		"surface_id":         surface.id,
		"server_instance_id": h.serverInstanceID,
	}
	if err := surface.writeJSON(hello); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to greet surface")
		conn.Close()
		return
	}

	h.bridge.AttachSurface(surface)
	defer func() {
		h.bridge.DetachSurface(surface)
		conn.Close()
	}()

	// Events flow server to client only; the read loop exists to notice
	// the close handshake.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// wsSurface adapts a WebSocket connection to the Surface interface.
type wsSurface struct {
	id      string
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (s *wsSurface) ID() string {
	return s.id
}

func (s *wsSurface) Deliver(event interfaces.Event) error {
	return s.writeJSON(event)
}

func (s *wsSurface) writeJSON(v interface{}) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.conn.SetWriteDeadline(time.Now().Add(surfaceWriteTimeout))
	return s.conn.WriteJSON(v)
}
