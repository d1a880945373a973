package websocket

import (
	"encoding/json"
	"sync"

	"github.com/dukatech/netstore-backend/internal/app/model"
	"github.com/dukatech/netstore-backend/pkg/logger"
)

// Client is one live storefront connection. A session can hold several
// clients at once (multiple tabs); all of them receive the same pushes.
type Client struct {
	Hub       *Hub
	Conn      *Conn
	SessionID string
	Send      chan []byte
}

// Hub fans cart state changes out to the connected storefront clients so
// every open view of a session converges on the same cart. It implements
// service.CartEventPublisher.
type Hub struct {
	// SessionID -> connected clients, multi-tab aware
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client
	broadcast  chan *sessionMessage

	mu sync.RWMutex
}

type sessionMessage struct {
	SessionID string
	Message   []byte
}

// CartEvent is the wire shape pushed to clients on every cart change.
type CartEvent struct {
	Event string          `json:"event"`
	State model.CartState `json:"state"`
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string][]*Client),
		register:   make(chan *Client, 256),
		unregister: make(chan *Client, 256),
		broadcast:  make(chan *sessionMessage, 1024),
	}
}

// Run owns the client maps; all registration and fan-out goes through its
// channels. Start it once in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.SessionID] = append(h.clients[client.SessionID], client)
			h.mu.Unlock()
			logger.Info("Storefront client connected", map[string]interface{}{
				"session_id":  client.SessionID,
				"connections": len(h.clients[client.SessionID]),
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if clientList, ok := h.clients[client.SessionID]; ok {
				newList := make([]*Client, 0, len(clientList))
				for _, c := range clientList {
					if c != client {
						newList = append(newList, c)
					}
				}

				if len(newList) == 0 {
					delete(h.clients, client.SessionID)
				} else {
					h.clients[client.SessionID] = newList
				}

				close(client.Send)
			}
			h.mu.Unlock()
			logger.Info("Storefront client disconnected", map[string]interface{}{
				"session_id": client.SessionID,
			})

		case message := <-h.broadcast:
			h.mu.RLock()
			for _, client := range h.clients[message.SessionID] {
				select {
				case client.Send <- message.Message:
				default:
					// Send buffer full, drop the connection asynchronously
					go h.Unregister(client)
					logger.Warn("Client send buffer full, disconnecting", map[string]interface{}{
						"session_id": message.SessionID,
					})
				}
			}
			h.mu.RUnlock()
		}
	}
}

// PublishCartEvent pushes the new cart state to every client of the session.
// Sessions with no connected client are skipped before marshaling. Delivery
// is best effort: a full broadcast queue drops the event, the HTTP response
// already carries the authoritative state.
func (h *Hub) PublishCartEvent(sessionID string, event string, state model.CartState) {
	if !h.IsSessionConnected(sessionID) {
		return
	}

	data, err := json.Marshal(CartEvent{Event: event, State: state})
	if err != nil {
		logger.Error("Failed to marshal cart event", err, map[string]interface{}{
			"session_id": sessionID,
			"event":      event,
		})
		return
	}

	select {
	case h.broadcast <- &sessionMessage{SessionID: sessionID, Message: data}:
	default:
		logger.Warn("Broadcast channel full, cart event dropped", map[string]interface{}{
			"session_id": sessionID,
			"event":      event,
		})
	}
}

// Register queues a client for registration
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister queues a client for removal
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// IsSessionConnected reports whether the session has at least one live client
func (h *Hub) IsSessionConnected(sessionID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[sessionID]
	return ok
}
