// internal/stubapi/ws.go

package stubapi

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Dev-only server, any origin is fine.
		return true
	},
}

const EventNotification = "notification"

// Event is one frame pushed to a connected feed.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type client struct {
	conn   *websocket.Conn
	send   chan []byte
	userID string
}

// Hub tracks connected feeds per user and fans events out to them.
type Hub struct {
	mu         sync.RWMutex
	clients    map[string]map[*client]bool
	register   chan *client
	unregister chan *client
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*client]bool),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case cl := <-h.register:
			h.mu.Lock()
			if h.clients[cl.userID] == nil {
				h.clients[cl.userID] = make(map[*client]bool)
			}
			h.clients[cl.userID][cl] = true
			h.mu.Unlock()

		case cl := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[cl.userID]; ok {
				if _, ok := clients[cl]; ok {
					delete(clients, cl)
					close(cl.send)
					if len(clients) == 0 {
						delete(h.clients, cl.userID)
					}
				}
			}
			h.mu.Unlock()

		case <-h.done:
			return
		}
	}
}

func (h *Hub) Shutdown() {
	close(h.done)
}

// Broadcast sends the event to every connection of the given user.
func (h *Hub) Broadcast(userID string, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for cl := range h.clients[userID] {
		select {
		case cl.send <- payload:
		default:
			// Slow consumer, drop the frame.
		}
	}
}

func (s *Server) serveWS(c *gin.Context) {
	token := c.Query("token")
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	cl := &client{conn: conn, send: make(chan []byte, 16), userID: claims.UserID}
	s.hub.register <- cl

	go cl.writeLoop()
	go cl.readLoop(s.hub)
}

func (cl *client) writeLoop() {
	defer cl.conn.Close()
	for payload := range cl.send {
		if err := cl.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}

// readLoop discards inbound frames; it exists to detect disconnects.
func (cl *client) readLoop(hub *Hub) {
	defer func() {
		hub.unregister <- cl
		cl.conn.Close()
	}()
	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			return
		}
	}
}
