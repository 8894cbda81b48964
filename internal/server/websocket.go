package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"lectern/internal/logging"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // lookups are read-only; any origin may connect
	},
}

// VersionEvent is broadcast to all connected clients when the current
// version changes.
type VersionEvent struct {
	Type      string `json:"type"` // "version_selected"
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

// Client is one WebSocket connection. Each channel has exactly one
// writer, which is also its closer: the hub owns send, readPump owns
// resp.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte // broadcast events, hub-owned
	resp chan []byte // lookup responses, readPump-owned
}

// Hub maintains active WebSocket connections and broadcasts library
// events to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates a new WebSocket hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run handles client registration and broadcasting until the process
// exits. Call in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			logging.WebSocketEvent("client_connected", h.ClientCount())

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			logging.WebSocketEvent("client_disconnected", h.ClientCount())

		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Client channel full, disconnect
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends a version event to all connected clients.
func (h *Hub) Broadcast(event VersionEvent) {
	if event.Timestamp == "" {
		event.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	data, err := json.Marshal(event)
	if err != nil {
		logging.Error("failed to marshal version event", "error", err)
		return
	}

	select {
	case h.broadcast <- data:
	default:
		logging.Warn("broadcast channel full, dropping event")
	}
}

// wsQuery is an incoming lookup request on a WebSocket connection.
type wsQuery struct {
	Reference string `json:"reference"`
	Version   string `json:"version,omitempty"`
	Line      bool   `json:"line,omitempty"`
}

// handleWebSocket upgrades the connection and serves lookup queries
// over it. writePump is the connection's single writer; it drains both
// client channels.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error("websocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		hub:  s.hub,
		conn: conn,
		send: make(chan []byte, 64),
		resp: make(chan []byte, 64),
	}
	s.hub.register <- client

	go client.writePump()
	client.readPump(s)
}

func (c *Client) readPump(s *Server) {
	defer func() {
		c.hub.unregister <- c
		close(c.resp)
		c.conn.Close()
	}()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var q wsQuery
		if err := json.Unmarshal(data, &q); err != nil {
			// Bare text frames are treated as verse-text queries.
			q = wsQuery{Reference: string(data)}
		}

		resp := s.lookup(q)
		out, err := json.Marshal(resp)
		if err != nil {
			logging.Error("failed to marshal lookup response", "error", err)
			continue
		}
		select {
		case c.resp <- out:
		default:
			return // response buffer full, drop the connection
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				// The hub closed send, either after unregister or to
				// drop a slow client; closing the connection below ends
				// readPump too.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case message, ok := <-c.resp:
			if !ok {
				// readPump exited; wait for the hub to close send.
				c.resp = nil
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		}
	}
}
