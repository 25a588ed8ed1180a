package services

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// WebSocketMessage is one frame sent to connected operator clients.
type WebSocketMessage struct {
	Type      string      `json:"type"` // "can_report", "power_report", "pong", "error"
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// ClientConnection represents a connected WebSocket client.
type ClientConnection struct {
	ID    string
	Conn  *websocket.Conn
	Send  chan WebSocketMessage
	Close chan bool
}

// WebSocketHub fans procedure events out to all connected clients.
type WebSocketHub struct {
	clients    map[string]*ClientConnection
	broadcast  chan WebSocketMessage
	register   chan *ClientConnection
	unregister chan string
	mu         sync.RWMutex
	done       chan bool
}

var wsHub *WebSocketHub

// InitWebSocketHub initializes the hub and starts its event loop.
func InitWebSocketHub() *WebSocketHub {
	wsHub = &WebSocketHub{
		clients:    make(map[string]*ClientConnection),
		broadcast:  make(chan WebSocketMessage, 256),
		register:   make(chan *ClientConnection),
		unregister: make(chan string),
		done:       make(chan bool),
	}

	go wsHub.run()

	return wsHub
}

func (h *WebSocketHub) run() {
	for {
		select {
		case <-h.done:
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
			log.Printf("[WS] Client connected: %s (total: %d)", client.ID, len(h.clients))

		case clientID := <-h.unregister:
			h.mu.Lock()
			if client, exists := h.clients[clientID]; exists {
				delete(h.clients, clientID)
				close(client.Send)
			}
			h.mu.Unlock()
			log.Printf("[WS] Client disconnected: %s (total: %d)", clientID, len(h.clients))

		case msg := <-h.broadcast:
			h.mu.RLock()
			for _, client := range h.clients {
				select {
				case client.Send <- msg:
				default:
					// Client's send channel is full, skip this message
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a new client to the hub.
func (h *WebSocketHub) Register(client *ClientConnection) {
	h.register <- client
}

// Unregister removes a client from the hub.
func (h *WebSocketHub) Unregister(clientID string) {
	h.unregister <- clientID
}

// Broadcast sends a message to all connected clients.
func (h *WebSocketHub) Broadcast(msg WebSocketMessage) {
	select {
	case h.broadcast <- msg:
	default:
		// Channel full, drop the event
	}
}

// GetWebSocketHub returns the hub, nil before InitWebSocketHub.
func GetWebSocketHub() *WebSocketHub {
	return wsHub
}

// BroadcastEvent pushes a procedure result to all connected clients. A nil
// hub (no API running, e.g. one-shot mode) is a no-op.
func BroadcastEvent(eventType string, payload interface{}) {
	hub := GetWebSocketHub()
	if hub == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[WS] Error marshaling %s event: %v", eventType, err)
		return
	}

	hub.Broadcast(WebSocketMessage{
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      json.RawMessage(data),
	})
}

// StopWebSocketHub gracefully stops the hub.
func StopWebSocketHub() {
	if wsHub != nil {
		wsHub.done <- true
	}
}
