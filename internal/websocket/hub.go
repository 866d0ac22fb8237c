package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Message types pushed to dashboard clients
const (
	TypeSnapshot              = "snapshot"
	TypeBinsUpdated           = "bins_updated"
	TypeNotificationAdded     = "notification_added"
	TypeNotificationExpired   = "notification_expired"
	TypeNotificationDismissed = "notification_dismissed"
	TypeViewChanged           = "view_changed"
	TypePong                  = "pong"
	TypeError                 = "error"
)

// OutgoingMessage is the envelope of every server push
type OutgoingMessage struct {
	Type      string      `json:"type"`
	Timestamp string      `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

func newMessage(msgType string, data interface{}) OutgoingMessage {
	return OutgoingMessage{
		Type:      msgType,
		Timestamp: time.Now().Format(time.RFC3339),
		Data:      data,
	}
}

// Hub maintains active dashboard connections and fans out updates to all of them
type Hub struct {
	// Registered clients (client ID -> Client)
	clients map[string]*Client

	// Encoded messages for every client
	broadcast chan []byte

	// Encoded messages for a single client
	direct chan *directMessage

	register   chan *Client
	unregister chan *Client

	// Closed when Run returns
	done chan struct{}

	mu sync.RWMutex
}

type directMessage struct {
	client *Client
	data   []byte
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		broadcast:  make(chan []byte, 256),
		direct:     make(chan *directMessage, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run serves register, unregister and broadcast requests until ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for id, client := range h.clients {
				close(client.send)
				delete(h.clients, id)
			}
			h.mu.Unlock()
			log.Println("🛑 [WEBSOCKET] Hub stopped, all clients released")
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			total := len(h.clients)
			h.mu.Unlock()
			log.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
			log.Printf("✅ [WEBSOCKET] Client CONNECTED")
			log.Printf("   Client ID: %s", client.ID)
			log.Printf("   Total connected clients: %d", total)
			log.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(client.send)
				log.Printf("🔴 [WEBSOCKET] Client DISCONNECTED: %s (remaining: %d)", client.ID, len(h.clients))
			}
			h.mu.Unlock()

		case msg := <-h.direct:
			h.mu.Lock()
			if client, ok := h.clients[msg.client.ID]; ok {
				select {
				case client.send <- msg.data:
				default:
					log.Printf("⚠️ Client buffer full, dropping reply for %s", client.ID)
				}
			}
			h.mu.Unlock()

		case data := <-h.broadcast:
			h.mu.Lock()
			for id, client := range h.clients {
				select {
				case client.send <- data:
				default:
					// Client buffer full, disconnect
					close(client.send)
					delete(h.clients, id)
					log.Printf("⚠️ Client buffer full, disconnecting: %s", id)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast sends a typed message to every connected client. It never blocks:
// when the hub is backed up the message is dropped.
func (h *Hub) Broadcast(msgType string, data interface{}) {
	payload, err := json.Marshal(newMessage(msgType, data))
	if err != nil {
		log.Printf("❌ Failed to marshal broadcast message: %v", err)
		return
	}

	select {
	case h.broadcast <- payload:
	default:
		log.Printf("⚠️ Broadcast queue full, dropping %s", msgType)
	}
}

// GetClientCount returns the number of connected clients
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// sendTo queues data for one client. Only Run writes to client channels.
func (h *Hub) sendTo(c *Client, data []byte) {
	select {
	case h.direct <- &directMessage{client: c, data: data}:
	default:
		log.Printf("⚠️ Direct queue full, dropping message for %s", c.ID)
	}
}

func (h *Hub) registerClient(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) unregisterClient(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}
