package websocket

import (
	"encoding/json"
	"log"
	"time"

	"dustbin-dashboard/internal/models"
	"dustbin-dashboard/internal/notifications"
	"dustbin-dashboard/internal/store"
	"dustbin-dashboard/internal/views"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 1024
)

// Dashboard is the state a connected client reads and the commands it may issue
type Dashboard struct {
	Store    *store.Store
	Queue    *notifications.Queue
	Selector *views.Selector
}

// Snapshot is the first message a client receives
type Snapshot struct {
	Bins          []models.Bin                  `json:"bins"`
	Notifications []models.NotificationResponse `json:"notifications"`
	View          views.Mode                    `json:"view"`
}

// Snapshot captures the current dashboard state
func (d *Dashboard) Snapshot() Snapshot {
	return Snapshot{
		Bins:          d.Store.Snapshot(),
		Notifications: models.ToNotificationResponses(d.Queue.Visible()),
		View:          d.Selector.Current(),
	}
}

// Client represents a WebSocket client connection
type Client struct {
	ID        string
	conn      *websocket.Conn
	hub       *Hub
	send      chan []byte
	dashboard *Dashboard
}

// IncomingMessage represents a message from the client
type IncomingMessage struct {
	Type      string                 `json:"type"`
	Timestamp string                 `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

// NewClient creates a new WebSocket client
func NewClient(conn *websocket.Conn, hub *Hub, dashboard *Dashboard) *Client {
	return &Client{
		ID:        uuid.New().String(),
		conn:      conn,
		hub:       hub,
		send:      make(chan []byte, 256),
		dashboard: dashboard,
	}
}

// ReadPump pumps messages from the WebSocket connection to the dashboard
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregisterClient(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		var msg IncomingMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("Invalid message format: %v", err)
			continue
		}

		c.handle(msg)
	}
}

func (c *Client) handle(msg IncomingMessage) {
	switch msg.Type {
	case "ping":
		c.reply(TypePong, nil)

	case "dismiss_notification":
		id, ok := msg.Data["id"].(string)
		if !ok || id == "" {
			c.reply(TypeError, map[string]string{"error": "dismiss_notification requires data.id"})
			return
		}
		// unknown or already hidden ids are ignored
		c.dashboard.Queue.Dismiss(id)

	case "select_view":
		name, _ := msg.Data["view"].(string)
		mode, err := views.ParseMode(name)
		if err != nil {
			c.reply(TypeError, map[string]string{"error": err.Error()})
			return
		}
		c.dashboard.Selector.Select(mode)

	default:
		log.Printf("⚠️ Unknown message type from %s: %s", c.ID, msg.Type)
	}
}

// reply queues a message for this client only
func (c *Client) reply(msgType string, data interface{}) {
	payload, err := json.Marshal(newMessage(msgType, data))
	if err != nil {
		log.Printf("❌ Failed to marshal reply: %v", err)
		return
	}
	c.hub.sendTo(c, payload)
}

// WritePump pumps messages from the hub to the WebSocket connection
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
