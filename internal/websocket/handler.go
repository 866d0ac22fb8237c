package websocket

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origins are already restricted by the CORS configuration
		return true
	},
}

// HandleWebSocket upgrades HTTP connection to WebSocket and streams dashboard updates
func HandleWebSocket(hub *Hub, dashboard *Dashboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("❌ WebSocket upgrade failed: %v", err)
			return
		}

		client := NewClient(conn, hub, dashboard)

		// The client is not registered yet, so nothing else writes to its channel
		snapshot, err := json.Marshal(newMessage(TypeSnapshot, dashboard.Snapshot()))
		if err != nil {
			log.Printf("❌ Failed to marshal snapshot: %v", err)
			conn.Close()
			return
		}
		client.send <- snapshot

		if !hub.registerClient(client) {
			log.Println("⚠️ WebSocket hub is stopped, refusing connection")
			conn.Close()
			return
		}

		go client.WritePump()
		go client.ReadPump()

		log.Printf("✅ WebSocket connection established: %s (%s)", client.ID, r.RemoteAddr)
	}
}
