package websocket

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dustbin-dashboard/internal/models"
	"dustbin-dashboard/internal/notifications"
	"dustbin-dashboard/internal/store"
	"dustbin-dashboard/internal/views"

	"github.com/gorilla/websocket"
)

type testMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func setup(t *testing.T) (*Hub, *Dashboard, *websocket.Conn) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := NewHub()
	go hub.Run(ctx)

	queue := notifications.NewQueue(time.Minute)
	t.Cleanup(queue.Close)

	dashboard := &Dashboard{
		Store:    store.New(models.SeedBins()),
		Queue:    queue,
		Selector: views.NewSelector(),
	}

	srv := httptest.NewServer(HandleWebSocket(hub, dashboard))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	waitFor(t, func() bool { return hub.GetClientCount() == 1 })
	return hub, dashboard, conn
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func read(t *testing.T, conn *websocket.Conn) testMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg testMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	return msg
}

func TestHub_SnapshotOnConnect(t *testing.T) {
	_, _, conn := setup(t)

	msg := read(t, conn)
	if msg.Type != TypeSnapshot {
		t.Fatalf("First message type = %s, want %s", msg.Type, TypeSnapshot)
	}

	var snap Snapshot
	if err := json.Unmarshal(msg.Data, &snap); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(snap.Bins) != 5 || snap.View != views.ModeMap || len(snap.Notifications) != 0 {
		t.Errorf("Unexpected snapshot: %+v", snap)
	}
}

func TestHub_Broadcast(t *testing.T) {
	hub, _, conn := setup(t)
	read(t, conn)

	hub.Broadcast(TypeBinsUpdated, []models.Bin{{ID: 1, SerialNumber: "SRM001", FillPercentage: 76}})

	msg := read(t, conn)
	if msg.Type != TypeBinsUpdated {
		t.Fatalf("type = %s, want %s", msg.Type, TypeBinsUpdated)
	}
	var bins []models.Bin
	if err := json.Unmarshal(msg.Data, &bins); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(bins) != 1 || bins[0].FillPercentage != 76 {
		t.Errorf("Unexpected payload: %+v", bins)
	}
}

func TestClient_Commands(t *testing.T) {
	_, dashboard, conn := setup(t)
	read(t, conn)

	if err := conn.WriteJSON(map[string]interface{}{"type": "ping"}); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	if msg := read(t, conn); msg.Type != TypePong {
		t.Errorf("type = %s, want %s", msg.Type, TypePong)
	}

	conn.WriteJSON(map[string]interface{}{"type": "select_view", "data": map[string]string{"view": "table"}})
	waitFor(t, func() bool { return dashboard.Selector.Current() == views.ModeTable })

	conn.WriteJSON(map[string]interface{}{"type": "select_view", "data": map[string]string{"view": "pie"}})
	if msg := read(t, conn); msg.Type != TypeError {
		t.Errorf("type = %s, want %s", msg.Type, TypeError)
	}

	n := dashboard.Queue.Notify(models.Bin{ID: 3, SerialNumber: "SRM003", FillPercentage: 100})
	conn.WriteJSON(map[string]interface{}{"type": "dismiss_notification", "data": map[string]string{"id": n.ID}})
	waitFor(t, func() bool { return len(dashboard.Queue.Visible()) == 0 })
}

func TestHub_StopReleasesClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run() did not return after cancel")
	}

	// must not block once the hub is gone
	hub.Broadcast(TypeBinsUpdated, nil)
	if hub.registerClient(&Client{ID: "late", send: make(chan []byte, 1)}) {
		t.Error("registerClient() succeeded on a stopped hub")
	}
}
