package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/talentflow/talentflow/internal/model"
)

func newTestClient(hub *Hub, buffer int) *hubClient {
	return &hubClient{hub: hub, send: make(chan []byte, buffer)}
}

func TestHub_AddRemoveClient(t *testing.T) {
	hub := NewHub(nil)
	client := newTestClient(hub, 10)

	hub.addClient(client)
	if hub.ClientCount() != 1 {
		t.Errorf("Expected 1 client, got %d", hub.ClientCount())
	}

	hub.removeClient(client)
	if hub.ClientCount() != 0 {
		t.Errorf("Expected 0 clients, got %d", hub.ClientCount())
	}

	select {
	case _, ok := <-client.send:
		if ok {
			t.Error("Channel should be closed")
		}
	default:
		t.Error("Channel should be closed and readable")
	}

	hub.removeClient(client) // idempotent
}

func TestHub_OnChangeBroadcasts(t *testing.T) {
	hub := NewHub(nil)
	client1 := newTestClient(hub, 10)
	client2 := newTestClient(hub, 10)
	hub.addClient(client1)
	hub.addClient(client2)

	hub.OnChange(model.ChangeEvent{Seq: 7, Op: model.ChangeModified, Kind: model.ChangeKindBoard, Path: "board.toml"})

	for i, client := range []*hubClient{client1, client2} {
		select {
		case data := <-client.send:
			var msg model.Message
			if err := json.Unmarshal(data, &msg); err != nil {
				t.Fatalf("client %d: bad message: %v", i, err)
			}
			if msg.Type != model.MessageChange {
				t.Errorf("client %d: expected type %q, got %q", i, model.MessageChange, msg.Type)
			}
			var event model.ChangeEvent
			if err := json.Unmarshal(msg.Data, &event); err != nil {
				t.Fatalf("client %d: bad event: %v", i, err)
			}
			if event.Seq != 7 || event.Kind != model.ChangeKindBoard {
				t.Errorf("client %d: unexpected event %+v", i, event)
			}
		case <-time.After(100 * time.Millisecond):
			t.Errorf("client %d did not receive message", i)
		}
	}
}

func TestHub_SlowClientDropped(t *testing.T) {
	hub := NewHub(nil)
	slow := newTestClient(hub, 1)
	hub.addClient(slow)

	hub.OnChange(model.ChangeEvent{Seq: 1, Kind: model.ChangeKindJob})
	hub.OnChange(model.ChangeEvent{Seq: 2, Kind: model.ChangeKindJob})

	deadline := time.Now().Add(time.Second)
	for hub.ClientCount() != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if hub.ClientCount() != 0 {
		t.Error("Expected client with full buffer to be dropped")
	}

	// Broadcasting to a dropped client must not panic.
	hub.OnChange(model.ChangeEvent{Seq: 3, Kind: model.ChangeKindJob})
}

func TestHub_ServeWS(t *testing.T) {
	metrics := NewMetrics()
	hub := NewHub(metrics)
	srv := httptest.NewServer(Logging(http.HandlerFunc(hub.ServeWS)))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()

	var greeting model.Message
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&greeting); err != nil {
		t.Fatalf("Failed to read greeting: %v", err)
	}
	if greeting.Type != model.MessageConnected {
		t.Errorf("Expected greeting first, got %q", greeting.Type)
	}

	hub.OnChange(model.ChangeEvent{Seq: 1, Op: model.ChangeCreated, Kind: model.ChangeKindJob, ID: "job_1"})

	var msg model.Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("Failed to read change: %v", err)
	}
	var event model.ChangeEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		t.Fatalf("bad event: %v", err)
	}
	if event.ID != "job_1" {
		t.Errorf("Expected job_1 change, got %+v", event)
	}
}
