package realtime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func recvMsg(t *testing.T, ch chan []byte) []byte {
	t.Helper()
	select {
	case b := <-ch:
		return b
	case <-time.After(time.Second):
		t.Fatal("no message received")
		return nil
	}
}

func TestHubBroadcastReachesEveryClient(t *testing.T) {
	h := NewHub()
	go h.Run()

	a := &Client{ID: "a", UserID: uuid.New(), Send: make(chan []byte, 8)}
	b := &Client{ID: "b", UserID: uuid.New(), Send: make(chan []byte, 8)}
	h.RegisterClient(a)
	h.RegisterClient(b)

	h.BroadcastJSON(map[string]string{"type": "sos_alert"})

	for _, c := range []*Client{a, b} {
		var msg map[string]string
		assert.NoError(t, json.Unmarshal(recvMsg(t, c.Send), &msg))
		assert.Equal(t, "sos_alert", msg["type"])
	}

	h.UnregisterClient(a)
	h.UnregisterClient(b)
}

func TestHubSendToUserTargetsOneAdmin(t *testing.T) {
	h := NewHub()
	go h.Run()

	a := &Client{ID: "a", UserID: uuid.New(), Send: make(chan []byte, 8)}
	b := &Client{ID: "b", UserID: uuid.New(), Send: make(chan []byte, 8)}
	h.RegisterClient(a)
	h.RegisterClient(b)

	// broadcast round-trip guarantees both registrations are processed
	// before the targeted send reads the client map
	h.BroadcastJSON(map[string]string{"type": "sos_alert"})
	recvMsg(t, a.Send)
	recvMsg(t, b.Send)

	h.SendToUser(a.UserID, map[string]string{"type": "sos_backlog"})

	var msg map[string]string
	assert.NoError(t, json.Unmarshal(recvMsg(t, a.Send), &msg))
	assert.Equal(t, "sos_backlog", msg["type"])

	select {
	case extra := <-b.Send:
		t.Fatalf("unexpected message for other client: %s", extra)
	case <-time.After(50 * time.Millisecond):
	}

	h.UnregisterClient(a)
	h.UnregisterClient(b)
}
