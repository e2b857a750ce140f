package ws

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub() *Hub {
	return NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func addClient(h *Hub, id string, userID int) *Client {
	c := newClient(id, userID, h, nil)
	h.Add(c)
	return c
}

func drainFrame(t *testing.T, c *Client) *ServerFrame {
	t.Helper()
	select {
	case payload := <-c.send:
		var frame ServerFrame
		require.NoError(t, json.Unmarshal(payload, &frame))
		return &frame
	default:
		return nil
	}
}

func TestHub_SendToClient(t *testing.T) {
	h := newTestHub()
	alice := addClient(h, "a", 1)

	h.SendToClient(alice, "connected", map[string]string{"connection_id": "a"})

	frame := drainFrame(t, alice)
	require.NotNil(t, frame)
	assert.Equal(t, "connected", frame.Type)
}

func TestHub_SendToClientAfterRemove(t *testing.T) {
	h := newTestHub()
	alice := addClient(h, "a", 1)
	h.Remove(alice)

	// An evicted connection has a closed send channel; the frame must be
	// dropped, not panic the sender.
	assert.NotPanics(t, func() {
		h.SendToClient(alice, "error", map[string]string{"message": "too late"})
	})
}

func TestHub_BroadcastToMatch(t *testing.T) {
	h := newTestHub()
	alice := addClient(h, "a", 1)
	bob := addClient(h, "b", 2)
	outsider := addClient(h, "c", 3)

	h.JoinMatch(alice, 10)
	h.JoinMatch(bob, 10)

	h.BroadcastToMatch(10, "new_message", map[string]string{"content": "hi"})

	for _, c := range []*Client{alice, bob} {
		frame := drainFrame(t, c)
		require.NotNil(t, frame)
		assert.Equal(t, "new_message", frame.Type)
	}
	// Connections not joined to the match receive nothing.
	assert.Nil(t, drainFrame(t, outsider))
}

func TestHub_BroadcastToMatchExcept(t *testing.T) {
	h := newTestHub()
	alice := addClient(h, "a", 1)
	bob := addClient(h, "b", 2)

	h.JoinMatch(alice, 10)
	h.JoinMatch(bob, 10)

	h.BroadcastToMatchExcept(10, 1, "user_typing", nil)

	assert.Nil(t, drainFrame(t, alice))
	require.NotNil(t, drainFrame(t, bob))
}

func TestHub_SendToUser_AllConnections(t *testing.T) {
	h := newTestHub()
	phone := addClient(h, "phone", 1)
	laptop := addClient(h, "laptop", 1)
	other := addClient(h, "other", 2)

	h.SendToUser(1, "new_match", map[string]int{"match_id": 5})

	require.NotNil(t, drainFrame(t, phone))
	require.NotNil(t, drainFrame(t, laptop))
	assert.Nil(t, drainFrame(t, other))
}

func TestHub_JoinLateMissesEarlierFrames(t *testing.T) {
	h := newTestHub()
	alice := addClient(h, "a", 1)
	bob := addClient(h, "b", 2)
	h.JoinMatch(alice, 10)

	h.BroadcastToMatch(10, "new_message", nil)

	h.JoinMatch(bob, 10)
	assert.Nil(t, drainFrame(t, bob))
}

func TestHub_RemoveIsIdempotent(t *testing.T) {
	h := newTestHub()
	alice := addClient(h, "a", 1)
	h.JoinMatch(alice, 10)
	require.Equal(t, 1, h.ConnectionCount())

	h.Remove(alice)
	assert.Equal(t, 0, h.ConnectionCount())

	// Second removal must not panic on the closed channel.
	h.Remove(alice)
	assert.Equal(t, 0, h.ConnectionCount())

	// Broadcasts to the departed connection's match are now no-ops.
	h.BroadcastToMatch(10, "new_message", nil)
}

func TestHub_JoinAfterRemoveIgnored(t *testing.T) {
	h := newTestHub()
	alice := addClient(h, "a", 1)
	h.Remove(alice)

	h.JoinMatch(alice, 10)
	h.BroadcastToMatch(10, "new_message", nil)
	assert.Equal(t, 0, h.ConnectionCount())
}

func TestHub_SlowClientEvicted(t *testing.T) {
	h := newTestHub()
	slow := addClient(h, "slow", 1)
	idle := addClient(h, "idle", 2)
	h.JoinMatch(slow, 10)

	// Fill the slow client's buffer without draining it. The overflow
	// broadcast evicts it instead of blocking the fan-out.
	for i := 0; i < sendBufferSize+1; i++ {
		h.BroadcastToMatch(10, "new_message", nil)
	}

	assert.Equal(t, 1, h.ConnectionCount())

	h.mu.RLock()
	_, slowAlive := h.clients[slow.ID]
	_, idleAlive := h.clients[idle.ID]
	h.mu.RUnlock()
	assert.False(t, slowAlive)
	assert.True(t, idleAlive)
}
