package ws

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(h *Hub) *Handler {
	return &Handler{
		hub: h,
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestHandler_ErrorReplyToEvictedConnection(t *testing.T) {
	h := newTestHub()
	handler := newTestHandler(h)
	alice := addClient(h, "a", 1)

	// The read pump can still be dispatching a frame when a broadcast
	// evicts the connection. The reply must be a no-op then.
	h.Remove(alice)

	assert.NotPanics(t, func() {
		handler.sendError(alice, "unknown frame type")
	})
}

func TestHandler_ErrorReplyDelivered(t *testing.T) {
	h := newTestHub()
	handler := newTestHandler(h)
	alice := addClient(h, "a", 1)

	handler.sendError(alice, "malformed frame")

	frame := drainFrame(t, alice)
	require.NotNil(t, frame)
	assert.Equal(t, "error", frame.Type)
}
