package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/xid"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The catalog is public read-only data; cross-origin dashboards are
	// expected consumers.
	CheckOrigin: func(r *http.Request) bool { return true },
}

const writeTimeout = 10 * time.Second

// Events handles GET /api/v1/events: upgrades to a WebSocket and streams
// catalog lifecycle events (loads, reloads, reload failures) as JSON
// envelopes until the client disconnects.
func (h *CatalogHandler) Events(w http.ResponseWriter, r *http.Request) {
	if h.pub == nil {
		writeError(w, http.StatusServiceUnavailable, "event stream not configured")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		return
	}
	defer conn.Close()

	subID := "ws-" + xid.New().String()
	ch := h.pub.Subscribe(subID, 64)
	defer h.pub.Unsubscribe(subID)

	// Reader goroutine: we never expect client messages, but reading is
	// what surfaces the close frame.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case env, ok := <-ch:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(env); err != nil {
				slog.Debug("event stream closed",
					slog.String("subscriber", subID),
					slog.String("error", err.Error()),
				)
				return
			}
		}
	}
}
