package web

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"

	"axigo/internal/debug"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  512,
	WriteBufferSize: 512,
	// The device lives on a trusted local network.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type actionMessage struct {
	Action string `json:"action"`
}

// HandleWS upgrades GET /ws. The server pushes status frames; the client may
// send {"action":"toggle"} to flip the status LED, which is re-broadcast to
// every client.
func (h *Handlers) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		debug.Error(fmt.Errorf("ws upgrade: %w", err))
		return
	}
	defer conn.Close()
	debug.Live("WebSocket client connected from %s", r.RemoteAddr)

	// Current state first, so the client renders without waiting for an edge.
	if err := conn.WriteMessage(websocket.TextMessage, statusPayload(h.Status.On())); err != nil {
		return
	}

	ch, unsub := h.Hub.Subscribe()
	defer unsub()

	// Single writer for the connection; exits when unsub closes ch.
	go func() {
		for payload := range ch {
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			debug.Live("WebSocket client disconnected: %s", r.RemoteAddr)
			return
		}
		var msg actionMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			debug.Error(fmt.Errorf("ws: bad frame: %w", err))
			continue
		}
		if msg.Action == "toggle" {
			h.Hub.LEDChanged(h.Status.Toggle())
		}
	}
}
