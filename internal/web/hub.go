package web

import (
	"encoding/json"
	"sync"
)

// StatusMessage is the frame pushed to WebSocket clients whenever the
// status LED changes, matching the device's wire format: {"status":"on"}.
type StatusMessage struct {
	Status string `json:"status"`
}

func statusPayload(on bool) []byte {
	status := "off"
	if on {
		status = "on"
	}
	data, _ := json.Marshal(StatusMessage{Status: status})
	return data
}

// Hub distributes status frames to multiple WebSocket clients.
type Hub struct {
	mu      sync.RWMutex
	clients map[chan []byte]struct{}
}

// NewHub creates a new hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[chan []byte]struct{}),
	}
}

// Subscribe returns a channel that receives broadcast frames and a cleanup
// function. The caller must call the returned cleanup when done (e.g. on
// client disconnect).
func (h *Hub) Subscribe() (<-chan []byte, func()) {
	ch := make(chan []byte, 64)
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()

	unsub := func() {
		h.mu.Lock()
		delete(h.clients, ch)
		h.mu.Unlock()
		close(ch)
	}
	return ch, unsub
}

// Broadcast sends a frame to all subscribed clients.
// Slow clients may miss frames (non-blocking, buffered).
func (h *Hub) Broadcast(payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.clients {
		select {
		case ch <- payload:
		default:
			// channel full, skip
		}
	}
}

// LEDChanged broadcasts the new status LED state. It implements the control
// loop's Notifier, so button presses reach WebSocket clients.
func (h *Hub) LEDChanged(on bool) {
	h.Broadcast(statusPayload(on))
}
