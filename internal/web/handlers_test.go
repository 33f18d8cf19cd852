package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gorilla/websocket"

	"axigo/internal/hw/gpio"
	"axigo/internal/hw/led"
	"axigo/internal/logic/axis"
	"axigo/internal/logic/device"
)

func newTestDevice(t *testing.T, limits ...float64) *device.Device {
	t.Helper()
	axes := make([]device.Axis, 0, len(limits))
	for i, limit := range limits {
		ctrl, err := axis.NewController(limit)
		if err != nil {
			t.Fatalf("NewController: %v", err)
		}
		axes = append(axes, device.Axis{
			Name: string(rune('x' + i)),
			Unit: "mm",
			Ctrl: ctrl,
		})
	}
	d, err := device.New(axes)
	if err != nil {
		t.Fatalf("device.New: %v", err)
	}
	return d
}

func newTestHandlers(t *testing.T) *Handlers {
	t.Helper()
	staticFS := fstest.MapFS{
		"index.html": &fstest.MapFile{Data: []byte("<html>test</html>")},
	}
	return NewHandlers(
		newTestDevice(t, 80),
		NewHub(),
		led.New(&gpio.MockDriver{}, 26),
		staticFS,
	)
}

func getJSON(t *testing.T, handler http.HandlerFunc, path string, v interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	handler(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET %s: status = %d, want 200", path, w.Code)
	}
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("GET %s: decode: %v", path, err)
	}
}

func TestHandleDeviceType(t *testing.T) {
	h := newTestHandlers(t)
	var resp struct {
		Type string `json:"type"`
	}
	getJSON(t, h.HandleDeviceType, "/getDeviceType", &resp)
	if resp.Type != "1d" {
		t.Errorf("type = %q, want \"1d\"", resp.Type)
	}
}

func TestHandleNumberOfAxes(t *testing.T) {
	h := newTestHandlers(t)
	var resp struct {
		NumberOfAxes int `json:"numberOfAxes"`
	}
	getJSON(t, h.HandleNumberOfAxes, "/getNumberOfAxes", &resp)
	if resp.NumberOfAxes != 1 {
		t.Errorf("numberOfAxes = %d, want 1", resp.NumberOfAxes)
	}
}

func TestHandleGetPosition(t *testing.T) {
	h := newTestHandlers(t)
	var resp struct {
		Axes     []int     `json:"axes"`
		Units    []string  `json:"units"`
		Position []float64 `json:"position"`
	}
	getJSON(t, h.HandleGetPosition, "/getPosition", &resp)
	if len(resp.Axes) != 1 || resp.Axes[0] != 1 {
		t.Errorf("axes = %v, want [1]", resp.Axes)
	}
	if len(resp.Units) != 1 || resp.Units[0] != "mm" {
		t.Errorf("units = %v, want [mm]", resp.Units)
	}
	if len(resp.Position) != 1 || resp.Position[0] != 0 {
		t.Errorf("position = %v, want [0]", resp.Position)
	}
}

func TestHandleGetAxesLimits(t *testing.T) {
	h := newTestHandlers(t)
	var resp struct {
		Axes   []int     `json:"axes"`
		Limits []float64 `json:"limits"`
		Units  []string  `json:"units"`
	}
	getJSON(t, h.HandleGetAxesLimits, "/getAxesLimits", &resp)
	if len(resp.Limits) != 1 || resp.Limits[0] != 80 {
		t.Errorf("limits = %v, want [80]", resp.Limits)
	}
}

func TestHandleSetPosition(t *testing.T) {
	cases := []struct {
		name       string
		body       string
		wantStatus int
		wantPos    float64 // checked only on 200
	}{
		{"in_range", `{"position":[42]}`, http.StatusOK, 42},
		{"clamped_low", `{"position":[-5]}`, http.StatusOK, 0},
		{"clamped_high", `{"position":[200]}`, http.StatusOK, 80},
		{"non_numeric", `{"position":["NaN"]}`, http.StatusBadRequest, 0},
		{"not_json", `garbage`, http.StatusBadRequest, 0},
		{"count_mismatch", `{"position":[1,2]}`, http.StatusBadRequest, 0},
		{"missing_key", `{}`, http.StatusBadRequest, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestHandlers(t)
			req := httptest.NewRequest(http.MethodPost, "/setPosition", strings.NewReader(tc.body))
			w := httptest.NewRecorder()
			h.HandleSetPosition(w, req)

			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tc.wantStatus)
			}
			if tc.wantStatus == http.StatusOK {
				if pos := h.Device.Positions(); pos[0] != tc.wantPos {
					t.Errorf("position = %v, want %v", pos[0], tc.wantPos)
				}
			}
		})
	}
}

func TestHandleSetPosition_OversizedBody(t *testing.T) {
	h := newTestHandlers(t)
	big := strings.Repeat("x", 2<<20) // 2 MB
	req := httptest.NewRequest(http.MethodPost, "/setPosition", strings.NewReader(big))
	w := httptest.NewRecorder()
	h.HandleSetPosition(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d (oversized body)", w.Code, http.StatusBadRequest)
	}
}

func TestHandleHomeAxis(t *testing.T) {
	h := newTestHandlers(t)
	req := httptest.NewRequest(http.MethodPost, "/setPosition", strings.NewReader(`{"position":[42]}`))
	h.HandleSetPosition(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodPost, "/homeAxis", nil)
	w := httptest.NewRecorder()
	h.HandleHomeAxis(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if pos := h.Device.Positions(); pos[0] != 0 {
		t.Errorf("position = %v after homing, want 0", pos[0])
	}

	var resp struct {
		AxesChecked []int  `json:"axesChecked"`
		HomeStatus  []bool `json:"homeStatus"`
	}
	getJSON(t, h.HandleAxisHomeCheck, "/axisHomeCheck", &resp)
	if len(resp.HomeStatus) != 1 || !resp.HomeStatus[0] {
		t.Errorf("homeStatus = %v, want [true]", resp.HomeStatus)
	}
}

func TestServeIndex(t *testing.T) {
	h := newTestHandlers(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	h.ServeIndex(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q, want text/html; charset=utf-8", ct)
	}
	if !strings.Contains(w.Body.String(), "<html>") {
		t.Error("body should contain HTML content")
	}
}

// ---------- WebSocket ----------

func readStatus(t *testing.T, conn *websocket.Conn) string {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	var msg StatusMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("unmarshal %q: %v", data, err)
	}
	return msg.Status
}

func TestHandleWS_ToggleBroadcast(t *testing.T) {
	dev := newTestDevice(t, 80)
	hub := NewHub()
	status := led.New(&gpio.MockDriver{}, 26)
	srv := NewServer(":0", dev, hub, status)

	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", wsURL, err)
	}
	defer conn.Close()

	// Initial frame reports current LED state.
	if got := readStatus(t, conn); got != "off" {
		t.Errorf("initial status = %q, want \"off\"", got)
	}

	// Toggle request flips the LED and broadcasts the new state.
	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"action":"toggle"}`)); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}
	if got := readStatus(t, conn); got != "on" {
		t.Errorf("status after toggle = %q, want \"on\"", got)
	}
	if !status.On() {
		t.Error("status LED should be on after toggle")
	}
}

func TestHandleWS_ButtonEdgeReachesClient(t *testing.T) {
	dev := newTestDevice(t, 80)
	hub := NewHub()
	status := led.New(&gpio.MockDriver{}, 26)
	srv := NewServer(":0", dev, hub, status)

	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if got := readStatus(t, conn); got != "off" {
		t.Fatalf("initial status = %q, want \"off\"", got)
	}

	// The control loop publishes through the hub's Notifier interface.
	// Small delay so the handler's subscription is registered.
	time.Sleep(50 * time.Millisecond)
	hub.LEDChanged(true)
	if got := readStatus(t, conn); got != "on" {
		t.Errorf("status = %q, want \"on\"", got)
	}
}
