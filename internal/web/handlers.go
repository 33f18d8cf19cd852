package web

import (
	"encoding/json"
	"io/fs"
	"net/http"

	"axigo/internal/hw/led"
	"axigo/internal/logic/device"
)

// maxBodySize bounds command request bodies.
const maxBodySize = 1 << 20

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	Device   *device.Device
	Hub      *Hub
	Status   *led.LED
	staticFS fs.FS
}

// NewHandlers creates handlers with the given dependencies.
func NewHandlers(dev *device.Device, hub *Hub, status *led.LED, staticFS fs.FS) *Handlers {
	return &Handlers{
		Device:   dev,
		Hub:      hub,
		Status:   status,
		staticFS: staticFS,
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// HandleDeviceType answers GET /getDeviceType.
func (h *Handlers) HandleDeviceType(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, struct {
		Type string `json:"type"`
	}{Type: h.Device.Type()})
}

// HandleNumberOfAxes answers GET /getNumberOfAxes.
func (h *Handlers) HandleNumberOfAxes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, struct {
		NumberOfAxes int `json:"numberOfAxes"`
	}{NumberOfAxes: h.Device.NumAxes()})
}

// HandleGetPosition answers GET /getPosition.
func (h *Handlers) HandleGetPosition(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, struct {
		Axes     []int     `json:"axes"`
		Units    []string  `json:"units"`
		Position []float64 `json:"position"`
	}{
		Axes:     h.Device.AxisNumbers(),
		Units:    h.Device.Units(),
		Position: h.Device.Positions(),
	})
}

// HandleGetAxesLimits answers GET /getAxesLimits.
func (h *Handlers) HandleGetAxesLimits(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, struct {
		Axes   []int     `json:"axes"`
		Limits []float64 `json:"limits"`
		Units  []string  `json:"units"`
	}{
		Axes:   h.Device.AxisNumbers(),
		Limits: h.Device.Limits(),
		Units:  h.Device.Units(),
	})
}

// HandleAxisHomeCheck answers GET /axisHomeCheck.
func (h *Handlers) HandleAxisHomeCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, struct {
		AxesChecked []int  `json:"axesChecked"`
		HomeStatus  []bool `json:"homeStatus"`
	}{
		AxesChecked: h.Device.AxisNumbers(),
		HomeStatus:  h.Device.HomeStatus(),
	})
}

// HandleHomeAxis answers POST /homeAxis by homing every axis.
func (h *Handlers) HandleHomeAxis(w http.ResponseWriter, r *http.Request) {
	h.Device.HomeAll()
	w.WriteHeader(http.StatusOK)
}

// HandleSetPosition answers POST /setPosition with body {"position":[v,...]}.
// Finite targets are clamped by the device; non-finite ones are rejected.
func (h *Handlers) HandleSetPosition(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Position []float64 `json:"position"`
	}
	body := http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	if err := h.Device.SetPositions(req.Position); err != nil {
		// Non-finite targets and count mismatches are caller errors.
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// ServeIndex serves the main HTML page (root path only).
func (h *Handlers) ServeIndex(w http.ResponseWriter, r *http.Request) {
	data, err := fs.ReadFile(h.staticFS, "index.html")
	if err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}
