package web

import (
	"context"
	"io/fs"
	"log"
	"net/http"
	"time"

	"axigo/internal/hw/led"
	"axigo/internal/logic/device"
)

// Server wraps the HTTP server and handlers.
type Server struct {
	addr     string
	handlers *Handlers
}

// NewServer creates a server configured for the given address and dependencies.
func NewServer(addr string, dev *device.Device, hub *Hub, status *led.LED) *Server {
	subFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		log.Fatalf("web: failed to sub static fs: %v", err)
	}

	return &Server{
		addr:     addr,
		handlers: NewHandlers(dev, hub, status, subFS),
	}
}

// Mux returns an http.Handler with all routes registered.
func (s *Server) Mux() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /getDeviceType", s.handlers.HandleDeviceType)
	mux.HandleFunc("GET /getNumberOfAxes", s.handlers.HandleNumberOfAxes)
	mux.HandleFunc("GET /getPosition", s.handlers.HandleGetPosition)
	mux.HandleFunc("GET /getAxesLimits", s.handlers.HandleGetAxesLimits)
	mux.HandleFunc("GET /axisHomeCheck", s.handlers.HandleAxisHomeCheck)
	mux.HandleFunc("POST /homeAxis", s.handlers.HandleHomeAxis)
	mux.HandleFunc("POST /setPosition", s.handlers.HandleSetPosition)
	mux.HandleFunc("GET /ws", s.handlers.HandleWS)
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(s.handlers.staticFS))))
	mux.HandleFunc("GET /{$}", s.handlers.ServeIndex) // exact match for root only

	return mux
}

// Run starts the server and blocks until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.Mux()}
	errCh := make(chan error, 1)
	go func() {
		log.Printf("web server listening on %s", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
