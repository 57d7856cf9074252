package api

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"
)

// Server wraps the HTTP server for the jobs API and its change feed.
type Server struct {
	httpServer *http.Server
	watcher    *DataWatcher
	hub        *Hub
	metrics    *Metrics
}

// NewServer creates a server for the given data context on port.
// File watching is skipped when the data directory cannot be watched; the
// API still works, clients just get no change notifications.
func NewServer(data *DataContext, port int) *Server {
	metrics := NewMetrics()
	hub := NewHub(metrics)

	mux := http.NewServeMux()
	NewHandler(data, metrics).RegisterRoutes(mux)
	mux.HandleFunc("GET /ws", hub.ServeWS)
	mux.Handle("GET /metrics", metrics.Handler())

	watcher, err := NewDataWatcher(data.Paths.DataRoot())
	if err != nil {
		log.Printf("Warning: failed to create data watcher: %v", err)
		watcher = nil
	} else {
		watcher.Subscribe(hub)
	}

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           Logging(Cors(Instrument(metrics, mux))),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
		},
		watcher: watcher,
		hub:     hub,
		metrics: metrics,
	}
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Hub returns the websocket hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Start begins listening for HTTP requests. Blocks until shutdown.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln. Blocks until shutdown.
func (s *Server) Serve(ln net.Listener) error {
	if s.watcher != nil {
		if err := s.watcher.Start(); err != nil {
			log.Printf("Warning: failed to start data watcher: %v", err)
		}
	}
	err := s.httpServer.Serve(ln)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.watcher != nil {
		if err := s.watcher.Stop(); err != nil {
			log.Printf("Warning: failed to stop data watcher: %v", err)
		}
	}
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the address the server is configured to listen on.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}
