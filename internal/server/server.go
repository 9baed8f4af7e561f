package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"setgame/internal/config"
)

// Server ties together HTTP serving and WebSocket handling.
type Server struct {
	handlers *Handlers
	config   config.Config
}

func New(cfg config.Config) *Server {
	return &Server{
		handlers: NewHandlers(cfg),
		config:   cfg,
	}
}

// Routes returns the HTTP handler for all endpoints.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/create", s.handlers.HandleCreateGame)
	mux.HandleFunc("GET /api/state", s.handlers.HandleState)
	mux.HandleFunc("GET /api/qr", s.handlers.HandleQR)
	mux.HandleFunc("GET /api/client-id", s.handlers.HandleClientID)
	mux.HandleFunc("/ws", s.handlers.HandleWS)
	return mux
}

// Start serves until ctx is cancelled, then shuts down.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	srv := &http.Server{Addr: addr, Handler: s.Routes()}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	log.Printf("Set server starting on http://localhost%s", addr)
	log.Printf("POST http://localhost%s/api/create to start a session", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Printf("shutting down")
	s.handlers.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Close stops all session hubs.
func (s *Server) Close() {
	s.handlers.Close()
}
