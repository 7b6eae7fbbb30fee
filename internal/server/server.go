package server

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/literature-engine/literature-server-go/internal/config"
)

// Server binds the hub to an HTTP listener.
type Server struct {
	cfg    config.ServerConfig
	hub    *Hub
	srv    *http.Server
	logger *zap.Logger
}

// New creates a server for the given hub.
func New(cfg config.ServerConfig, hub *Hub, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{cfg: cfg, hub: hub, logger: logger}
}

// Handler returns the HTTP handler serving the WebSocket endpoint.
func (s *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(s.cfg.WebSocket.Path, func(w http.ResponseWriter, r *http.Request) {
		s.hub.ServeWS(ctx, w, r)
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	go s.hub.Run(ctx)

	s.srv = &http.Server{
		Addr:    s.cfg.WebSocket.Address,
		Handler: s.Handler(ctx),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("websocket server listening",
			zap.String("address", s.cfg.WebSocket.Address),
			zap.String("path", s.cfg.WebSocket.Path),
		)
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("websocket server stopped")
	return nil
}
