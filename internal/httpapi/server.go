package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/hailam/minishare/internal/config"
	"github.com/hailam/minishare/internal/logging"
)

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 10 * time.Second

// Server is the HTTP API server.
type Server struct {
	config   config.ServerConfig
	handlers *Handlers
	server   *http.Server
	logger   *zap.Logger
}

// NewServer creates a new API server.
func NewServer(cfg config.ServerConfig, h *Handlers) *Server {
	logger := logging.OrNop(h.Logger)
	h.Logger = logger

	return &Server{
		config:   cfg,
		handlers: h,
		logger:   logger,
	}
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", s.handlers.Health)
	mux.HandleFunc("POST /api/encode", s.handlers.Encode)
	mux.HandleFunc("GET /api/decode", s.handlers.Decode)
	mux.HandleFunc("POST /api/stats", s.handlers.Stats)
	mux.HandleFunc("GET /api/preview.png", s.handlers.Preview)
	mux.HandleFunc("POST /api/positions", s.handlers.SavePosition)
	mux.HandleFunc("GET /api/positions", s.handlers.ListPositions)
	mux.HandleFunc("GET /api/positions/{code}", s.handlers.GetPosition)
	mux.HandleFunc("DELETE /api/positions/{code}", s.handlers.DeletePosition)
	mux.HandleFunc("/api/ws", s.handlers.WebSocket)

	return requestIDMiddleware(corsMiddleware(loggingMiddleware(s.logger, mux)))
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         s.config.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("starting server",
			zap.String("addr", s.server.Addr),
			zap.String("version", s.handlers.Version))
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err, ok := <-errChan:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
		s.logger.Info("shutting down", zap.Error(context.Cause(ctx)))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	s.logger.Info("server stopped")
	return nil
}
