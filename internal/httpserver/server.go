package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/davidbz/mirage/internal/config"
	"github.com/davidbz/mirage/internal/httpserver/middleware"
	"github.com/davidbz/mirage/internal/observability"
)

// Server represents the HTTP server.
type Server struct {
	config      config.ServerConfig
	handler     *Handler
	middlewares middleware.Middleware
	srv         *http.Server
}

// NewServer creates a new HTTP server.
func NewServer(
	cfg config.ServerConfig,
	handler *Handler,
	middlewares middleware.Middleware,
) *Server {
	return &Server{
		config:      cfg,
		handler:     handler,
		middlewares: middlewares,
		srv:         nil,
	}
}

// Routes builds the route table for the server. Exposed so tests can
// mount the full surface on httptest servers.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/v1/completions", s.handler.HandleCompletion)
	mux.HandleFunc("/v1/chat/completions", s.handler.HandleChatCompletion)
	mux.HandleFunc("/v1/embeddings", s.handler.HandleEmbeddings)
	mux.HandleFunc("/v1/models", s.handler.HandleModels)
	mux.HandleFunc("/health", s.handler.HandleHealth)
	mux.HandleFunc("/", s.handler.HandleRoot)

	return s.middlewares(mux)
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.srv = &http.Server{
		Addr:         s.config.Addr(),
		Handler:      s.Routes(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	ctx := context.Background()
	observability.FromContext(ctx).Info("starting HTTP server", observability.String("addr", s.config.Addr()))

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	observability.FromContext(ctx).Info("shutting down HTTP server")

	if s.srv == nil {
		return nil
	}

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
