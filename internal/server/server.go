// Package server provides the HTTP API for Oboe.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hyperjump/oboe/internal/config"
	"github.com/hyperjump/oboe/internal/embedding"
	"github.com/hyperjump/oboe/internal/storage"
)

// Server is the HTTP server for the Oboe API. Handlers are stateless; the
// embedder provider and the store are the only shared dependencies.
type Server struct {
	store            storage.Store
	embedder         *embedding.Provider
	config           *config.ServerConfig
	defaultThreshold float64
	logger           *zap.Logger
	server           *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(
	store storage.Store,
	embedder *embedding.Provider,
	cfg *config.ServerConfig,
	defaultThreshold float64,
	logger *zap.Logger,
) *Server {
	return &Server{
		store:            store,
		embedder:         embedder,
		config:           cfg,
		defaultThreshold: defaultThreshold,
		logger:           logger,
	}
}

// Handler builds the API router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/content", s.handleAddContent)
	r.Delete("/content/{id}", s.handleDeleteContent)
	r.Post("/search", s.handleSearch)
	r.Get("/health", s.handleHealth)

	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
