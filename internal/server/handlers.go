package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hyperjump/oboe/internal/models"
	"github.com/hyperjump/oboe/internal/storage"
)

func (s *Server) handleAddContent(w http.ResponseWriter, r *http.Request) {
	var input models.AddContentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if err := input.Validate(); err != nil {
		s.respondValidationError(w, err)
		return
	}
	s.logger.Debug("add content request", zap.String("user_id", input.UserID), zap.Int("content_len", len(input.Content)))

	embedder, err := s.embedder.Get()
	if err != nil {
		s.logger.Error("add content: encoder unavailable", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "failed to store content")
		return
	}
	vector, err := embedder.Embed(r.Context(), input.Content)
	if err != nil {
		s.logger.Error("add content: encoding failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "failed to store content")
		return
	}

	rec := &models.ContentRecord{
		ID:        uuid.NewString(),
		UserID:    input.UserID,
		Content:   input.Content,
		Embedding: vector,
		Source:    input.Source,
		Metadata:  input.Metadata,
		Created:   time.Now().UTC(),
	}
	if err := s.store.AddContent(r.Context(), rec); err != nil {
		s.logger.Error("add content: store failed", zap.String("id", rec.ID), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "failed to store content")
		return
	}

	s.respondJSON(w, http.StatusCreated, models.AddContentResponse{
		ID:      rec.ID,
		UserID:  rec.UserID,
		Content: rec.Content,
		Created: rec.Created,
	})
}

func (s *Server) handleDeleteContent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.logger.Debug("delete content request", zap.String("id", id))

	// Identifiers are UUIDs; anything else cannot match a record.
	if _, err := uuid.Parse(id); err != nil {
		s.respondError(w, http.StatusNotFound, "content not found")
		return
	}
	if err := s.store.DeleteContent(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "content not found")
			return
		}
		s.logger.Error("delete content: store failed", zap.String("id", id), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "failed to delete content")
		return
	}
	s.respondJSON(w, http.StatusOK, models.DeleteResponse{
		Message: "content deleted successfully",
		ID:      id,
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var query models.SearchQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		s.respondError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if err := query.Validate(s.defaultThreshold); err != nil {
		s.respondValidationError(w, err)
		return
	}
	s.logger.Debug("search request", zap.String("query", query.Query), zap.Int("limit", query.Limit))

	embedder, err := s.embedder.Get()
	if err != nil {
		s.logger.Error("search: encoder unavailable", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "search failed")
		return
	}
	vector, err := embedder.Embed(r.Context(), query.Query)
	if err != nil {
		s.logger.Error("search: encoding failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "search failed")
		return
	}

	results, err := s.store.Search(r.Context(), vector, &query)
	if err != nil {
		s.logger.Error("search: store failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "search failed")
		return
	}
	if results == nil {
		results = []*models.SearchResult{}
	}
	s.respondJSON(w, http.StatusOK, results)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.logger.Warn("health check: store unreachable", zap.Error(err))
		s.respondJSON(w, http.StatusServiceUnavailable, models.HealthResponse{
			Status:   "unhealthy",
			Database: "disconnected",
		})
		return
	}
	s.respondJSON(w, http.StatusOK, models.HealthResponse{
		Status:   "healthy",
		Database: "connected",
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}

func (s *Server) respondValidationError(w http.ResponseWriter, err error) {
	var ve *models.ValidationError
	if errors.As(err, &ve) {
		s.respondJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":  "validation failed",
			"fields": ve.Fields,
		})
		return
	}
	s.respondError(w, http.StatusUnprocessableEntity, err.Error())
}
