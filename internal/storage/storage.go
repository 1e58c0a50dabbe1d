// Package storage defines the persistence interface for content records
// and provides postgres/pgvector and sqlite implementations.
package storage

import (
	"context"
	"errors"

	"github.com/hyperjump/oboe/internal/models"
)

// ErrNotFound is returned when an operation targets a record that does not exist.
var ErrNotFound = errors.New("content not found")

// Store defines content record persistence and similarity search.
type Store interface {
	// AddContent persists a new record. The record must carry a generated
	// id, a derived embedding, and a creation timestamp.
	AddContent(ctx context.Context, rec *models.ContentRecord) error

	// DeleteContent removes the record with the given id.
	// Returns ErrNotFound when no row matched.
	DeleteContent(ctx context.Context, id string) error

	// Search returns records ordered by ascending cosine distance from
	// queryVector, restricted by the query's filters and threshold, and
	// truncated to the query's limit. Ties on distance are broken by
	// creation time, then id.
	Search(ctx context.Context, queryVector []float32, q *models.SearchQuery) ([]*models.SearchResult, error)

	// Ping performs a trivial round-trip against the store.
	Ping(ctx context.Context) error

	Close() error
}
