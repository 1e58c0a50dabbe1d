package storage

import (
	"context"
	"fmt"

	"github.com/hyperjump/oboe/internal/config"
)

// NewStore creates the storage backend selected by cfg.Backend.
func NewStore(ctx context.Context, cfg *config.DatabaseConfig, dimensions int) (Store, error) {
	switch cfg.Backend {
	case "postgres", "":
		return NewPostgresStore(ctx, cfg.ConnString(), dimensions)
	case "sqlite":
		return NewSQLiteStore(cfg.Path, dimensions)
	default:
		return nil, fmt.Errorf("unknown storage backend %q (want postgres or sqlite)", cfg.Backend)
	}
}
