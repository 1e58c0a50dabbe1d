package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/hyperjump/oboe/internal/models"
)

// Lazy defers backend creation until first use. It backs the degraded
// startup mode: when the database is unreachable at boot the server can
// still come up, each operation retries the connection, and the health
// endpoint reports the store as disconnected until it succeeds. Creation
// happens at most once; a failed attempt is retried on the next call.
type Lazy struct {
	create func() (Store, error)
	mu     sync.Mutex
	store  Store
}

// NewLazy returns a Store that creates the real backend via create on first use.
func NewLazy(create func() (Store, error)) *Lazy {
	return &Lazy{create: create}
}

func (l *Lazy) get() (Store, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.store != nil {
		return l.store, nil
	}
	store, err := l.create()
	if err != nil {
		return nil, fmt.Errorf("store unavailable: %w", err)
	}
	l.store = store
	return l.store, nil
}

func (l *Lazy) AddContent(ctx context.Context, rec *models.ContentRecord) error {
	store, err := l.get()
	if err != nil {
		return err
	}
	return store.AddContent(ctx, rec)
}

func (l *Lazy) DeleteContent(ctx context.Context, id string) error {
	store, err := l.get()
	if err != nil {
		return err
	}
	return store.DeleteContent(ctx, id)
}

func (l *Lazy) Search(ctx context.Context, queryVector []float32, q *models.SearchQuery) ([]*models.SearchResult, error) {
	store, err := l.get()
	if err != nil {
		return nil, err
	}
	return store.Search(ctx, queryVector, q)
}

func (l *Lazy) Ping(ctx context.Context) error {
	store, err := l.get()
	if err != nil {
		return err
	}
	return store.Ping(ctx)
}

func (l *Lazy) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.store == nil {
		return nil
	}
	err := l.store.Close()
	l.store = nil
	return err
}
