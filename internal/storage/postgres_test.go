package storage

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hyperjump/oboe/internal/models"
)

// newPostgresTestStore connects to the database named by OBOE_TEST_POSTGRES
// (a pgx connection string) or skips the test. Requires the pgvector extension.
func newPostgresTestStore(t *testing.T) *PostgresStore {
	t.Helper()
	connString := os.Getenv("OBOE_TEST_POSTGRES")
	if connString == "" {
		t.Skip("OBOE_TEST_POSTGRES not set; skipping postgres integration test")
	}
	store, err := NewPostgresStore(context.Background(), connString, 3)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestPostgres_roundTrip(t *testing.T) {
	store := newPostgresTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	rec := record("U1", "postgres round trip", "itest", []float32{1, 0, 0}, now)
	rec.Metadata = map[string]interface{}{"suite": "integration"}
	if err := store.AddContent(ctx, rec); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = store.DeleteContent(ctx, rec.ID) }()

	q := &models.SearchQuery{Query: "q", Source: "itest"}
	if err := q.Validate(1.0); err != nil {
		t.Fatal(err)
	}
	results, err := store.Search(ctx, []float32{1, 0, 0}, q)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) == 0 {
		t.Fatal("expected at least one result")
	}
	got := results[0]
	if got.ID != rec.ID || got.Distance > 1e-6 {
		t.Errorf("top result: id=%q distance=%v", got.ID, got.Distance)
	}
	if got.Metadata["suite"] != "integration" {
		t.Errorf("metadata: %v", got.Metadata)
	}
	if !got.Created.Equal(now) {
		t.Errorf("created: got %v, want %v", got.Created, now)
	}
}

func TestPostgres_deleteNotFound(t *testing.T) {
	store := newPostgresTestStore(t)
	err := store.DeleteContent(context.Background(), uuid.NewString())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestPostgres_ping(t *testing.T) {
	store := newPostgresTestStore(t)
	if err := store.Ping(context.Background()); err != nil {
		t.Error(err)
	}
}
