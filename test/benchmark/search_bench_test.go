package benchmark

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hyperjump/oboe/internal/embedding"
	"github.com/hyperjump/oboe/internal/models"
	"github.com/hyperjump/oboe/internal/storage"
	"github.com/hyperjump/oboe/pkg/utils"
)

func BenchmarkSQLiteSearch(b *testing.B) {
	const dimensions = 384
	store, err := storage.NewSQLiteStore(filepath.Join(b.TempDir(), "bench.db"), dimensions)
	if err != nil {
		b.Fatal(err)
	}
	defer store.Close()

	embedder := embedding.NewMockEmbedder(dimensions)
	ctx := context.Background()
	for i := 0; i < 1000; i++ {
		text := fmt.Sprintf("benchmark record number %d with some filler text", i)
		vec, _ := embedder.Embed(ctx, text)
		rec := &models.ContentRecord{
			ID:        uuid.NewString(),
			UserID:    fmt.Sprintf("user%03d", i%10),
			Content:   text,
			Embedding: vec,
			Created:   time.Now().UTC(),
		}
		if err := store.AddContent(ctx, rec); err != nil {
			b.Fatal(err)
		}
	}

	query := &models.SearchQuery{Query: "benchmark record number 42", Limit: 10}
	if err := query.Validate(2.0); err != nil {
		b.Fatal(err)
	}
	queryVec, _ := embedder.Embed(ctx, query.Query)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := store.Search(ctx, queryVec, query); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMockEmbedder_Embed(b *testing.B) {
	e := embedding.NewMockEmbedder(384)
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = e.Embed(ctx, "benchmark query text for embedding")
	}
}

func BenchmarkCosineDistance(b *testing.B) {
	e := embedding.NewMockEmbedder(384)
	ctx := context.Background()
	x, _ := e.Embed(ctx, "first vector")
	y, _ := e.Embed(ctx, "second vector")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = utils.CosineDistance(x, y)
	}
}
