// Package embedding converts text to fixed-dimension vectors via a local ONNX model.
package embedding

import "context"

// Embedder produces vector embeddings for text. Implementations must be
// safe for concurrent use; inference is read-only.
type Embedder interface {
	// Embed returns the embedding for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)
	// EmbedBatch embeds all texts in one model invocation.
	// Output order matches input order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	// Dimensions returns the embedding dimension.
	Dimensions() int
	Close() error
}
