package driven

import (
	"context"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
)

// Chunker splits normalised text into overlapping chunks.
type Chunker interface {
	// Process splits text. Empty text yields no chunks and no error.
	Process(ctx context.Context, text string) ([]domain.Chunk, error)
}
