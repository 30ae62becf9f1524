package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
)

// IngestService runs the write path: normalise, chunk, embed, insert.
type IngestService interface {
	// IngestContent ingests inline content: a string or structured data.
	// An empty source defaults to domain.SourceInline.
	IngestContent(ctx context.Context, content any, source string) (*domain.IngestResult, error)

	// IngestFile ingests an uploaded file whose format is taken from filename.
	// The body is staged in a temporary file that is removed before returning.
	IngestFile(ctx context.Context, filename string, r io.Reader) (*domain.IngestResult, error)

	// Ingestions lists receipts of completed ingests, oldest first.
	Ingestions(ctx context.Context) ([]domain.Ingestion, error)
}
