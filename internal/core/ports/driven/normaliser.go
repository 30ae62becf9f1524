package driven

import (
	"context"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
)

// Normaliser converts one document format into a single flat text.
type Normaliser interface {
	// Format returns the format this normaliser handles.
	Format() domain.Format

	// Normalise returns the flattened text of the document.
	// Decoding failures wrap domain.ErrParseFailure.
	Normalise(ctx context.Context, doc *domain.Document) (string, error)
}
