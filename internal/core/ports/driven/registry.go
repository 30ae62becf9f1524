package driven

import (
	"context"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
)

// NormaliserRegistry selects the normaliser for a document.
// Dispatch is by the document's Format tag, never by MIME sniffing.
type NormaliserRegistry interface {
	// Normalise transforms a document using the normaliser for its format.
	// Returns domain.ErrUnsupportedFormat if no normaliser is registered.
	Normalise(ctx context.Context, doc *domain.Document) (string, error)

	// Register adds a normaliser, replacing any previous one for the same format.
	Register(normaliser Normaliser)

	// Formats returns all formats that can be normalised.
	Formats() []domain.Format
}
