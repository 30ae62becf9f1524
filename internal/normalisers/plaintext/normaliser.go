// Package plaintext normalises UTF-8 text documents.
package plaintext

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
	"github.com/custodia-labs/sercha-rag/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles plain text documents.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Format returns the format this normaliser handles.
func (n *Normaliser) Format() domain.Format {
	return domain.FormatPlainText
}

// Normalise passes the content through verbatim.
// Content that is not valid UTF-8 is rejected as a parse failure.
func (n *Normaliser) Normalise(_ context.Context, doc *domain.Document) (string, error) {
	if doc == nil {
		return "", domain.ErrValidation
	}
	if !utf8.Valid(doc.Content) {
		return "", fmt.Errorf("%w: %s is not valid UTF-8", domain.ErrParseFailure, doc.Name)
	}
	return string(doc.Content), nil
}
