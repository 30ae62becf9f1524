// Package record normalises structured records supplied inline,
// such as JSON objects posted to the ingest endpoint.
package record

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
	"github.com/custodia-labs/sercha-rag/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser renders records as YAML so every field appears as "key: value".
type Normaliser struct{}

// New creates a new structured record normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Format returns the format this normaliser handles.
func (n *Normaliser) Format() domain.Format {
	return domain.FormatStructuredRecord
}

// Normalise renders doc.Record. A string record is used verbatim.
func (n *Normaliser) Normalise(_ context.Context, doc *domain.Document) (text string, err error) {
	if doc == nil || doc.Record == nil {
		return "", domain.ErrValidation
	}

	if s, ok := doc.Record.(string); ok {
		return s, nil
	}

	// yaml.v3 panics on kinds it cannot marshal, such as funcs and channels.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%w: encode record: %v", domain.ErrParseFailure, r)
		}
	}()

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc.Record); err != nil {
		return "", fmt.Errorf("%w: encode record: %v", domain.ErrParseFailure, err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("%w: encode record: %v", domain.ErrParseFailure, err)
	}

	return strings.TrimRight(buf.String(), "\n"), nil
}
