// Package delimited normalises CSV and TSV tables.
package delimited

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
	"github.com/custodia-labs/sercha-rag/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-rag/internal/normalisers/tabular"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles delimited tables with a header row.
// The delimiter is a comma, or a tab for .tsv files.
type Normaliser struct{}

// New creates a new delimited table normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Format returns the format this normaliser handles.
func (n *Normaliser) Format() domain.Format {
	return domain.FormatDelimitedTable
}

// Normalise renders every data row as one line of "field: value" pairs.
func (n *Normaliser) Normalise(_ context.Context, doc *domain.Document) (string, error) {
	if doc == nil {
		return "", domain.ErrValidation
	}
	if !utf8.Valid(doc.Content) {
		return "", fmt.Errorf("%w: %s is not valid UTF-8", domain.ErrParseFailure, doc.Name)
	}

	reader := csv.NewReader(bytes.NewReader(doc.Content))
	reader.Comma = delimiterFor(doc.Name)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrParseFailure, doc.Name, err)
	}

	return tabular.FormatTable(records), nil
}

// delimiterFor picks the field delimiter from the filename.
func delimiterFor(name string) rune {
	if strings.EqualFold(filepath.Ext(name), ".tsv") {
		return '\t'
	}
	return ','
}
