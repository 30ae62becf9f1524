// Package spreadsheet normalises XLSX workbooks using excelize.
package spreadsheet

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
	"github.com/custodia-labs/sercha-rag/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-rag/internal/normalisers/tabular"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles spreadsheet workbooks.
// Every sheet is read in workbook order; its first row is the header.
type Normaliser struct{}

// New creates a new spreadsheet normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Format returns the format this normaliser handles.
func (n *Normaliser) Format() domain.Format {
	return domain.FormatSpreadsheet
}

// Normalise renders every data row of every sheet as "field: value" pairs.
func (n *Normaliser) Normalise(ctx context.Context, doc *domain.Document) (string, error) {
	if doc == nil {
		return "", domain.ErrValidation
	}

	f, err := excelize.OpenReader(bytes.NewReader(doc.Content))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrParseFailure, doc.Name, err)
	}
	defer f.Close()

	var sheets []string
	for _, sheet := range f.GetSheetList() {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("%w: %s sheet %q: %v", domain.ErrParseFailure, doc.Name, sheet, err)
		}
		if text := tabular.FormatTable(rows); text != "" {
			sheets = append(sheets, text)
		}
	}

	return strings.Join(sheets, "\n"), nil
}
