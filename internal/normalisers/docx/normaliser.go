// Package docx normalises Office Open XML word-processor documents.
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
	"github.com/custodia-labs/sercha-rag/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

const documentPart = "word/document.xml"

// Normaliser handles DOCX documents.
type Normaliser struct{}

// New creates a new DOCX normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Format returns the format this normaliser handles.
func (n *Normaliser) Format() domain.Format {
	return domain.FormatWordProcessor
}

// Normalise extracts the body text, one line per paragraph.
func (n *Normaliser) Normalise(ctx context.Context, doc *domain.Document) (string, error) {
	if doc == nil {
		return "", domain.ErrValidation
	}

	reader, err := zip.NewReader(bytes.NewReader(doc.Content), int64(len(doc.Content)))
	if err != nil {
		return "", fmt.Errorf("%w: %s is not a DOCX archive: %v", domain.ErrParseFailure, doc.Name, err)
	}

	text, err := extractDocumentText(ctx, reader)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrParseFailure, doc.Name, err)
	}
	return text, nil
}

var errNoDocumentPart = errors.New("missing " + documentPart)

// extractDocumentText extracts text from word/document.xml.
func extractDocumentText(ctx context.Context, reader *zip.Reader) (string, error) {
	for _, file := range reader.File {
		if file.Name != documentPart {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return "", err
		}
		defer rc.Close()

		return parseDocumentXML(ctx, rc)
	}
	return "", errNoDocumentPart
}

// parseDocumentXML walks the token stream of the document part.
// Text runs are concatenated and paragraphs become newlines. Tabs and
// breaks count only inside a run (w:r); tab stops in paragraph properties
// are formatting.
func parseDocumentXML(ctx context.Context, r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var result strings.Builder
	inText := false
	runDepth := 0
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "r":
				runDepth++
			case "t":
				inText = true
			case "tab":
				if runDepth > 0 {
					result.WriteByte('\t')
				}
			case "br", "cr":
				if runDepth > 0 {
					result.WriteByte('\n')
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "r":
				if runDepth > 0 {
					runDepth--
				}
			case "t":
				inText = false
			case "p":
				result.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				result.Write(t)
			}
		}
	}

	return strings.TrimSpace(result.String()), nil
}
