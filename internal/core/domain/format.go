package domain

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Format identifies how a document is normalised.
type Format string

// Supported source formats.
const (
	// FormatPlainText is UTF-8 text passed through verbatim.
	FormatPlainText Format = "plain_text"

	// FormatDelimitedTable is a CSV or TSV file with a header row.
	FormatDelimitedTable Format = "delimited_table"

	// FormatSpreadsheet is an OOXML workbook.
	FormatSpreadsheet Format = "spreadsheet"

	// FormatWordProcessor is a DOCX document.
	FormatWordProcessor Format = "word_processor"

	// FormatStructuredRecord is inline key-value data submitted without a file.
	FormatStructuredRecord Format = "structured_record"
)

// extensionFormats maps lower-case file extensions to formats.
// Structured records never come from a file.
var extensionFormats = map[string]Format{
	".txt":      FormatPlainText,
	".text":     FormatPlainText,
	".md":       FormatPlainText,
	".markdown": FormatPlainText,
	".log":      FormatPlainText,
	".csv":      FormatDelimitedTable,
	".tsv":      FormatDelimitedTable,
	".xlsx":     FormatSpreadsheet,
	".xlsm":     FormatSpreadsheet,
	".docx":     FormatWordProcessor,
}

// FormatFromFilename selects a format from a filename's extension.
// Returns ErrUnsupportedFormat for unknown or missing extensions.
func FormatFromFilename(name string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return "", fmt.Errorf("%w: %q has no extension", ErrUnsupportedFormat, name)
	}
	format, ok := extensionFormats[ext]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	return format, nil
}

// SupportedExtensions returns every extension accepted for file ingest, sorted.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(extensionFormats))
	for ext := range extensionFormats {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// IsValid returns true if the format is recognised.
func (f Format) IsValid() bool {
	switch f {
	case FormatPlainText, FormatDelimitedTable, FormatSpreadsheet, FormatWordProcessor, FormatStructuredRecord:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (f Format) String() string {
	return string(f)
}

// Description returns a human-readable description of the format.
func (f Format) Description() string {
	switch f {
	case FormatPlainText:
		return "Plain text"
	case FormatDelimitedTable:
		return "Delimited table (CSV/TSV)"
	case FormatSpreadsheet:
		return "Spreadsheet (XLSX)"
	case FormatWordProcessor:
		return "Word document (DOCX)"
	case FormatStructuredRecord:
		return "Structured record"
	default:
		return unknownDescription
	}
}
