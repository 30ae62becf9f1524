// Package tabular renders header-plus-rows tables as "field: value" lines.
package tabular

import (
	"strconv"
	"strings"
)

// FieldSeparator joins the field: value pairs of one row.
const FieldSeparator = ", "

// FormatRow renders one row as ordered "field: value" pairs joined by
// FieldSeparator. Field names are trimmed; values are written verbatim.
// Missing trailing cells render as empty values; cells beyond the header
// are named column_N (1-based).
func FormatRow(header, row []string) string {
	n := len(header)
	if len(row) > n {
		n = len(row)
	}

	pairs := make([]string, 0, n)
	for i := 0; i < n; i++ {
		name := "column_" + strconv.Itoa(i+1)
		if i < len(header) && strings.TrimSpace(header[i]) != "" {
			name = strings.TrimSpace(header[i])
		}
		value := ""
		if i < len(row) {
			value = row[i]
		}
		pairs = append(pairs, name+": "+value)
	}
	return strings.Join(pairs, FieldSeparator)
}

// FormatTable renders records whose first row is the header.
// Each data row becomes one line; rows with no non-blank cell are skipped.
// A table with only a header renders as the empty string.
func FormatTable(records [][]string) string {
	if len(records) < 2 {
		return ""
	}

	header := append([]string(nil), records[0]...)
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	lines := make([]string, 0, len(records)-1)
	for _, row := range records[1:] {
		if isBlankRow(row) {
			continue
		}
		lines = append(lines, FormatRow(header, row))
	}
	return strings.Join(lines, "\n")
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
