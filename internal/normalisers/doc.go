// Package normalisers provides implementations of the Normaliser interface
// for each supported source format, plus the registry that dispatches a
// document to its normaliser by format tag.
//
// Tabular formats (delimited tables and spreadsheets) share one row layout,
// see tabular.FormatTable: every row becomes a single line so that a row is never
// split across unrelated context.
package normalisers
