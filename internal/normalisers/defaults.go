package normalisers

import (
	"github.com/custodia-labs/sercha-rag/internal/normalisers/delimited"
	"github.com/custodia-labs/sercha-rag/internal/normalisers/docx"
	"github.com/custodia-labs/sercha-rag/internal/normalisers/plaintext"
	"github.com/custodia-labs/sercha-rag/internal/normalisers/record"
	"github.com/custodia-labs/sercha-rag/internal/normalisers/spreadsheet"
)

// RegisterDefaults registers all built-in normalisers with the registry.
func RegisterDefaults(r *Registry) {
	r.Register(plaintext.New())
	r.Register(delimited.New())
	r.Register(spreadsheet.New())
	r.Register(docx.New())
	r.Register(record.New())
}

// NewDefaultRegistry creates a registry holding every built-in normaliser.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}
