package normalisers

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
	"github.com/custodia-labs/sercha-rag/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry maps formats to their normalisers.
type Registry struct {
	mu          sync.RWMutex
	normalisers map[domain.Format]driven.Normaliser
}

// NewRegistry creates a registry with the given normalisers registered.
func NewRegistry(normalisers ...driven.Normaliser) *Registry {
	r := &Registry{
		normalisers: make(map[domain.Format]driven.Normaliser),
	}
	for _, n := range normalisers {
		r.Register(n)
	}
	return r
}

// Register adds a normaliser, replacing any previous one for the same format.
func (r *Registry) Register(normaliser driven.Normaliser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.normalisers[normaliser.Format()] = normaliser
}

// Normalise transforms a document using the normaliser for its format.
func (r *Registry) Normalise(ctx context.Context, doc *domain.Document) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("%w: document is nil", domain.ErrValidation)
	}

	r.mu.RLock()
	n, ok := r.normalisers[doc.Format]
	r.mu.RUnlock()

	if !ok {
		return "", fmt.Errorf("%w: no normaliser for %q", domain.ErrUnsupportedFormat, doc.Format)
	}
	return n.Normalise(ctx, doc)
}

// Formats returns all registered formats in sorted order.
func (r *Registry) Formats() []domain.Format {
	r.mu.RLock()
	defer r.mu.RUnlock()

	formats := make([]domain.Format, 0, len(r.normalisers))
	for f := range r.normalisers {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}
