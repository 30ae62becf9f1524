package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
	"github.com/custodia-labs/sercha-rag/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-rag/internal/logger"
)

// DefaultTopK is the number of passages retrieved when none is configured.
const DefaultTopK = 3

// RetrieverConfig configures a Retriever.
type RetrieverConfig struct {
	// TopK is the default number of passages. Zero means DefaultTopK.
	TopK int

	// ExcludeSeed drops the seed placeholder from results.
	ExcludeSeed bool
}

// Retriever embeds a query and returns the nearest indexed passages.
type Retriever struct {
	embedder    driven.EmbeddingService
	index       driven.VectorIndex
	topK        int
	excludeSeed bool
}

// NewRetriever creates a new retriever.
func NewRetriever(embedder driven.EmbeddingService, index driven.VectorIndex, cfg RetrieverConfig) *Retriever {
	if cfg.TopK <= 0 {
		cfg.TopK = DefaultTopK
	}
	return &Retriever{
		embedder:    embedder,
		index:       index,
		topK:        cfg.TopK,
		excludeSeed: cfg.ExcludeSeed,
	}
}

// TopK returns the default number of passages.
func (r *Retriever) TopK() int {
	return r.topK
}

// Retrieve returns the texts of the k nearest passages, best first.
// k <= 0 uses the configured default.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) ([]string, error) {
	results, err := r.RetrieveScored(ctx, query, k)
	if err != nil {
		return nil, err
	}

	texts := make([]string, len(results))
	for i, res := range results {
		texts[i] = res.Entry.Text
	}
	return texts, nil
}

// RetrieveScored is Retrieve with scores and metadata.
// Readiness is checked before the query is embedded.
func (r *Retriever) RetrieveScored(ctx context.Context, query string, k int) ([]domain.ScoredEntry, error) {
	if k <= 0 {
		k = r.topK
	}
	if !r.index.State().IsReady() {
		return nil, domain.ErrIndexNotReady
	}

	vec, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	want := k
	if r.excludeSeed {
		want = k + 1
	}

	results, err := r.index.Search(ctx, vec, want)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}

	if r.excludeSeed {
		filtered := results[:0]
		for _, res := range results {
			if !res.Entry.IsSeed() {
				filtered = append(filtered, res)
			}
		}
		results = filtered
		if len(results) > k {
			results = results[:k]
		}
	}

	logger.Debug("Retrieved %d passages (k=%d)", len(results), k)
	return results, nil
}
