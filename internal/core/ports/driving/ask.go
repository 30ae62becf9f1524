package driving

import (
	"context"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
)

// AskService runs the read path: retrieve, compose, generate.
type AskService interface {
	// Ask answers a question from the indexed content.
	Ask(ctx context.Context, req domain.AskRequest) (*domain.Answer, error)

	// Search returns the scored passages a question would retrieve.
	Search(ctx context.Context, query string, k int) ([]domain.ScoredEntry, error)
}
