package driven

import (
	"context"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
)

// IngestionStore keeps receipts of completed ingests for listing.
type IngestionStore interface {
	// Save records an ingestion receipt.
	Save(ctx context.Context, ingestion *domain.Ingestion) error

	// Get retrieves a receipt by ID.
	Get(ctx context.Context, id string) (*domain.Ingestion, error)

	// List returns all receipts, oldest first.
	List(ctx context.Context) ([]domain.Ingestion, error)
}
