package driving

import (
	"context"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
)

// IndexService owns the vector index lifecycle.
type IndexService interface {
	// Start begins seeding in the background and returns immediately.
	// Requests that arrive before seeding completes fail with domain.ErrIndexNotReady.
	Start(ctx context.Context) error

	// Wait blocks until seeding has finished or ctx is done.
	Wait(ctx context.Context) error

	// Status reports the current lifecycle state.
	Status() domain.IndexStatus
}
