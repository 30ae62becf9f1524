package driven

import (
	"context"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
)

// VectorIndex stores entries in memory and answers nearest-neighbour queries
// by cosine similarity.
//
// The index is seeded with a placeholder entry before it serves anything, so
// a search is always well-defined. Insert and Search outside the ready state
// return domain.ErrIndexNotReady. There is no update or delete.
type VectorIndex interface {
	// Insert appends entries and returns how many were stored.
	Insert(ctx context.Context, entries []domain.IndexedEntry) (int, error)

	// Search returns at most min(k, Len()) entries ordered by descending similarity.
	Search(ctx context.Context, query []float32, k int) ([]domain.ScoredEntry, error)

	// MarkSeeding moves the index from uninitialized to seeding.
	MarkSeeding() error

	// Seed stores the placeholder entry and makes the index ready.
	Seed(ctx context.Context, entry domain.IndexedEntry) error

	// MarkFailed records a seeding failure.
	MarkFailed(err error)

	// State returns the lifecycle state.
	State() domain.IndexState

	// Status returns a snapshot for reporting.
	Status() domain.IndexStatus

	// Len returns the number of stored entries.
	Len() int

	// Dimensions returns the fixed vector size, 0 until seeded.
	Dimensions() int
}
