package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
	"github.com/custodia-labs/sercha-rag/internal/core/ports/driven"
)

// Ensure IngestionStore implements the interface.
var _ driven.IngestionStore = (*IngestionStore)(nil)

// IngestionStore is an in-memory log of completed ingests.
// Receipts are kept in arrival order and lost on restart.
type IngestionStore struct {
	mu      sync.RWMutex
	order   []string
	records map[string]domain.Ingestion
}

// NewIngestionStore creates a new in-memory ingestion store.
func NewIngestionStore() *IngestionStore {
	return &IngestionStore{
		records: make(map[string]domain.Ingestion),
	}
}

// Save records an ingestion receipt. IDs must be unique.
func (s *IngestionStore) Save(_ context.Context, ingestion *domain.Ingestion) error {
	if ingestion == nil || ingestion.ID == "" {
		return fmt.Errorf("%w: ingestion requires an ID", domain.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[ingestion.ID]; exists {
		return fmt.Errorf("%w: duplicate ingestion ID %s", domain.ErrValidation, ingestion.ID)
	}
	s.records[ingestion.ID] = *ingestion
	s.order = append(s.order, ingestion.ID)
	return nil
}

// Get retrieves a receipt by ID.
func (s *IngestionStore) Get(_ context.Context, id string) (*domain.Ingestion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ing, ok := s.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &ing, nil
}

// List returns all receipts, oldest first.
func (s *IngestionStore) List(_ context.Context) ([]domain.Ingestion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Ingestion, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.records[id])
	}
	return result, nil
}
