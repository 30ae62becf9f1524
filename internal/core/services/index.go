package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
	"github.com/custodia-labs/sercha-rag/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-rag/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-rag/internal/logger"
)

// Ensure IndexService implements the interface.
var _ driving.IndexService = (*IndexService)(nil)

// SeedSource is the source tag on the placeholder entry.
const SeedSource = "seed"

// IndexService seeds the vector index in the background and reports its state.
type IndexService struct {
	index    driven.VectorIndex
	embedder driven.EmbeddingService
	seedText string
	done     chan struct{}
}

// NewIndexService creates a new index service.
func NewIndexService(index driven.VectorIndex, embedder driven.EmbeddingService, seedText string) *IndexService {
	return &IndexService{
		index:    index,
		embedder: embedder,
		seedText: seedText,
		done:     make(chan struct{}),
	}
}

// Start begins seeding and returns immediately. It may only be called once.
// ctx bounds the seeding call to the embedding provider.
func (s *IndexService) Start(ctx context.Context) error {
	if s.seedText == "" {
		return fmt.Errorf("%w: seed text is empty", domain.ErrValidation)
	}
	if err := s.index.MarkSeeding(); err != nil {
		return fmt.Errorf("start index: %w", err)
	}

	go s.seed(ctx)
	return nil
}

func (s *IndexService) seed(ctx context.Context) {
	defer close(s.done)

	logger.Info("Seeding vector index with model %s", s.embedder.ModelName())

	vec, err := s.embedder.Embed(ctx, s.seedText)
	if err != nil {
		s.index.MarkFailed(err)
		logger.Error("Vector index seeding failed: %v", err)
		return
	}

	entry := domain.IndexedEntry{
		ID:     uuid.New().String(),
		Vector: vec,
		Text:   s.seedText,
		Metadata: map[string]any{
			domain.MetaSource: SeedSource,
		},
	}
	if err := s.index.Seed(ctx, entry); err != nil {
		s.index.MarkFailed(err)
		logger.Error("Vector index seeding failed: %v", err)
		return
	}

	logger.Info("Vector index ready (%d dimensions)", len(vec))
}

// Wait blocks until seeding has finished or ctx is done.
// A failed seed is reported as domain.ErrIndexNotReady carrying the cause.
func (s *IndexService) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.done:
	}

	status := s.index.Status()
	if !status.State.IsReady() {
		return fmt.Errorf("%w: seeding failed: %v", domain.ErrIndexNotReady, status.Err)
	}
	return nil
}

// Status reports the current lifecycle state.
func (s *IndexService) Status() domain.IndexStatus {
	return s.index.Status()
}
