package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
	"github.com/custodia-labs/sercha-rag/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-rag/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-rag/internal/logger"
)

// Ensure AskService implements the interface.
var _ driving.AskService = (*AskService)(nil)

// AskService answers questions from indexed content.
type AskService struct {
	retriever *Retriever
	composer  *PromptComposer
	generator driven.GenerationService
}

// NewAskService creates a new ask service.
func NewAskService(retriever *Retriever, composer *PromptComposer, generator driven.GenerationService) *AskService {
	return &AskService{
		retriever: retriever,
		composer:  composer,
		generator: generator,
	}
}

// Ask retrieves context for the question, composes the augmented prompt
// and forwards it to the language model.
func (s *AskService) Ask(ctx context.Context, req domain.AskRequest) (*domain.Answer, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, fmt.Errorf("%w: question is required", domain.ErrValidation)
	}

	contexts, err := s.retriever.Retrieve(ctx, question, 0)
	if err != nil {
		return nil, fmt.Errorf("retrieve: %w", err)
	}

	prompt := s.composer.Compose(contexts, question)

	model := req.Model
	if model == "" {
		model = s.generator.ModelName()
	}
	logger.Debug("Generating with %s from %d passages", model, len(contexts))

	response, err := s.generator.Generate(ctx, prompt, model)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	return &domain.Answer{
		Response: response,
		Model:    model,
		Context:  contexts,
	}, nil
}

// Search returns the scored passages a question would retrieve.
func (s *AskService) Search(ctx context.Context, query string, k int) ([]domain.ScoredEntry, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", domain.ErrValidation)
	}
	return s.retriever.RetrieveScored(ctx, query, k)
}
