// Package ai provides factory functions for creating model service adapters.
package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	ollamaembed "github.com/custodia-labs/sercha-rag/internal/adapters/driven/embedding/ollama"
	ollamallm "github.com/custodia-labs/sercha-rag/internal/adapters/driven/llm/ollama"
	"github.com/custodia-labs/sercha-rag/internal/core/domain"
	"github.com/custodia-labs/sercha-rag/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// Services holds the model adapters built from settings.
type Services struct {
	Embedding  driven.EmbeddingService
	Generation driven.GenerationService
}

// Close releases all resources held by Services.
func (s *Services) Close() error {
	var errs []error
	if s.Embedding != nil {
		errs = append(errs, s.Embedding.Close())
	}
	if s.Generation != nil {
		errs = append(errs, s.Generation.Close())
	}
	return errors.Join(errs...)
}

// Create builds the embedding and generation services for settings.
func Create(settings *domain.Settings) *Services {
	return &Services{
		Embedding:  CreateEmbeddingService(settings),
		Generation: CreateGenerationService(settings),
	}
}

// CreateEmbeddingService creates the Ollama embedding service.
func CreateEmbeddingService(settings *domain.Settings) driven.EmbeddingService {
	return ollamaembed.NewEmbeddingService(ollamaembed.Config{
		BaseURL:           settings.Ollama.BaseURL,
		Model:             settings.Embedding.Model,
		Timeout:           settings.Embedding.Timeout,
		RequestsPerSecond: settings.Embedding.RequestsPerSecond,
	})
}

// CreateGenerationService creates the Ollama generation service.
func CreateGenerationService(settings *domain.Settings) driven.GenerationService {
	return ollamallm.NewLLMService(ollamallm.LLMConfig{
		BaseURL: settings.Ollama.BaseURL,
		Model:   settings.Generation.Model,
		Timeout: settings.Generation.Timeout,
	})
}

// Ping checks that both services are reachable.
// Failures keep the adapter's domain sentinel and add a hint for fixing them.
func (s *Services) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := s.Embedding.Ping(ctx); err != nil {
		return fmt.Errorf("embedding service: %w. Run 'sercha-rag settings wizard' to fix", err)
	}
	if err := s.Generation.Ping(ctx); err != nil {
		return fmt.Errorf("generation service: %w. Run 'sercha-rag settings wizard' to fix", err)
	}
	return nil
}
