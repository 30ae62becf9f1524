// Package driven provides interfaces for infrastructure adapters (secondary/outbound ports).
package driven

import "context"

// GenerationService forwards a finished prompt to the language model.
// One synchronous request per call, no retry and no streaming.
type GenerationService interface {
	// Generate returns the model's completion for prompt.
	// An empty model selects the service default.
	// Transport failures wrap domain.ErrGenerationUnavailable; non-success
	// responses are *domain.GenerationError (domain.ErrGenerationRejected).
	Generate(ctx context.Context, prompt, model string) (string, error)

	// ModelName returns the default model.
	ModelName() string

	// Ping validates the service is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
