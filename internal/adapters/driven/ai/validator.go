package ai

import (
	"context"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
)

// ConfigValidator checks model settings against the live provider.
type ConfigValidator struct{}

// NewConfigValidator creates a new config validator.
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{}
}

// Validate builds services for settings and pings them.
func (v *ConfigValidator) Validate(ctx context.Context, settings *domain.Settings) error {
	svcs := Create(settings)
	defer svcs.Close()
	return svcs.Ping(ctx)
}
