package driving

import "github.com/custodia-labs/sercha-rag/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, with environment
	// overrides applied on top of the config file.
	Get() (*domain.Settings, error)

	// Set stores a single configuration value by dot-notation key.
	Set(key string, value any) error

	// GetDefaults returns default settings.
	GetDefaults() domain.Settings

	// Validate checks settings for values the pipeline cannot run with.
	Validate(settings *domain.Settings) error
}
