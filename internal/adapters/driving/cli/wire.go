package cli

import (
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/sercha-rag/internal/adapters/driven/ai"
	"github.com/custodia-labs/sercha-rag/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sercha-rag/internal/adapters/driven/storage/memory"
	vectormemory "github.com/custodia-labs/sercha-rag/internal/adapters/driven/vector/memory"
	"github.com/custodia-labs/sercha-rag/internal/core/domain"
	"github.com/custodia-labs/sercha-rag/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-rag/internal/core/services"
	"github.com/custodia-labs/sercha-rag/internal/logger"
	"github.com/custodia-labs/sercha-rag/internal/normalisers"
	"github.com/custodia-labs/sercha-rag/internal/postprocessors/chunker"
)

// newConfigStore opens the TOML store, or an empty in-memory one with --no-config.
func newConfigStore() (driven.ConfigStore, error) {
	if noConfig {
		return memory.NewConfigStore(), nil
	}
	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	return store, nil
}

// newSettingsService builds the settings service over the active config store.
func newSettingsService() (*services.SettingsService, driven.ConfigStore, error) {
	store, err := newConfigStore()
	if err != nil {
		return nil, nil, err
	}
	return services.NewSettingsService(store), store, nil
}

// loadSettings resolves and validates settings.
func loadSettings() (*domain.Settings, error) {
	svc, store, err := newSettingsService()
	if err != nil {
		return nil, err
	}
	settings, err := svc.Get()
	if err != nil {
		return nil, err
	}
	if err := svc.Validate(settings); err != nil {
		return nil, err
	}
	logger.Debug("Loaded settings from %s", store.Path())
	return settings, nil
}

// gateway holds the in-process core services.
type gateway struct {
	settings *domain.Settings
	models   *ai.Services
	index    *services.IndexService
	ingest   *services.IngestService
	ask      *services.AskService
}

// buildGateway wires the driven adapters and core services for settings.
func buildGateway(settings *domain.Settings) (*gateway, error) {
	logger.Section("Wiring")

	models := ai.Create(settings)
	embedder, generator := models.Embedding, models.Generation
	logger.Info("Ollama at %s (embedding %s, generation %s)",
		settings.Ollama.BaseURL, settings.Embedding.Model, settings.Generation.Model)

	var prompts driven.PromptStore
	if !noConfig {
		dir := configDir
		if dir == "" {
			d, err := file.DefaultDir()
			if err != nil {
				return nil, fmt.Errorf("resolve config dir: %w", err)
			}
			dir = d
		}
		store, err := file.NewPromptStore(filepath.Join(dir, "prompts"))
		if err != nil {
			return nil, fmt.Errorf("open prompts: %w", err)
		}
		prompts = store
	}

	index := vectormemory.New()
	chunks := chunker.New(
		chunker.WithChunkSize(settings.Chunker.ChunkSize),
		chunker.WithOverlap(settings.Chunker.Overlap),
	)

	retriever := services.NewRetriever(embedder, index, services.RetrieverConfig{
		TopK:        settings.Retrieval.TopK,
		ExcludeSeed: settings.Retrieval.ExcludeSeed,
	})

	return &gateway{
		settings: settings,
		models:   models,
		index:    services.NewIndexService(index, embedder, settings.Index.SeedText),
		ingest: services.NewIngestService(
			normalisers.NewDefaultRegistry(),
			chunks,
			embedder,
			index,
			memory.NewIngestionStore(),
			services.IngestConfig{
				MaxBytes:   settings.Upload.MaxBytes,
				StagingDir: settings.Upload.StagingDir,
			},
		),
		ask: services.NewAskService(retriever, services.NewPromptComposer(prompts), generator),
	}, nil
}
