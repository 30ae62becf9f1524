package services

import (
	"fmt"
	"net/url"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
	"github.com/custodia-labs/sercha-rag/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-rag/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// EnvPrefix prefixes environment overrides: server.addr is read from
// SERCHA_RAG_SERVER_ADDR.
const EnvPrefix = "SERCHA_RAG_"

// Config keys for settings storage.
const (
	KeyServerAddr          = "server.addr"
	KeyServerAllowedOrigin = "server.allowed_origin"
	KeyOllamaBaseURL       = "ollama.base_url"
	KeyEmbedModel          = "embedding.model"
	KeyEmbedRPS            = "embedding.requests_per_second"
	KeyEmbedTimeout        = "embedding.timeout"
	KeyGenModel            = "generation.model"
	KeyGenTimeout          = "generation.timeout"
	KeyChunkSize           = "chunker.chunk_size"
	KeyChunkOverlap        = "chunker.overlap"
	KeyTopK                = "retrieval.top_k"
	KeyExcludeSeed         = "retrieval.exclude_seed"
	KeySeedText            = "index.seed_text"
	KeyUploadMaxBytes      = "upload.max_bytes"
	KeyUploadStagingDir    = "upload.staging_dir"
	KeyWatchDir            = "watch.dir"
)

var knownKeys = map[string]bool{
	KeyServerAddr: true, KeyServerAllowedOrigin: true, KeyOllamaBaseURL: true,
	KeyEmbedModel: true, KeyEmbedRPS: true, KeyEmbedTimeout: true,
	KeyGenModel: true, KeyGenTimeout: true,
	KeyChunkSize: true, KeyChunkOverlap: true,
	KeyTopK: true, KeyExcludeSeed: true, KeySeedText: true,
	KeyUploadMaxBytes: true, KeyUploadStagingDir: true, KeyWatchDir: true,
}

// Keys returns every recognised config key in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(knownKeys))
	for k := range knownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// EnvName returns the environment variable that overrides key.
func EnvName(key string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// SettingsOption configures a SettingsService.
type SettingsOption func(*SettingsService)

// WithLookupEnv replaces os.LookupEnv, mainly for tests.
func WithLookupEnv(fn func(string) (string, bool)) SettingsOption {
	return func(s *SettingsService) {
		s.lookupEnv = fn
	}
}

// SettingsService manages application settings.
// Environment variables take precedence over the config file.
type SettingsService struct {
	configStore driven.ConfigStore
	lookupEnv   func(string) (string, bool)
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, opts ...SettingsOption) *SettingsService {
	s := &SettingsService{
		configStore: configStore,
		lookupEnv:   os.LookupEnv,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get retrieves current application settings.
// Malformed values are reported rather than silently replaced by defaults.
func (s *SettingsService) Get() (*domain.Settings, error) {
	d := domain.DefaultSettings()
	r := &reader{svc: s}

	settings := &domain.Settings{
		Server: domain.ServerSettings{
			Addr:          r.str(KeyServerAddr, d.Server.Addr),
			AllowedOrigin: r.str(KeyServerAllowedOrigin, d.Server.AllowedOrigin),
		},
		Ollama: domain.OllamaSettings{
			BaseURL: r.str(KeyOllamaBaseURL, d.Ollama.BaseURL),
		},
		Embedding: domain.EmbeddingSettings{
			Model:             r.str(KeyEmbedModel, d.Embedding.Model),
			RequestsPerSecond: r.float(KeyEmbedRPS, d.Embedding.RequestsPerSecond),
			Timeout:           r.duration(KeyEmbedTimeout, d.Embedding.Timeout),
		},
		Generation: domain.GenerationSettings{
			Model:   r.str(KeyGenModel, d.Generation.Model),
			Timeout: r.duration(KeyGenTimeout, d.Generation.Timeout),
		},
		Chunker: domain.ChunkerSettings{
			ChunkSize: r.int(KeyChunkSize, d.Chunker.ChunkSize),
			Overlap:   r.int(KeyChunkOverlap, d.Chunker.Overlap),
		},
		Retrieval: domain.RetrievalSettings{
			TopK:        r.int(KeyTopK, d.Retrieval.TopK),
			ExcludeSeed: r.bool(KeyExcludeSeed, d.Retrieval.ExcludeSeed),
		},
		Index: domain.IndexSettings{
			SeedText: r.str(KeySeedText, d.Index.SeedText),
		},
		Upload: domain.UploadSettings{
			MaxBytes:   int64(r.int(KeyUploadMaxBytes, int(d.Upload.MaxBytes))),
			StagingDir: r.str(KeyUploadStagingDir, d.Upload.StagingDir),
		},
		Watch: domain.WatchSettings{
			Dir: r.str(KeyWatchDir, d.Watch.Dir),
		},
	}

	if r.err != nil {
		return nil, r.err
	}
	return settings, nil
}

// Set stores a single configuration value. Unknown keys are rejected.
func (s *SettingsService) Set(key string, value any) error {
	if !knownKeys[key] {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrValidation, key)
	}
	if err := s.configStore.Set(key, value); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

// Validate checks settings for values the pipeline cannot run with.
func (s *SettingsService) Validate(settings *domain.Settings) error {
	if settings == nil {
		return fmt.Errorf("%w: settings are nil", domain.ErrValidation)
	}

	var problems []string
	if settings.Server.Addr == "" {
		problems = append(problems, "server.addr is empty")
	}
	if u, err := url.Parse(settings.Ollama.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		problems = append(problems, fmt.Sprintf("ollama.base_url %q is not an http(s) URL", settings.Ollama.BaseURL))
	}
	if settings.Embedding.Model == "" {
		problems = append(problems, "embedding.model is empty")
	}
	if settings.Embedding.RequestsPerSecond < 0 {
		problems = append(problems, "embedding.requests_per_second is negative")
	}
	if settings.Embedding.Timeout < 0 || settings.Generation.Timeout < 0 {
		problems = append(problems, "timeouts cannot be negative")
	}
	if settings.Generation.Model == "" {
		problems = append(problems, "generation.model is empty")
	}
	if settings.Chunker.ChunkSize <= 0 {
		problems = append(problems, "chunker.chunk_size must be positive")
	}
	if settings.Chunker.Overlap < 0 || settings.Chunker.Overlap >= settings.Chunker.ChunkSize {
		problems = append(problems, "chunker.overlap must be at least 0 and less than chunk_size")
	}
	if settings.Retrieval.TopK <= 0 {
		problems = append(problems, "retrieval.top_k must be positive")
	}
	if settings.Index.SeedText == "" {
		problems = append(problems, "index.seed_text is empty")
	}
	if settings.Upload.MaxBytes <= 0 {
		problems = append(problems, "upload.max_bytes must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(problems, "; "))
	}
	return nil
}

// reader resolves keys against the environment then the config store,
// remembering the first malformed value.
type reader struct {
	svc *SettingsService
	err error
}

func (r *reader) fail(key, raw string, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("%w: %s=%q: %v", domain.ErrValidation, key, raw, err)
	}
}

func (r *reader) env(key string) (string, bool) {
	v, ok := r.svc.lookupEnv(EnvName(key))
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (r *reader) str(key, defaultVal string) string {
	if v, ok := r.env(key); ok {
		return v
	}
	if v := r.svc.configStore.GetString(key); v != "" {
		return v
	}
	return defaultVal
}

func (r *reader) int(key string, defaultVal int) int {
	if v, ok := r.env(key); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			r.fail(key, v, err)
			return defaultVal
		}
		return n
	}
	if _, exists := r.svc.configStore.Get(key); !exists {
		return defaultVal
	}
	return r.svc.configStore.GetInt(key)
}

func (r *reader) float(key string, defaultVal float64) float64 {
	if v, ok := r.env(key); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			r.fail(key, v, err)
			return defaultVal
		}
		return f
	}
	if _, exists := r.svc.configStore.Get(key); !exists {
		return defaultVal
	}
	return r.svc.configStore.GetFloat(key)
}

func (r *reader) bool(key string, defaultVal bool) bool {
	if v, ok := r.env(key); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			r.fail(key, v, err)
			return defaultVal
		}
		return b
	}
	if _, exists := r.svc.configStore.Get(key); !exists {
		return defaultVal
	}
	return r.svc.configStore.GetBool(key)
}

// duration parses strings like "90s" or "2m".
func (r *reader) duration(key string, defaultVal time.Duration) time.Duration {
	v, ok := r.env(key)
	if !ok {
		v = r.svc.configStore.GetString(key)
	}
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.fail(key, v, err)
		return defaultVal
	}
	return d
}
