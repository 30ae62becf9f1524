package domain

import "time"

// ServerSettings configures the HTTP API.
type ServerSettings struct {
	// Addr is the listen address.
	Addr string

	// AllowedOrigin is sent as Access-Control-Allow-Origin.
	AllowedOrigin string
}

// OllamaSettings configures the local model service.
type OllamaSettings struct {
	// BaseURL is the Ollama API endpoint.
	BaseURL string
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Model is the embedding model name.
	Model string

	// RequestsPerSecond limits calls to the provider. Zero means unlimited.
	RequestsPerSecond float64

	// Timeout bounds one embedding call. Zero means no timeout.
	Timeout time.Duration
}

// GenerationSettings holds language model configuration.
type GenerationSettings struct {
	// Model is used when a request does not name one.
	Model string

	// Timeout bounds one generation call. Zero means no timeout.
	Timeout time.Duration
}

// ChunkerSettings controls text splitting.
type ChunkerSettings struct {
	// ChunkSize is the maximum chunk length in characters.
	ChunkSize int

	// Overlap is the number of characters shared with the previous chunk.
	Overlap int
}

// RetrievalSettings controls the retriever.
type RetrievalSettings struct {
	// TopK is the number of passages retrieved per question.
	TopK int

	// ExcludeSeed drops the seed placeholder from results.
	ExcludeSeed bool
}

// IndexSettings controls the vector index lifecycle.
type IndexSettings struct {
	// SeedText is embedded to create the placeholder entry.
	SeedText string
}

// UploadSettings controls file ingestion.
type UploadSettings struct {
	// MaxBytes is the largest accepted upload.
	MaxBytes int64

	// StagingDir holds temporary upload files. Empty means the OS temp dir.
	StagingDir string
}

// WatchSettings configures folder ingestion.
type WatchSettings struct {
	// Dir is watched for new files. Empty disables watching.
	Dir string
}

// Settings holds all application settings.
type Settings struct {
	Server     ServerSettings
	Ollama     OllamaSettings
	Embedding  EmbeddingSettings
	Generation GenerationSettings
	Chunker    ChunkerSettings
	Retrieval  RetrievalSettings
	Index      IndexSettings
	Upload     UploadSettings
	Watch      WatchSettings
}

// DefaultSettings returns settings with sensible defaults.
func DefaultSettings() Settings {
	return Settings{
		Server: ServerSettings{
			Addr:          ":3000",
			AllowedOrigin: "*",
		},
		Ollama: OllamaSettings{
			BaseURL: "http://127.0.0.1:11434",
		},
		Embedding: EmbeddingSettings{
			Model: "nomic-embed-text",
		},
		Generation: GenerationSettings{
			Model: "mistral",
		},
		Chunker: ChunkerSettings{
			ChunkSize: 1000,
			Overlap:   200,
		},
		Retrieval: RetrievalSettings{
			TopK: 3,
		},
		Index: IndexSettings{
			SeedText: "Hello world",
		},
		Upload: UploadSettings{
			MaxBytes: 32 << 20,
		},
	}
}
