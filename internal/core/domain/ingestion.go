package domain

import "time"

// Ingestion is the receipt of one completed ingest.
type Ingestion struct {
	// ID is the unique identifier, also stamped on every entry it produced.
	ID string

	// Source is the filename, or "inline" for content posted directly.
	Source string

	// Format is the normalisation format used.
	Format Format

	// ChunkCount is the number of chunks inserted.
	ChunkCount int

	// CreatedAt is when the ingest completed.
	CreatedAt time.Time
}

// IngestResult is returned to the caller of an ingest.
type IngestResult struct {
	// IngestionID identifies the receipt. Empty when nothing was inserted.
	IngestionID string

	// Source is the filename or "inline".
	Source string

	// ChunkCount is the number of chunks inserted.
	ChunkCount int
}

// SourceInline labels content posted directly rather than uploaded.
const SourceInline = "inline"
