package domain

// Document is an uploaded artifact awaiting normalisation.
// It only lives for the duration of a single ingest.
type Document struct {
	// Name is the original filename, or a label for inline content.
	Name string

	// Format selects the normaliser.
	Format Format

	// Content is the raw bytes for file-backed formats.
	Content []byte

	// Record is the inline value for FormatStructuredRecord.
	// It is either a string or arbitrary decoded JSON.
	Record any
}

// Chunk is a contiguous slice of normalised text.
// Start and End are rune offsets into the normalised text.
type Chunk struct {
	// Position is the ordinal position within the document.
	Position int

	// Start is the offset of the first rune.
	Start int

	// End is the offset one past the last rune.
	End int

	// Text is the chunk content.
	Text string
}

// Len returns the chunk length in runes.
func (c Chunk) Len() int {
	return c.End - c.Start
}

// IndexedEntry is a single record held by the vector index.
// Entries are created on ingest and never mutated.
type IndexedEntry struct {
	// ID is the unique identifier for the entry.
	ID string

	// Vector is the embedding of Text.
	Vector []float32

	// Text is the chunk text the vector was computed from.
	Text string

	// Metadata contains opaque tags such as the ingestion sequence.
	Metadata map[string]any
}

// Metadata keys attached to indexed entries.
const (
	MetaSeq         = "seq"
	MetaSeed        = "seed"
	MetaIngestionID = "ingestion_id"
	MetaSource      = "source"
	MetaFormat      = "format"
	MetaChunk       = "chunk"
)

// IsSeed reports whether the entry is the placeholder inserted at startup.
func (e IndexedEntry) IsSeed() bool {
	seed, ok := e.Metadata[MetaSeed].(bool)
	return ok && seed
}

// ScoredEntry is one search hit.
type ScoredEntry struct {
	// Entry is the matched index entry.
	Entry IndexedEntry

	// Score is the cosine similarity to the query (-1 to 1).
	Score float64
}
