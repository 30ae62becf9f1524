// Package chunker provides a fixed-size text chunking processor.
package chunker

import (
	"context"
	"fmt"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
	"github.com/custodia-labs/sercha-rag/internal/core/ports/driven"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 200

// Split cuts text into chunks of at most chunkSize characters, each sharing
// overlap characters with its predecessor. Sizes count runes, so multi-byte
// characters are never cut in half.
//
// Empty text yields no chunks. Text no longer than chunkSize yields one chunk.
// Splitting stops at the first chunk that reaches the end of the text.
func Split(text string, chunkSize, overlap int) ([]domain.Chunk, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", domain.ErrValidation, chunkSize)
	}
	if overlap < 0 || overlap >= chunkSize {
		return nil, fmt.Errorf("%w: overlap must be in [0, %d), got %d", domain.ErrValidation, chunkSize, overlap)
	}
	if text == "" {
		return nil, nil
	}

	runes := []rune(text)
	total := len(runes)
	step := chunkSize - overlap

	chunks := make([]domain.Chunk, 0, total/step+1)
	for start := 0; ; start += step {
		end := start + chunkSize
		if end > total {
			end = total
		}

		chunks = append(chunks, domain.Chunk{
			Position: len(chunks),
			Start:    start,
			End:      end,
			Text:     string(runes[start:end]),
		})

		if end == total {
			break
		}
	}

	return chunks, nil
}

// Ensure Processor implements the interface.
var _ driven.Chunker = (*Processor)(nil)

// Processor splits normalised text into fixed-size chunks.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Ensure overlap doesn't exceed chunk size
	if p.overlap >= p.chunkSize {
		p.overlap = p.chunkSize / 4
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// ChunkSize returns the configured chunk size.
func (p *Processor) ChunkSize() int {
	return p.chunkSize
}

// Overlap returns the configured overlap.
func (p *Processor) Overlap() int {
	return p.overlap
}

// Process splits the normalised text into chunks.
func (p *Processor) Process(ctx context.Context, text string) ([]domain.Chunk, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Split(text, p.chunkSize, p.overlap)
}
