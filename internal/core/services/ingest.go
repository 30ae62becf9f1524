package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
	"github.com/custodia-labs/sercha-rag/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-rag/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-rag/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// DefaultMaxUploadBytes bounds uploads when no limit is configured.
const DefaultMaxUploadBytes int64 = 32 << 20

// IngestConfig configures an IngestService.
type IngestConfig struct {
	// MaxBytes is the largest accepted upload. Zero means DefaultMaxUploadBytes.
	MaxBytes int64

	// StagingDir holds temporary upload files. Empty means the OS temp dir.
	StagingDir string
}

// IngestService normalises, chunks, embeds and indexes content.
type IngestService struct {
	normalisers driven.NormaliserRegistry
	chunker     driven.Chunker
	embedder    driven.EmbeddingService
	index       driven.VectorIndex
	ingestions  driven.IngestionStore
	maxBytes    int64
	stagingDir  string
	now         func() time.Time
}

// NewIngestService creates a new ingest service.
func NewIngestService(
	normalisers driven.NormaliserRegistry,
	chunker driven.Chunker,
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
	ingestions driven.IngestionStore,
	cfg IngestConfig,
) *IngestService {
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultMaxUploadBytes
	}
	return &IngestService{
		normalisers: normalisers,
		chunker:     chunker,
		embedder:    embedder,
		index:       index,
		ingestions:  ingestions,
		maxBytes:    cfg.MaxBytes,
		stagingDir:  cfg.StagingDir,
		now:         time.Now,
	}
}

// IngestContent ingests inline content. A string is indexed verbatim;
// any other value is treated as a structured record.
func (s *IngestService) IngestContent(ctx context.Context, content any, source string) (*domain.IngestResult, error) {
	if content == nil {
		return nil, fmt.Errorf("%w: content is required", domain.ErrValidation)
	}
	if str, ok := content.(string); ok && strings.TrimSpace(str) == "" {
		return nil, fmt.Errorf("%w: content is empty", domain.ErrValidation)
	}
	if source == "" {
		source = domain.SourceInline
	}
	if !s.index.State().IsReady() {
		return nil, domain.ErrIndexNotReady
	}

	doc := &domain.Document{
		Name:   source,
		Format: domain.FormatStructuredRecord,
		Record: content,
	}
	return s.ingest(ctx, doc, source)
}

// IngestFile ingests an uploaded file. The format comes from the filename
// extension and is checked before r is read. The body is staged in a
// temporary file that is removed on every return path.
func (s *IngestService) IngestFile(ctx context.Context, filename string, r io.Reader) (*domain.IngestResult, error) {
	name := filepath.Base(filename)
	format, err := domain.FormatFromFilename(name)
	if err != nil {
		return nil, err
	}
	if !s.index.State().IsReady() {
		return nil, domain.ErrIndexNotReady
	}

	content, err := s.stage(name, r)
	if err != nil {
		return nil, err
	}

	doc := &domain.Document{
		Name:    name,
		Format:  format,
		Content: content,
	}
	return s.ingest(ctx, doc, name)
}

// stage spools r to a temporary file and reads it back.
func (s *IngestService) stage(name string, r io.Reader) ([]byte, error) {
	tmp, err := os.CreateTemp(s.stagingDir, "upload-*"+strings.ToLower(filepath.Ext(name)))
	if err != nil {
		return nil, fmt.Errorf("create staging file: %w", err)
	}
	defer func() {
		_ = tmp.Close()
		if err := os.Remove(tmp.Name()); err != nil && !os.IsNotExist(err) {
			logger.Warn("Failed to remove staging file %s: %v", tmp.Name(), err)
		}
	}()

	n, err := io.Copy(tmp, io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("stage upload %s: %w", name, err)
	}
	if n > s.maxBytes {
		return nil, fmt.Errorf("%w: %s exceeds the %d byte upload limit", domain.ErrValidation, name, s.maxBytes)
	}

	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind staging file: %w", err)
	}
	return io.ReadAll(tmp)
}

// ingest runs normalise, chunk, embed, insert and records a receipt.
// Nothing is inserted unless every chunk was embedded.
func (s *IngestService) ingest(ctx context.Context, doc *domain.Document, source string) (*domain.IngestResult, error) {
	text, err := s.normalisers.Normalise(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("normalise %s: %w", source, err)
	}

	chunks, err := s.chunker.Process(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("chunk %s: %w", source, err)
	}
	if len(chunks) == 0 {
		logger.Debug("Ingest %s produced no chunks", source)
		return &domain.IngestResult{Source: source}, nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed %s: %w", source, err)
	}

	ingestionID := uuid.New().String()
	entries := make([]domain.IndexedEntry, len(chunks))
	for i, c := range chunks {
		entries[i] = domain.IndexedEntry{
			ID:     uuid.New().String(),
			Vector: vectors[i],
			Text:   c.Text,
			Metadata: map[string]any{
				domain.MetaIngestionID: ingestionID,
				domain.MetaSource:      source,
				domain.MetaFormat:      doc.Format.String(),
				domain.MetaChunk:       c.Position,
			},
		}
	}

	inserted, err := s.index.Insert(ctx, entries)
	if err != nil {
		return nil, fmt.Errorf("index %s: %w", source, err)
	}

	receipt := &domain.Ingestion{
		ID:         ingestionID,
		Source:     source,
		Format:     doc.Format,
		ChunkCount: inserted,
		CreatedAt:  s.now(),
	}
	if err := s.ingestions.Save(ctx, receipt); err != nil {
		return nil, fmt.Errorf("record ingestion %s: %w", source, err)
	}

	logger.Info("Ingested %s: %d chunks (%s)", source, inserted, doc.Format)
	return &domain.IngestResult{
		IngestionID: ingestionID,
		Source:      source,
		ChunkCount:  inserted,
	}, nil
}

// Ingestions lists receipts of completed ingests, oldest first.
func (s *IngestService) Ingestions(ctx context.Context) ([]domain.Ingestion, error) {
	return s.ingestions.List(ctx)
}
