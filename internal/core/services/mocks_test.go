package services

import (
	"context"
	"hash/fnv"
	"strings"
	"sync"
	"unicode"

	"github.com/custodia-labs/sercha-rag/internal/adapters/driven/storage/memory"
	vectormemory "github.com/custodia-labs/sercha-rag/internal/adapters/driven/vector/memory"
	"github.com/custodia-labs/sercha-rag/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-rag/internal/normalisers"
	"github.com/custodia-labs/sercha-rag/internal/postprocessors/chunker"
)

const fakeDims = 64

// bagOfWordsEmbedder hashes lower-cased words into a fixed-size vector, so
// texts sharing words score higher than texts that don't.
type bagOfWordsEmbedder struct {
	mu    sync.Mutex
	calls int
	err   error
	block chan struct{}
}

func (e *bagOfWordsEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if e.block != nil {
		select {
		case <-e.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	e.mu.Lock()
	e.calls++
	err := e.err
	e.mu.Unlock()
	if err != nil {
		return nil, err
	}

	vec := make([]float32, fakeDims)
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		h := fnv.New32a()
		_, _ = h.Write([]byte(w))
		vec[h.Sum32()%fakeDims]++
	}
	return vec, nil
}

func (e *bagOfWordsEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := e.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (e *bagOfWordsEmbedder) Calls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

func (e *bagOfWordsEmbedder) Dimensions() int              { return fakeDims }
func (e *bagOfWordsEmbedder) ModelName() string            { return "fake-embed" }
func (e *bagOfWordsEmbedder) Ping(_ context.Context) error { return nil }
func (e *bagOfWordsEmbedder) Close() error                 { return nil }

// recordingGenerator returns a fixed response and remembers the last call.
type recordingGenerator struct {
	response   string
	err        error
	lastPrompt string
	lastModel  string
	calls      int
}

func (g *recordingGenerator) Generate(_ context.Context, prompt, model string) (string, error) {
	g.calls++
	g.lastPrompt = prompt
	g.lastModel = model
	return g.response, g.err
}

func (g *recordingGenerator) ModelName() string            { return "mistral" }
func (g *recordingGenerator) Ping(_ context.Context) error { return nil }
func (g *recordingGenerator) Close() error                 { return nil }

// stubPromptStore serves one template for every name.
type stubPromptStore struct {
	template string
	err      error
}

func (p *stubPromptStore) Load(_ string) (string, error) { return p.template, p.err }
func (p *stubPromptStore) Reload()                       {}

// pipeline wires real adapters around the fake model services.
type pipeline struct {
	index     *vectormemory.Index
	embedder  *bagOfWordsEmbedder
	generator *recordingGenerator
	indexSvc  *IndexService
	ingest    *IngestService
	ask       *AskService
	retriever *Retriever
}

func newPipeline(cfg RetrieverConfig, ingestCfg IngestConfig) *pipeline {
	idx := vectormemory.New()
	emb := &bagOfWordsEmbedder{}
	gen := &recordingGenerator{response: "The code is 998877."}
	retriever := NewRetriever(emb, idx, cfg)

	return &pipeline{
		index:     idx,
		embedder:  emb,
		generator: gen,
		indexSvc:  NewIndexService(idx, emb, "Hello world"),
		ingest: NewIngestService(
			normalisers.NewDefaultRegistry(),
			chunker.New(),
			emb,
			idx,
			memory.NewIngestionStore(),
			ingestCfg,
		),
		ask:       NewAskService(retriever, NewPromptComposer(nil), gen),
		retriever: retriever,
	}
}

// ready seeds the index synchronously.
func (p *pipeline) ready(ctx context.Context) error {
	if err := p.indexSvc.Start(ctx); err != nil {
		return err
	}
	return p.indexSvc.Wait(ctx)
}

var (
	_ driven.EmbeddingService  = (*bagOfWordsEmbedder)(nil)
	_ driven.GenerationService = (*recordingGenerator)(nil)
	_ driven.PromptStore       = (*stubPromptStore)(nil)
)
