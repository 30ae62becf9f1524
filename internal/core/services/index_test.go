package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vectormemory "github.com/custodia-labs/sercha-rag/internal/adapters/driven/vector/memory"
	"github.com/custodia-labs/sercha-rag/internal/core/domain"
)

func TestIndexService_SeedsAndBecomesReady(t *testing.T) {
	idx := vectormemory.New()
	svc := NewIndexService(idx, &bagOfWordsEmbedder{}, "Hello world")
	assert.Equal(t, domain.IndexUninitialized, svc.Status().State)

	require.NoError(t, svc.Start(context.Background()))
	require.NoError(t, svc.Wait(context.Background()))

	status := svc.Status()
	assert.Equal(t, domain.IndexReady, status.State)
	assert.Equal(t, 1, status.Entries)
	assert.Equal(t, fakeDims, status.Dimensions)
}

func TestIndexService_StartTwice(t *testing.T) {
	svc := NewIndexService(vectormemory.New(), &bagOfWordsEmbedder{}, "Hello world")

	require.NoError(t, svc.Start(context.Background()))
	assert.Error(t, svc.Start(context.Background()))
	require.NoError(t, svc.Wait(context.Background()))
}

func TestIndexService_EmptySeedText(t *testing.T) {
	svc := NewIndexService(vectormemory.New(), &bagOfWordsEmbedder{}, "")
	assert.ErrorIs(t, svc.Start(context.Background()), domain.ErrValidation)
}

func TestIndexService_SeedFailure(t *testing.T) {
	embedErr := errors.Join(domain.ErrEmbeddingUnavailable, errors.New("connection refused"))
	svc := NewIndexService(vectormemory.New(), &bagOfWordsEmbedder{err: embedErr}, "Hello world")

	require.NoError(t, svc.Start(context.Background()))
	err := svc.Wait(context.Background())

	assert.ErrorIs(t, err, domain.ErrIndexNotReady)
	assert.Contains(t, err.Error(), "connection refused")
	status := svc.Status()
	assert.Equal(t, domain.IndexFailed, status.State)
	assert.ErrorIs(t, status.Err, domain.ErrEmbeddingUnavailable)
}

func TestIndexService_RequestsBeforeReadyFailFast(t *testing.T) {
	p := newPipeline(RetrieverConfig{}, IngestConfig{})
	p.embedder.block = make(chan struct{})
	p.indexSvc = NewIndexService(p.index, p.embedder, "Hello world")
	ctx := context.Background()

	require.NoError(t, p.indexSvc.Start(ctx))
	assert.Equal(t, domain.IndexSeeding, p.indexSvc.Status().State)

	_, err := p.ingest.IngestContent(ctx, "The secret code for the vault is 998877.", "")
	assert.ErrorIs(t, err, domain.ErrIndexNotReady)

	_, err = p.ask.Ask(ctx, domain.AskRequest{Question: "What is the code?"})
	assert.ErrorIs(t, err, domain.ErrIndexNotReady)
	assert.Zero(t, p.generator.calls, "the model is never contacted before the index is ready")

	close(p.embedder.block)
	require.NoError(t, p.indexSvc.Wait(ctx))

	_, err = p.ingest.IngestContent(ctx, "The secret code for the vault is 998877.", "")
	assert.NoError(t, err)
}

func TestIndexService_WaitHonoursContext(t *testing.T) {
	emb := &bagOfWordsEmbedder{block: make(chan struct{})}
	svc := NewIndexService(vectormemory.New(), emb, "Hello world")
	require.NoError(t, svc.Start(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, svc.Wait(ctx), context.DeadlineExceeded)
	close(emb.block)
	require.NoError(t, svc.Wait(context.Background()))
}
