package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vectormemory "github.com/custodia-labs/sercha-rag/internal/adapters/driven/vector/memory"
	"github.com/custodia-labs/sercha-rag/internal/core/domain"
)

func TestRetriever_DefaultTopK(t *testing.T) {
	r := NewRetriever(&bagOfWordsEmbedder{}, vectormemory.New(), RetrieverConfig{})
	assert.Equal(t, 3, r.TopK())
}

func TestRetriever_NotReadyChecksBeforeEmbedding(t *testing.T) {
	emb := &bagOfWordsEmbedder{}
	r := NewRetriever(emb, vectormemory.New(), RetrieverConfig{})

	_, err := r.Retrieve(context.Background(), "anything", 0)

	assert.ErrorIs(t, err, domain.ErrIndexNotReady)
	assert.Zero(t, emb.Calls())
}

func TestRetriever_BoundAndOrder(t *testing.T) {
	p := readyPipeline(t, RetrieverConfig{}, IngestConfig{})
	ctx := context.Background()
	for _, name := range []string{"alpha", "bravo", "charlie", "delta", "echo"} {
		_, err := p.ingest.IngestContent(ctx, fmt.Sprintf("notes about %s", name), "")
		require.NoError(t, err)
	}

	results, err := p.retriever.RetrieveScored(ctx, "notes about charlie", 0)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "notes about charlie", results[0].Entry.Text)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}

	texts, err := p.retriever.Retrieve(ctx, "notes about charlie", 10)
	require.NoError(t, err)
	assert.Len(t, texts, 6, "bounded by the number of entries")
}

func TestRetriever_SeedIsIncludedByDefault(t *testing.T) {
	p := readyPipeline(t, RetrieverConfig{}, IngestConfig{})

	texts, err := p.retriever.Retrieve(context.Background(), "Hello world", 3)

	require.NoError(t, err)
	assert.Equal(t, []string{"Hello world"}, texts)
}

func TestRetriever_ExcludeSeed(t *testing.T) {
	p := readyPipeline(t, RetrieverConfig{TopK: 2, ExcludeSeed: true}, IngestConfig{})
	ctx := context.Background()

	texts, err := p.retriever.Retrieve(ctx, "Hello world", 0)
	require.NoError(t, err)
	assert.Empty(t, texts)

	for _, s := range []string{"hello there", "world news", "unrelated"} {
		_, err := p.ingest.IngestContent(ctx, s, "")
		require.NoError(t, err)
	}

	results, err := p.retriever.RetrieveScored(ctx, "Hello world", 0)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.False(t, r.Entry.IsSeed())
	}
}
