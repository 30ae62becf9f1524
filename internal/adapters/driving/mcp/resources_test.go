package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
)

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleIngestionsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("lists ingestions", func(t *testing.T) {
		created := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
		mockIngest := &mockIngestService{
			ingestions: []domain.Ingestion{
				{ID: "ing-1", Source: "products.csv", Format: domain.FormatDelimitedTable, ChunkCount: 1, CreatedAt: created},
			},
		}
		server, err := NewServer(&Ports{Ask: &mockAskService{}, Ingest: mockIngest})
		require.NoError(t, err)

		result, err := server.handleIngestionsResource(ctx, makeReadResourceRequest("sercha-rag://ingestions"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)

		var infos []map[string]any
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &infos))
		require.Len(t, infos, 1)
		assert.Equal(t, "ing-1", infos[0]["id"])
		assert.Equal(t, "products.csv", infos[0]["source"])
		assert.Equal(t, string(domain.FormatDelimitedTable), infos[0]["format"])
		assert.InDelta(t, 1, infos[0]["chunk_count"], 0)
	})

	t.Run("empty list without an ingest service", func(t *testing.T) {
		server, err := NewServer(&Ports{Ask: &mockAskService{}})
		require.NoError(t, err)

		result, err := server.handleIngestionsResource(ctx, makeReadResourceRequest("sercha-rag://ingestions"))

		require.NoError(t, err)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("returns error on failure", func(t *testing.T) {
		mockIngest := &mockIngestService{err: errors.New("boom")}
		server, err := NewServer(&Ports{Ask: &mockAskService{}, Ingest: mockIngest})
		require.NoError(t, err)

		_, err = server.handleIngestionsResource(ctx, makeReadResourceRequest("sercha-rag://ingestions"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing ingestions")
	})
}

func TestServer_handleStatusResource(t *testing.T) {
	ctx := context.Background()

	t.Run("reports state", func(t *testing.T) {
		mockIndex := &mockIndexService{status: domain.IndexStatus{
			State:      domain.IndexFailed,
			Entries:    0,
			Dimensions: 0,
			Err:        errors.New("ollama unreachable"),
		}}
		server, err := NewServer(&Ports{Ask: &mockAskService{}, Index: mockIndex})
		require.NoError(t, err)

		result, err := server.handleStatusResource(ctx, makeReadResourceRequest("sercha-rag://status"))

		require.NoError(t, err)
		assert.Contains(t, result.Contents[0].Text, `"state": "failed"`)
		assert.Contains(t, result.Contents[0].Text, "ollama unreachable")
	})

	t.Run("not found without an index service", func(t *testing.T) {
		server, err := NewServer(&Ports{Ask: &mockAskService{}})
		require.NoError(t, err)

		_, err = server.handleStatusResource(ctx, makeReadResourceRequest("sercha-rag://status"))

		assert.Error(t, err)
	})
}
