package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpapi "github.com/custodia-labs/sercha-rag/internal/adapters/driving/http"
	"github.com/custodia-labs/sercha-rag/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL + "/"})
}

func TestNew_Defaults(t *testing.T) {
	c := New(Config{})
	assert.Equal(t, DefaultBaseURL, c.BaseURL())
}

func TestPing(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/test", r.URL.Path)
		_, _ = w.Write([]byte(`{"msg":"hello"}`))
	})

	assert.NoError(t, c.Ping(context.Background()))
}

func TestPing_Unreachable(t *testing.T) {
	c := New(Config{BaseURL: "http://127.0.0.1:1"})

	err := c.Ping(context.Background())

	assert.ErrorIs(t, err, ErrUnreachable)
}

func TestIngest(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/ingest", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, map[string]any{"product": "SuperWidget"}, req["content"])

		_, _ = w.Write([]byte(`{"status":"success","chunkCount":1,"ingestionId":"ing-1"}`))
	})

	res, err := c.IngestContent(context.Background(), map[string]any{"product": "SuperWidget"}, "")

	require.NoError(t, err)
	assert.Equal(t, 1, res.ChunkCount)
	assert.Equal(t, "ing-1", res.IngestionID)
	assert.Equal(t, domain.SourceInline, res.Source)
}

func TestUpload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/upload", r.URL.Path)
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		body, err := io.ReadAll(file)
		require.NoError(t, err)

		assert.Equal(t, "products.csv", header.Filename)
		assert.Equal(t, "id,product\n1,Alpha\n", string(body))
		_, _ = w.Write([]byte(`{"status":"success","filename":"products.csv","chunkCount":1}`))
	})

	res, err := c.IngestFile(context.Background(), "products.csv", strings.NewReader("id,product\n1,Alpha\n"))

	require.NoError(t, err)
	assert.Equal(t, "products.csv", res.Source)
	assert.Equal(t, 1, res.ChunkCount)
}

func TestAsk(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req httpapi.GenerateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "What is the code?", req.Prompt)
		assert.Equal(t, "llama2", req.Model)
		_, _ = w.Write([]byte(`{"response":"998877","model":"llama2","context":["vault"]}`))
	})

	answer, err := c.Ask(context.Background(), domain.AskRequest{Question: "What is the code?", Model: "llama2"})

	require.NoError(t, err)
	assert.Equal(t, "998877", answer.Response)
	assert.Equal(t, "llama2", answer.Model)
	assert.Equal(t, []string{"vault"}, answer.Context)
}

func TestAPIErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		is     error
		detail string
	}{
		{"validation", http.StatusBadRequest, `{"error":"validation error: question is required"}`, domain.ErrValidation, ""},
		{"rejected", http.StatusBadGateway, `{"error":"language model rejected the request","detail":"model 'nope' not found"}`, domain.ErrGenerationRejected, "model 'nope' not found"},
		{"server", http.StatusInternalServerError, `{"error":"vector index not ready"}`, nil, ""},
		{"plain text", http.StatusServiceUnavailable, "upstream down", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.Ask(context.Background(), domain.AskRequest{Question: "q"})

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.NotEmpty(t, apiErr.Message)
			assert.Equal(t, tt.detail, apiErr.Detail)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestSearchStatusIngestions(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/search":
			_, _ = w.Write([]byte(`{"results":[{"text":"a","score":0.5}]}`))
		case "/api/status":
			_, _ = w.Write([]byte(`{"state":"failed","entries":0,"dimensions":0,"error":"ollama down"}`))
		case "/api/ingestions":
			_, _ = w.Write([]byte(`{"ingestions":[{"id":"x","source":"inline","format":"plain_text","chunkCount":1}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ctx := context.Background()

	results, err := c.Search(ctx, "q", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "a", results[0].Entry.Text)
	assert.InDelta(t, 0.5, results[0].Score, 1e-9)

	status, err := c.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.IndexFailed, status.State)
	require.Error(t, status.Err)
	assert.Equal(t, "ollama down", status.Err.Error())

	list, err := c.Ingestions(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "x", list[0].ID)
	assert.Equal(t, domain.FormatPlainText, list[0].Format)
}
