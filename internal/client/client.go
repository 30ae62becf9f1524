// Package client talks to a running sercha-rag gateway over its HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	httpapi "github.com/custodia-labs/sercha-rag/internal/adapters/driving/http"
	"github.com/custodia-labs/sercha-rag/internal/core/domain"
	"github.com/custodia-labs/sercha-rag/internal/core/ports/driving"
)

// Client serves the driving ports over HTTP, so commands and the chat UI
// can talk to a running gateway the same way they talk to local services.
var (
	_ driving.AskService    = (*Client)(nil)
	_ driving.IngestService = (*Client)(nil)
)

// DefaultBaseURL is the gateway address used when none is configured.
const DefaultBaseURL = "http://127.0.0.1:3000"

// maxErrorBody limits how much of an error response is read.
const maxErrorBody = 16 << 10

// APIError is a non-2xx answer from the gateway.
type APIError struct {
	StatusCode int
	Message    string
	Detail     string
}

// Error implements error.
func (e *APIError) Error() string {
	msg := fmt.Sprintf("gateway returned %d: %s", e.StatusCode, e.Message)
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

// Unwrap maps the status back to the domain error the gateway classified.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusBadRequest:
		return domain.ErrValidation
	case http.StatusBadGateway:
		return domain.ErrGenerationRejected
	default:
		return nil
	}
}

// ErrUnreachable is returned when the gateway cannot be contacted.
var ErrUnreachable = errors.New("gateway unreachable")

// Config configures a Client.
type Config struct {
	// BaseURL is the gateway root, e.g. http://127.0.0.1:3000.
	BaseURL string

	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration

	// HTTPClient overrides the client built from Timeout.
	HTTPClient *http.Client
}

// Client is a gateway API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// New creates a client.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		httpClient: hc,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// BaseURL returns the gateway root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Ping checks the gateway liveness probe.
func (c *Client) Ping(ctx context.Context) error {
	var out map[string]string
	return c.do(ctx, http.MethodGet, "/test", nil, "", &out)
}

// Ask sends a question to the gateway. An empty model uses the gateway default.
func (c *Client) Ask(ctx context.Context, req domain.AskRequest) (*domain.Answer, error) {
	var out httpapi.GenerateResponse
	in := httpapi.GenerateRequest{Prompt: req.Question, Model: req.Model}
	if err := c.postJSON(ctx, "/api/generate", in, &out); err != nil {
		return nil, err
	}
	return &domain.Answer{
		Response: out.Response,
		Model:    out.Model,
		Context:  out.Context,
	}, nil
}

// Search returns scored passages for query. k <= 0 uses the gateway default.
func (c *Client) Search(ctx context.Context, query string, k int) ([]domain.ScoredEntry, error) {
	var out httpapi.SearchResponse
	if err := c.postJSON(ctx, "/api/search", httpapi.SearchRequest{Query: query, K: k}, &out); err != nil {
		return nil, err
	}

	results := make([]domain.ScoredEntry, len(out.Results))
	for i, r := range out.Results {
		results[i] = domain.ScoredEntry{
			Entry: domain.IndexedEntry{Text: r.Text, Metadata: r.Metadata},
			Score: r.Score,
		}
	}
	return results, nil
}

// IngestContent sends inline text or structured content.
func (c *Client) IngestContent(ctx context.Context, content any, source string) (*domain.IngestResult, error) {
	var out httpapi.IngestResponse
	if err := c.postJSON(ctx, "/api/ingest", httpapi.IngestRequest{Content: content, Source: source}, &out); err != nil {
		return nil, err
	}
	if source == "" {
		source = domain.SourceInline
	}
	return &domain.IngestResult{
		IngestionID: out.IngestionID,
		Source:      source,
		ChunkCount:  out.ChunkCount,
	}, nil
}

// IngestFile streams r to the gateway as a multipart upload named filename.
func (c *Client) IngestFile(ctx context.Context, filename string, r io.Reader) (*domain.IngestResult, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile("file", filename)
		if err == nil {
			_, err = io.Copy(part, r)
		}
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
	}()

	var out httpapi.IngestResponse
	if err := c.do(ctx, http.MethodPost, "/api/upload", pr, mw.FormDataContentType(), &out); err != nil {
		_ = pr.Close()
		return nil, err
	}
	return &domain.IngestResult{
		IngestionID: out.IngestionID,
		Source:      out.Filename,
		ChunkCount:  out.ChunkCount,
	}, nil
}

// Ingestions lists ingest receipts, oldest first.
func (c *Client) Ingestions(ctx context.Context) ([]domain.Ingestion, error) {
	var out httpapi.IngestionsResponse
	if err := c.do(ctx, http.MethodGet, "/api/ingestions", nil, "", &out); err != nil {
		return nil, err
	}

	list := make([]domain.Ingestion, len(out.Ingestions))
	for i, ing := range out.Ingestions {
		list[i] = domain.Ingestion{
			ID:         ing.ID,
			Source:     ing.Source,
			Format:     domain.Format(ing.Format),
			ChunkCount: ing.ChunkCount,
			CreatedAt:  ing.CreatedAt,
		}
	}
	return list, nil
}

// Status returns the gateway's index lifecycle state.
func (c *Client) Status(ctx context.Context) (domain.IndexStatus, error) {
	var out httpapi.StatusResponse
	if err := c.do(ctx, http.MethodGet, "/api/status", nil, "", &out); err != nil {
		return domain.IndexStatus{}, err
	}

	status := domain.IndexStatus{
		State:      parseState(out.State),
		Entries:    out.Entries,
		Dimensions: out.Dimensions,
	}
	if out.Error != "" {
		status.Err = errors.New(out.Error)
	}
	return status, nil
}

func parseState(s string) domain.IndexState {
	for _, state := range []domain.IndexState{
		domain.IndexUninitialized, domain.IndexSeeding, domain.IndexReady, domain.IndexFailed,
	} {
		if state.String() == s {
			return state
		}
	}
	return domain.IndexUninitialized
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(body), "application/json", out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var body httpapi.ErrorResponse
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		apiErr.Message = body.Error
		apiErr.Detail = body.Detail
	} else {
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	return apiErr
}
