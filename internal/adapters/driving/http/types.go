package http

import (
	"time"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
)

// IngestRequest is the body of POST /api/ingest.
type IngestRequest struct {
	// Content is a string or any JSON value.
	Content any    `json:"content"`
	Source  string `json:"source,omitempty"`
}

// IngestResponse is returned by the ingest and upload routes.
type IngestResponse struct {
	Status      string `json:"status"`
	Filename    string `json:"filename,omitempty"`
	ChunkCount  int    `json:"chunkCount"`
	IngestionID string `json:"ingestionId,omitempty"`
}

// GenerateRequest is the body of POST /api/generate.
// Prompt and Question are synonyms; Prompt wins when both are set.
type GenerateRequest struct {
	Prompt   string `json:"prompt,omitempty"`
	Question string `json:"question,omitempty"`
	Model    string `json:"model,omitempty"`
}

// question returns whichever of the synonyms is set.
func (r GenerateRequest) question() string {
	if r.Prompt != "" {
		return r.Prompt
	}
	return r.Question
}

// GenerateResponse is the answer to POST /api/generate.
type GenerateResponse struct {
	Response string   `json:"response"`
	Model    string   `json:"model"`
	Context  []string `json:"context,omitempty"`
}

// SearchRequest is the body of POST /api/search.
type SearchRequest struct {
	Query string `json:"query"`
	K     int    `json:"k,omitempty"`
}

// SearchResult is one scored passage.
type SearchResult struct {
	Text     string         `json:"text"`
	Score    float64        `json:"score"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// SearchResponse is the answer to POST /api/search.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
}

// StatusResponse is the answer to GET /api/status.
type StatusResponse struct {
	State      string `json:"state"`
	Entries    int    `json:"entries"`
	Dimensions int    `json:"dimensions"`
	Error      string `json:"error,omitempty"`
}

// IngestionResponse is one receipt in GET /api/ingestions.
type IngestionResponse struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	Format     string    `json:"format"`
	ChunkCount int       `json:"chunkCount"`
	CreatedAt  time.Time `json:"createdAt"`
}

// IngestionsResponse is the answer to GET /api/ingestions.
type IngestionsResponse struct {
	Ingestions []IngestionResponse `json:"ingestions"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func toSearchResults(entries []domain.ScoredEntry) []SearchResult {
	out := make([]SearchResult, len(entries))
	for i, e := range entries {
		out[i] = SearchResult{
			Text:     e.Entry.Text,
			Score:    e.Score,
			Metadata: e.Entry.Metadata,
		}
	}
	return out
}

func toStatusResponse(s domain.IndexStatus) StatusResponse {
	resp := StatusResponse{
		State:      s.State.String(),
		Entries:    s.Entries,
		Dimensions: s.Dimensions,
	}
	if s.Err != nil {
		resp.Error = s.Err.Error()
	}
	return resp
}

func toIngestionResponses(list []domain.Ingestion) []IngestionResponse {
	out := make([]IngestionResponse, len(list))
	for i, ing := range list {
		out[i] = IngestionResponse{
			ID:         ing.ID,
			Source:     ing.Source,
			Format:     ing.Format.String(),
			ChunkCount: ing.ChunkCount,
			CreatedAt:  ing.CreatedAt,
		}
	}
	return out
}
