package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to answer from the indexed content"`
	Model    string `json:"model,omitempty" jsonschema:"language model to use instead of the configured default"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer  string   `json:"answer"`
	Model   string   `json:"model"`
	Context []string `json:"context"`
}

// IngestInput is the input schema for the ingest tool.
type IngestInput struct {
	Content string `json:"content" jsonschema:"text to add to the index"`
	Source  string `json:"source,omitempty" jsonschema:"label recorded with the content (default inline)"`
}

// IngestOutput is the output schema for the ingest tool.
type IngestOutput struct {
	IngestionID string `json:"ingestion_id,omitempty"`
	ChunkCount  int    `json:"chunk_count"`
}

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the text to find similar passages for"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of passages to return (default 3)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single retrieved passage.
type SearchResultOutput struct {
	Text   string  `json:"text"`
	Score  float64 `json:"score"`
	Source string  `json:"source,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a question using passages retrieved from the local index",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Return the indexed passages most similar to a query, with scores",
	}, s.handleSearch)

	if s.ports.Ingest != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "ingest",
			Description: "Add text to the local index so later questions can use it",
		}, s.handleIngest)
	}
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	answer, err := s.ports.Ask.Ask(ctx, domain.AskRequest{
		Question: input.Question,
		Model:    input.Model,
	})
	if err != nil {
		return nil, AskOutput{}, err
	}

	return nil, AskOutput{
		Answer:  answer.Response,
		Model:   answer.Model,
		Context: answer.Context,
	}, nil
}

// handleIngest handles the ingest tool invocation.
func (s *Server) handleIngest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	if s.ports.Ingest == nil {
		return nil, IngestOutput{}, fmt.Errorf("%w: ingest is not available", domain.ErrValidation)
	}

	res, err := s.ports.Ingest.IngestContent(ctx, input.Content, input.Source)
	if err != nil {
		return nil, IngestOutput{}, err
	}

	return nil, IngestOutput{
		IngestionID: res.IngestionID,
		ChunkCount:  res.ChunkCount,
	}, nil
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	results, err := s.ports.Ask.Search(ctx, input.Query, input.Limit)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		source, _ := results[i].Entry.Metadata[domain.MetaSource].(string)
		output.Results[i] = SearchResultOutput{
			Text:   results[i].Entry.Text,
			Score:  results[i].Score,
			Source: source,
		}
	}

	return nil, output, nil
}
