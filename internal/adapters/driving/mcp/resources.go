package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// URIScheme is the custom URI scheme for sercha-rag resources.
	uriScheme = "sercha-rag://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "ingestions",
		Name:        "ingestions",
		Description: "Receipts of content ingested since the gateway started",
		MIMEType:    "application/json",
	}, s.handleIngestionsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "status",
		Name:        "status",
		Description: "Lifecycle state of the vector index",
		MIMEType:    "application/json",
	}, s.handleStatusResource)
}

// handleIngestionsResource returns the ingestion log.
func (s *Server) handleIngestionsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Ingest == nil {
		return jsonResource(req.Params.URI, "[]"), nil
	}

	ingestions, err := s.ports.Ingest.Ingestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing ingestions: %w", err)
	}

	type ingestionInfo struct {
		ID         string    `json:"id"`
		Source     string    `json:"source"`
		Format     string    `json:"format"`
		ChunkCount int       `json:"chunk_count"`
		CreatedAt  time.Time `json:"created_at"`
	}

	infos := make([]ingestionInfo, len(ingestions))
	for i, ing := range ingestions {
		infos[i] = ingestionInfo{
			ID:         ing.ID,
			Source:     ing.Source,
			Format:     ing.Format.String(),
			ChunkCount: ing.ChunkCount,
			CreatedAt:  ing.CreatedAt,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling ingestions: %w", err)
	}

	return jsonResource(req.Params.URI, string(data)), nil
}

// handleStatusResource returns the index lifecycle state.
func (s *Server) handleStatusResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Index == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	status := s.ports.Index.Status()
	info := struct {
		State      string `json:"state"`
		Entries    int    `json:"entries"`
		Dimensions int    `json:"dimensions"`
		Error      string `json:"error,omitempty"`
	}{
		State:      status.State.String(),
		Entries:    status.Entries,
		Dimensions: status.Dimensions,
	}
	if status.Err != nil {
		info.Error = status.Err.Error()
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling status: %w", err)
	}

	return jsonResource(req.Params.URI, string(data)), nil
}

func jsonResource(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		}},
	}
}
