package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
)

// uploadField is the multipart field carrying the file.
const uploadField = "file"

const statusSuccess = "success"

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var req IngestRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Content == nil {
		writeError(w, fmt.Errorf("%w: content is required", domain.ErrValidation))
		return
	}

	res, err := s.ports.Ingest.IngestContent(r.Context(), req.Content, req.Source)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, IngestResponse{
		Status:      statusSuccess,
		ChunkCount:  res.ChunkCount,
		IngestionID: res.IngestionID,
	})
}

// handleUpload streams the "file" part into the ingest service. The format
// is checked from the filename before any of the part body is read.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	mr, err := r.MultipartReader()
	if err != nil {
		writeError(w, fmt.Errorf("%w: expected a multipart form: %v", domain.ErrValidation, err))
		return
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			writeError(w, fmt.Errorf("%w: no file uploaded", domain.ErrValidation))
			return
		}
		if err != nil {
			writeError(w, fmt.Errorf("%w: malformed multipart body: %v", domain.ErrValidation, err))
			return
		}
		if part.FormName() != uploadField {
			_ = part.Close()
			continue
		}

		filename := part.FileName()
		if filename == "" {
			_ = part.Close()
			writeError(w, fmt.Errorf("%w: the %q field must be a file", domain.ErrValidation, uploadField))
			return
		}
		if _, err := domain.FormatFromFilename(filename); err != nil {
			_ = part.Close()
			writeError(w, err)
			return
		}

		res, err := s.ports.Ingest.IngestFile(r.Context(), filename, part)
		_ = part.Close()
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, IngestResponse{
			Status:      statusSuccess,
			Filename:    res.Source,
			ChunkCount:  res.ChunkCount,
			IngestionID: res.IngestionID,
		})
		return
	}
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	answer, err := s.ports.Ask.Ask(r.Context(), domain.AskRequest{
		Question: req.question(),
		Model:    req.Model,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, GenerateResponse{
		Response: answer.Response,
		Model:    answer.Model,
		Context:  answer.Context,
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	results, err := s.ports.Ask.Search(r.Context(), req.Query, req.K)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, SearchResponse{Results: toSearchResults(results)})
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, toStatusResponse(s.ports.Index.Status()))
}

func (s *Server) handleIngestions(w http.ResponseWriter, r *http.Request) {
	list, err := s.ports.Ingest.Ingestions(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, IngestionsResponse{Ingestions: toIngestionResponses(list)})
}

func (s *Server) handleTest(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"msg": "hello"})
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "no route for " + r.URL.Path})
}

func handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: r.Method + " is not allowed on " + r.URL.Path})
}

// decodeJSON reads a bounded JSON body into v.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is empty", domain.ErrValidation)
		}
		return fmt.Errorf("%w: invalid JSON body: %v", domain.ErrValidation, err)
	}
	return nil
}
