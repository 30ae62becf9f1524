package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
	"github.com/custodia-labs/sercha-rag/internal/logger"
)

// statusFor maps a pipeline error to an HTTP status code.
// Caller mistakes are 400, model rejections are 502 and everything else,
// including an index that is still seeding, is 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrGenerationRejected):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError writes err as an ErrorResponse with the mapped status.
func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	resp := ErrorResponse{Error: err.Error()}

	var genErr *domain.GenerationError
	if errors.As(err, &genErr) {
		resp.Error = "language model rejected the request"
		resp.Detail = genErr.Body
	}

	if status >= http.StatusInternalServerError {
		logger.Error("%v", err)
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Debug("Failed to write response: %v", err)
	}
}
