package domain

import (
	"errors"
	"fmt"
)

const unknownDescription = "Unknown"

// Domain errors represent business logic failures.
// Every failure propagates unchanged to the request boundary.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates missing or malformed required input.
	ErrValidation = errors.New("validation error")

	// ErrUnsupportedFormat indicates a file extension no normaliser handles.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrParseFailure indicates a parser could not decode a document.
	ErrParseFailure = errors.New("parse failure")

	// ErrEmbeddingUnavailable indicates the embedding provider could not produce a vector.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrDimensionMismatch indicates a vector whose length differs from the index's.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrIndexNotReady indicates the vector index has not finished seeding.
	ErrIndexNotReady = errors.New("vector index not ready")

	// ErrGenerationUnavailable indicates the generation service could not be reached.
	ErrGenerationUnavailable = errors.New("generation service unavailable")

	// ErrGenerationRejected indicates the generation service answered with a non-success status.
	ErrGenerationRejected = errors.New("generation request rejected")
)

// GenerationError carries the upstream response of a rejected generation request.
type GenerationError struct {
	// StatusCode is the HTTP status returned by the generation service.
	StatusCode int

	// Body is the upstream error text.
	Body string
}

// Error implements error.
func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s (status %d): %s", ErrGenerationRejected, e.StatusCode, e.Body)
}

// Unwrap lets errors.Is match ErrGenerationRejected.
func (e *GenerationError) Unwrap() error {
	return ErrGenerationRejected
}
