package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrValidation", ErrValidation},
		{"ErrUnsupportedFormat", ErrUnsupportedFormat},
		{"ErrParseFailure", ErrParseFailure},
		{"ErrEmbeddingUnavailable", ErrEmbeddingUnavailable},
		{"ErrDimensionMismatch", ErrDimensionMismatch},
		{"ErrIndexNotReady", ErrIndexNotReady},
		{"ErrGenerationUnavailable", ErrGenerationUnavailable},
		{"ErrGenerationRejected", ErrGenerationRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrors_Distinct(t *testing.T) {
	all := []error{
		ErrValidation, ErrUnsupportedFormat, ErrParseFailure, ErrEmbeddingUnavailable,
		ErrDimensionMismatch, ErrIndexNotReady, ErrGenerationUnavailable, ErrGenerationRejected,
	}
	for i, a := range all {
		for j, b := range all {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
		}
	}
}

func TestErrors_Wrapped(t *testing.T) {
	err := fmt.Errorf("ingest report.csv: %w", ErrParseFailure)
	assert.True(t, errors.Is(err, ErrParseFailure))
	assert.False(t, errors.Is(err, ErrValidation))
}

func TestGenerationError(t *testing.T) {
	err := &GenerationError{StatusCode: 404, Body: `{"error":"model 'nope' not found"}`}

	assert.True(t, errors.Is(err, ErrGenerationRejected))
	assert.False(t, errors.Is(err, ErrGenerationUnavailable))
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "model 'nope' not found")

	wrapped := fmt.Errorf("ask: %w", err)
	var genErr *GenerationError
	assert.True(t, errors.As(wrapped, &genErr))
	assert.Equal(t, 404, genErr.StatusCode)
}
