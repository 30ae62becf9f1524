package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewConfigValidator(t *testing.T) {
	assert.NotNil(t, NewConfigValidator())
}

func TestConfigValidator_Validate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"models":[]}`))
	}))
	defer srv.Close()

	v := NewConfigValidator()

	assert.NoError(t, v.Validate(context.Background(), testSettings(srv.URL)))
}

func TestConfigValidator_Validate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewConfigValidator().Validate(ctx, testSettings("http://127.0.0.1:11434"))

	assert.Error(t, err)
}
