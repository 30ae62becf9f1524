package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
)

func TestNewConfigStore(t *testing.T) {
	t.Run("no config uses memory", func(t *testing.T) {
		old := noConfig
		noConfig = true
		defer func() { noConfig = old }()

		store, err := newConfigStore()

		require.NoError(t, err)
		assert.Equal(t, ":memory:", store.Path())
	})

	t.Run("config dir uses toml file", func(t *testing.T) {
		dir := useConfigDir(t)

		store, err := newConfigStore()

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
	})
}

func TestLoadSettings_Validates(t *testing.T) {
	dir := useConfigDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"),
		[]byte("[retrieval]\ntop_k = 0\n"), 0o600))

	_, err := loadSettings()

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestBuildGateway(t *testing.T) {
	useConfigDir(t)
	settings, err := loadSettings()
	require.NoError(t, err)

	gw, err := buildGateway(settings)

	require.NoError(t, err)
	assert.Same(t, settings, gw.settings)
	assert.NotNil(t, gw.ask)
	assert.NotNil(t, gw.ingest)
	assert.Equal(t, domain.IndexUninitialized, gw.index.Status().State)
}

func TestBuildGateway_NoConfig(t *testing.T) {
	old := noConfig
	noConfig = true
	defer func() { noConfig = old }()

	settings := domain.DefaultSettings()
	gw, err := buildGateway(&settings)

	require.NoError(t, err)
	assert.NotNil(t, gw.ask)
}
