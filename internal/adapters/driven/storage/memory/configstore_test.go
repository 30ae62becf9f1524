package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-rag/internal/core/ports/driven"
)

func TestConfigStore_InterfaceCompliance(t *testing.T) {
	var _ driven.ConfigStore = (*ConfigStore)(nil)
}

func TestNewConfigStoreWith_CopiesValues(t *testing.T) {
	src := map[string]any{"server.addr": ":8080"}
	store := NewConfigStoreWith(src)
	src["server.addr"] = ":9999"

	assert.Equal(t, ":8080", store.GetString("server.addr"))
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStoreWith(map[string]any{
		"str":      "hello",
		"int":      42,
		"int64":    int64(7),
		"float":    2.5,
		"float32":  float32(0.5),
		"bool":     true,
		"strs":     []string{"a", "b"},
		"anys":     []any{"x", 1, "y"},
		"wrongish": struct{}{},
	})

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"string", store.GetString("str"), "hello"},
		{"string wrong type", store.GetString("int"), ""},
		{"int", store.GetInt("int"), 42},
		{"int from int64", store.GetInt("int64"), 7},
		{"int from float64", store.GetInt("float"), 2},
		{"int wrong type", store.GetInt("str"), 0},
		{"float", store.GetFloat("float"), 2.5},
		{"float from float32", store.GetFloat("float32"), 0.5},
		{"float from int", store.GetFloat("int"), 42.0},
		{"float from int64", store.GetFloat("int64"), 7.0},
		{"float wrong type", store.GetFloat("wrongish"), 0.0},
		{"bool", store.GetBool("bool"), true},
		{"bool wrong type", store.GetBool("str"), false},
		{"string slice", store.GetStringSlice("strs"), []string{"a", "b"}},
		{"string slice from any", store.GetStringSlice("anys"), []string{"x", "y"}},
		{"string slice wrong type", store.GetStringSlice("str"), []string(nil)},
		{"missing string", store.GetString("missing"), ""},
		{"missing float", store.GetFloat("missing"), 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestConfigStore_SetOverwrites(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("generation.model", "mistral"))
	require.NoError(t, store.Set("generation.model", "llama3.2"))

	val, ok := store.Get("generation.model")
	assert.True(t, ok)
	assert.Equal(t, "llama3.2", val)
}

func TestConfigStore_NoOpPersistence(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("k", "v"))

	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, "v", store.GetString("k"))
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = store.Set(fmt.Sprintf("key.%d", i), i)
		}(i)
		go func(i int) {
			defer wg.Done()
			_ = store.GetInt(fmt.Sprintf("key.%d", i))
		}(i)
	}
	wg.Wait()

	for i := 0; i < 50; i++ {
		assert.Equal(t, i, store.GetInt(fmt.Sprintf("key.%d", i)))
	}
}
