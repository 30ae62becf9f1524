package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-rag/internal/core/ports/driven"
)

func TestPromptStore_ImplementsInterface(t *testing.T) {
	var _ driven.PromptStore = (*PromptStore)(nil)
}

func TestNewPromptStore_DefaultDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot determine home directory")
	}

	store, err := NewPromptStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".sercha-rag", "prompts"), store.Dir())
}

func TestPromptStore_Load_CreatesDefaultFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptRAGAnswer)
	require.NoError(t, err)
	assert.Equal(t, driven.DefaultRAGAnswerPrompt, prompt)

	for _, f := range []string{"rag_answer.txt", "README.md"} {
		_, err := os.Stat(filepath.Join(dir, f))
		assert.NoError(t, err, "expected file %s to exist", f)
	}
}

func TestPromptStore_Load_ReturnsCustomContent(t *testing.T) {
	dir := t.TempDir()
	custom := "CTX=%s\nQ=%s"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rag_answer.txt"), []byte(custom+"\n\n"), 0600))

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptRAGAnswer)
	require.NoError(t, err)
	assert.Equal(t, custom, prompt, "whitespace is trimmed and the file is not overwritten")
}

func TestPromptStore_Load_FallsBackToDefault(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	_, err = store.Load(driven.PromptRAGAnswer)
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(dir, "rag_answer.txt")))
	store.Reload()

	prompt, err := store.Load(driven.PromptRAGAnswer)
	require.NoError(t, err)
	assert.Equal(t, driven.DefaultRAGAnswerPrompt, prompt)
}

func TestPromptStore_Load_UnknownPrompt(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load("no_such_prompt")
	assert.Error(t, err)
}

func TestPromptStore_Reload_PicksUpEdits(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	_, err = store.Load(driven.PromptRAGAnswer)
	require.NoError(t, err)

	path := filepath.Join(dir, "rag_answer.txt")
	require.NoError(t, os.WriteFile(path, []byte("edited %s %s"), 0600))

	cached, err := store.Load(driven.PromptRAGAnswer)
	require.NoError(t, err)
	assert.Equal(t, driven.DefaultRAGAnswerPrompt, cached)

	store.Reload()
	fresh, err := store.Load(driven.PromptRAGAnswer)
	require.NoError(t, err)
	assert.Equal(t, "edited %s %s", fresh)
}

func TestPromptStore_Load_ConcurrentAccess(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			prompt, err := store.Load(driven.PromptRAGAnswer)
			assert.NoError(t, err)
			assert.NotEmpty(t, prompt)
		}()
	}
	wg.Wait()
}

func TestPromptStore_InitFailureUsesDefaults(t *testing.T) {
	// A regular file where the directory should be makes MkdirAll fail.
	parent := t.TempDir()
	blocker := filepath.Join(parent, "prompts")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	store, err := NewPromptStore(blocker)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptRAGAnswer)
	require.NoError(t, err)
	assert.Equal(t, driven.DefaultRAGAnswerPrompt, prompt)
}
