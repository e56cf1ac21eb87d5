package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("embedding.provider", "ollama"))

	val, ok := store.Get("embedding.provider")
	assert.True(t, ok)
	assert.Equal(t, "ollama", val)

	_, ok = store.Get("embedding.model")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("embedding.model", "nomic-embed-text"))
	require.NoError(t, store.Set("chat.top_k", 5))
	require.NoError(t, store.Set("chunking.size", int64(1000)))
	require.NoError(t, store.Set("llm.temperature", 0.1))
	require.NoError(t, store.Set("extraction.enable_ocr", true))
	require.NoError(t, store.Set("chat.initial_data_fields", []string{"City", "Phone"}))

	assert.Equal(t, "nomic-embed-text", store.GetString("embedding.model"))
	assert.Equal(t, 5, store.GetInt("chat.top_k"))
	assert.Equal(t, 1000, store.GetInt("chunking.size"))
	assert.InDelta(t, 0.1, store.GetFloat("llm.temperature"), 0.0001)
	assert.True(t, store.GetBool("extraction.enable_ocr"))
	assert.Equal(t, []string{"City", "Phone"}, store.GetStringSlice("chat.initial_data_fields"))
}

func TestConfigStore_TypedGetters_Coercions(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("llm.max_tokens", int64(2048)))
	require.NoError(t, store.Set("whole_temperature", int64(1)))
	require.NoError(t, store.Set("mixed_fields", []any{"Contract number", 7, "Lift model"}))

	assert.Equal(t, 2048, store.GetInt("llm.max_tokens"))
	assert.InDelta(t, 1.0, store.GetFloat("whole_temperature"), 0.0001)
	assert.Equal(t, []string{"Contract number", "Lift model"}, store.GetStringSlice("mixed_fields"))
}

func TestConfigStore_TypedGetters_MissingAndWrongType(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("text", "hello"))
	require.NoError(t, store.Set("number", 42))

	assert.Equal(t, "", store.GetString("missing"))
	assert.Equal(t, "", store.GetString("number"))
	assert.Equal(t, 0, store.GetInt("missing"))
	assert.Equal(t, 0, store.GetInt("text"))
	assert.Equal(t, 0.0, store.GetFloat("missing"))
	assert.Equal(t, 0.0, store.GetFloat("text"))
	assert.False(t, store.GetBool("missing"))
	assert.False(t, store.GetBool("text"))
	assert.Nil(t, store.GetStringSlice("missing"))
	assert.Nil(t, store.GetStringSlice("text"))
}

func TestConfigStore_Overwrite(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("index.docs_dir", "/srv/manuals"))
	require.NoError(t, store.Set("index.docs_dir", "/srv/docs"))

	assert.Equal(t, "/srv/docs", store.GetString("index.docs_dir"))
}

func TestConfigStore_SaveLoadAreNoOps(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("chat.top_k", 5))

	require.NoError(t, store.Save())
	require.NoError(t, store.Load())

	assert.Equal(t, 5, store.GetInt("chat.top_k"))
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("chunking.overlap", n)
			_ = store.GetInt("chunking.overlap")
			_, _ = store.Get("chunking.overlap")
		}(i)
	}
	wg.Wait()
}
