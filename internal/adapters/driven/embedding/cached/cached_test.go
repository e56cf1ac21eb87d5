package cached

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikolaykoSergey/lifta-cli/internal/core/ports/driven"
)

// mockBackend derives a deterministic vector from each text so tests can
// check which vector landed in which slot.
type mockBackend struct {
	embedCalls int
	batches    [][]string
	err        error
}

func vectorFor(text string) []float32 {
	return []float32{float32(len(text))}
}

func (m *mockBackend) Embed(_ context.Context, text string) ([]float32, error) {
	m.embedCalls++
	if m.err != nil {
		return nil, m.err
	}
	return vectorFor(text), nil
}

func (m *mockBackend) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.batches = append(m.batches, texts)
	if m.err != nil {
		return nil, m.err
	}
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = vectorFor(text)
	}
	return vectors, nil
}

func (m *mockBackend) Dimensions() int             { return 1 }
func (m *mockBackend) ModelName() string           { return "mock-model" }
func (m *mockBackend) Ping(_ context.Context) error { return nil }
func (m *mockBackend) Close() error                { return nil }

// mapCache is an in-memory EmbeddingCache.
type mapCache struct {
	entries map[string][]float32
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string][]float32)}
}

func (c *mapCache) Get(text string) ([]float32, bool) {
	vector, ok := c.entries[text]
	return vector, ok
}

func (c *mapCache) Put(text string, embedding []float32) error {
	c.entries[text] = embedding
	return nil
}

func (c *mapCache) Count() (int, error) {
	return len(c.entries), nil
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.EmbeddingService = (*Service)(nil)
}

// TestEmbed_SecondCallServedFromCache verifies re-embedding identical text
// never reaches the backend again.
func TestEmbed_SecondCallServedFromCache(t *testing.T) {
	backend := &mockBackend{}
	svc := New(backend, newMapCache())

	first, err := svc.Embed(context.Background(), "rated load 630 kg")
	require.NoError(t, err)
	second, err := svc.Embed(context.Background(), "rated load 630 kg")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, backend.embedCalls)
}

// TestEmbedBatch_OrderPreserved verifies hits and misses interleave back
// into input order.
func TestEmbedBatch_OrderPreserved(t *testing.T) {
	backend := &mockBackend{}
	cache := newMapCache()
	require.NoError(t, cache.Put("bb", []float32{99}))

	svc := New(backend, cache)
	vectors, err := svc.EmbedBatch(context.Background(), []string{"a", "bb", "ccc", "dddd"})
	require.NoError(t, err)
	require.Len(t, vectors, 4)

	assert.Equal(t, vectorFor("a"), vectors[0])
	assert.Equal(t, []float32{99}, vectors[1], "cached slot keeps the cached vector")
	assert.Equal(t, vectorFor("ccc"), vectors[2])
	assert.Equal(t, vectorFor("dddd"), vectors[3])

	require.Len(t, backend.batches, 1)
	assert.Equal(t, []string{"a", "ccc", "dddd"}, backend.batches[0])
}

// TestEmbedBatch_BatchBound verifies misses reach the backend in bounded
// batches.
func TestEmbedBatch_BatchBound(t *testing.T) {
	backend := &mockBackend{}
	svc := New(backend, newMapCache())
	svc.batchSize = 2

	_, err := svc.EmbedBatch(context.Background(), []string{"a", "b", "c", "d", "e"})
	require.NoError(t, err)

	require.Len(t, backend.batches, 3)
	assert.Equal(t, []string{"a", "b"}, backend.batches[0])
	assert.Equal(t, []string{"c", "d"}, backend.batches[1])
	assert.Equal(t, []string{"e"}, backend.batches[2])
}

// TestEmbedBatch_AllCached verifies a fully warm cache bypasses the
// backend entirely.
func TestEmbedBatch_AllCached(t *testing.T) {
	backend := &mockBackend{}
	cache := newMapCache()
	require.NoError(t, cache.Put("a", []float32{1}))
	require.NoError(t, cache.Put("b", []float32{2}))

	svc := New(backend, cache)
	vectors, err := svc.EmbedBatch(context.Background(), []string{"a", "b"})
	require.NoError(t, err)

	assert.Equal(t, [][]float32{{1}, {2}}, vectors)
	assert.Empty(t, backend.batches)
}

// TestEmbedBatch_PopulatesCache verifies new vectors are stored for the
// next run.
func TestEmbedBatch_PopulatesCache(t *testing.T) {
	backend := &mockBackend{}
	cache := newMapCache()

	svc := New(backend, cache)
	_, err := svc.EmbedBatch(context.Background(), []string{"a", "bb"})
	require.NoError(t, err)

	count, err := cache.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// Second batch over the same texts is free.
	_, err = svc.EmbedBatch(context.Background(), []string{"a", "bb"})
	require.NoError(t, err)
	assert.Len(t, backend.batches, 1)
}

func TestEmbedBatch_Empty(t *testing.T) {
	svc := New(&mockBackend{}, newMapCache())
	vectors, err := svc.EmbedBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, vectors)
}

func TestEmbedBatch_BackendError(t *testing.T) {
	backend := &mockBackend{err: errors.New("backend down")}
	svc := New(backend, newMapCache())

	_, err := svc.EmbedBatch(context.Background(), []string{"a"})
	assert.Error(t, err)
}

func TestDelegation(t *testing.T) {
	svc := New(&mockBackend{}, newMapCache())
	assert.Equal(t, 1, svc.Dimensions())
	assert.Equal(t, "mock-model", svc.ModelName())
	assert.NoError(t, svc.Ping(context.Background()))
	assert.NoError(t, svc.Close())
}
