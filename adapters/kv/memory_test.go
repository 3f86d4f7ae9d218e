package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, found, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "agents/1", []byte(`{"name":"a"}`)))

	value, found, err := store.Get(ctx, "agents/1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `{"name":"a"}`, string(value))

	require.NoError(t, store.Delete(ctx, "agents/1"))
	_, found, err = store.Get(ctx, "agents/1")
	require.NoError(t, err)
	assert.False(t, found)

	// Deleting a missing key is a no-op
	require.NoError(t, store.Delete(ctx, "agents/1"))
}

func TestMemoryStore_KeysByPrefix(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, "agents/2", []byte(`{}`)))
	require.NoError(t, store.Set(ctx, "agents/1", []byte(`{}`)))
	require.NoError(t, store.Set(ctx, "reports/1", []byte(`{}`)))

	keys, err := store.Keys(ctx, "agents/")
	require.NoError(t, err)
	assert.Equal(t, []string{"agents/1", "agents/2"}, keys)

	all, err := store.Keys(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestMemoryStore_ValueIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	original := []byte("abc")
	require.NoError(t, store.Set(ctx, "k", original))
	original[0] = 'z'

	value, _, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(value))
}
