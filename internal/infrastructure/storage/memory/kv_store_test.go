package memory

import (
	"context"
	"testing"

	"clubhub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVStore_SetGetDelete(t *testing.T) {
	store := NewKVStore()
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)

	require.NoError(t, store.Set(ctx, "k", "v"))
	val, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", val)

	require.NoError(t, store.Set(ctx, "k", "v2"))
	val, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", val)

	require.NoError(t, store.Delete(ctx, "k"))
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestKVStore_DeleteMultipleAndMissing(t *testing.T) {
	store := NewKVStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a", "1"))
	require.NoError(t, store.Set(ctx, "b", "2"))

	// Deleting a mix of present and absent keys is not an error.
	require.NoError(t, store.Delete(ctx, "a", "b", "c"))
	assert.Equal(t, 0, store.Len())
}

func TestKVStore_KeysFiltersByPrefix(t *testing.T) {
	store := NewKVStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "clubhub:cache:videos_a", "1"))
	require.NoError(t, store.Set(ctx, "clubhub:cache:live_a", "2"))
	require.NoError(t, store.Set(ctx, "clubhub:prefs:u1:selected_clubs", "3"))

	keys, err := store.Keys(ctx, "clubhub:cache:")
	require.NoError(t, err)
	assert.Len(t, keys, 2)
	assert.ElementsMatch(t, []string{"clubhub:cache:videos_a", "clubhub:cache:live_a"}, keys)

	keys, err = store.Keys(ctx, "clubhub:favorites:")
	require.NoError(t, err)
	assert.Empty(t, keys)
}
