package services

import (
	"context"
	"testing"

	"clubhub/internal/core/domain"
	"clubhub/internal/infrastructure/storage/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestToggle_FlipsState(t *testing.T) {
	store := memory.NewKVStore()
	svc := NewFavoritesService(store, zaptest.NewLogger(t).Sugar())
	ctx := context.Background()

	liked, err := svc.Toggle(ctx, "u1", domain.FavoriteVideos, "v1")
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = svc.IsLiked(ctx, "u1", domain.FavoriteVideos, "v1")
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = svc.Toggle(ctx, "u1", domain.FavoriteVideos, "v1")
	require.NoError(t, err)
	assert.False(t, liked)

	liked, err = svc.IsLiked(ctx, "u1", domain.FavoriteVideos, "v1")
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestToggle_UnknownKind(t *testing.T) {
	svc := NewFavoritesService(memory.NewKVStore(), zaptest.NewLogger(t).Sugar())

	_, err := svc.Toggle(context.Background(), "u1", "playlists", "v1")
	assert.Error(t, err)
}

func TestFavorites_KindsAndUsersAreIsolated(t *testing.T) {
	svc := NewFavoritesService(memory.NewKVStore(), zaptest.NewLogger(t).Sugar())
	ctx := context.Background()

	_, err := svc.Toggle(ctx, "u1", domain.FavoriteVideos, "v1")
	require.NoError(t, err)
	_, err = svc.Toggle(ctx, "u1", domain.FavoriteShorts, "s1")
	require.NoError(t, err)

	// Same ID under a different kind is independent.
	liked, err := svc.IsLiked(ctx, "u1", domain.FavoriteNews, "v1")
	require.NoError(t, err)
	assert.False(t, liked)

	// Another user sees nothing.
	liked, err = svc.IsLiked(ctx, "u2", domain.FavoriteVideos, "v1")
	require.NoError(t, err)
	assert.False(t, liked)

	favorites, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []domain.ContentID{"v1"}, favorites.Videos)
	assert.Equal(t, []domain.ContentID{"s1"}, favorites.Shorts)
	assert.Empty(t, favorites.News)
}

func TestFavorites_MalformedEntryIsDiscarded(t *testing.T) {
	store := memory.NewKVStore()
	svc := NewFavoritesService(store, zaptest.NewLogger(t).Sugar())
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "clubhub:favorites:u1:videos", "{broken"))

	liked, err := svc.IsLiked(ctx, "u1", domain.FavoriteVideos, "v1")
	require.NoError(t, err)
	assert.False(t, liked)

	// A later toggle starts from an empty set.
	liked, err = svc.Toggle(ctx, "u1", domain.FavoriteVideos, "v1")
	require.NoError(t, err)
	assert.True(t, liked)
}
