package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"clubhub/internal/core/domain"
	"clubhub/internal/core/ports"

	"go.uber.org/zap"
)

// favoritesPrefix is the favorites namespace in the shared key-value
// store, disjoint from the content cache's namespace.
const favoritesPrefix = "clubhub:favorites:"

type favoritesService struct {
	store  ports.KeyValueStore
	logger *zap.SugaredLogger
}

// NewFavoritesService persists per-user liked content IDs.
func NewFavoritesService(store ports.KeyValueStore, logger *zap.SugaredLogger) ports.FavoritesService {
	return &favoritesService{
		store:  store,
		logger: logger,
	}
}

func favoritesKey(userID domain.UserID, kind domain.FavoriteKind) string {
	return favoritesPrefix + string(userID) + ":" + string(kind)
}

// load returns the stored ID set for one kind. Malformed stored JSON is
// removed and treated as empty.
func (s *favoritesService) load(ctx context.Context, userID domain.UserID, kind domain.FavoriteKind) ([]domain.ContentID, error) {
	data, err := s.store.Get(ctx, favoritesKey(userID, kind))
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var ids []domain.ContentID
	if err := json.Unmarshal([]byte(data), &ids); err != nil {
		s.logger.Warnw("discarding malformed favorites entry",
			"user_id", userID,
			"kind", kind,
			"error", err,
		)
		if err := s.store.Delete(ctx, favoritesKey(userID, kind)); err != nil {
			s.logger.Warnw("failed to remove malformed favorites entry", "user_id", userID, "error", err)
		}
		return nil, nil
	}
	return ids, nil
}

func (s *favoritesService) save(ctx context.Context, userID domain.UserID, kind domain.FavoriteKind, ids []domain.ContentID) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, favoritesKey(userID, kind), string(data))
}

// Toggle flips one liked ID and reports the new state.
func (s *favoritesService) Toggle(ctx context.Context, userID domain.UserID, kind domain.FavoriteKind, id domain.ContentID) (bool, error) {
	if !kind.Valid() {
		return false, fmt.Errorf("unknown favorite kind %q", kind)
	}

	ids, err := s.load(ctx, userID, kind)
	if err != nil {
		return false, err
	}

	for i, existing := range ids {
		if existing == id {
			ids = append(ids[:i], ids[i+1:]...)
			return false, s.save(ctx, userID, kind, ids)
		}
	}

	ids = append(ids, id)
	return true, s.save(ctx, userID, kind, ids)
}

func (s *favoritesService) List(ctx context.Context, userID domain.UserID) (*domain.Favorites, error) {
	videos, err := s.load(ctx, userID, domain.FavoriteVideos)
	if err != nil {
		return nil, err
	}
	shorts, err := s.load(ctx, userID, domain.FavoriteShorts)
	if err != nil {
		return nil, err
	}
	news, err := s.load(ctx, userID, domain.FavoriteNews)
	if err != nil {
		return nil, err
	}

	return &domain.Favorites{
		Videos: videos,
		Shorts: shorts,
		News:   news,
	}, nil
}

func (s *favoritesService) IsLiked(ctx context.Context, userID domain.UserID, kind domain.FavoriteKind, id domain.ContentID) (bool, error) {
	if !kind.Valid() {
		return false, fmt.Errorf("unknown favorite kind %q", kind)
	}

	ids, err := s.load(ctx, userID, kind)
	if err != nil {
		return false, err
	}
	for _, existing := range ids {
		if existing == id {
			return true, nil
		}
	}
	return false, nil
}
