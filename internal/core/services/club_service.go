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

// prefsPrefix is the preferences namespace in the shared key-value store,
// disjoint from the content cache's namespace.
const prefsPrefix = "clubhub:prefs:"

type clubService struct {
	repo   ports.ClubRepository
	store  ports.KeyValueStore
	logger *zap.SugaredLogger
}

// NewClubService serves the club catalog and persists each user's
// selected-club set.
func NewClubService(repo ports.ClubRepository, store ports.KeyValueStore, logger *zap.SugaredLogger) ports.ClubService {
	return &clubService{
		repo:   repo,
		store:  store,
		logger: logger,
	}
}

func (s *clubService) Clubs(ctx context.Context) ([]*domain.Club, error) {
	return s.repo.List(ctx)
}

func (s *clubService) Club(ctx context.Context, id domain.ClubID) (*domain.Club, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *clubService) Search(ctx context.Context, term string) ([]*domain.Club, error) {
	return s.repo.Search(ctx, term)
}

func selectionKey(userID domain.UserID) string {
	return prefsPrefix + string(userID) + ":selected_clubs"
}

func (s *clubService) SelectedClubs(ctx context.Context, userID domain.UserID) ([]domain.ClubID, error) {
	data, err := s.store.Get(ctx, selectionKey(userID))
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var clubIDs []domain.ClubID
	if err := json.Unmarshal([]byte(data), &clubIDs); err != nil {
		// A corrupt selection is discarded, not surfaced.
		s.logger.Warnw("discarding malformed club selection", "user_id", userID, "error", err)
		if err := s.store.Delete(ctx, selectionKey(userID)); err != nil {
			s.logger.Warnw("failed to remove malformed club selection", "user_id", userID, "error", err)
		}
		return nil, nil
	}
	return clubIDs, nil
}

func (s *clubService) SaveSelection(ctx context.Context, userID domain.UserID, clubIDs []domain.ClubID) error {
	for _, id := range clubIDs {
		if _, err := s.repo.GetByID(ctx, id); err != nil {
			return fmt.Errorf("invalid selection: %w", err)
		}
	}

	data, err := json.Marshal(clubIDs)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, selectionKey(userID), string(data))
}
