package ports

import (
	"context"

	"clubhub/internal/core/domain"
)

// AccessService decides, per content item and viewer, whether playback is
// permitted and which lock overlay to show. Pure computation, no I/O.
type AccessService interface {
	EvaluateAccess(content domain.ContentDescriptor, user domain.UserContext) domain.AccessDecision
	ShouldShowLock(content domain.ContentDescriptor, user domain.UserContext) bool
	LockKind(content domain.ContentDescriptor, user domain.UserContext) domain.LockKind
}

// ContentService serves premium-filtered content lists for a club set,
// cache-first with remote fallback.
type ContentService interface {
	Videos(ctx context.Context, clubIDs []domain.ClubID) ([]domain.Video, error)
	Shorts(ctx context.Context, clubIDs []domain.ClubID) ([]domain.Video, error)
	LiveEvents(ctx context.Context, clubIDs []domain.ClubID) ([]domain.LiveEvent, error)
	Refresh(ctx context.Context, clubIDs []domain.ClubID) error
	ClearCache(ctx context.Context) error
	CacheStats() domain.CacheStats
}

type ClubService interface {
	Clubs(ctx context.Context) ([]*domain.Club, error)
	Club(ctx context.Context, id domain.ClubID) (*domain.Club, error)
	Search(ctx context.Context, term string) ([]*domain.Club, error)
	SelectedClubs(ctx context.Context, userID domain.UserID) ([]domain.ClubID, error)
	SaveSelection(ctx context.Context, userID domain.UserID, clubIDs []domain.ClubID) error
}

type FavoritesService interface {
	Toggle(ctx context.Context, userID domain.UserID, kind domain.FavoriteKind, id domain.ContentID) (bool, error)
	List(ctx context.Context, userID domain.UserID) (*domain.Favorites, error)
	IsLiked(ctx context.Context, userID domain.UserID, kind domain.FavoriteKind, id domain.ContentID) (bool, error)
}
