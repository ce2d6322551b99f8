package ports

import (
	"context"

	"clubhub/internal/core/domain"
)

// KeyValueStore is the durable string-keyed store shared by the content
// cache, favorites and preferences. Each consumer owns a disjoint key
// prefix and must not touch keys outside it. A missing key is reported as
// domain.ErrKeyNotFound, never as an empty value.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
}

type ClubRepository interface {
	List(ctx context.Context) ([]*domain.Club, error)
	GetByID(ctx context.Context, id domain.ClubID) (*domain.Club, error)
	Search(ctx context.Context, term string) ([]*domain.Club, error)
	Upsert(ctx context.Context, club *domain.Club) error
	Close() error
}

// ContentQuery narrows a remote content API request.
type ContentQuery struct {
	Limit        int
	Tags         string
	Search       string
	EmailAddress string
}

// ContentAPI is the remote content API boundary. A nil club falls back to
// the client's central credentials.
type ContentAPI interface {
	OnDemandVideos(ctx context.Context, club *domain.Club, q ContentQuery) ([]domain.Video, error)
	LiveEvents(ctx context.Context, club *domain.Club, q ContentQuery) ([]domain.LiveEvent, error)
	GetUser(ctx context.Context, email string) (*domain.User, error)
}
