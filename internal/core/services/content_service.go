package services

import (
	"context"
	"errors"
	"sort"
	"sync"

	"clubhub/internal/cache"
	"clubhub/internal/core/domain"
	"clubhub/internal/core/ports"

	"go.uber.org/zap"
)

// Feed tags the remote API uses per category.
const (
	tagStandardVideo = "h-video"
	tagShortVideo    = "short"
)

type contentService struct {
	api       ports.ContentAPI
	cache     *cache.ContentCache
	clubs     ports.ClubRepository
	pageLimit int
	logger    *zap.SugaredLogger
}

// NewContentService returns the cache-first content provider. Premium and
// paid items are filtered out here, before any caller (or the access
// evaluator) ever sees them.
func NewContentService(
	api ports.ContentAPI,
	contentCache *cache.ContentCache,
	clubs ports.ClubRepository,
	pageLimit int,
	logger *zap.SugaredLogger,
) ports.ContentService {
	if pageLimit <= 0 {
		pageLimit = 20
	}
	return &contentService{
		api:       api,
		cache:     contentCache,
		clubs:     clubs,
		pageLimit: pageLimit,
		logger:    logger,
	}
}

func (s *contentService) Videos(ctx context.Context, clubIDs []domain.ClubID) ([]domain.Video, error) {
	return s.videos(ctx, clubIDs, domain.CategoryVideos)
}

func (s *contentService) Shorts(ctx context.Context, clubIDs []domain.ClubID) ([]domain.Video, error) {
	return s.videos(ctx, clubIDs, domain.CategoryShorts)
}

func (s *contentService) videos(ctx context.Context, clubIDs []domain.ClubID, category domain.ContentCategory) ([]domain.Video, error) {
	if len(clubIDs) == 0 {
		return nil, nil
	}

	if cached, ok := s.cache.CachedVideos(ctx, clubIDs, category); ok {
		return cached, nil
	}

	videos, err := s.fetchVideos(ctx, clubIDs, category)
	if err != nil {
		return nil, err
	}

	if err := s.cache.CacheVideos(ctx, clubIDs, videos, category); err != nil {
		s.logger.Warnw("failed to cache videos", "category", category, "error", err)
	}
	return videos, nil
}

func (s *contentService) LiveEvents(ctx context.Context, clubIDs []domain.ClubID) ([]domain.LiveEvent, error) {
	if len(clubIDs) == 0 {
		return nil, nil
	}

	if cached, ok := s.cache.CachedLiveEvents(ctx, clubIDs); ok {
		return cached, nil
	}

	events, err := s.fetchLiveEvents(ctx, clubIDs)
	if err != nil {
		return nil, err
	}

	if err := s.cache.CacheLiveEvents(ctx, clubIDs, events); err != nil {
		s.logger.Warnw("failed to cache live events", "error", err)
	}
	return events, nil
}

// Refresh bypasses the cache read and rewrites all three feeds for the
// club set. Backs the pull-to-refresh action.
func (s *contentService) Refresh(ctx context.Context, clubIDs []domain.ClubID) error {
	if len(clubIDs) == 0 {
		return nil
	}

	var errs []error
	for _, category := range []domain.ContentCategory{domain.CategoryVideos, domain.CategoryShorts} {
		videos, err := s.fetchVideos(ctx, clubIDs, category)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := s.cache.CacheVideos(ctx, clubIDs, videos, category); err != nil {
			s.logger.Warnw("failed to cache videos on refresh", "category", category, "error", err)
		}
	}

	events, err := s.fetchLiveEvents(ctx, clubIDs)
	if err != nil {
		errs = append(errs, err)
	} else if err := s.cache.CacheLiveEvents(ctx, clubIDs, events); err != nil {
		s.logger.Warnw("failed to cache live events on refresh", "error", err)
	}

	return errors.Join(errs...)
}

func (s *contentService) ClearCache(ctx context.Context) error {
	s.cache.Clear(ctx)
	return nil
}

func (s *contentService) CacheStats() domain.CacheStats {
	return s.cache.Stats()
}

// resolveClubs looks up the requested clubs; unknown IDs are logged and
// skipped rather than failing the whole load.
func (s *contentService) resolveClubs(ctx context.Context, clubIDs []domain.ClubID) []*domain.Club {
	clubs := make([]*domain.Club, 0, len(clubIDs))
	for _, id := range clubIDs {
		club, err := s.clubs.GetByID(ctx, id)
		if err != nil {
			s.logger.Warnw("skipping unknown club", "club_id", id, "error", err)
			continue
		}
		clubs = append(clubs, club)
	}
	return clubs
}

func perClubLimit(total, clubs int) int {
	if clubs <= 0 {
		return total
	}
	limit := (total + clubs - 1) / clubs
	if limit < 1 {
		limit = 1
	}
	return limit
}

func (s *contentService) fetchVideos(ctx context.Context, clubIDs []domain.ClubID, category domain.ContentCategory) ([]domain.Video, error) {
	clubs := s.resolveClubs(ctx, clubIDs)
	if len(clubs) == 0 {
		return nil, nil
	}

	tag := tagStandardVideo
	if category == domain.CategoryShorts {
		tag = tagShortVideo
	}
	query := ports.ContentQuery{
		Limit: perClubLimit(s.pageLimit, len(clubs)),
		Tags:  tag,
	}

	var (
		mu   sync.Mutex
		all  []domain.Video
		errs []error
		ok   int
		wg   sync.WaitGroup
	)
	for _, club := range clubs {
		wg.Add(1)
		go func(club *domain.Club) {
			defer wg.Done()
			videos, err := s.api.OnDemandVideos(ctx, club, query)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				s.logger.Warnw("failed to fetch videos for club",
					"club_id", club.ID,
					"category", category,
					"error", err,
				)
				errs = append(errs, err)
				return
			}
			ok++
			all = append(all, videos...)
		}(club)
	}
	wg.Wait()

	if ok == 0 && len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	all = filterPremiumVideos(all, s.logger)
	sort.Slice(all, func(i, j int) bool {
		return all[i].Date.After(all[j].Date)
	})
	if len(all) > s.pageLimit {
		all = all[:s.pageLimit]
	}
	return all, nil
}

func (s *contentService) fetchLiveEvents(ctx context.Context, clubIDs []domain.ClubID) ([]domain.LiveEvent, error) {
	clubs := s.resolveClubs(ctx, clubIDs)
	if len(clubs) == 0 {
		return nil, nil
	}

	query := ports.ContentQuery{
		Limit: perClubLimit(s.pageLimit, len(clubs)),
	}

	var (
		mu   sync.Mutex
		all  []domain.LiveEvent
		errs []error
		ok   int
		wg   sync.WaitGroup
	)
	for _, club := range clubs {
		wg.Add(1)
		go func(club *domain.Club) {
			defer wg.Done()
			events, err := s.api.LiveEvents(ctx, club, query)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				s.logger.Warnw("failed to fetch live events for club",
					"club_id", club.ID,
					"error", err,
				)
				errs = append(errs, err)
				return
			}
			ok++
			all = append(all, events...)
		}(club)
	}
	wg.Wait()

	if ok == 0 && len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	all = filterPremiumLiveEvents(all, s.logger)
	sort.Slice(all, func(i, j int) bool {
		return all[i].StartTime.After(all[j].StartTime)
	})
	if len(all) > s.pageLimit {
		all = all[:s.pageLimit]
	}
	return all, nil
}

// filterPremiumVideos hides premium and paid items entirely. The access
// evaluator's premium short-circuit exists only as a defense in case this
// filter is bypassed.
func filterPremiumVideos(videos []domain.Video, logger *zap.SugaredLogger) []domain.Video {
	filtered := videos[:0]
	for _, v := range videos {
		if v.Access.Premium() {
			logger.Debugw("hiding premium content", "content_id", v.ID, "title", v.Title)
			continue
		}
		filtered = append(filtered, v)
	}
	return filtered
}

func filterPremiumLiveEvents(events []domain.LiveEvent, logger *zap.SugaredLogger) []domain.LiveEvent {
	filtered := events[:0]
	for _, e := range events {
		if e.Access.Premium() {
			logger.Debugw("hiding premium live event", "content_id", e.ID, "title", e.Title)
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}
