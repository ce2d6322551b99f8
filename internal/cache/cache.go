package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"clubhub/internal/core/domain"
	"clubhub/internal/core/ports"

	"go.uber.org/zap"
)

// Prefix is the durable-store namespace owned by the content cache. Clear
// removes every key under it and nothing outside it.
const Prefix = "clubhub:cache:"

// TTLs are fixed per content category, not configurable per call. The
// remote catalog changes often and the UI has pull-to-refresh, so the cache
// absorbs bursts of redundant reads rather than serving long-lived data.
const (
	VideoTTL     = time.Minute
	ShortsTTL    = time.Minute
	LiveEventTTL = 30 * time.Second
)

// TTLFor returns the fixed expiry for a content category.
func TTLFor(category domain.ContentCategory) time.Duration {
	if category == domain.CategoryLive {
		return LiveEventTTL
	}
	return VideoTTL
}

// envelope is the serialized unit stored in both tiers.
type envelope struct {
	Payload  json.RawMessage `json:"payload"`
	StoredAt int64           `json:"stored_at"` // unix milliseconds
	TTLMs    int64           `json:"ttl_ms"`
}

func (e envelope) valid(now time.Time) bool {
	return now.UnixMilli()-e.StoredAt < e.TTLMs
}

// Metrics receives cache events. Implemented by the monitoring package;
// a nil Metrics disables instrumentation.
type Metrics interface {
	Hit(tier string)
	Miss()
	Expired()
	StoreError(op string)
	SetMemoryEntries(n int)
}

// ContentCache is a two-tier time-expiring cache: an in-process map in
// front of a durable key-value store. Expiry is lazy, checked on every
// read; there is no background sweep. Durable I/O failures degrade to a
// miss or a memory-only write, never to an error for the caller.
type ContentCache struct {
	store   ports.KeyValueStore
	logger  *zap.SugaredLogger
	metrics Metrics
	now     func() time.Time

	mu     sync.RWMutex
	memory map[string]envelope
}

func New(store ports.KeyValueStore, logger *zap.SugaredLogger, metrics Metrics) *ContentCache {
	return &ContentCache{
		store:   store,
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
		memory:  make(map[string]envelope),
	}
}

// Set stores payload under key in both tiers, overwriting unconditionally.
// The memory write always succeeds; a durable-write failure is logged and
// swallowed. The only returned errors are caller bugs: an empty key or an
// unserializable payload.
func (c *ContentCache) Set(ctx context.Context, key string, payload any, ttl time.Duration) error {
	if key == "" {
		return domain.ErrEmptyKey
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	env := envelope{
		Payload:  raw,
		StoredAt: c.now().UnixMilli(),
		TTLMs:    ttl.Milliseconds(),
	}

	c.mu.Lock()
	c.memory[key] = env
	entries := len(c.memory)
	c.mu.Unlock()
	if c.metrics != nil {
		c.metrics.SetMemoryEntries(entries)
	}

	data, err := json.Marshal(env)
	if err != nil {
		// Payload already marshaled above, so this cannot fail in practice.
		return err
	}
	if err := c.store.Set(ctx, Prefix+key, string(data)); err != nil {
		c.logger.Warnw("durable cache write failed, entry is memory-only",
			"key", key,
			"error", err,
		)
		if c.metrics != nil {
			c.metrics.StoreError("set")
		}
	}
	return nil
}

// Get returns the payload under key, checking memory first and promoting
// durable hits into memory. An expired entry in either tier is deleted from
// both and reported as a miss. Durable read failures are a miss.
func (c *ContentCache) Get(ctx context.Context, key string) (json.RawMessage, bool) {
	if key == "" {
		return nil, false
	}

	c.mu.RLock()
	env, inMemory := c.memory[key]
	c.mu.RUnlock()

	if inMemory {
		if env.valid(c.now()) {
			if c.metrics != nil {
				c.metrics.Hit("memory")
			}
			return env.Payload, true
		}
		if c.metrics != nil {
			c.metrics.Expired()
		}
		c.Remove(ctx, key)
		return nil, false
	}

	data, err := c.store.Get(ctx, Prefix+key)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			c.logger.Warnw("durable cache read failed",
				"key", key,
				"error", err,
			)
			if c.metrics != nil {
				c.metrics.StoreError("get")
			}
		}
		if c.metrics != nil {
			c.metrics.Miss()
		}
		return nil, false
	}

	if err := json.Unmarshal([]byte(data), &env); err != nil {
		c.logger.Warnw("malformed cache envelope, removing",
			"key", key,
			"error", err,
		)
		c.Remove(ctx, key)
		if c.metrics != nil {
			c.metrics.Miss()
		}
		return nil, false
	}

	if !env.valid(c.now()) {
		if c.metrics != nil {
			c.metrics.Expired()
		}
		c.Remove(ctx, key)
		return nil, false
	}

	// Promote into memory for faster subsequent reads.
	c.mu.Lock()
	c.memory[key] = env
	entries := len(c.memory)
	c.mu.Unlock()
	if c.metrics != nil {
		c.metrics.SetMemoryEntries(entries)
		c.metrics.Hit("durable")
	}
	return env.Payload, true
}

// Remove deletes key from both tiers. Idempotent.
func (c *ContentCache) Remove(ctx context.Context, key string) {
	c.mu.Lock()
	delete(c.memory, key)
	entries := len(c.memory)
	c.mu.Unlock()
	if c.metrics != nil {
		c.metrics.SetMemoryEntries(entries)
	}

	if err := c.store.Delete(ctx, Prefix+key); err != nil {
		c.logger.Warnw("durable cache delete failed",
			"key", key,
			"error", err,
		)
		if c.metrics != nil {
			c.metrics.StoreError("delete")
		}
	}
}

// Clear wipes the memory tier and every durable key under the cache
// namespace. Keys outside the namespace are untouched.
func (c *ContentCache) Clear(ctx context.Context) {
	c.mu.Lock()
	c.memory = make(map[string]envelope)
	c.mu.Unlock()
	if c.metrics != nil {
		c.metrics.SetMemoryEntries(0)
	}

	keys, err := c.store.Keys(ctx, Prefix)
	if err != nil {
		c.logger.Warnw("listing cache keys failed", "error", err)
		if c.metrics != nil {
			c.metrics.StoreError("keys")
		}
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.store.Delete(ctx, keys...); err != nil {
		c.logger.Warnw("clearing durable cache failed", "error", err)
		if c.metrics != nil {
			c.metrics.StoreError("delete")
		}
		return
	}
	c.logger.Infow("cleared content cache", "durable_entries", len(keys))
}

// Stats reports the memory tier only; the durable tier is not enumerated.
func (c *ContentCache) Stats() domain.CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.memory))
	for k := range c.memory {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return domain.CacheStats{
		MemoryEntries: len(c.memory),
		MemoryKeys:    keys,
	}
}

// VideoCacheKey derives a stable key from a club set and category. Club
// order is incidental, so IDs are sorted before joining; the caller's slice
// is not mutated.
func VideoCacheKey(clubIDs []domain.ClubID, category domain.ContentCategory) string {
	ids := make([]string, len(clubIDs))
	for i, id := range clubIDs {
		ids[i] = string(id)
	}
	sort.Strings(ids)
	return string(category) + "_" + strings.Join(ids, ",")
}

func decodeList[T any](raw json.RawMessage) ([]T, bool) {
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	return items, true
}

// CacheVideos stores a video list for a club set under the category's
// fixed TTL.
func (c *ContentCache) CacheVideos(ctx context.Context, clubIDs []domain.ClubID, videos []domain.Video, category domain.ContentCategory) error {
	return c.Set(ctx, VideoCacheKey(clubIDs, category), videos, TTLFor(category))
}

// CachedVideos returns the cached video list for a club set, or false on
// a miss.
func (c *ContentCache) CachedVideos(ctx context.Context, clubIDs []domain.ClubID, category domain.ContentCategory) ([]domain.Video, bool) {
	raw, ok := c.Get(ctx, VideoCacheKey(clubIDs, category))
	if !ok {
		return nil, false
	}
	return decodeList[domain.Video](raw)
}

// CacheLiveEvents stores a live-event list under the shorter live TTL.
func (c *ContentCache) CacheLiveEvents(ctx context.Context, clubIDs []domain.ClubID, events []domain.LiveEvent) error {
	return c.Set(ctx, VideoCacheKey(clubIDs, domain.CategoryLive), events, LiveEventTTL)
}

func (c *ContentCache) CachedLiveEvents(ctx context.Context, clubIDs []domain.ClubID) ([]domain.LiveEvent, bool) {
	raw, ok := c.Get(ctx, VideoCacheKey(clubIDs, domain.CategoryLive))
	if !ok {
		return nil, false
	}
	return decodeList[domain.LiveEvent](raw)
}
