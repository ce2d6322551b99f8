package jumpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"clubhub/internal/core/domain"
	"clubhub/internal/core/ports"
	"clubhub/pkg/retry"

	"go.uber.org/zap"
)

const fallbackThumbnail = "https://images.unsplash.com/photo-1574629810360-7efbbe195018?w=800&h=400&fit=crop"

// statusError is a non-2xx response from the content API.
type statusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("%s: %s", e.Status, e.Body)
}

// retryable reports whether an upstream error is worth another attempt.
// Client errors are not; the request will fail the same way again.
func retryable(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.StatusCode >= 500
	}
	return true
}

// Observer receives fetch outcomes; implemented by the monitoring
// package. Nil disables instrumentation.
type Observer interface {
	Observe(endpoint string, seconds float64, err error)
}

// Client talks to the remote content API. Per-club credentials take
// precedence; clubs without them fall back to the central key (SSO mode).
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	retryCfg   retry.Config
	observer   Observer
	logger     *zap.SugaredLogger
}

func NewClient(baseURL, apiKey string, timeout time.Duration, retryCfg retry.Config, observer Observer, logger *zap.SugaredLogger) *Client {
	retryCfg.RetryIf = retryable
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		retryCfg:   retryCfg,
		observer:   observer,
		logger:     logger,
	}
}

var _ ports.ContentAPI = (*Client)(nil)

func (c *Client) resolve(club *domain.Club) (baseURL, apiKey string, err error) {
	if club != nil && club.APIEnabled() {
		return strings.TrimRight(club.BaseURL, "/"), club.APIKey, nil
	}
	if c.baseURL == "" || c.apiKey == "" {
		return "", "", fmt.Errorf("no content API credentials for club %q", clubID(club))
	}
	return c.baseURL, c.apiKey, nil
}

func clubID(club *domain.Club) domain.ClubID {
	if club == nil {
		return ""
	}
	return club.ID
}

func clubLogo(club *domain.Club) string {
	if club == nil {
		return ""
	}
	return club.Logo
}

func (c *Client) request(ctx context.Context, baseURL, endpoint, apiKey string, params url.Values) ([]byte, error) {
	start := time.Now()
	body, err := retry.DoWithResult(ctx, c.retryCfg, func() ([]byte, error) {
		u := baseURL + endpoint
		if len(params) > 0 {
			u += "?" + params.Encode()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		// The API expects the raw key, no "Bearer " prefix.
		req.Header.Set("Authorization", apiKey)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch from %s: %w", endpoint, err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response from %s: %w", endpoint, err)
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &statusError{
				StatusCode: resp.StatusCode,
				Status:     resp.Status,
				Body:       strings.TrimSpace(string(body)),
			}
		}
		return body, nil
	})
	if c.observer != nil {
		c.observer.Observe(endpoint, time.Since(start).Seconds(), err)
	}
	return body, err
}

// asset is the wire shape of one content item. The API is loose about
// types: ids are numbers, tags may be an array or a comma string.
type asset struct {
	ID            json.Number     `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Duration      float64         `json:"duration"`
	Thumbnail     string          `json:"thumbnail"`
	URL           string          `json:"url"`
	EmbedURL      string          `json:"embed_url"`
	Tags          json.RawMessage `json:"tags"`
	CreationDate  string          `json:"creation_date"`
	VisibleDate   string          `json:"visible_date"`
	IsLive        bool            `json:"is_live"`
	Privacy       string          `json:"privacy"`
	IsFree        *bool           `json:"is_free"`
	LoginRequired *bool           `json:"login_required"`
}

// parseAssets accepts both a bare JSON array and a {data: [...]} wrapper.
func parseAssets(body []byte) ([]asset, error) {
	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, "[") {
		var assets []asset
		if err := json.Unmarshal(body, &assets); err != nil {
			return nil, fmt.Errorf("failed to decode asset list: %w", err)
		}
		return assets, nil
	}

	var wrapped struct {
		Data []asset `json:"data"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to decode asset response: %w", err)
	}
	return wrapped.Data, nil
}

func parseTags(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}
	var joined string
	if err := json.Unmarshal(raw, &joined); err == nil && strings.TrimSpace(joined) != "" {
		parts := strings.Split(joined, ",")
		tags := make([]string, 0, len(parts))
		for _, p := range parts {
			if t := strings.TrimSpace(p); t != "" {
				tags = append(tags, t)
			}
		}
		return tags
	}
	return nil
}

func parseDate(value string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Now()
}

func (a asset) descriptor(club *domain.Club, tags []string) domain.ContentDescriptor {
	return domain.ContentDescriptor{
		ID:            domain.ContentID(a.ID.String()),
		Privacy:       domain.PrivacyTier(a.Privacy),
		IsFree:        a.IsFree,
		LoginRequired: a.LoginRequired,
		ClubID:        clubID(club),
		Tags:          tags,
	}
}

func (a asset) toVideo(club *domain.Club) domain.Video {
	tags := parseTags(a.Tags)

	title := a.Title
	if title == "" {
		title = "Untitled"
	}
	thumb := a.Thumbnail
	if thumb == "" {
		thumb = fallbackThumbnail
	}
	videoURL := a.EmbedURL
	if videoURL == "" {
		videoURL = a.URL
	}
	category := "Video"
	if len(tags) > 0 {
		category = tags[0]
	}

	return domain.Video{
		ID:          domain.ContentID(a.ID.String()),
		Title:       title,
		Description: a.Description,
		Thumbnail:   thumb,
		VideoURL:    videoURL,
		Duration:    int(a.Duration),
		Date:        parseDate(a.CreationDate),
		Category:    category,
		ClubLogo:    clubLogo(club),
		Tags:        tags,
		IsLive:      false,
		Access:      a.descriptor(club, tags),
	}
}

func (a asset) toLiveEvent(club *domain.Club) domain.LiveEvent {
	tags := parseTags(a.Tags)

	title := a.Title
	if title == "" {
		title = "Live Event"
	}
	thumb := a.Thumbnail
	if thumb == "" {
		thumb = fallbackThumbnail
	}
	streamURL := a.EmbedURL
	if streamURL == "" {
		streamURL = a.URL
	}
	category := "Live"
	if len(tags) > 0 {
		category = tags[0]
	}
	start := a.VisibleDate
	if start == "" {
		start = a.CreationDate
	}

	return domain.LiveEvent{
		ID:          domain.ContentID(a.ID.String()),
		Title:       title,
		Description: a.Description,
		Thumbnail:   thumb,
		StreamURL:   streamURL,
		StartTime:   parseDate(start),
		IsLive:      a.IsLive,
		Category:    category,
		ClubLogo:    clubLogo(club),
		Tags:        tags,
		Access:      a.descriptor(club, tags),
	}
}

func (c *Client) queryParams(q ports.ContentQuery) url.Values {
	params := url.Values{}
	if q.Limit > 0 {
		params.Set("limit", fmt.Sprintf("%d", q.Limit))
	}
	if q.Tags != "" {
		params.Set("tags", q.Tags)
	}
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if q.EmailAddress != "" {
		params.Set("email_address", q.EmailAddress)
	}
	return params
}

func (c *Client) OnDemandVideos(ctx context.Context, club *domain.Club, q ports.ContentQuery) ([]domain.Video, error) {
	baseURL, apiKey, err := c.resolve(club)
	if err != nil {
		return nil, err
	}

	body, err := c.request(ctx, baseURL, "/v1/on-demand", apiKey, c.queryParams(q))
	if err != nil {
		return nil, err
	}

	assets, err := parseAssets(body)
	if err != nil {
		return nil, err
	}

	videos := make([]domain.Video, 0, len(assets))
	for _, a := range assets {
		videos = append(videos, a.toVideo(club))
	}
	return videos, nil
}

func (c *Client) LiveEvents(ctx context.Context, club *domain.Club, q ports.ContentQuery) ([]domain.LiveEvent, error) {
	baseURL, apiKey, err := c.resolve(club)
	if err != nil {
		return nil, err
	}

	body, err := c.request(ctx, baseURL, "/v1/live-events", apiKey, c.queryParams(q))
	if err != nil {
		return nil, err
	}

	assets, err := parseAssets(body)
	if err != nil {
		return nil, err
	}

	events := make([]domain.LiveEvent, 0, len(assets))
	for _, a := range assets {
		events = append(events, a.toLiveEvent(club))
	}
	return events, nil
}

// apiUser is the wire shape of /v1/get-user.
type apiUser struct {
	ID              json.Number `json:"id"`
	Email           string      `json:"email"`
	FirstName       string      `json:"first_name"`
	LastName        string      `json:"last_name"`
	EmailVerified   bool        `json:"email_verified"`
	OwnedPricePlans []string    `json:"owned_price_plans"`
	CreatedAt       string      `json:"created_at"`
}

func (c *Client) GetUser(ctx context.Context, email string) (*domain.User, error) {
	baseURL, apiKey, err := c.resolve(nil)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("email_address", email)

	body, err := c.request(ctx, baseURL, "/v1/get-user", apiKey, params)
	if err != nil {
		var se *statusError
		if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	// The endpoint returns either the user object or {user: {...}}.
	var u apiUser
	if err := json.Unmarshal(body, &u); err != nil {
		return nil, fmt.Errorf("failed to decode user response: %w", err)
	}
	if u.ID.String() == "" && u.Email == "" {
		var wrapped struct {
			User *apiUser `json:"user"`
		}
		if err := json.Unmarshal(body, &wrapped); err != nil || wrapped.User == nil {
			return nil, domain.ErrUserNotFound
		}
		u = *wrapped.User
	}

	return &domain.User{
		ID:            domain.UserID(u.ID.String()),
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		EmailVerified: u.EmailVerified,
		PricePlans:    u.OwnedPricePlans,
		CreatedAt:     parseDate(u.CreatedAt),
	}, nil
}
