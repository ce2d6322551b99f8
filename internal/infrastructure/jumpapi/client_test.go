package jumpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"clubhub/internal/core/domain"
	"clubhub/internal/core/ports"
	"clubhub/pkg/retry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testRetryConfig() retry.Config {
	return retry.Config{
		Enabled:      true,
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient(server.URL, "central-key", 5*time.Second, testRetryConfig(), nil, zaptest.NewLogger(t).Sugar())
	return client, server
}

func TestOnDemandVideos_BareArrayResponse(t *testing.T) {
	var gotAuth, gotPath, gotQuery string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[
			{"id": 42, "title": "Matchday", "duration": 93.7, "tags": ["h-video", "match"],
			 "creation_date": "2026-08-20T10:00:00Z", "privacy": "public"}
		]`))
	}))

	videos, err := client.OnDemandVideos(context.Background(), nil, ports.ContentQuery{Limit: 10, Tags: "h-video"})
	require.NoError(t, err)

	// The key is sent raw, without a Bearer prefix.
	assert.Equal(t, "central-key", gotAuth)
	assert.Equal(t, "/v1/on-demand", gotPath)
	assert.Equal(t, "limit=10&tags=h-video", gotQuery)

	require.Len(t, videos, 1)
	v := videos[0]
	assert.Equal(t, domain.ContentID("42"), v.ID)
	assert.Equal(t, "Matchday", v.Title)
	assert.Equal(t, 93, v.Duration)
	assert.Equal(t, []string{"h-video", "match"}, v.Tags)
	assert.Equal(t, "h-video", v.Category)
	assert.Equal(t, time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC), v.Date)
	assert.Equal(t, domain.PrivacyPublic, v.Access.Privacy)
	assert.Equal(t, fallbackThumbnail, v.Thumbnail)
}

func TestOnDemandVideos_DataWrapperAndStringTags(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": [
			{"id": "7", "title": "", "tags": "short, training", "is_free": false}
		]}`))
	}))

	videos, err := client.OnDemandVideos(context.Background(), nil, ports.ContentQuery{})
	require.NoError(t, err)
	require.Len(t, videos, 1)

	v := videos[0]
	assert.Equal(t, domain.ContentID("7"), v.ID)
	assert.Equal(t, "Untitled", v.Title)
	assert.Equal(t, []string{"short", "training"}, v.Tags)
	require.NotNil(t, v.Access.IsFree)
	assert.False(t, *v.Access.IsFree)
}

func TestOnDemandVideos_PerClubCredentials(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	// Central credentials are deliberately empty; the per-club ones must win.
	client := NewClient("", "", 5*time.Second, testRetryConfig(), nil, zaptest.NewLogger(t).Sugar())
	club := &domain.Club{ID: "fc-jong", BaseURL: server.URL, APIKey: "club-key", Active: true}

	_, err := client.OnDemandVideos(context.Background(), club, ports.ContentQuery{})
	require.NoError(t, err)
	assert.Equal(t, "club-key", gotAuth)
}

func TestOnDemandVideos_NoCredentials(t *testing.T) {
	client := NewClient("", "", 5*time.Second, testRetryConfig(), nil, zaptest.NewLogger(t).Sugar())

	_, err := client.OnDemandVideos(context.Background(), &domain.Club{ID: "fc-jong"}, ports.ContentQuery{})
	assert.Error(t, err)
}

func TestRequest_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`[]`))
	}))

	_, err := client.OnDemandVideos(context.Background(), nil, ports.ContentQuery{})
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestRequest_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))

	_, err := client.OnDemandVideos(context.Background(), nil, ports.ContentQuery{})
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestLiveEvents_MapsFields(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/live-events", r.URL.Path)
		w.Write([]byte(`[
			{"id": 9, "title": "Cup final", "is_live": true,
			 "visible_date": "2026-09-01 19:30:00", "privacy": "private"}
		]`))
	}))

	events, err := client.LiveEvents(context.Background(), nil, ports.ContentQuery{})
	require.NoError(t, err)
	require.Len(t, events, 1)

	e := events[0]
	assert.Equal(t, domain.ContentID("9"), e.ID)
	assert.True(t, e.IsLive)
	assert.Equal(t, time.Date(2026, 9, 1, 19, 30, 0, 0, time.UTC), e.StartTime)
	assert.Equal(t, domain.PrivacyPrivate, e.Access.Privacy)
}

func TestGetUser_BareObject(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/get-user", r.URL.Path)
		assert.Equal(t, "fan@example.com", r.URL.Query().Get("email_address"))
		w.Write([]byte(`{"id": 11, "email": "fan@example.com", "first_name": "Jo",
			"owned_price_plans": ["fc-jong"]}`))
	}))

	user, err := client.GetUser(context.Background(), "fan@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.UserID("11"), user.ID)
	assert.Equal(t, "fan@example.com", user.Email)
	assert.Equal(t, []string{"fc-jong"}, user.PricePlans)
}

func TestGetUser_WrappedObject(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"user": {"id": 12, "email": "fan@example.com"}}`))
	}))

	user, err := client.GetUser(context.Background(), "fan@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.UserID("12"), user.ID)
}

func TestGetUser_NotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.GetUser(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "array", raw: `["a", "b"]`, want: []string{"a", "b"}},
		{name: "comma string", raw: `"a, b ,c"`, want: []string{"a", "b", "c"}},
		{name: "empty string", raw: `""`, want: nil},
		{name: "null", raw: `null`, want: nil},
		{name: "unexpected shape", raw: `{"tag": "a"}`, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseTags([]byte(tt.raw)))
		})
	}
}
