package domain

import "time"

type ContentID string
type ClubID string

// ContentCategory selects the remote content feed and the cache TTL policy.
type ContentCategory string

const (
	CategoryVideos ContentCategory = "videos"
	CategoryShorts ContentCategory = "shorts"
	CategoryLive   ContentCategory = "live"
)

type PrivacyTier string

const (
	// PrivacyUnspecified means the upstream asset carried no privacy field;
	// it is treated as public after normalization.
	PrivacyUnspecified PrivacyTier = ""
	PrivacyPublic      PrivacyTier = "public"
	PrivacyPrivate     PrivacyTier = "private"
	PrivacyPremium     PrivacyTier = "premium"
)

// ContentDescriptor carries the access-control fields of one playable item
// as they arrive from the remote API, optional fields left optional.
// Normalization to concrete flags happens inside the access evaluator.
type ContentDescriptor struct {
	ID            ContentID   `json:"id"`
	Privacy       PrivacyTier `json:"privacy,omitempty"`
	IsFree        *bool       `json:"is_free,omitempty"`
	LoginRequired *bool       `json:"login_required,omitempty"`
	ClubID        ClubID      `json:"club_id,omitempty"`
	Tags          []string    `json:"tags,omitempty"`
}

// Premium reports whether the item is premium or paid content, which the
// content service filters out before it reaches callers.
func (d ContentDescriptor) Premium() bool {
	return d.Privacy == PrivacyPremium || (d.IsFree != nil && !*d.IsFree)
}

type Video struct {
	ID          ContentID         `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Thumbnail   string            `json:"thumbnail"`
	VideoURL    string            `json:"video_url,omitempty"`
	Duration    int               `json:"duration,omitempty"`
	Date        time.Time         `json:"date"`
	Category    string            `json:"category,omitempty"`
	ClubLogo    string            `json:"club_logo,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	IsLive      bool              `json:"is_live"`
	Access      ContentDescriptor `json:"access"`
}

type LiveEvent struct {
	ID          ContentID         `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Thumbnail   string            `json:"thumbnail"`
	StreamURL   string            `json:"stream_url,omitempty"`
	StartTime   time.Time         `json:"start_time"`
	EndTime     *time.Time        `json:"end_time,omitempty"`
	IsLive      bool              `json:"is_live"`
	Category    string            `json:"category,omitempty"`
	ClubLogo    string            `json:"club_logo,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	Access      ContentDescriptor `json:"access"`
}
