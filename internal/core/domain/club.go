package domain

import "time"

// Club is one tenant in the club catalog. BaseURL and APIKey are the
// per-club credentials for the remote content API; clubs without them are
// skipped when loading content.
type Club struct {
	ID        ClubID    `json:"id"`
	Name      string    `json:"name"`
	Subtitle  string    `json:"subtitle,omitempty"`
	Type      string    `json:"type,omitempty"`
	Logo      string    `json:"logo,omitempty"`
	Category  string    `json:"category,omitempty"`
	BaseURL   string    `json:"base_url,omitempty"`
	APIKey    string    `json:"-"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// APIEnabled reports whether the club carries content API credentials.
func (c *Club) APIEnabled() bool {
	return c.BaseURL != "" && c.APIKey != ""
}
