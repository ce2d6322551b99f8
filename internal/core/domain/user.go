package domain

import "time"

type UserID string

type User struct {
	ID              UserID    `json:"id"`
	Email           string    `json:"email"`
	FirstName       string    `json:"first_name,omitempty"`
	LastName        string    `json:"last_name,omitempty"`
	EmailVerified   bool      `json:"email_verified"`
	ClubPermissions []ClubID  `json:"club_permissions"`
	PricePlans      []string  `json:"price_plans"`
	CreatedAt       time.Time `json:"created_at"`
}

// UserContext is the viewer as the access evaluator sees it. The zero value
// is an anonymous, unentitled user.
type UserContext struct {
	IsAuthenticated   bool     `json:"is_authenticated"`
	Email             string   `json:"email,omitempty"`
	ClubPermissions   []ClubID `json:"club_permissions,omitempty"`
	SubscriptionPlans []string `json:"subscription_plans,omitempty"`
}

func (u UserContext) HasClubPermission(id ClubID) bool {
	for _, c := range u.ClubPermissions {
		if c == id {
			return true
		}
	}
	return false
}

// Context returns the access-control view of a full user record.
func (u *User) Context() UserContext {
	return UserContext{
		IsAuthenticated:   true,
		Email:             u.Email,
		ClubPermissions:   u.ClubPermissions,
		SubscriptionPlans: u.PricePlans,
	}
}
