package domain

// AccessType classifies why access was granted or what gate is in the way.
type AccessType string

const (
	AccessPublic  AccessType = "public"
	AccessLogin   AccessType = "login"
	AccessPremium AccessType = "premium"
	AccessClub    AccessType = "club"
)

// LockKind is the lock overlay presentation the UI should render.
type LockKind string

const (
	LockLogin   LockKind = "login"
	LockPremium LockKind = "premium"
	LockClub    LockKind = "club"
)

// AccessDecision is the evaluator's verdict for one content item and one
// viewer. Constructed fresh on every evaluation, never cached.
type AccessDecision struct {
	CanAccess     bool       `json:"can_access"`
	Type          AccessType `json:"access_type"`
	RequiresLogin bool       `json:"requires_login"`
	IsFree        bool       `json:"is_free"`
	Reason        string     `json:"reason"`
	ShowLock      bool       `json:"show_lock"`
}
