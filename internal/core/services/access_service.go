package services

import (
	"clubhub/internal/core/domain"
	"clubhub/internal/core/ports"
)

type accessService struct{}

// NewAccessService returns the stateless access evaluator.
func NewAccessService() ports.AccessService {
	return &accessService{}
}

// contentFlags is the fully-populated view of a possibly-partial
// descriptor, so the rules below only ever test concrete values.
type contentFlags struct {
	isPublic      bool
	isFree        bool
	requiresLogin bool
	privacy       domain.PrivacyTier
}

func normalize(content domain.ContentDescriptor) contentFlags {
	return contentFlags{
		isPublic:      content.Privacy == domain.PrivacyPublic || content.Privacy == domain.PrivacyUnspecified,
		isFree:        content.IsFree == nil || *content.IsFree,
		requiresLogin: content.LoginRequired != nil && *content.LoginRequired,
		privacy:       content.Privacy,
	}
}

// EvaluateAccess applies the access rules in order; the first matching rule
// wins. The rule conditions overlap, and downstream UI behavior depends on
// which access type a given combination resolves to, so the order must not
// change.
func (s *accessService) EvaluateAccess(content domain.ContentDescriptor, user domain.UserContext) domain.AccessDecision {
	// Premium and paid content is filtered out by the content service
	// before it reaches any caller. If it still leaks through, deny
	// without a lock: a lock implies the item is on offer in this view.
	if content.Premium() {
		return domain.AccessDecision{
			CanAccess:     false,
			Type:          domain.AccessPremium,
			RequiresLogin: true,
			IsFree:        false,
			Reason:        "premium content should be hidden upstream",
			ShowLock:      false,
		}
	}

	f := normalize(content)

	// Public and free content is always accessible.
	if f.isPublic && f.isFree && !f.requiresLogin {
		return domain.AccessDecision{
			CanAccess:     true,
			Type:          domain.AccessPublic,
			RequiresLogin: false,
			IsFree:        true,
			Reason:        "public content",
			ShowLock:      false,
		}
	}

	if !user.IsAuthenticated {
		if f.requiresLogin || !f.isFree || f.privacy == domain.PrivacyPrivate {
			// An explicit login gate or a private tier reads as a login
			// lock; a pure paywall reads as a premium lock.
			accessType := domain.AccessPremium
			if f.requiresLogin || f.privacy == domain.PrivacyPrivate {
				accessType = domain.AccessLogin
			}
			return domain.AccessDecision{
				CanAccess:     false,
				Type:          accessType,
				RequiresLogin: true,
				IsFree:        f.isFree,
				Reason:        "login required",
				ShowLock:      true,
			}
		}
	}

	if user.IsAuthenticated {
		// Club entitlement overrides price gating.
		if content.ClubID != "" && user.HasClubPermission(content.ClubID) {
			return domain.AccessDecision{
				CanAccess:     true,
				Type:          domain.AccessClub,
				RequiresLogin: true,
				IsFree:        f.isFree,
				Reason:        "club access",
				ShowLock:      false,
			}
		}

		if !f.isFree && len(user.SubscriptionPlans) == 0 {
			return domain.AccessDecision{
				CanAccess:     false,
				Type:          domain.AccessPremium,
				RequiresLogin: true,
				IsFree:        false,
				Reason:        "premium plan required",
				ShowLock:      true,
			}
		}

		if f.isFree {
			return domain.AccessDecision{
				CanAccess:     true,
				Type:          domain.AccessLogin,
				RequiresLogin: true,
				IsFree:        true,
				Reason:        "signed-in access",
				ShowLock:      false,
			}
		}
	}

	// Reachable only for ambiguous flag combinations none of the rules
	// above claimed.
	if f.isFree && f.isPublic {
		return domain.AccessDecision{
			CanAccess:     true,
			Type:          domain.AccessPublic,
			RequiresLogin: false,
			IsFree:        true,
			Reason:        "public content",
			ShowLock:      false,
		}
	}

	reason := "login required"
	if user.IsAuthenticated {
		reason = "no access to this content"
	}
	return domain.AccessDecision{
		CanAccess:     false,
		Type:          domain.AccessLogin,
		RequiresLogin: true,
		IsFree:        f.isFree,
		Reason:        reason,
		ShowLock:      true,
	}
}

func (s *accessService) ShouldShowLock(content domain.ContentDescriptor, user domain.UserContext) bool {
	return s.EvaluateAccess(content, user).ShowLock
}

func (s *accessService) LockKind(content domain.ContentDescriptor, user domain.UserContext) domain.LockKind {
	switch s.EvaluateAccess(content, user).Type {
	case domain.AccessPremium:
		return domain.LockPremium
	case domain.AccessClub:
		return domain.LockClub
	default:
		return domain.LockLogin
	}
}
