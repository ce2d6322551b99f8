package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// EmailRegex validates email format
	EmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	// ClubIDRegex validates club identifier format
	ClubIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// ValidateEmail validates email address
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if len(email) > 254 {
		return fmt.Errorf("email is too long (max 254 characters)")
	}
	if !EmailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ValidatePassword validates password shape. The login flow is a stub and
// never checks the password against anything, but malformed input is still
// rejected at the edge.
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password is required")
	}
	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}
	if len(password) > 128 {
		return fmt.Errorf("password is too long (max 128 characters)")
	}
	return nil
}

// ValidateClubID validates a club identifier
func ValidateClubID(clubID string) error {
	if clubID == "" {
		return fmt.Errorf("club ID is required")
	}
	if len(clubID) > 100 {
		return fmt.Errorf("club ID is too long (max 100 characters)")
	}
	if !ClubIDRegex.MatchString(clubID) {
		return fmt.Errorf("invalid club ID format")
	}
	return nil
}
