package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "valid", email: "fan@example.com", wantErr: false},
		{name: "valid with plus", email: "fan+tag@example.co.uk", wantErr: false},
		{name: "empty", email: "", wantErr: true},
		{name: "missing domain", email: "fan@", wantErr: true},
		{name: "missing at", email: "fan.example.com", wantErr: true},
		{name: "too long", email: strings.Repeat("a", 250) + "@b.co", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, ValidatePassword(""))
	assert.Error(t, ValidatePassword("short"))
	assert.Error(t, ValidatePassword(strings.Repeat("x", 129)))
	assert.NoError(t, ValidatePassword("long-enough"))
}

func TestValidateClubID(t *testing.T) {
	assert.NoError(t, ValidateClubID("fc-jong_1860"))
	assert.Error(t, ValidateClubID(""))
	assert.Error(t, ValidateClubID("club with spaces"))
	assert.Error(t, ValidateClubID(strings.Repeat("a", 101)))
}
