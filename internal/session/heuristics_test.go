package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAuthenticatedPage(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		pageText string
		want     bool
	}{
		{"dashboard redirect", "https://www.iimjobs.com/Dashboard", "", true},
		{"logout marker in text", "https://www.iimjobs.com/login", "Home | LOGOUT | Help", true},
		{"profile marker any case", "https://www.iimjobs.com/login", "view your Profile here", true},
		{"still on login form", "https://www.iimjobs.com/login", "Enter your email and password", false},
		{"empty everything", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAuthenticatedPage(tt.url, tt.pageText))
		})
	}
}
