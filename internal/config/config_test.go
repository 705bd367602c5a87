package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "https://www.iimjobs.com", cfg.Portal.BaseURL)
	assert.Equal(t, "/jobfeed", cfg.Portal.FeedPath)
	assert.Equal(t, 5*time.Second, cfg.Portal.LoginSettleDelay)
	assert.Equal(t, 10, cfg.Sessions.MaxSessions)
	assert.True(t, cfg.Scraper.HeadlessMode)
	assert.NotEmpty(t, cfg.Portal.CategoryPaths)
}

func TestResolveURL(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	tests := []struct {
		path string
		want string
	}{
		{"/jobfeed", "https://www.iimjobs.com/jobfeed"},
		{"/j?kw=finance", "https://www.iimjobs.com/j?kw=finance"},
		{"https://elsewhere.example.com/x", "https://elsewhere.example.com/x"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cfg.ResolveURL(tt.path))
	}
}

func TestFeedLadderOrder(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, []string{"/jobfeed", "/jobs", "/j"}, cfg.FeedLadder())
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("PORTAL_TEST_VALUE", "expanded")

	assert.Equal(t, "value: expanded", expandEnvVars("value: ${PORTAL_TEST_VALUE}"))
	assert.Equal(t, "value: expanded", expandEnvVars("value: $PORTAL_TEST_VALUE"))
	// Unknown variables are left untouched.
	assert.Equal(t, "value: ${PORTAL_TEST_UNSET}", expandEnvVars("value: ${PORTAL_TEST_UNSET}"))
}
