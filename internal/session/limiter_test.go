package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginLimiterBurstThenDeny(t *testing.T) {
	cfg := testConfig()
	cfg.Sessions.LoginRateLimit = 1 // refill far slower than the test runs

	ll := NewLoginLimiter(cfg)
	defer ll.Stop()

	// Burst of 3 goes through, the fourth attempt is rejected.
	for i := 0; i < 3; i++ {
		assert.True(t, ll.Allow("user@example.com"), "attempt %d", i+1)
	}
	assert.False(t, ll.Allow("user@example.com"))
}

func TestLoginLimiterIsPerIdentity(t *testing.T) {
	cfg := testConfig()
	cfg.Sessions.LoginRateLimit = 1

	ll := NewLoginLimiter(cfg)
	defer ll.Stop()

	for i := 0; i < 3; i++ {
		ll.Allow("first@example.com")
	}
	assert.False(t, ll.Allow("first@example.com"))
	assert.True(t, ll.Allow("second@example.com"))
}

func TestLoginLimiterNormalizesIdentity(t *testing.T) {
	cfg := testConfig()
	cfg.Sessions.LoginRateLimit = 1

	ll := NewLoginLimiter(cfg)
	defer ll.Stop()

	ll.Allow("User@Example.com")
	ll.Allow("user@example.com ")
	ll.Allow(" USER@EXAMPLE.COM")
	assert.False(t, ll.Allow("user@example.com"))
}
