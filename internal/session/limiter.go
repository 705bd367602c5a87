package session

import (
	"strings"
	"sync"
	"time"

	"hiredeck-utils/internal/config"
	"hiredeck-utils/internal/logging"
	"hiredeck-utils/internal/logging/types"

	"golang.org/x/time/rate"
)

// identityLimiter tracks login attempts for a single portal identity.
type identityLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
	attempts int64
	mu       sync.Mutex
}

// LoginLimiter rate limits login attempts per identity so a misbehaving
// client cannot hammer the portal's login form with one set of credentials.
type LoginLimiter struct {
	config        *config.Config
	limiters      map[string]*identityLimiter
	mu            sync.Mutex
	logger        types.Logger
	cleanupTicker *time.Ticker
	stopCleanup   chan bool
}

// NewLoginLimiter creates a login limiter and starts its cleanup routine.
func NewLoginLimiter(cfg *config.Config) *LoginLimiter {
	ll := &LoginLimiter{
		config:        cfg,
		limiters:      make(map[string]*identityLimiter),
		logger:        logging.GetGlobalLogger(),
		cleanupTicker: time.NewTicker(5 * time.Minute),
		stopCleanup:   make(chan bool),
	}

	go ll.cleanupRoutine()

	return ll
}

// Allow checks whether another login attempt for the identity may proceed.
func (ll *LoginLimiter) Allow(identity string) bool {
	ll.mu.Lock()
	defer ll.mu.Unlock()

	identity = strings.ToLower(strings.TrimSpace(identity))
	lim := ll.getLimiter(identity)

	allowed := lim.limiter.Allow()
	if allowed {
		lim.mu.Lock()
		lim.attempts++
		lim.lastSeen = time.Now()
		lim.mu.Unlock()
	} else {
		ll.logger.Warn("Login attempt rejected by rate limiter", map[string]interface{}{
			"identity": identity,
		})
	}

	return allowed
}

// getLimiter gets or creates a limiter for an identity. Caller holds ll.mu.
func (ll *LoginLimiter) getLimiter(identity string) *identityLimiter {
	if lim, exists := ll.limiters[identity]; exists {
		return lim
	}

	// Rate limit: attempts per minute converted to attempts per second.
	rps := rate.Limit(float64(ll.config.Sessions.LoginRateLimit) / 60.0)
	burst := 3

	lim := &identityLimiter{
		limiter:  rate.NewLimiter(rps, burst),
		lastSeen: time.Now(),
	}
	ll.limiters[identity] = lim

	ll.logger.Debug("Created login rate limiter", map[string]interface{}{
		"identity": identity,
		"rate":     float64(rps),
		"burst":    burst,
	})

	return lim
}

// cleanupRoutine periodically removes limiters for identities that have not
// attempted a login recently.
func (ll *LoginLimiter) cleanupRoutine() {
	for {
		select {
		case <-ll.cleanupTicker.C:
			ll.cleanup()
		case <-ll.stopCleanup:
			ll.cleanupTicker.Stop()
			return
		}
	}
}

func (ll *LoginLimiter) cleanup() {
	ll.mu.Lock()
	defer ll.mu.Unlock()

	cutoff := time.Now().Add(-10 * time.Minute)
	removed := 0

	for identity, lim := range ll.limiters {
		lim.mu.Lock()
		lastSeen := lim.lastSeen
		lim.mu.Unlock()

		if lastSeen.Before(cutoff) {
			delete(ll.limiters, identity)
			removed++
		}
	}

	if removed > 0 {
		ll.logger.Debug("Cleaned up unused login limiters", map[string]interface{}{
			"removed_count": removed,
		})
	}
}

// Stop terminates the cleanup routine.
func (ll *LoginLimiter) Stop() {
	ll.stopCleanup <- true
}
