package session

import (
	"sync"
	"testing"
	"time"

	"hiredeck-utils/internal/browser"
	"hiredeck-utils/internal/config"
	"hiredeck-utils/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg, _ := config.LoadConfig("")
	return cfg
}

func testManager(t *testing.T) *Manager {
	t.Helper()
	m := NewManager(testConfig(), nil)
	t.Cleanup(m.Shutdown)
	return m
}

// addSession registers a browserless session directly in the table. Login
// cannot be exercised without a live Chrome, but the registry semantics can.
func addSession(m *Manager, id, identity string) *Session {
	sess := &Session{ID: id, Identity: identity, CreatedAt: time.Now()}
	m.mu.Lock()
	m.sessions[id] = sess
	m.mu.Unlock()
	return sess
}

func TestGetUnknownSession(t *testing.T) {
	m := testManager(t)

	_, err := m.Get("no-such-id")
	require.Error(t, err)

	ce, ok := err.(*utils.CustomError)
	require.True(t, ok)
	assert.Equal(t, utils.KindNotFound, ce.Kind)
	assert.Equal(t, 404, ce.Code)
}

func TestDestroyIsIdempotentPerID(t *testing.T) {
	m := testManager(t)
	addSession(m, "s1", "a@example.com")

	require.NoError(t, m.Destroy("s1"))
	assert.Equal(t, 0, m.Count())

	// Second destroy of the same id reports not-found.
	err := m.Destroy("s1")
	require.Error(t, err)
	ce, ok := err.(*utils.CustomError)
	require.True(t, ok)
	assert.Equal(t, utils.KindNotFound, ce.Kind)
}

func TestConcurrentDestroySingleWinner(t *testing.T) {
	m := testManager(t)
	addSession(m, "s1", "a@example.com")

	const attempts = 8
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- m.Destroy("s1")
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded)
}

func TestConcurrentReservationsHonorSessionCap(t *testing.T) {
	m := testManager(t)
	m.config.Sessions.MaxSessions = 3
	addSession(m, "s1", "a@example.com")
	addSession(m, "s2", "b@example.com")

	// One slot left; concurrent logins-in-flight must not all pass the gate.
	const attempts = 8
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- m.reserveSlot()
		}()
	}
	wg.Wait()
	close(errs)

	granted := 0
	for err := range errs {
		if err == nil {
			granted++
		} else {
			ce, ok := err.(*utils.CustomError)
			require.True(t, ok)
			assert.Equal(t, utils.KindCapacity, ce.Kind)
		}
	}
	assert.Equal(t, 1, granted)

	// A released slot becomes claimable again.
	m.releaseSlot()
	require.NoError(t, m.reserveSlot())
}

func TestDoWithoutBrowserFails(t *testing.T) {
	m := testManager(t)
	sess := addSession(m, "s1", "a@example.com")

	called := false
	err := sess.Do(func(_ *browser.Instance) error {
		called = true
		return nil
	})

	require.Error(t, err)
	assert.False(t, called)
}

func TestCountAndActiveIDs(t *testing.T) {
	m := testManager(t)
	addSession(m, "s1", "a@example.com")
	addSession(m, "s2", "b@example.com")

	assert.Equal(t, 2, m.Count())
	assert.ElementsMatch(t, []string{"s1", "s2"}, m.ActiveIDs())
}

func TestShutdownClearsTable(t *testing.T) {
	m := NewManager(testConfig(), nil)
	addSession(m, "s1", "a@example.com")

	m.Shutdown()
	assert.Equal(t, 0, m.Count())
}
