package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"hiredeck-utils/internal/browser"
	"hiredeck-utils/internal/config"
	"hiredeck-utils/internal/diag"
	"hiredeck-utils/internal/logging"
	"hiredeck-utils/internal/logging/types"
	"hiredeck-utils/pkg/utils"
)

// Selectors for the portal's login form. The button XPath covers both the
// <button> and the legacy <input type="submit"> renderings of the form.
const (
	emailSelector    = `input[name="email"]`
	passwordSelector = `input[name="password"]`
	loginButtonXPath = `//button[contains(text(),'Login')] | //input[@type='submit' and @value='Login']`
)

// Session is one authenticated browser bound to one portal identity. All
// operations against the session are serialized through Do; concurrent
// requests for the same session queue rather than interleave.
type Session struct {
	ID        string
	Identity  string
	CreatedAt time.Time

	inst *browser.Instance
	mu   sync.Mutex
}

// Do runs fn with exclusive access to the session's browser. It returns a
// not-found style error if the browser has already been terminated.
func (s *Session) Do(fn func(*browser.Instance) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inst == nil {
		return utils.NewSessionNotFoundError(s.ID)
	}
	return fn(s.inst)
}

// Browser exposes the underlying instance for callers that manage their own
// locking. Most callers should use Do instead.
func (s *Session) Browser() *browser.Instance {
	return s.inst
}

// Manager owns the session table. Lookups take a read lock; login and
// destroy take the write lock, so creation and teardown are atomic with
// respect to each other.
type Manager struct {
	config      *config.Config
	logger      types.Logger
	snapshotter diag.Snapshotter
	limiter     *LoginLimiter

	sessions map[string]*Session
	reserved int
	mu       sync.RWMutex
}

// NewManager creates a session manager.
func NewManager(cfg *config.Config, snapshotter diag.Snapshotter) *Manager {
	if snapshotter == nil {
		snapshotter = diag.NopSnapshotter{}
	}
	return &Manager{
		config:      cfg,
		logger:      logging.GetGlobalLogger(),
		snapshotter: snapshotter,
		limiter:     NewLoginLimiter(cfg),
		sessions:    make(map[string]*Session),
	}
}

// Login drives the portal's login form with the given credentials and, on
// success, registers a new session around the authenticated browser. On any
// failure the browser is terminated; a failed login never leaks an instance.
func (m *Manager) Login(ctx context.Context, email, password string) (*Session, error) {
	if !m.limiter.Allow(email) {
		return nil, utils.NewRateLimitedError(email)
	}

	if err := m.reserveSlot(); err != nil {
		return nil, err
	}

	inst, err := browser.NewInstance(m.config)
	if err != nil {
		m.releaseSlot()
		return nil, utils.NewAutomationError(fmt.Sprintf("failed to launch browser: %v", err))
	}

	sess, err := m.performLogin(ctx, inst, email, password)
	if err != nil {
		m.captureFailure(inst, "login_failed")
		inst.Close()
		m.releaseSlot()
		return nil, err
	}

	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.reserved--
	m.mu.Unlock()

	m.logger.Info("Session created", map[string]interface{}{
		"session_id": sess.ID,
		"identity":   email,
	})
	return sess, nil
}

// reserveSlot claims a session slot before the browser launches, so
// concurrent logins cannot collectively overshoot the session cap while
// each is still mid-login.
func (m *Manager) reserveSlot() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	active := len(m.sessions) + m.reserved
	if active >= m.config.Sessions.MaxSessions {
		return utils.NewCapacityError(fmt.Sprintf("%d active sessions", active))
	}
	m.reserved++
	return nil
}

func (m *Manager) releaseSlot() {
	m.mu.Lock()
	m.reserved--
	m.mu.Unlock()
}

// performLogin fills and submits the login form, then applies the
// authenticated-page heuristic to the page it lands on.
func (m *Manager) performLogin(ctx context.Context, inst *browser.Instance, email, password string) (*Session, error) {
	loginURL := m.config.ResolveURL(m.config.Portal.LoginPath)
	if err := inst.Navigate(ctx, loginURL); err != nil {
		return nil, utils.NewAutomationError(fmt.Sprintf("failed to open login page: %v", err))
	}

	timeout := m.config.Portal.ElementTimeout

	emailField, err := inst.Page.Timeout(timeout).Element(emailSelector)
	if err != nil {
		return nil, utils.NewAutomationError("login form email field not found").WithURL(inst.CurrentURL())
	}
	if err := emailField.SelectAllText(); err == nil {
		_ = emailField.Input("")
	}
	if err := emailField.Input(email); err != nil {
		return nil, utils.NewAutomationError(fmt.Sprintf("failed to type email: %v", err))
	}

	passwordField, err := inst.Page.Timeout(timeout).Element(passwordSelector)
	if err != nil {
		return nil, utils.NewAutomationError("login form password field not found").WithURL(inst.CurrentURL())
	}
	if err := passwordField.Input(password); err != nil {
		return nil, utils.NewAutomationError(fmt.Sprintf("failed to type password: %v", err))
	}

	button, err := inst.Page.Timeout(timeout).ElementX(loginButtonXPath)
	if err != nil {
		return nil, utils.NewAutomationError("login button not found").WithURL(inst.CurrentURL())
	}
	if err := browser.ClickElement(button); err != nil {
		return nil, utils.NewAutomationError(fmt.Sprintf("failed to click login button: %v", err))
	}

	// The portal redirects asynchronously after submit; give it time to
	// settle before judging the outcome.
	select {
	case <-ctx.Done():
		return nil, utils.NewAutomationError("login cancelled")
	case <-time.After(m.config.Portal.LoginSettleDelay):
	}

	currentURL := inst.CurrentURL()
	if !IsAuthenticatedPage(currentURL, inst.VisibleText()) {
		return nil, utils.NewAuthError("no authenticated page markers after submit").WithURL(currentURL)
	}

	return &Session{
		ID:        utils.GenerateSessionID(),
		Identity:  email,
		CreatedAt: time.Now(),
		inst:      inst,
	}, nil
}

// Get returns the session for the given id.
func (m *Manager) Get(sessionID string) (*Session, error) {
	m.mu.RLock()
	sess, exists := m.sessions[sessionID]
	m.mu.RUnlock()

	if !exists {
		return nil, utils.NewSessionNotFoundError(sessionID)
	}
	return sess, nil
}

// Destroy removes the session from the table and terminates its browser.
// The browser is closed without waiting for in-flight operations; anything
// mid-operation on this session fails with an automation error. Destroy is
// idempotent per id: the second call reports not-found.
func (m *Manager) Destroy(sessionID string) error {
	m.mu.Lock()
	sess, exists := m.sessions[sessionID]
	if exists {
		delete(m.sessions, sessionID)
	}
	m.mu.Unlock()

	if !exists {
		return utils.NewSessionNotFoundError(sessionID)
	}

	if sess.inst != nil {
		sess.inst.Close()
	}

	m.logger.Info("Session destroyed", map[string]interface{}{
		"session_id": sessionID,
		"identity":   sess.Identity,
	})
	return nil
}

// Count returns the number of active sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// ActiveIDs returns the ids of all active sessions.
func (m *Manager) ActiveIDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	return ids
}

// Shutdown terminates every session and stops the login limiter.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for id, sess := range sessions {
		if sess.inst != nil {
			sess.inst.Close()
		}
		m.logger.Debug("Session terminated during shutdown", map[string]interface{}{
			"session_id": id,
		})
	}

	m.limiter.Stop()
}

// captureFailure saves a diagnostic screenshot of the page a failed login
// ended on. Best effort; never fails the login path.
func (m *Manager) captureFailure(inst *browser.Instance, label string) {
	png, err := inst.Screenshot()
	if err != nil {
		m.logger.Debug("Failed to capture screenshot", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	m.snapshotter.Save(label, png)
}
