// Package session orchestrates the authentication lifecycle: hydration
// of persisted state at startup, login, logout, background user refresh
// and the global unauthorized handling.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/amane-app/amane-go/api"
	"github.com/amane-app/amane-go/session/store"
	"github.com/amane-app/amane-go/users"
)

// State is the manager's lifecycle state.
type State int

const (
	Uninitialized State = iota // process started, storage not yet consulted
	Hydrating                  // reading persisted state
	Authenticated              // user and access token held
	Anonymous                  // storage consulted, no session
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Hydrating:
		return "hydrating"
	case Authenticated:
		return "authenticated"
	case Anonymous:
		return "anonymous"
	}
	return "unknown"
}

// Manager owns the in-memory session and is the only writer to the
// durable store. It is constructed once at application start and passed
// by reference to whatever needs it.
type Manager struct {
	accounts *users.Service
	repo     store.Repo

	navigate func(route string)
	nowTime  func() time.Time
	log      zerolog.Logger

	mu           sync.Mutex
	state        State
	ready        bool
	user         *users.UserProfile
	accessToken  string
	refreshToken string
}

// ManagerOption modifies a Manager at construction time.
type ManagerOption func(*Manager)

// WithNavigate sets the hook invoked when an unauthorized signal forces
// navigation back to the application root.
func WithNavigate(fn func(route string)) ManagerOption {
	return func(m *Manager) {
		m.navigate = fn
	}
}

// WithNowTime sets the now time function (primarily for testing).
func WithNowTime(nowFunc func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowTime = nowFunc
	}
}

// WithManagerLogger replaces the manager's logger.
func WithManagerLogger(l zerolog.Logger) ManagerOption {
	return func(m *Manager) {
		m.log = l
	}
}

// NewManager wires the manager to its collaborators and registers it as
// the listener on the unauthorized signal.
func NewManager(accounts *users.Service, repo store.Repo, unauthorized *api.Signal, options ...ManagerOption) (*Manager, error) {
	if accounts == nil {
		return nil, errors.New("[NewManager] accounts service is required")
	}
	if repo == nil {
		return nil, errors.New("[NewManager] session store is required")
	}

	m := &Manager{
		accounts: accounts,
		repo:     repo,
		navigate: func(string) {},
		nowTime:  time.Now,
		log:      log.Logger,
		state:    Uninitialized,
	}
	for _, opt := range options {
		opt(m)
	}

	if unauthorized != nil {
		unauthorized.SetListener(m.onUnauthorized)
	}
	return m, nil
}

// Hydrate consults the durable store exactly once. A present session is
// applied optimistically — callers may treat the user as logged in
// before the backend has confirmed — and the user is refreshed in the
// background. Ready flips true before Hydrate returns, in both outcomes.
func (m *Manager) Hydrate(ctx context.Context) {
	m.mu.Lock()
	if m.state != Uninitialized {
		m.mu.Unlock()
		return
	}
	m.state = Hydrating
	m.mu.Unlock()

	stored, ok := m.repo.Load()

	m.mu.Lock()
	if !ok {
		m.state = Anonymous
		m.ready = true
		m.mu.Unlock()
		return
	}
	m.user = stored.User
	m.accessToken = stored.AccessToken
	m.refreshToken = stored.RefreshToken
	m.state = Authenticated
	m.ready = true
	token := m.accessToken
	m.mu.Unlock()

	m.logExpiryHint(token)

	// Background reconciliation: a failure here keeps the optimistic
	// user. Only an explicit 401 — delivered through the unauthorized
	// signal, not through this call's error — ends the session.
	go func() {
		if err := m.RefreshUser(ctx); err != nil {
			m.log.Warn().Err(err).Msg("background user refresh failed, keeping cached profile")
		}
	}()
}

// Login exchanges credentials for a session. It reports success as a
// boolean rather than surfacing the backend error: routine auth flows
// should not need exception handling in the UI. The underlying error is
// logged for support.
func (m *Manager) Login(ctx context.Context, creds users.Credentials) bool {
	result, err := m.accounts.Login(ctx, creds)
	if err != nil {
		m.log.Warn().Err(err).Msg("login rejected")
		return false
	}

	m.mu.Lock()
	m.user = result.User
	m.accessToken = result.AccessToken
	m.refreshToken = result.RefreshToken
	m.state = Authenticated
	m.ready = true
	m.mu.Unlock()

	if err := m.repo.SaveTokens(result.AccessToken, result.RefreshToken); err != nil {
		m.log.Warn().Err(err).Msg("persisting tokens failed")
	}
	if err := m.repo.SaveUser(result.User); err != nil {
		m.log.Warn().Err(err).Msg("persisting user failed")
	}
	return true
}

// Logout clears the in-memory session and the durable store. Calling it
// while already anonymous is a no-op.
func (m *Manager) Logout() {
	m.mu.Lock()
	alreadyAnonymous := m.state == Anonymous
	m.user = nil
	m.accessToken = ""
	m.refreshToken = ""
	m.state = Anonymous
	m.mu.Unlock()

	if alreadyAnonymous {
		return
	}
	if err := m.repo.Clear(); err != nil {
		m.log.Warn().Err(err).Msg("clearing session storage failed")
	}
}

// RefreshUser refetches the current user with the held access token and
// re-persists only the user entry. Without a token it does nothing — no
// network call is attempted. Failures are logged and swallowed: a stale
// cached profile beats disrupting the UI.
func (m *Manager) RefreshUser(ctx context.Context) error {
	m.mu.Lock()
	token := m.accessToken
	m.mu.Unlock()
	if token == "" {
		return nil
	}

	user, err := m.accounts.Me(ctx, token)
	if err != nil {
		m.log.Warn().Err(err).Msg("refreshing user failed")
		return nil
	}

	m.mu.Lock()
	// The session may have ended while the call was in flight; applying
	// the profile then would break the user/token joint invariant.
	if m.accessToken == "" {
		m.mu.Unlock()
		return nil
	}
	m.user = user
	m.mu.Unlock()

	if err := m.repo.SaveUser(user); err != nil {
		m.log.Warn().Err(err).Msg("persisting refreshed user failed")
	}
	return nil
}

// onUnauthorized reacts to the global 401 broadcast: clear the session
// and force navigation to the root. When several in-flight calls all
// come back 401 only the first delivery navigates; the rest find the
// session already anonymous.
func (m *Manager) onUnauthorized() {
	m.mu.Lock()
	wasAuthenticated := m.state == Authenticated || m.state == Hydrating
	m.user = nil
	m.accessToken = ""
	m.refreshToken = ""
	m.state = Anonymous
	m.mu.Unlock()

	if !wasAuthenticated {
		return
	}
	if err := m.repo.Clear(); err != nil {
		m.log.Warn().Err(err).Msg("clearing session storage failed")
	}
	m.log.Info().Msg("access token rejected, session ended")
	m.navigate("/")
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Ready reports whether durable storage has been consulted at least once
// since process start. It flips true exactly once and never reverts, so
// route guards can tell "don't know yet" from "confirmed logged out".
func (m *Manager) Ready() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ready
}

// User returns a copy of the current profile, or nil when anonymous.
func (m *Manager) User() *users.UserProfile {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// AccessToken returns the held access token, empty when anonymous. The
// refresh token is deliberately not exposed: after login it is
// write-only from this component's perspective.
func (m *Manager) AccessToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.accessToken
}

// logExpiryHint warns when a hydrated access token is a JWT that is
// already past its expiry. Diagnostic only — tokens stay opaque to all
// control flow and nothing but a 401 ends a session.
func (m *Manager) logExpiryHint(token string) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(m.nowTime()) {
		m.log.Warn().Time("expired_at", claims.ExpiresAt.Time).Msg("hydrated access token is past its expiry")
	}
}
