package console

import (
	"context"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

// SessionManager is the single source of truth for "am I logged in, and
// as whom". It pairs the durable TokenStore write with the session
// cookie write so the edge guard and in-process code read the same
// credential without sharing a runtime.
type SessionManager struct {
	store            TokenStore
	profiles         ProfileFetcher
	cookieName       string
	cookieDuration   time.Duration
	retainStaleToken bool
	rejectedKey      string
	rejectedDefault  string
	logger           Logger

	mu      sync.RWMutex
	state   SessionState
	session Session
	loading bool
}

func NewSessionManager(store TokenStore, profiles ProfileFetcher, cfg Config) *SessionManager {
	cookieName := cfg.GetSessionCookieName()
	if cookieName == "" {
		cookieName = "seller_token"
	}

	cookieDuration := 24 * time.Hour
	if cfg.GetCookieDuration() > 0 {
		cookieDuration = time.Duration(cfg.GetCookieDuration()) * time.Hour
	}

	rejectedKey := cfg.GetRejectedRouteKey()
	if rejectedKey == "" {
		rejectedKey = "rejected_route"
	}

	rejectedDefault := cfg.GetRejectedRouteDefault()
	if rejectedDefault == "" {
		rejectedDefault = "/dashboard"
	}

	return &SessionManager{
		store:            store,
		profiles:         profiles,
		cookieName:       cookieName,
		cookieDuration:   cookieDuration,
		retainStaleToken: cfg.GetRetainTokenOnProfileError(),
		rejectedKey:      rejectedKey,
		rejectedDefault:  rejectedDefault,
		logger:           defLogger{},
		state:            StateInitializing,
		loading:          true,
	}
}

func (m *SessionManager) WithLogger(logger Logger) *SessionManager {
	if logger != nil {
		m.logger = logger
	}
	return m
}

// CookieName returns the session cookie key the edge guard inspects.
func (m *SessionManager) CookieName() string {
	return m.cookieName
}

// Session returns a copy of the current session.
func (m *SessionManager) Session() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session
}

// State returns the lifecycle state.
func (m *SessionManager) State() SessionState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Loading reports whether a restore or login is still resolving.
func (m *SessionManager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

// Restore rehydrates the session from durable storage on process start.
// No stored token means no network call: the session settles ANONYMOUS
// immediately. A stored token triggers a profile fetch; if that fails
// the session settles with the token retained (or cleared, per policy)
// and no profile.
func (m *SessionManager) Restore(ctx context.Context) error {
	token, err := m.store.Read(ctx)
	if err != nil {
		m.settle(StateAnonymous, Session{})
		return goerrors.Wrap(err, goerrors.CategoryOperation, "read stored token")
	}

	if token == "" {
		m.settle(StateAnonymous, Session{})
		return nil
	}

	m.begin(StateAuthenticating, token)
	return m.resolveProfile(ctx, nil, token)
}

// LoginWithToken is invoked after a successful credential or OTP
// exchange. The two credential writes below are a synchronization
// contract: durable storage for in-process reads, cookie for the edge
// guard. They must stay paired.
func (m *SessionManager) LoginWithToken(c router.Context, token string) error {
	if err := m.store.Write(c.Context(), token); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "persist token")
	}
	m.setCookieToken(c, token, m.cookieDuration)

	m.begin(StateAuthenticating, token)
	return m.resolveProfile(c.Context(), c, token)
}

// Logout is synchronous: durable token, cookie and in-memory state are
// all gone by the time it returns, whatever state it started from.
func (m *SessionManager) Logout(c router.Context) {
	if err := m.store.Clear(c.Context()); err != nil {
		m.logger.Error("clear stored token", "error", err)
	}
	m.cookieDel(c, m.cookieName)

	m.settle(StateAnonymous, Session{})
}

// RefreshProfile re-fetches the profile for the current token, keeping
// lifecycle semantics identical to Restore.
func (m *SessionManager) RefreshProfile(ctx context.Context) error {
	m.mu.RLock()
	token := m.session.Token
	m.mu.RUnlock()

	if token == "" {
		return ErrNoToken
	}

	m.begin(StateAuthenticating, token)
	return m.resolveProfile(ctx, nil, token)
}

// resolveProfile drives AUTHENTICATING to its terminal state. A failed
// fetch never redirects from here; that is the gateway's job. Loading
// always ends false. c is nil outside a request cycle (Restore,
// RefreshProfile); with a request in hand, clearing the token also
// expires the cookie so both credential stores stay paired.
func (m *SessionManager) resolveProfile(ctx context.Context, c router.Context, token string) error {
	profile, err := m.profiles.FetchProfile(ctx, token)
	if err != nil {
		m.logger.Warn("profile fetch failed", "error", err)

		if m.retainStaleToken {
			// Permissive by policy: a slow or flaky profile endpoint
			// should not force a logout while the token may be fine.
			m.settle(StateAnonymous, Session{Token: token})
		} else {
			if clearErr := m.store.Clear(ctx); clearErr != nil {
				m.logger.Error("clear token after profile failure", "error", clearErr)
			}
			if c != nil {
				m.cookieDel(c, m.cookieName)
			}
			m.settle(StateAnonymous, Session{})
		}
		return err
	}

	m.settle(StateAuthenticated, Session{Token: token, User: profile})
	return nil
}

func (m *SessionManager) begin(state SessionState, token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state
	m.loading = true
	m.session = Session{Token: token}
}

func (m *SessionManager) settle(state SessionState, session Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state
	m.loading = false
	m.session = session
}

// SetRedirect remembers the rejected path so a later login can return
// the seller where they were headed.
func (m *SessionManager) SetRedirect(c router.Context) {
	m.logger.Info("Setting redirect cookie", "key", m.rejectedKey, "path", c.OriginalURL())

	c.Cookie(&router.Cookie{
		Name:     m.rejectedKey,
		Value:    c.OriginalURL(),
		Expires:  time.Now().Add(time.Minute * 5),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}

func (m *SessionManager) GetRedirect(c router.Context, def ...string) string {
	r := c.Cookies(m.rejectedKey)
	if r == "" {
		if len(def) > 0 {
			return def[0]
		}
		return m.rejectedDefault
	}
	m.cookieDel(c, m.rejectedKey)
	return r
}

func (m *SessionManager) GetRedirectOrDefault(c router.Context) string {
	refererHeader := string(c.Referer())

	r := c.Cookies(m.rejectedKey, refererHeader)
	if r == "" {
		r = m.rejectedDefault
	}
	m.cookieDel(c, m.rejectedKey)
	return r
}

func (m *SessionManager) setCookieToken(c router.Context, val string, duration time.Duration) {
	c.Cookie(&router.Cookie{
		Name:     m.cookieName,
		Value:    val,
		Expires:  time.Now().Add(duration),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}

func (m *SessionManager) cookieDel(c router.Context, name string) {
	c.Cookie(&router.Cookie{
		Name:     name,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour * (24 * 365)),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}
