// Package session owns the authentication lifecycle for the tracker client.
package session

import (
	"context"
	"sync"

	"github.com/yndnr/custrack-go/internal/core/domain"
	"github.com/yndnr/custrack-go/internal/credstore"
	"github.com/yndnr/custrack-go/internal/gateway"
	"github.com/yndnr/custrack-go/internal/telemetry/logger"
)

// Auth endpoint paths.
const (
	pathLogin   = "/api/auth/login"
	pathLogout  = "/api/auth/logout"
	pathRefresh = "/api/auth/refresh"
	pathMe      = "/api/auth/me"
)

// LoginResult is the outcome of a login attempt. Login never fails
// with an error; failures are carried in Message.
type LoginResult struct {
	Success bool
	User    *domain.User
	Message string
}

// Manager is the session state holder.
type Manager struct {
	gw    *gateway.Client
	creds credstore.Store
	log   logger.Logger

	mu      sync.Mutex
	token   string
	user    *domain.User
	loading bool
}

// NewManager creates a session manager bound to a gateway and a
// credential store. The store must be the same one the gateway reads
// its bearer token from.
func NewManager(gw *gateway.Client, creds credstore.Store) *Manager {
	return &Manager{
		gw:    gw,
		creds: creds,
		log:   logger.Default().With("component", "session"),
	}
}

// Token returns the in-memory bearer token, or "".
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// User returns the resolved user identity, or nil.
func (m *Manager) User() *domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// Loading reports whether a session-affecting request is in flight.
// Not reentrant-safe under concurrent calls to the same operation.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// IsAuthenticated reports whether both a token and a resolved user are
// present. A bare token does not authenticate a session.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token != "" && m.user != nil
}

// Invalidated reports whether the gateway has cleared the persisted
// credential behind this session's back (its 401 side effect) while
// the in-memory state still looks authenticated. Guards check this
// before trusting IsAuthenticated.
func (m *Manager) Invalidated() bool {
	m.mu.Lock()
	token := m.token
	m.mu.Unlock()
	if token == "" {
		return false
	}
	stored, err := m.creds.Load()
	if err != nil {
		return false
	}
	return stored == ""
}

// InitAuth restores a session from the persisted credential. With no
// stored token it returns false without any network call. A stored
// token is loaded into memory and validated against the identity
// endpoint; on any failure the session is fully cleared. This is the
// sole recovery path for a stale persisted token.
func (m *Manager) InitAuth(ctx context.Context) bool {
	stored, err := m.creds.Load()
	if err != nil || stored == "" {
		return false
	}

	m.mu.Lock()
	m.token = stored
	m.mu.Unlock()

	var user domain.User
	if err := m.gw.Get(ctx, pathMe, &user); err != nil {
		m.log.Debug("session restore rejected", "error", err.Error())
		m.Logout(ctx)
		return false
	}

	m.mu.Lock()
	m.user = &user
	m.mu.Unlock()
	return true
}

// Login authenticates with the given credentials. All failures are
// converted into the result shape; Login itself never errors. On
// success the token is set in memory and persisted.
func (m *Manager) Login(ctx context.Context, creds domain.Credentials) LoginResult {
	m.setLoading(true)
	defer m.setLoading(false)

	if err := creds.Validate(); err != nil {
		return LoginResult{Message: err.Error()}
	}

	var resp domain.LoginResponse
	if err := m.gw.Post(ctx, pathLogin, creds, &resp); err != nil {
		return LoginResult{Message: loginFailureMessage(err)}
	}

	m.mu.Lock()
	m.token = resp.Token
	m.user = &resp.User
	m.mu.Unlock()

	if err := m.creds.Save(resp.Token); err != nil {
		// The session works for this process; only restore is lost.
		m.log.Warn("failed to persist credential", "error", err.Error())
	}

	m.log.Info("logged in", "username", resp.User.Username)
	return LoginResult{Success: true, User: &resp.User}
}

// Logout terminates the session. The server-side call is best effort
// and its failure is swallowed; memory and the persisted credential
// are cleared unconditionally.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	hadToken := m.token != ""
	m.mu.Unlock()

	if hadToken {
		if err := m.gw.Post(ctx, pathLogout, nil, nil); err != nil {
			m.log.Debug("server logout failed, clearing locally", "error", err.Error())
		}
	}

	m.clear()
}

// RefreshToken exchanges the current token for a new one. The user
// identity is untouched. Any failure terminates the session: a failed
// refresh is a logout, not a retryable condition.
func (m *Manager) RefreshToken(ctx context.Context) bool {
	var resp domain.RefreshResponse
	if err := m.gw.Post(ctx, pathRefresh, nil, &resp); err != nil {
		m.log.Debug("refresh rejected, terminating session", "error", err.Error())
		m.Logout(ctx)
		return false
	}

	m.mu.Lock()
	m.token = resp.Token
	m.mu.Unlock()

	if err := m.creds.Save(resp.Token); err != nil {
		m.log.Warn("failed to persist refreshed credential", "error", err.Error())
	}
	return true
}

// CurrentUser resolves the identity behind the current token. On
// success the cached user is updated; on failure the session is fully
// cleared.
func (m *Manager) CurrentUser(ctx context.Context) (*domain.User, bool) {
	var user domain.User
	if err := m.gw.Get(ctx, pathMe, &user); err != nil {
		m.Logout(ctx)
		return nil, false
	}

	m.mu.Lock()
	m.user = &user
	m.mu.Unlock()
	return &user, true
}

// clear resets memory state and the persisted slot.
func (m *Manager) clear() {
	m.mu.Lock()
	m.token = ""
	m.user = nil
	m.mu.Unlock()

	if err := m.creds.Clear(); err != nil {
		m.log.Warn("failed to clear stored credential", "error", err.Error())
	}
}

func (m *Manager) setLoading(v bool) {
	m.mu.Lock()
	m.loading = v
	m.mu.Unlock()
}

// loginFailureMessage extracts the normalized message, with a generic
// fallback for errors that somehow bypassed the gateway.
func loginFailureMessage(err error) string {
	if ae, ok := gateway.AsAPIError(err); ok && ae.Message != "" {
		return ae.Message
	}
	return "login failed"
}
