// Package session holds the client's authenticated identity: the current
// user and bearer token, persisted across restarts. A session is never
// half-populated; any inconsistency forces a full logout.
package session

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"storefront/internal/access"
	"storefront/internal/api"
	"storefront/internal/model"
	"storefront/internal/storage"

	"github.com/golang-jwt/jwt/v5"
)

// Navigator is invoked when a cross-cutting effect (a 401 response) forces
// navigation to the login entry point. The CLI installs one that points the
// user at the login command; tests install a recorder.
type Navigator func(route string)

// Manager implements the session store. It doubles as the token source for
// the authenticated HTTP client and supplies its unauthorized hook.
type Manager struct {
	store    storage.Store
	navigate Navigator

	mu       sync.Mutex
	auth     *api.AuthAPI
	user     *model.User
	token    string
	restored bool
}

// New creates a Manager over the persisted store. Bind must be called with
// the AuthAPI before Login or Register are used; the two-step construction
// exists because the authenticated client the AuthAPI rides on needs the
// Manager as its token source.
func New(store storage.Store, navigate Navigator) *Manager {
	return &Manager{store: store, navigate: navigate}
}

// Bind attaches the AuthAPI used for login and registration.
func (m *Manager) Bind(auth *api.AuthAPI) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.auth = auth
}

// Token returns the current bearer token, or "" for a guest.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Restore loads the persisted session. Malformed state is treated as "no
// session" and cleared. Idempotent; the loading flag settles exactly once,
// whether or not a session was found.
func (m *Manager) Restore() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.restored {
		return
	}
	m.restored = true

	var token string
	var user model.User
	hasToken := m.store.Get(storage.KeyToken, &token)
	hasUser := m.store.Get(storage.KeyUser, &user)

	switch {
	case !hasToken && !hasUser:
		return
	case !hasToken || !hasUser || token == "" || !user.Role.Valid():
		// Half a session is no session.
		log.Printf("Discarding inconsistent persisted session")
		m.clearLocked()
		return
	case tokenExpired(token):
		log.Printf("Discarding expired persisted session")
		m.clearLocked()
		return
	}

	m.token = token
	m.user = &user
}

// Loading reports whether Restore has settled yet. Route decisions must not
// be made while this is true.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.restored
}

// Login authenticates with the backend and establishes the session. On any
// failure the session is left unchanged.
func (m *Manager) Login(ctx context.Context, creds model.Credentials) error {
	if err := creds.Validate(); err != nil {
		return err
	}
	resp, err := m.authAPI().Login(ctx, creds)
	if err != nil {
		return err
	}
	return m.establish(resp)
}

// Register creates an account and establishes the session, with the same
// contract as Login.
func (m *Manager) Register(ctx context.Context, data model.RegisterData) error {
	if err := data.Validate(); err != nil {
		return err
	}
	resp, err := m.authAPI().Register(ctx, data)
	if err != nil {
		return err
	}
	return m.establish(resp)
}

// Logout clears the in-memory and persisted session unconditionally.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearLocked()
}

// HandleUnauthorized is the 401 hook for the authenticated client: implicit
// logout plus navigation to the login entry point.
func (m *Manager) HandleUnauthorized() {
	m.Logout()
	if m.navigate != nil {
		m.navigate(access.LoginPath)
	}
}

// IsAuthenticated reports whether a user is present.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user != nil
}

// IsAdmin reports whether the current user holds the SUPER_ADMIN role.
func (m *Manager) IsAdmin() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user != nil && m.user.Role == model.RoleSuperAdmin
}

// CurrentUser returns a copy of the current user, or nil for a guest.
func (m *Manager) CurrentUser() *model.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// Snapshot captures the session state the access gate decides on.
func (m *Manager) Snapshot() access.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := access.Snapshot{
		Loading:       !m.restored,
		Authenticated: m.user != nil,
	}
	if m.user != nil {
		s.Role = m.user.Role
	}
	return s
}

func (m *Manager) authAPI() *api.AuthAPI {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.auth == nil {
		panic("session: Bind was not called before Login/Register")
	}
	return m.auth
}

// establish atomically sets and persists both halves of the session. If
// persisting fails midway the keys are rolled back so no half-session is
// ever left behind.
func (m *Manager) establish(resp *model.LoginResponse) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.Set(storage.KeyToken, resp.AccessToken); err != nil {
		m.store.Delete(storage.KeyToken)
		return fmt.Errorf("failed to persist session: %w", err)
	}
	if err := m.store.Set(storage.KeyUser, resp.User); err != nil {
		m.store.Delete(storage.KeyToken)
		m.store.Delete(storage.KeyUser)
		return fmt.Errorf("failed to persist session: %w", err)
	}
	user := resp.User
	m.user = &user
	m.token = resp.AccessToken
	return nil
}

func (m *Manager) clearLocked() {
	m.user = nil
	m.token = ""
	m.store.Delete(storage.KeyToken)
	m.store.Delete(storage.KeyUser)
}

// tokenExpired peeks at the token's exp claim without verifying the
// signature (the client holds no signing key). Opaque tokens that are not
// JWTs are accepted; deciding their validity is the backend's job.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
