package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/transitline/metro-console/internal/core/domain"
	"github.com/transitline/metro-console/internal/core/ports"
)

// SessionManager owns the console's session: the in-memory identity and the
// persisted bearer token. It is the only writer of the TokenStore; the HTTP
// transport reports 401s through Invalidate instead of touching the store, so
// the identity can never outlive its token.
//
// Every mutation bumps an internal generation counter. The startup resolution
// snapshots the counter before its network call and discards its result if
// the counter moved while it was in flight, so a login racing the resolver
// always wins.
//
// Token store writes happen under the same mutex as the in-memory state, so
// the stored token and the identity always move together. Collaborator calls
// never run under the mutex.
type SessionManager struct {
	api    ports.AuthAPI
	tokens ports.TokenStore
	log    zerolog.Logger

	mu      sync.Mutex
	user    domain.Identity
	loading bool
	gen     uint64
}

func NewSessionManager(api ports.AuthAPI, tokens ports.TokenStore, log zerolog.Logger) *SessionManager {
	return &SessionManager{
		api:     api,
		tokens:  tokens,
		log:     log,
		loading: true,
	}
}

// Resolve exchanges a previously stored token for the current identity. It
// runs once at startup and is the only path that ends the loading phase. An
// empty store resolves immediately with no session and no network call; any
// failure clears the store and leaves the identity absent.
func (m *SessionManager) Resolve(ctx context.Context) {
	m.mu.Lock()
	startGen := m.gen
	m.mu.Unlock()

	token, err := m.tokens.Get(ctx)
	if err != nil {
		m.log.Error().Err(err).Msg("session: token store unavailable")
		m.finishResolve(ctx, startGen, nil, false)
		return
	}
	if token == "" {
		m.finishResolve(ctx, startGen, nil, false)
		return
	}

	id, err := m.api.CurrentIdentity(ctx)
	if err != nil {
		m.log.Warn().Err(err).Msg("session: stored token rejected")
		m.finishResolve(ctx, startGen, nil, true)
		return
	}
	m.finishResolve(ctx, startGen, id, false)
}

// finishResolve applies a resolution outcome unless a login, register, or
// logout completed while the resolver was in flight. The rejected-token
// wipe runs inside the critical section: a login landing while the wipe is
// in flight blocks in install and keeps its token.
func (m *SessionManager) finishResolve(ctx context.Context, startGen uint64, id domain.Identity, clearToken bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.gen != startGen {
		m.loading = false
		m.log.Debug().Msg("session: discarding stale startup resolution")
		return
	}
	if clearToken {
		if err := m.tokens.Clear(ctx); err != nil {
			m.log.Error().Err(err).Msg("session: failed to clear rejected token")
		}
	}
	m.user = id
	m.gen++
	m.loading = false
}

// Login authenticates against the collaborator and installs the returned
// token and identity. On failure the session state is left untouched.
func (m *SessionManager) Login(ctx context.Context, email, password string) (domain.Identity, error) {
	token, id, err := m.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := m.install(ctx, token, id); err != nil {
		return nil, err
	}
	return id, nil
}

// Register creates an account; the collaborator auto-logs-in, so a successful
// registration installs the session exactly like Login.
func (m *SessionManager) Register(ctx context.Context, name, email, password string) (domain.Identity, error) {
	token, id, err := m.api.Register(ctx, name, email, password)
	if err != nil {
		return nil, err
	}
	if err := m.install(ctx, token, id); err != nil {
		return nil, err
	}
	return id, nil
}

// install persists the token and publishes the identity in one critical
// section, so no concurrent resolution or invalidation can wipe the fresh
// token or observe it without its identity.
func (m *SessionManager) install(ctx context.Context, token string, id domain.Identity) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.tokens.Set(ctx, token); err != nil {
		return err
	}
	m.user = id
	m.loading = false
	m.gen++
	return nil
}

// Logout drops the token and identity. Idempotent: a second call is a no-op.
func (m *SessionManager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.tokens.Clear(ctx); err != nil {
		return err
	}
	m.user = nil
	m.gen++
	return nil
}

// Invalidate is the 401 sink for the HTTP transport. The rejected token is
// passed in so that a response for an already-replaced token cannot tear down
// the session that replaced it. The compare and the clear share one critical
// section with install, so a login landing mid-invalidation keeps its token.
func (m *SessionManager) Invalidate(ctx context.Context, rejected string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, err := m.tokens.Get(ctx)
	if err != nil {
		m.log.Error().Err(err).Msg("session: token store unavailable during invalidation")
		return
	}
	if current == "" || current != rejected {
		return
	}
	if err := m.tokens.Clear(ctx); err != nil {
		m.log.Error().Err(err).Msg("session: failed to clear invalidated token")
		return
	}
	m.user = nil
	m.gen++
	m.log.Info().Msg("session: invalidated by upstream 401")
}

// Current returns the signed-in identity, or nil.
func (m *SessionManager) Current() domain.Identity {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// Loading reports whether the startup resolution is still in flight.
func (m *SessionManager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

func (m *SessionManager) IsAuthenticated() bool {
	return m.Current() != nil
}

func (m *SessionManager) IsAdminAuthenticated() bool {
	return domain.IsAdministrator(m.Current())
}

// HasRole is a pure read: false when no identity is present, otherwise a
// membership test against the identity's role list.
func (m *SessionManager) HasRole(role string) bool {
	return domain.HasRole(m.Current(), role)
}
