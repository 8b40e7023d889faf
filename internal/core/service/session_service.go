package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/99minutos/storefront-console/internal/core/domain"
	"github.com/99minutos/storefront-console/internal/core/ports"
	"github.com/99minutos/storefront-console/internal/metrics"
)

// SessionStore is the single in-process owner of the client session.
// Every mutation happens under mu and bumps version, so concurrent manual
// and automatic logouts resolve deterministically.
type SessionStore struct {
	storage ports.ClientStorage
	log     zerolog.Logger
	now     func() time.Time

	mu      sync.RWMutex
	current domain.Session
	version uint64
}

// SessionOption customises a SessionStore.
type SessionOption func(*SessionStore)

// WithClock replaces time.Now, used to simulate credential ageing.
func WithClock(now func() time.Time) SessionOption {
	return func(s *SessionStore) { s.now = now }
}

// NewSessionStore returns an anonymous session backed by storage.
func NewSessionStore(storage ports.ClientStorage, log zerolog.Logger, opts ...SessionOption) *SessionStore {
	s := &SessionStore{storage: storage, log: log, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Restore loads a previously persisted session. A half-written or
// undecodable session is ignored. Storage errors are logged, never returned.
func (s *SessionStore) Restore(ctx context.Context) {
	identity, credential, ok := s.readStored(ctx)
	if !ok {
		s.log.Debug().Msg("no persisted session")
		return
	}

	s.mu.Lock()
	s.current = domain.Session{Identity: &identity, Credential: credential}
	s.bumpLocked()
	s.mu.Unlock()

	metrics.SessionTransitionsTotal.WithLabelValues(string(domain.StateAuthenticated), "restore").Inc()
	s.log.Info().Str("user_id", identity.ID).Msg("session restored")
}

// Login persists identity and credential, then replaces the in-memory
// session. Any previously stored session is overwritten. On storage failure
// the previous session is left untouched.
func (s *SessionStore) Login(ctx context.Context, identity domain.Identity, credential string) error {
	if credential == "" {
		return domain.NewValidationError("credential", "is required")
	}
	encoded, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.SetMany(ctx, map[string]string{
		ports.StorageKeyUser:  string(encoded),
		ports.StorageKeyToken: credential,
	}); err != nil {
		s.log.Error().Err(err).Str("user_id", identity.ID).Msg("failed to persist session")
		return fmt.Errorf("persist session: %w", err)
	}

	s.current = domain.Session{Identity: &identity, Credential: credential}
	s.bumpLocked()

	metrics.SessionTransitionsTotal.WithLabelValues(string(domain.StateAuthenticated), "login").Inc()
	s.log.Info().Str("user_id", identity.ID).Bool("is_admin", identity.IsAdmin).Msg("logged in")
	return nil
}

// Logout clears the session in memory and in storage. Calling it while
// anonymous is a successful no-op apart from the storage delete.
func (s *SessionStore) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearLocked(ctx, "logout")
}

// Invalidate tears the session down only if credential is still current.
// A rejection observed for an older credential never ends a newer login.
func (s *SessionStore) Invalidate(ctx context.Context, credential, reason string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current.Credential == "" || s.current.Credential != credential {
		s.log.Debug().Str("reason", reason).Msg("stale invalidation ignored")
		return false
	}
	if err := s.clearLocked(ctx, reason); err != nil {
		s.log.Warn().Err(err).Str("reason", reason).Msg("session cleared in memory only")
	}
	return true
}

// UpdateIdentity replaces the profile of the logged-in user, keeping the credential.
func (s *SessionStore) UpdateIdentity(ctx context.Context, identity domain.Identity) error {
	encoded, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current.State() != domain.StateAuthenticated {
		return domain.ErrNotAuthenticated
	}
	if err := s.storage.SetMany(ctx, map[string]string{ports.StorageKeyUser: string(encoded)}); err != nil {
		return fmt.Errorf("persist identity: %w", err)
	}
	s.current.Identity = &identity
	s.bumpLocked()
	return nil
}

// Credential returns the in-memory credential, falling back to one read of
// durable storage. The fallback only succeeds when both entries are stored.
func (s *SessionStore) Credential(ctx context.Context) (string, bool) {
	s.mu.RLock()
	credential := s.current.Credential
	s.mu.RUnlock()
	if credential != "" {
		return credential, true
	}

	_, stored, ok := s.readStored(ctx)
	if !ok {
		return "", false
	}
	return stored, true
}

// Identity returns a copy of the logged-in identity.
func (s *SessionStore) Identity() (domain.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current.Identity == nil {
		return domain.Identity{}, false
	}
	return *s.current.Identity, true
}

// State reports Anonymous or Authenticated.
func (s *SessionStore) State() domain.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.State()
}

// Version increases on every session mutation.
func (s *SessionStore) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// IsExpired decodes the credential's exp claim without verifying the
// signature. Undecodable credentials and credentials without exp count as expired.
func (s *SessionStore) IsExpired(credential string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(credential, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return exp.Time.Before(s.now())
}

func (s *SessionStore) clearLocked(ctx context.Context, reason string) error {
	wasAuthenticated := s.current.State() == domain.StateAuthenticated
	s.current = domain.Session{}
	s.bumpLocked()

	err := s.storage.Delete(ctx, ports.StorageKeyUser, ports.StorageKeyToken)
	if wasAuthenticated {
		metrics.SessionTransitionsTotal.WithLabelValues(string(domain.StateAnonymous), reason).Inc()
		s.log.Info().Str("reason", reason).Msg("logged out")
	}
	if err != nil {
		return fmt.Errorf("remove persisted session: %w", err)
	}
	return nil
}

func (s *SessionStore) bumpLocked() {
	s.version++
	s.current.Version = s.version
}

// readStored returns the persisted session only when both entries exist and decode.
func (s *SessionStore) readStored(ctx context.Context) (domain.Identity, string, bool) {
	rawUser, okUser, err := s.storage.Get(ctx, ports.StorageKeyUser)
	if err != nil {
		s.log.Warn().Err(err).Msg("read stored identity")
		return domain.Identity{}, "", false
	}
	credential, okToken, err := s.storage.Get(ctx, ports.StorageKeyToken)
	if err != nil {
		s.log.Warn().Err(err).Msg("read stored credential")
		return domain.Identity{}, "", false
	}
	if !okUser || !okToken || rawUser == "" || credential == "" {
		return domain.Identity{}, "", false
	}

	var identity domain.Identity
	if err := json.Unmarshal([]byte(rawUser), &identity); err != nil {
		s.log.Warn().Err(err).Msg("stored identity is not valid json")
		return domain.Identity{}, "", false
	}
	return identity, credential, true
}
