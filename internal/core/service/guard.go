package service

import (
	"context"

	"github.com/99minutos/storefront-console/internal/core/domain"
	"github.com/99minutos/storefront-console/internal/core/ports"
)

// callGuard pins one authenticated call to the session it started in.
type callGuard struct {
	session    ports.SessionService
	credential string
	version    uint64
}

// begin returns a guard for the current session. An expired credential ends
// the session before any request is sent.
func begin(ctx context.Context, session ports.SessionService) (callGuard, error) {
	version := session.Version()
	credential, ok := session.Credential(ctx)
	if !ok {
		return callGuard{}, domain.ErrNotAuthenticated
	}
	if session.IsExpired(credential) {
		session.Invalidate(ctx, credential, "expired")
		return callGuard{}, domain.ErrSessionExpired
	}
	return callGuard{session: session, credential: credential, version: version}, nil
}

// beginAdmin is begin plus an admin identity check.
func beginAdmin(ctx context.Context, session ports.SessionService) (callGuard, error) {
	g, err := begin(ctx, session)
	if err != nil {
		return g, err
	}
	identity, ok := session.Identity()
	if !ok {
		return callGuard{}, domain.ErrNotAuthenticated
	}
	if !identity.IsAdmin {
		return callGuard{}, domain.ErrForbidden
	}
	return g, nil
}

// stale reports ErrSessionChanged when a login or logout happened after begin.
func (g callGuard) stale() error {
	if g.session.Version() != g.version {
		return domain.ErrSessionChanged
	}
	return nil
}
