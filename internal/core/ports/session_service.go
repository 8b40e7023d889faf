package ports

import (
	"context"

	"github.com/99minutos/storefront-console/internal/core/domain"
)

// SessionService is the single owner of "who is logged in".
type SessionService interface {
	Restore(ctx context.Context)
	Login(ctx context.Context, identity domain.Identity, credential string) error
	Logout(ctx context.Context) error
	// Invalidate logs out only if credential is still the current one.
	Invalidate(ctx context.Context, credential, reason string) bool
	UpdateIdentity(ctx context.Context, identity domain.Identity) error

	Credential(ctx context.Context) (string, bool)
	Identity() (domain.Identity, bool)
	IsExpired(credential string) bool
	State() domain.SessionState
	Version() uint64
}
