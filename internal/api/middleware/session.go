package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/storefront-console/internal/core/domain"
	"github.com/99minutos/storefront-console/internal/core/ports"
)

// IdentityKey is the echo context key holding the logged-in domain.Identity.
const IdentityKey = "identity"

// RequireSession rejects the request unless a live session exists. An
// expired credential ends the session here, before any handler runs.
func RequireSession(session ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			identity, ok := session.Identity()
			if !ok {
				return domain.ErrNotAuthenticated
			}
			credential, ok := session.Credential(ctx)
			if !ok {
				return domain.ErrNotAuthenticated
			}
			if session.IsExpired(credential) {
				session.Invalidate(ctx, credential, "expired")
				return domain.ErrSessionExpired
			}

			c.Set(IdentityKey, identity)
			return next(c)
		}
	}
}
