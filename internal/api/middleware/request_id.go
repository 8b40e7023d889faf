package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/storefront-console/internal/infrastructure/storefront"
)

// PropagateRequestID copies the inbound request ID into the request context
// so calls to the remote API carry the same X-Request-ID.
// It must run after echo's RequestID middleware.
func PropagateRequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Response().Header().Get(echo.HeaderXRequestID)
			if id == "" {
				id = c.Request().Header.Get(echo.HeaderXRequestID)
			}
			if id != "" {
				req := c.Request()
				c.SetRequest(req.WithContext(storefront.ContextWithRequestID(req.Context(), id)))
			}
			return next(c)
		}
	}
}
