package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/storefront-console/internal/core/domain"
)

const loginPath = "/api/session/login"

// errorResponse is the canonical error envelope for all API errors.
// Redirect is set when the caller has to log in again.
type errorResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps session and domain errors to their HTTP status codes.
//   - Passes remote API failures through with the remote message.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, resp := resolveError(err, log, c)
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, errorResponse{Error: ve.Error()}
	}

	switch {
	case errors.Is(err, domain.ErrSessionExpired):
		return http.StatusUnauthorized, errorResponse{Error: "session expired, please log in again", Redirect: loginPath}
	case errors.Is(err, domain.ErrNotAuthenticated):
		return http.StatusUnauthorized, errorResponse{Error: "login required", Redirect: loginPath}
	case errors.Is(err, domain.ErrSessionChanged):
		return http.StatusConflict, errorResponse{Error: "session changed, please retry"}
	case errors.Is(err, domain.ErrInvalidLoginResponse):
		return http.StatusBadGateway, errorResponse{Error: "login failed: unexpected response from remote api"}
	}

	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		return remoteStatus(apiErr)
	}

	if errors.Is(err, domain.ErrForbidden) {
		return http.StatusForbidden, errorResponse{Error: "access forbidden"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}

// remoteStatus keeps 4xx statuses of the remote API and turns everything
// else into 502.
func remoteStatus(e *domain.APIError) (int, errorResponse) {
	resp := errorResponse{Error: e.Message}
	switch {
	case e.Status == http.StatusUnauthorized:
		resp.Redirect = loginPath
		return http.StatusUnauthorized, resp
	case e.Status >= 400 && e.Status < 500:
		return e.Status, resp
	default:
		return http.StatusBadGateway, resp
	}
}
