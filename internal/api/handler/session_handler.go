package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/storefront-console/internal/core/domain"
	"github.com/99minutos/storefront-console/internal/core/ports"
)

// SessionHandler exposes login, logout and the current session state.
type SessionHandler struct {
	auth    ports.AuthService
	session ports.SessionService
}

func NewSessionHandler(auth ports.AuthService, session ports.SessionService) *SessionHandler {
	return &SessionHandler{auth: auth, session: session}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	State    domain.SessionState `json:"state"`
	User     *domain.Identity    `json:"user,omitempty"`
	Redirect string              `json:"redirect,omitempty"`
}

// Login authenticates against the remote API and opens the session.
//
// @Summary      Log in
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /api/session/login [post]
func (h *SessionHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	identity, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	resp := sessionResponse{State: domain.StateAuthenticated, User: identity, Redirect: "/"}
	if identity.IsAdmin {
		resp.Redirect = "/admin"
	}
	return c.JSON(http.StatusOK, resp)
}

// Logout ends the session. It succeeds even when nobody is logged in.
//
// @Summary      Log out
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /api/session/logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	if err := h.auth.Logout(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{State: domain.StateAnonymous})
}

// Current reports who is logged in.
//
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /api/session [get]
func (h *SessionHandler) Current(c echo.Context) error {
	resp := sessionResponse{State: h.session.State()}
	if identity, ok := h.session.Identity(); ok {
		resp.User = &identity
	}
	return c.JSON(http.StatusOK, resp)
}
