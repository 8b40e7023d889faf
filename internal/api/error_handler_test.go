package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/storefront-console/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		code     int
		message  string
		redirect bool
	}{
		{"validation", domain.NewValidationError("quantity", "must be at least 1"), http.StatusBadRequest, "quantity must be at least 1", false},
		{"not authenticated", domain.ErrNotAuthenticated, http.StatusUnauthorized, "login required", true},
		{"expired", domain.ErrSessionExpired, http.StatusUnauthorized, "session expired, please log in again", true},
		{"changed", domain.ErrSessionChanged, http.StatusConflict, "session changed, please retry", false},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "access forbidden", false},
		{"remote 401", &domain.APIError{Status: 401, Message: "Token expired"}, http.StatusUnauthorized, "Token expired", true},
		{"remote 404", &domain.APIError{Status: 404, Message: "Product not found"}, http.StatusNotFound, "Product not found", false},
		{"remote 500", &domain.APIError{Status: 500, Message: "boom"}, http.StatusBadGateway, "boom", false},
		{"transport", &domain.APIError{Message: "could not load cart"}, http.StatusBadGateway, "could not load cart", false},
		{"echo", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, "invalid payload", false},
		{"unknown", errors.New("kaboom"), http.StatusInternalServerError, "internal server error", false},
	}

	h := NewHTTPErrorHandler(zerolog.Nop())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			h(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Error != tc.message {
				t.Fatalf("expected message %q, got %q", tc.message, resp.Error)
			}
			if (resp.Redirect != "") != tc.redirect {
				t.Fatalf("unexpected redirect %q", resp.Redirect)
			}
		})
	}
}
