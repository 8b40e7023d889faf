package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/storefront-console/internal/core/domain"
	"github.com/99minutos/storefront-console/internal/core/service"
	"github.com/99minutos/storefront-console/internal/infrastructure/db/memory"
	"github.com/99minutos/storefront-console/internal/infrastructure/storefront"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp.Unix()}).SignedString([]byte("k"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

func newContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	rec := httptest.NewRecorder()
	return e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec), rec
}

func TestRequireSession_Anonymous(t *testing.T) {
	session := service.NewSessionStore(memory.NewStorage(), zerolog.Nop())
	c, _ := newContext()

	err := RequireSession(session)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})(c)
	if !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestRequireSession_SetsIdentity(t *testing.T) {
	session := service.NewSessionStore(memory.NewStorage(), zerolog.Nop())
	_ = session.Login(context.Background(), domain.Identity{ID: "u1"}, signedToken(t, time.Now().Add(time.Hour)))
	c, rec := newContext()

	err := RequireSession(session)(func(c echo.Context) error {
		id, _ := c.Get(IdentityKey).(domain.Identity)
		if id.ID != "u1" {
			t.Fatalf("unexpected identity %+v", id)
		}
		return c.NoContent(http.StatusOK)
	})(c)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireSession_ExpiredEndsSession(t *testing.T) {
	session := service.NewSessionStore(memory.NewStorage(), zerolog.Nop())
	_ = session.Login(context.Background(), domain.Identity{ID: "u1"}, signedToken(t, time.Now().Add(-time.Minute)))
	c, _ := newContext()

	err := RequireSession(session)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})(c)
	if !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	if session.State() != domain.StateAnonymous {
		t.Fatalf("expected session to be cleared")
	}
}

func TestAdminOnly_Allows(t *testing.T) {
	c, rec := newContext()
	c.Set(IdentityKey, domain.Identity{ID: "a1", IsAdmin: true})

	called := false
	handler := AdminOnly()(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected next handler with 200, got called=%v code=%d", called, rec.Code)
	}
}

func TestAdminOnly_Forbids(t *testing.T) {
	for name, set := range map[string]func(echo.Context){
		"customer":    func(c echo.Context) { c.Set(IdentityKey, domain.Identity{ID: "u1"}) },
		"no identity": func(echo.Context) {},
	} {
		t.Run(name, func(t *testing.T) {
			c, rec := newContext()
			set(c)

			_ = AdminOnly()(func(c echo.Context) error {
				t.Fatalf("should not reach next handler")
				return nil
			})(c)
			if rec.Code != http.StatusForbidden {
				t.Fatalf("expected 403, got %d", rec.Code)
			}
		})
	}
}

func TestPropagateRequestID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderXRequestID, "abc-123")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("X-Request-ID")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	err := PropagateRequestID()(func(c echo.Context) error {
		client, err := storefront.New(srv.URL, time.Second, zerolog.Nop())
		if err != nil {
			return err
		}
		_, err = client.ListCategories(c.Request().Context())
		return err
	})(c)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if seen != "abc-123" {
		t.Fatalf("expected propagated request id, got %q", seen)
	}
}
