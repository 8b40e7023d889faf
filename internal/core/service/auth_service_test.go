package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/storefront-console/internal/core/domain"
)

func TestAuthService_Login_Success(t *testing.T) {
	s, _ := newTestSession()
	tok := validToken(t)
	api := &stubAPI{
		loginFn: func(_ context.Context, email, password string) (*domain.LoginResult, error) {
			if email != "root@example.com" || password != "pw" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			u := admin
			return &domain.LoginResult{AccessToken: tok, User: &u}, nil
		},
	}
	svc := NewAuthService(api, s, zerolog.Nop())

	id, err := svc.Login(context.Background(), "root@example.com", "pw")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if !id.IsAdmin {
		t.Fatalf("expected admin identity, got %+v", id)
	}
	if cred, _ := s.Credential(context.Background()); cred != tok {
		t.Fatalf("session not committed, credential %q", cred)
	}
}

func TestAuthService_Login_IncompleteResponse(t *testing.T) {
	cases := []struct {
		name string
		res  *domain.LoginResult
	}{
		{"missing token", &domain.LoginResult{User: &customer}},
		{"missing user", &domain.LoginResult{AccessToken: "tok"}},
		{"nil", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, _ := newTestSession()
			api := &stubAPI{loginFn: func(context.Context, string, string) (*domain.LoginResult, error) { return tc.res, nil }}
			svc := NewAuthService(api, s, zerolog.Nop())

			if _, err := svc.Login(context.Background(), "a@example.com", "pw"); !errors.Is(err, domain.ErrInvalidLoginResponse) {
				t.Fatalf("expected ErrInvalidLoginResponse, got %v", err)
			}
			if s.State() != domain.StateAnonymous {
				t.Fatalf("session must stay anonymous")
			}
		})
	}
}

func TestAuthService_Login_RejectsEmptyInput(t *testing.T) {
	s, _ := newTestSession()
	svc := NewAuthService(&stubAPI{}, s, zerolog.Nop())

	var vErr *domain.ValidationError
	if _, err := svc.Login(context.Background(), "", "pw"); !errors.As(err, &vErr) || vErr.Field != "email" {
		t.Fatalf("expected email validation error, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "a@example.com", ""); !errors.As(err, &vErr) || vErr.Field != "password" {
		t.Fatalf("expected password validation error, got %v", err)
	}
}

func TestAuthService_Login_RemoteFailure(t *testing.T) {
	s, _ := newTestSession()
	apiErr := &domain.APIError{Op: "users.login", Status: 401, Message: "Invalid email or password"}
	api := &stubAPI{loginFn: func(context.Context, string, string) (*domain.LoginResult, error) { return nil, apiErr }}
	svc := NewAuthService(api, s, zerolog.Nop())

	_, err := svc.Login(context.Background(), "a@example.com", "bad")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthService_ChangePassword_RequiresSession(t *testing.T) {
	s, _ := newTestSession()
	svc := NewAuthService(&stubAPI{}, s, zerolog.Nop())

	if _, err := svc.ChangePassword(context.Background(), "old", "new"); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestAuthService_ChangePassword_SendsCredential(t *testing.T) {
	s, tok := loggedIn(t, customer)
	api := &stubAPI{
		updatePasswordFn: func(_ context.Context, credential, oldPw, newPw string) (*domain.Message, error) {
			if credential != tok || oldPw != "old" || newPw != "new" {
				t.Fatalf("unexpected args: %s %s %s", credential, oldPw, newPw)
			}
			return &domain.Message{Message: "Password updated"}, nil
		},
	}
	svc := NewAuthService(api, s, zerolog.Nop())

	msg, err := svc.ChangePassword(context.Background(), "old", "new")
	if err != nil || msg.Message != "Password updated" {
		t.Fatalf("unexpected result %+v, %v", msg, err)
	}
}

func TestAuthService_UpdateProfile_RefreshesSession(t *testing.T) {
	s, _ := loggedIn(t, customer)
	api := &stubAPI{
		updateProfileFn: func(_ context.Context, _ string, u domain.ProfileUpdate) (*domain.Identity, error) {
			return &domain.Identity{}, nil // API answered without a user body
		},
	}
	svc := NewAuthService(api, s, zerolog.Nop())

	got, err := svc.UpdateProfile(context.Background(), domain.ProfileUpdate{Phone: "555"})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if got.Name != "Ann" || got.Phone != "555" {
		t.Fatalf("expected merged identity, got %+v", got)
	}
	if id, _ := s.Identity(); id.Phone != "555" {
		t.Fatalf("session identity not refreshed: %+v", id)
	}
}

func TestAuthService_ExpiredCredentialEndsSession(t *testing.T) {
	s, _ := newTestSession()
	_ = s.Login(context.Background(), customer, tokenExpiringAt(t, time.Now().Add(-time.Minute)))
	svc := NewAuthService(&stubAPI{}, s, zerolog.Nop())

	if _, err := svc.ChangePassword(context.Background(), "a", "b"); !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	if s.State() != domain.StateAnonymous {
		t.Fatalf("expected expired session to be cleared")
	}
}
