package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/99minutos/storefront-console/internal/core/domain"
	"github.com/99minutos/storefront-console/internal/core/ports"
)

// AuthService logs users in and out and runs self-service account flows.
type AuthService struct {
	api     ports.UserAPI
	session ports.SessionService
	log     zerolog.Logger
}

func NewAuthService(api ports.UserAPI, session ports.SessionService, log zerolog.Logger) *AuthService {
	return &AuthService{api: api, session: session, log: log}
}

// Login authenticates against the remote API and commits the session. The
// returned identity tells callers whether to route to the admin area.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Identity, error) {
	if email == "" {
		return nil, domain.NewValidationError("email", "is required")
	}
	if password == "" {
		return nil, domain.NewValidationError("password", "is required")
	}

	res, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if res == nil || res.AccessToken == "" || res.User == nil {
		s.log.Error().Str("email", email).Msg("login response missing accessToken or user")
		return nil, domain.ErrInvalidLoginResponse
	}

	if err := s.session.Login(ctx, *res.User, res.AccessToken); err != nil {
		return nil, err
	}
	identity := *res.User
	return &identity, nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	return s.session.Logout(ctx)
}

func (s *AuthService) Register(ctx context.Context, reg domain.Registration) (*domain.Identity, error) {
	switch {
	case reg.Email == "":
		return nil, domain.NewValidationError("email", "is required")
	case reg.Password == "":
		return nil, domain.NewValidationError("password", "is required")
	case reg.Name == "":
		return nil, domain.NewValidationError("name", "is required")
	}
	return s.api.Register(ctx, reg)
}

func (s *AuthService) ForgotPassword(ctx context.Context, email string) (*domain.Message, error) {
	if email == "" {
		return nil, domain.NewValidationError("email", "is required")
	}
	return s.api.ForgotPassword(ctx, email)
}

func (s *AuthService) ResetPassword(ctx context.Context, resetToken, newPassword string) (*domain.Message, error) {
	if resetToken == "" {
		return nil, domain.NewValidationError("token", "is required")
	}
	if newPassword == "" {
		return nil, domain.NewValidationError("password", "is required")
	}
	return s.api.ResetPassword(ctx, resetToken, newPassword)
}

func (s *AuthService) ChangePassword(ctx context.Context, oldPassword, newPassword string) (*domain.Message, error) {
	if oldPassword == "" || newPassword == "" {
		return nil, domain.NewValidationError("password", "old and new password are required")
	}
	g, err := begin(ctx, s.session)
	if err != nil {
		return nil, err
	}
	return s.api.UpdatePassword(ctx, g.credential, oldPassword, newPassword)
}

// UpdateProfile saves the change remotely and then refreshes the session identity.
func (s *AuthService) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.Identity, error) {
	if update == (domain.ProfileUpdate{}) {
		return nil, domain.NewValidationError("profile", "nothing to update")
	}
	g, err := begin(ctx, s.session)
	if err != nil {
		return nil, err
	}
	current, ok := s.session.Identity()
	if !ok {
		return nil, domain.ErrNotAuthenticated
	}

	updated, err := s.api.UpdateProfile(ctx, g.credential, update)
	if err != nil {
		return nil, err
	}
	if err := g.stale(); err != nil {
		return nil, err
	}

	next := update.Apply(current)
	if updated != nil && updated.ID != "" {
		next = *updated
	}
	if err := s.session.UpdateIdentity(ctx, next); err != nil {
		return nil, fmt.Errorf("refresh session identity: %w", err)
	}
	return &next, nil
}
