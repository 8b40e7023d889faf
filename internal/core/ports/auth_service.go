package ports

import (
	"context"

	"github.com/99minutos/storefront-console/internal/core/domain"
)

// AuthService drives login, logout and self-service account flows.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*domain.Identity, error)
	Logout(ctx context.Context) error
	Register(ctx context.Context, reg domain.Registration) (*domain.Identity, error)
	ForgotPassword(ctx context.Context, email string) (*domain.Message, error)
	ResetPassword(ctx context.Context, resetToken, newPassword string) (*domain.Message, error)
	ChangePassword(ctx context.Context, oldPassword, newPassword string) (*domain.Message, error)
	UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.Identity, error)
}
