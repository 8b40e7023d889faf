package storefront

import (
	"context"
	"net/http"

	"github.com/99minutos/storefront-console/internal/core/domain"
)

// Login exchanges email and password for an access token. No credential is
// sent, so a 401 here is a wrong password and never reaches the unauthorized handler.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	var out domain.LoginResult
	err := c.do(ctx, call{
		op:       "users.login",
		method:   http.MethodPost,
		path:     "/users/login",
		body:     map[string]string{"email": email, "password": password},
		fallback: "login failed",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, reg domain.Registration) (*domain.Identity, error) {
	var out domain.Identity
	err := c.do(ctx, call{
		op:       "users.register",
		method:   http.MethodPost,
		path:     "/users/register",
		body:     reg,
		fallback: "registration failed",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ForgotPassword(ctx context.Context, email string) (*domain.Message, error) {
	var out domain.Message
	err := c.do(ctx, call{
		op:       "users.forgot_password",
		method:   http.MethodPost,
		path:     "/users/forgot-password",
		body:     map[string]string{"email": email},
		fallback: "could not send password reset request",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ResetPassword(ctx context.Context, resetToken, newPassword string) (*domain.Message, error) {
	var out domain.Message
	err := c.do(ctx, call{
		op:       "users.reset_password",
		method:   http.MethodPost,
		path:     "/users/reset-password/" + escape(resetToken),
		body:     map[string]string{"password": newPassword},
		fallback: "could not reset password",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePassword(ctx context.Context, credential, oldPassword, newPassword string) (*domain.Message, error) {
	var out domain.Message
	err := c.do(ctx, call{
		op:         "users.update_password",
		method:     http.MethodPut,
		path:       "/users/update-password",
		body:       map[string]string{"oldPassword": oldPassword, "newPassword": newPassword},
		credential: credential,
		fallback:   "could not update password",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProfile(ctx context.Context, credential string, update domain.ProfileUpdate) (*domain.Identity, error) {
	var out domain.Identity
	err := c.do(ctx, call{
		op:         "users.update_profile",
		method:     http.MethodPut,
		path:       "/users/profile",
		body:       update,
		credential: credential,
		fallback:   "could not update profile",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
