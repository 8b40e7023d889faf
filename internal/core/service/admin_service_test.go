package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/99minutos/storefront-console/internal/core/domain"
)

func TestAdminService_RejectsNonAdmin(t *testing.T) {
	s, _ := loggedIn(t, customer)
	svc := NewAdminService(&stubAPI{}, s, zerolog.Nop())

	if _, err := svc.Users(context.Background()); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.CreateCategory(context.Background(), "Toys"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestAdminService_RejectsAnonymous(t *testing.T) {
	s, _ := newTestSession()
	svc := NewAdminService(&stubAPI{}, s, zerolog.Nop())

	if _, err := svc.Orders(context.Background()); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestAdminService_CreateCategory(t *testing.T) {
	s, tok := loggedIn(t, admin)
	api := &stubAPI{createCategoryFn: func(_ context.Context, credential, name string) (*domain.Category, error) {
		if credential != tok || name != "Toys" {
			t.Fatalf("unexpected args %s %s", credential, name)
		}
		return &domain.Category{ID: "c1", Name: name}, nil
	}}
	svc := NewAdminService(api, s, zerolog.Nop())

	c, err := svc.CreateCategory(context.Background(), "  Toys ")
	if err != nil || c.ID != "c1" {
		t.Fatalf("unexpected result %+v, %v", c, err)
	}

	var vErr *domain.ValidationError
	if _, err := svc.CreateCategory(context.Background(), "   "); !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAdminService_UpdateProduct_UploadsImageFirst(t *testing.T) {
	s, _ := loggedIn(t, admin)
	uploaded := false
	api := &stubAPI{
		uploadImageFn: func(_ context.Context, _ string, img domain.ImageUpload) (string, error) {
			if img.Filename != "new.png" {
				t.Fatalf("unexpected image %s", img.Filename)
			}
			uploaded = true
			return "/uploads/new.png", nil
		},
		updateProductFn: func(_ context.Context, _ string, id string, in domain.ProductInput) (*domain.Product, error) {
			if !uploaded {
				t.Fatalf("product updated before image upload")
			}
			if id != "p1" || in.Image != "/uploads/new.png" {
				t.Fatalf("unexpected update %s %+v", id, in)
			}
			return &domain.Product{ID: id, Image: in.Image}, nil
		},
	}
	svc := NewAdminService(api, s, zerolog.Nop())

	in := domain.ProductInput{Name: "Lamp", Category: "home", Price: 10, Image: "/uploads/old.png"}
	p, err := svc.UpdateProduct(context.Background(), "p1", in, &domain.ImageUpload{Filename: "new.png", Data: []byte("x")})
	if err != nil || p.Image != "/uploads/new.png" {
		t.Fatalf("unexpected result %+v, %v", p, err)
	}
}

func TestAdminService_UpdateOrderStatus(t *testing.T) {
	s, _ := loggedIn(t, admin)
	api := &stubAPI{orderStatusFn: func(_ context.Context, _ string, orderID string, a domain.AdminOrderAction) error {
		if orderID != "o1" || a != domain.ActionShip {
			t.Fatalf("unexpected args %s %s", orderID, a)
		}
		return nil
	}}
	svc := NewAdminService(api, s, zerolog.Nop())

	status, err := svc.UpdateOrderStatus(context.Background(), "o1", domain.ActionShip)
	if err != nil || status != domain.OrderShipping {
		t.Fatalf("unexpected result %s, %v", status, err)
	}

	var vErr *domain.ValidationError
	if _, err := svc.UpdateOrderStatus(context.Background(), "o1", "refund"); !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAdminService_Users_ForbiddenByRemote(t *testing.T) {
	s, _ := loggedIn(t, admin)
	api := &stubAPI{listUsersFn: func(context.Context, string) ([]domain.Identity, error) {
		return nil, &domain.APIError{Op: "users.list", Status: 403, Message: "Not authorized as admin"}
	}}
	svc := NewAdminService(api, s, zerolog.Nop())

	if _, err := svc.Users(context.Background()); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
