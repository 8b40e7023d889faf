package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/99minutos/storefront-console/internal/core/domain"
	"github.com/99minutos/storefront-console/internal/core/ports"
)

// AdminService is the back-office. Every method fails with ErrForbidden
// unless the logged-in identity is an administrator.
type AdminService struct {
	api     ports.AdminAPI
	session ports.SessionService
	log     zerolog.Logger
}

func NewAdminService(api ports.AdminAPI, session ports.SessionService, log zerolog.Logger) *AdminService {
	return &AdminService{api: api, session: session, log: log}
}

func (s *AdminService) CreateProduct(ctx context.Context, in domain.ProductInput, image *domain.ImageUpload) (*domain.Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	g, err := beginAdmin(ctx, s.session)
	if err != nil {
		return nil, err
	}
	p, err := s.api.CreateProduct(ctx, g.credential, in, image)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("product_id", p.ID).Msg("product created")
	return p, nil
}

// UpdateProduct uploads a replacement image first, when given, and points
// the product at the returned URL.
func (s *AdminService) UpdateProduct(ctx context.Context, id string, in domain.ProductInput, image *domain.ImageUpload) (*domain.Product, error) {
	if id == "" {
		return nil, domain.NewValidationError("id", "is required")
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	g, err := beginAdmin(ctx, s.session)
	if err != nil {
		return nil, err
	}
	if image != nil {
		imageURL, err := s.api.UploadImage(ctx, g.credential, *image)
		if err != nil {
			return nil, err
		}
		in.Image = imageURL
	}
	return s.api.UpdateProduct(ctx, g.credential, id, in)
}

func (s *AdminService) DeleteProduct(ctx context.Context, id string) (*domain.Message, error) {
	if id == "" {
		return nil, domain.NewValidationError("id", "is required")
	}
	g, err := beginAdmin(ctx, s.session)
	if err != nil {
		return nil, err
	}
	return s.api.DeleteProduct(ctx, g.credential, id)
}

func (s *AdminService) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("name", "is required")
	}
	g, err := beginAdmin(ctx, s.session)
	if err != nil {
		return nil, err
	}
	return s.api.CreateCategory(ctx, g.credential, name)
}

func (s *AdminService) UpdateCategory(ctx context.Context, id, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if id == "" {
		return nil, domain.NewValidationError("id", "is required")
	}
	if name == "" {
		return nil, domain.NewValidationError("name", "is required")
	}
	g, err := beginAdmin(ctx, s.session)
	if err != nil {
		return nil, err
	}
	return s.api.UpdateCategory(ctx, g.credential, id, name)
}

func (s *AdminService) DeleteCategory(ctx context.Context, id string) (*domain.Message, error) {
	if id == "" {
		return nil, domain.NewValidationError("id", "is required")
	}
	g, err := beginAdmin(ctx, s.session)
	if err != nil {
		return nil, err
	}
	return s.api.DeleteCategory(ctx, g.credential, id)
}

func (s *AdminService) Users(ctx context.Context) ([]domain.Identity, error) {
	g, err := beginAdmin(ctx, s.session)
	if err != nil {
		return nil, err
	}
	users, err := s.api.ListUsers(ctx, g.credential)
	if err != nil {
		return nil, err
	}
	if err := g.stale(); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *AdminService) User(ctx context.Context, id string) (*domain.Identity, error) {
	if id == "" {
		return nil, domain.NewValidationError("id", "is required")
	}
	g, err := beginAdmin(ctx, s.session)
	if err != nil {
		return nil, err
	}
	u, err := s.api.GetUser(ctx, g.credential, id)
	if err != nil {
		return nil, err
	}
	if err := g.stale(); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AdminService) UpdateUser(ctx context.Context, id string, update domain.UserUpdate) (*domain.Identity, error) {
	if id == "" {
		return nil, domain.NewValidationError("id", "is required")
	}
	if strings.TrimSpace(update.Name) == "" {
		return nil, domain.NewValidationError("name", "is required")
	}
	g, err := beginAdmin(ctx, s.session)
	if err != nil {
		return nil, err
	}
	return s.api.UpdateUser(ctx, g.credential, id, update)
}

func (s *AdminService) DeleteUser(ctx context.Context, id string) (*domain.Message, error) {
	if id == "" {
		return nil, domain.NewValidationError("id", "is required")
	}
	g, err := beginAdmin(ctx, s.session)
	if err != nil {
		return nil, err
	}
	return s.api.DeleteUser(ctx, g.credential, id)
}

func (s *AdminService) Orders(ctx context.Context) ([]domain.Order, error) {
	g, err := beginAdmin(ctx, s.session)
	if err != nil {
		return nil, err
	}
	orders, err := s.api.ListOrders(ctx, g.credential)
	if err != nil {
		return nil, err
	}
	if err := g.stale(); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus applies confirm, cancel or ship and returns the status
// the order now has.
func (s *AdminService) UpdateOrderStatus(ctx context.Context, orderID string, action domain.AdminOrderAction) (domain.OrderStatus, error) {
	if orderID == "" {
		return "", domain.NewValidationError("orderId", "is required")
	}
	status, ok := action.ResultingStatus()
	if !ok {
		return "", domain.NewValidationError("action", "must be confirm, cancel or ship")
	}
	g, err := beginAdmin(ctx, s.session)
	if err != nil {
		return "", err
	}
	if err := s.api.UpdateOrderStatus(ctx, g.credential, orderID, action); err != nil {
		return "", err
	}
	s.log.Info().Str("order_id", orderID).Str("status", string(status)).Msg("order status updated")
	return status, nil
}
