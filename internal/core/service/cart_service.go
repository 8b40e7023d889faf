package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/99minutos/storefront-console/internal/core/domain"
	"github.com/99minutos/storefront-console/internal/core/ports"
	"github.com/99minutos/storefront-console/internal/metrics"
)

// CartService manages the caller's server-side cart. Mutations return the
// cart as the API holds it afterwards.
type CartService struct {
	api     ports.CartAPI
	session ports.SessionService
	log     zerolog.Logger
}

func NewCartService(api ports.CartAPI, session ports.SessionService, log zerolog.Logger) *CartService {
	return &CartService{api: api, session: session, log: log}
}

func (s *CartService) Get(ctx context.Context) (*domain.Cart, error) {
	g, err := begin(ctx, s.session)
	if err != nil {
		return nil, err
	}
	return s.fetch(ctx, g)
}

// ItemCount is the total number of units in the cart, 0 when nobody is logged
// in or the credential has just expired.
func (s *CartService) ItemCount(ctx context.Context) (int, error) {
	cart, err := s.Get(ctx)
	if errors.Is(err, domain.ErrNotAuthenticated) || errors.Is(err, domain.ErrSessionExpired) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return cart.ItemCount(), nil
}

func (s *CartService) Add(ctx context.Context, productID string, quantity int) (*domain.Cart, error) {
	if err := validateLine(productID, quantity); err != nil {
		return nil, err
	}
	g, err := begin(ctx, s.session)
	if err != nil {
		return nil, err
	}
	if err := s.api.AddToCart(ctx, g.credential, productID, quantity); err != nil {
		return nil, err
	}
	return s.fetch(ctx, g)
}

func (s *CartService) UpdateQuantity(ctx context.Context, productID string, quantity int) (*domain.Cart, error) {
	if err := validateLine(productID, quantity); err != nil {
		return nil, err
	}
	g, err := begin(ctx, s.session)
	if err != nil {
		return nil, err
	}
	if err := s.api.UpdateCartItem(ctx, g.credential, productID, quantity); err != nil {
		return nil, err
	}
	return s.fetch(ctx, g)
}

func (s *CartService) Remove(ctx context.Context, productID string) (*domain.Cart, error) {
	if productID == "" {
		return nil, domain.NewValidationError("productId", "is required")
	}
	g, err := begin(ctx, s.session)
	if err != nil {
		return nil, err
	}
	if err := s.api.RemoveFromCart(ctx, g.credential, productID); err != nil {
		return nil, err
	}
	return s.fetch(ctx, g)
}

// fetch loads the cart and replaces the API's item and total prices with the
// canonical ones. A disagreement is logged as a pricing defect.
func (s *CartService) fetch(ctx context.Context, g callGuard) (*domain.Cart, error) {
	cart, err := s.api.GetCart(ctx, g.credential)
	if err != nil {
		return nil, err
	}
	if err := g.stale(); err != nil {
		return nil, err
	}
	if cart == nil {
		cart = &domain.Cart{}
	}

	sum := cart.Summary()
	if cart.Diverges() {
		metrics.PriceDivergenceTotal.Inc()
		s.log.Warn().
			Float64("remote_items_price", cart.ItemsPrice).
			Float64("remote_total_price", cart.TotalPrice).
			Float64("items_price", sum.ItemsPrice).
			Float64("total_price", sum.TotalPrice).
			Msg("cart totals diverge from itemsPrice + shippingPrice + taxPrice")
	}
	cart.ItemsPrice, cart.TotalPrice = sum.ItemsPrice, sum.TotalPrice
	return cart, nil
}

func validateLine(productID string, quantity int) error {
	if productID == "" {
		return domain.NewValidationError("productId", "is required")
	}
	if quantity < 1 {
		return domain.NewValidationError("quantity", "must be at least 1")
	}
	return nil
}
