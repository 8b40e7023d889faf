package service

import (
	"context"
	"math"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/99minutos/storefront-console/internal/core/domain"
	"github.com/99minutos/storefront-console/internal/core/ports"
	"github.com/99minutos/storefront-console/internal/metrics"
)

const orderPlacedNote = "order placed, but the session changed meanwhile; check your orders before ordering again"

// CheckoutAPI is the part of the remote API checkout needs.
type CheckoutAPI interface {
	ports.CartAPI
	ports.OrderAPI
}

// CheckoutService places orders, hands out payment links and records
// payment-gateway results. It also serves the customer's order history.
type CheckoutService struct {
	api     CheckoutAPI
	session ports.SessionService
	log     zerolog.Logger
}

func NewCheckoutService(api CheckoutAPI, session ports.SessionService, log zerolog.Logger) *CheckoutService {
	return &CheckoutService{api: api, session: session, log: log}
}

// Checkout builds the order from the buy-now product or the current cart and
// submits it. For VNPay orders a payment link is requested as well; failing to
// get one does not undo the order.
func (s *CheckoutService) Checkout(ctx context.Context, in ports.CheckoutInput) (*ports.CheckoutResult, error) {
	if in.PaymentMethod != domain.PaymentCOD && in.PaymentMethod != domain.PaymentVNPay {
		return nil, domain.NewValidationError("paymentMethod", "must be COD or VNPay")
	}
	if err := in.ShippingAddress.Validate(); err != nil {
		return nil, err
	}

	g, err := begin(ctx, s.session)
	if err != nil {
		return nil, err
	}

	var (
		items         []domain.OrderItem
		shipping, tax float64
	)
	if in.BuyNow != nil {
		if in.BuyNow.ID == "" {
			return nil, domain.NewValidationError("product", "is required")
		}
		items = []domain.OrderItem{{
			Name:     in.BuyNow.Name,
			Quantity: 1,
			Image:    in.BuyNow.Image,
			Price:    in.BuyNow.Price,
			Product:  in.BuyNow.ID,
		}}
	} else {
		cart, err := s.api.GetCart(ctx, g.credential)
		if err != nil {
			return nil, err
		}
		if cart.Empty() {
			return nil, domain.NewValidationError("cart", "is empty")
		}
		items, shipping, tax = cart.OrderItems(), cart.ShippingPrice, cart.TaxPrice
	}

	order := domain.NewOrder{
		OrderItems:      items,
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	summary := domain.Summarize(items, shipping, tax)

	created, err := s.api.CreateOrder(ctx, g.credential, order)
	if err != nil {
		return nil, err
	}
	s.checkTotals(created, summary)

	result := &ports.CheckoutResult{Order: created, Summary: summary}
	if err := g.stale(); err != nil {
		// The order exists upstream; failing here would invite a duplicate.
		s.log.Warn().Str("order_id", orderID(created)).Msg("session changed after order was placed")
		result.Note = orderPlacedNote
		return result, nil
	}
	if in.PaymentMethod == domain.PaymentVNPay && created != nil && created.ID != "" {
		link, err := s.api.CreatePaymentLink(ctx, g.credential, created.ID)
		if err != nil {
			s.log.Warn().Err(err).Str("order_id", created.ID).Msg("order placed without payment link")
		} else {
			result.PaymentLink = link
		}
	}

	s.log.Info().
		Str("order_id", orderID(created)).
		Str("payment_method", in.PaymentMethod).
		Float64("total_price", summary.TotalPrice).
		Msg("order placed")
	return result, nil
}

func (s *CheckoutService) PaymentLink(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", domain.NewValidationError("orderId", "is required")
	}
	g, err := begin(ctx, s.session)
	if err != nil {
		return "", err
	}
	return s.api.CreatePaymentLink(ctx, g.credential, id)
}

// HandlePaymentReturn interprets the gateway redirect. On success the order
// named by vnp_TxnRef is marked paid; if that fails the gateway result is
// still reported as successful, with the failure alongside it.
func (s *CheckoutService) HandlePaymentReturn(ctx context.Context, query url.Values) ports.PaymentOutcome {
	p := domain.ParsePaymentReturn(query)
	out := ports.PaymentOutcome{Payment: p}

	if !p.Success {
		metrics.PaymentReturnsTotal.WithLabelValues("failure").Inc()
		s.log.Info().
			Str("txn_ref", p.TxnRef).
			Str("response_code", p.ResponseCode).
			Str("transaction_status", p.TransactionStatus).
			Msg("payment not approved")
		return out
	}
	metrics.PaymentReturnsTotal.WithLabelValues("success").Inc()

	if p.TxnRef == "" {
		out.UpdateNote = "payment reference missing, order not updated"
		return out
	}
	g, err := begin(ctx, s.session)
	if err != nil {
		out.UpdateNote = err.Error()
		s.log.Warn().Err(err).Str("txn_ref", p.TxnRef).Msg("payment approved but no session to mark order paid")
		return out
	}
	if err := s.api.MarkOrderPaid(ctx, g.credential, p.TxnRef); err != nil {
		out.UpdateNote = err.Error()
		s.log.Error().Err(err).Str("txn_ref", p.TxnRef).Msg("failed to mark order paid")
		return out
	}

	out.OrderPaid = true
	s.log.Info().Str("txn_ref", p.TxnRef).Float64("amount", p.Amount).Msg("order marked paid")
	return out
}

func (s *CheckoutService) MyOrders(ctx context.Context) ([]domain.Order, error) {
	g, err := begin(ctx, s.session)
	if err != nil {
		return nil, err
	}
	orders, err := s.api.MyOrders(ctx, g.credential)
	if err != nil {
		return nil, err
	}
	if err := g.stale(); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *CheckoutService) CancelOrder(ctx context.Context, id string) (*domain.Message, error) {
	if id == "" {
		return nil, domain.NewValidationError("orderId", "is required")
	}
	g, err := begin(ctx, s.session)
	if err != nil {
		return nil, err
	}
	return s.api.CancelOrder(ctx, g.credential, id)
}

func (s *CheckoutService) checkTotals(order *domain.Order, want domain.PriceSummary) {
	if order == nil {
		return
	}
	if math.Abs(order.ItemsPrice-want.ItemsPrice) > 0.5 || math.Abs(order.TotalPrice-want.TotalPrice) > 0.5 {
		metrics.PriceDivergenceTotal.Inc()
		s.log.Warn().
			Str("order_id", order.ID).
			Float64("remote_total_price", order.TotalPrice).
			Float64("total_price", want.TotalPrice).
			Msg("order totals diverge from itemsPrice + shippingPrice + taxPrice")
	}
}

func orderID(o *domain.Order) string {
	if o == nil {
		return ""
	}
	return o.ID
}
