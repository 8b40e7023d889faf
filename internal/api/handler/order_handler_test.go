package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/99minutos/storefront-console/internal/core/domain"
	"github.com/99minutos/storefront-console/internal/core/ports"
)

const addressJSON = `{"fullname":"Ada","phone":"555","address":"1 Main St","city":"Hanoi","country":"VN"}`

func TestOrderHandler_Checkout_FromCart(t *testing.T) {
	e := newEcho()
	h := NewOrderHandler(&stubCheckout{
		checkoutFn: func(ctx context.Context, in ports.CheckoutInput) (*ports.CheckoutResult, error) {
			if in.BuyNow != nil {
				t.Fatalf("expected cart checkout")
			}
			if in.PaymentMethod != domain.PaymentCOD || in.ShippingAddress.City != "Hanoi" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.CheckoutResult{Order: &domain.Order{ID: "o1"}}, nil
		},
	}, &stubCatalog{})

	c, rec := jsonContext(e, http.MethodPost, "/api/orders", `{"shippingAddress":`+addressJSON+`,"paymentMethod":"COD"}`)
	if err := h.Checkout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestOrderHandler_Checkout_BuyNowLoadsProduct(t *testing.T) {
	e := newEcho()
	h := NewOrderHandler(&stubCheckout{
		checkoutFn: func(ctx context.Context, in ports.CheckoutInput) (*ports.CheckoutResult, error) {
			if in.BuyNow == nil || in.BuyNow.ID != "p3" {
				t.Fatalf("expected buy-now product p3, got %+v", in.BuyNow)
			}
			return &ports.CheckoutResult{Order: &domain.Order{ID: "o2"}, PaymentLink: "https://pay.example/o2"}, nil
		},
	}, &stubCatalog{
		productFn: func(ctx context.Context, id string) (*domain.Product, error) {
			return &domain.Product{ID: id, Price: 10}, nil
		},
	})

	c, rec := jsonContext(e, http.MethodPost, "/api/orders",
		`{"buyNow":"p3","shippingAddress":`+addressJSON+`,"paymentMethod":"VNPay"}`)
	if err := h.Checkout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp ports.CheckoutResult
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.PaymentLink != "https://pay.example/o2" {
		t.Fatalf("unexpected payment link: %q", resp.PaymentLink)
	}
}

func TestOrderHandler_Checkout_Validation(t *testing.T) {
	e := newEcho()
	h := NewOrderHandler(&stubCheckout{}, &stubCatalog{})

	cases := map[string]string{
		"bad method":      `{"shippingAddress":` + addressJSON + `,"paymentMethod":"Cash"}`,
		"missing address": `{"shippingAddress":{"fullname":"Ada"},"paymentMethod":"COD"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			c, _ := jsonContext(e, http.MethodPost, "/api/orders", body)
			expectHTTPError(t, h.Checkout(c), http.StatusBadRequest)
		})
	}
}

func TestOrderHandler_PaymentResult_AlwaysOK(t *testing.T) {
	e := newEcho()
	h := NewOrderHandler(&stubCheckout{
		returnFn: func(ctx context.Context, q url.Values) ports.PaymentOutcome {
			if q.Get("vnp_TxnRef") != "o1" {
				t.Fatalf("query not forwarded: %v", q)
			}
			return ports.PaymentOutcome{
				Payment:    domain.PaymentReturn{TxnRef: "o1", Success: true},
				UpdateNote: "remote api unavailable",
			}
		},
	}, &stubCatalog{})

	c, rec := jsonContext(e, http.MethodGet, "/payment-result?vnp_TxnRef=o1&vnp_ResponseCode=00&vnp_TransactionStatus=00", "")
	if err := h.PaymentResult(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp ports.PaymentOutcome
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Payment.Success || resp.OrderPaid || resp.UpdateNote == "" {
		t.Fatalf("unexpected outcome: %+v", resp)
	}
}
