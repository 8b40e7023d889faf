package storefront

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/99minutos/storefront-console/internal/core/domain"
)

func (c *Client) CreateOrder(ctx context.Context, credential string, order domain.NewOrder) (*domain.Order, error) {
	var out domain.Order
	err := c.do(ctx, call{
		op:         "orders.create",
		method:     http.MethodPost,
		path:       "/orders",
		body:       order,
		credential: credential,
		fallback:   "could not create order",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MyOrders(ctx context.Context, credential string) ([]domain.Order, error) {
	var out []domain.Order
	err := c.do(ctx, call{
		op:         "orders.mine",
		method:     http.MethodGet,
		path:       "/orders/me",
		credential: credential,
		fallback:   "could not load orders",
	}, &out)
	return out, err
}

func (c *Client) CancelOrder(ctx context.Context, credential, orderID string) (*domain.Message, error) {
	var out domain.Message
	err := c.do(ctx, call{
		op:         "orders.cancel",
		method:     http.MethodDelete,
		path:       "/orders/" + escape(orderID),
		credential: credential,
		fallback:   "could not cancel order",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MarkOrderPaid(ctx context.Context, credential, orderID string) error {
	return c.do(ctx, call{
		op:         "orders.pay",
		method:     http.MethodPut,
		path:       "/orders/" + escape(orderID) + "/pay",
		body:       struct{}{},
		credential: credential,
		fallback:   "could not update payment status",
	}, nil)
}

// CreatePaymentLink asks the API for a gateway URL. The API answers either
// with a bare JSON string or with an object carrying the URL.
func (c *Client) CreatePaymentLink(ctx context.Context, credential, orderID string) (string, error) {
	var raw json.RawMessage
	err := c.do(ctx, call{
		op:         "vnpay.create",
		method:     http.MethodPost,
		path:       "/vnpay/create",
		body:       map[string]string{"orderId": orderID},
		credential: credential,
		fallback:   "could not get payment link",
	}, &raw)
	if err != nil {
		return "", err
	}

	link, err := decodePaymentLink(raw)
	if err != nil {
		return "", &domain.APIError{Op: "vnpay.create", Status: http.StatusOK, Message: "could not get payment link", Err: err}
	}
	return link, nil
}

func decodePaymentLink(raw json.RawMessage) (string, error) {
	var s string
	if json.Unmarshal(raw, &s) == nil && s != "" {
		return s, nil
	}
	var obj struct {
		PaymentURL  string `json:"paymentUrl"`
		URL         string `json:"url"`
		PaymentLink string `json:"paymentLink"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return "", fmt.Errorf("unexpected payment link response: %w", err)
	}
	for _, v := range []string{obj.PaymentURL, obj.URL, obj.PaymentLink} {
		if v != "" {
			return v, nil
		}
	}
	return "", fmt.Errorf("payment link response carries no url")
}
