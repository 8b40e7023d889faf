package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/storefront-console/internal/core/domain"
	"github.com/99minutos/storefront-console/internal/core/ports"
)

// OrderHandler serves checkout, the customer's orders and the payment return.
type OrderHandler struct {
	checkout ports.CheckoutService
	catalog  ports.CatalogService
}

func NewOrderHandler(checkout ports.CheckoutService, catalog ports.CatalogService) *OrderHandler {
	return &OrderHandler{checkout: checkout, catalog: catalog}
}

type shippingAddressRequest struct {
	FullName string `json:"fullname" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Address  string `json:"address" validate:"required"`
	City     string `json:"city" validate:"required"`
	Country  string `json:"country" validate:"required"`
}

type checkoutRequest struct {
	// BuyNow, when set, orders that single product instead of the cart.
	BuyNow          string                 `json:"buyNow"`
	ShippingAddress shippingAddressRequest `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod" validate:"required,oneof=COD VNPay"`
}

type paymentLinkResponse struct {
	PaymentLink string `json:"paymentLink"`
}

// Checkout places an order from the cart or a buy-now product.
//
// @Summary      Place order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body      checkoutRequest  true  "Address and payment method"
// @Success      201   {object}  ports.CheckoutResult
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/orders [post]
func (h *OrderHandler) Checkout(c echo.Context) error {
	var req checkoutRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()

	in := ports.CheckoutInput{
		ShippingAddress: domain.ShippingAddress{
			FullName: req.ShippingAddress.FullName,
			Phone:    req.ShippingAddress.Phone,
			Address:  req.ShippingAddress.Address,
			City:     req.ShippingAddress.City,
			Country:  req.ShippingAddress.Country,
		},
		PaymentMethod: req.PaymentMethod,
	}
	if req.BuyNow != "" {
		product, err := h.catalog.Product(ctx, req.BuyNow)
		if err != nil {
			return err
		}
		in.BuyNow = product
	}

	result, err := h.checkout.Checkout(ctx, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, result)
}

// Mine lists the caller's orders.
//
// @Summary      My orders
// @Tags         orders
// @Produce      json
// @Success      200  {array}   domain.Order
// @Failure      401  {object}  map[string]string
// @Router       /api/orders/mine [get]
func (h *OrderHandler) Mine(c echo.Context) error {
	orders, err := h.checkout.MyOrders(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// Cancel cancels one of the caller's unpaid orders.
//
// @Summary      Cancel order
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  domain.Message
// @Router       /api/orders/{id} [delete]
func (h *OrderHandler) Cancel(c echo.Context) error {
	msg, err := h.checkout.CancelOrder(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, msg)
}

// PaymentLink asks for a fresh gateway link for an order.
//
// @Summary      Payment link
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  paymentLinkResponse
// @Router       /api/orders/{id}/payment-link [post]
func (h *OrderHandler) PaymentLink(c echo.Context) error {
	link, err := h.checkout.PaymentLink(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, paymentLinkResponse{PaymentLink: link})
}

// PaymentResult is where the gateway sends the buyer back. It always
// answers 200; the body says whether the payment went through.
//
// @Summary      Payment gateway return
// @Tags         orders
// @Produce      json
// @Param        vnp_TxnRef             query     string  false  "Order id"
// @Param        vnp_ResponseCode       query     string  false  "Gateway response code"
// @Param        vnp_TransactionStatus  query     string  false  "Gateway transaction status"
// @Success      200                    {object}  ports.PaymentOutcome
// @Router       /payment-result [get]
func (h *OrderHandler) PaymentResult(c echo.Context) error {
	outcome := h.checkout.HandlePaymentReturn(c.Request().Context(), c.QueryParams())
	return c.JSON(http.StatusOK, outcome)
}
