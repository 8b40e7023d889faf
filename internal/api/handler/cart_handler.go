package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/storefront-console/internal/core/ports"
)

// CartHandler serves the caller's cart.
type CartHandler struct {
	cart ports.CartService
}

func NewCartHandler(cart ports.CartService) *CartHandler {
	return &CartHandler{cart: cart}
}

type addToCartRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

type cartCountResponse struct {
	Count int `json:"count"`
}

// Get returns the cart with canonical totals.
//
// @Summary      Get cart
// @Tags         cart
// @Produce      json
// @Success      200  {object}  domain.Cart
// @Failure      401  {object}  map[string]string
// @Router       /api/cart [get]
func (h *CartHandler) Get(c echo.Context) error {
	cart, err := h.cart.Get(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cart)
}

// Count returns the number of units in the cart. Anonymous callers get 0.
//
// @Summary      Cart item count
// @Tags         cart
// @Produce      json
// @Success      200  {object}  cartCountResponse
// @Router       /api/cart/count [get]
func (h *CartHandler) Count(c echo.Context) error {
	n, err := h.cart.ItemCount(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cartCountResponse{Count: n})
}

// Add puts a product in the cart.
//
// @Summary      Add to cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body      addToCartRequest  true  "Product and quantity"
// @Success      200   {object}  domain.Cart
// @Failure      400   {object}  map[string]string
// @Router       /api/cart/items [post]
func (h *CartHandler) Add(c echo.Context) error {
	var req addToCartRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	cart, err := h.cart.Add(c.Request().Context(), req.ProductID, req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cart)
}

// UpdateQuantity sets the quantity of a cart line.
//
// @Summary      Update cart line
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        productId  path      string                 true  "Product id"
// @Param        body       body      updateQuantityRequest  true  "New quantity"
// @Success      200        {object}  domain.Cart
// @Router       /api/cart/items/{productId} [put]
func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	var req updateQuantityRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	cart, err := h.cart.UpdateQuantity(c.Request().Context(), c.Param("productId"), req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cart)
}

// Remove deletes a cart line.
//
// @Summary      Remove cart line
// @Tags         cart
// @Produce      json
// @Param        productId  path      string  true  "Product id"
// @Success      200        {object}  domain.Cart
// @Router       /api/cart/items/{productId} [delete]
func (h *CartHandler) Remove(c echo.Context) error {
	cart, err := h.cart.Remove(c.Request().Context(), c.Param("productId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cart)
}
