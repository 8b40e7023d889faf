package storefront

import (
	"context"
	"net/http"

	"github.com/99minutos/storefront-console/internal/core/domain"
)

type cartLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// cartResponse is the GET /cart envelope: lines nested under "cart", prices at the top level.
type cartResponse struct {
	Cart struct {
		Items []domain.CartItem `json:"cartItems"`
	} `json:"cart"`
	ItemsPrice    float64 `json:"itemsPrice"`
	ShippingPrice float64 `json:"shippingPrice"`
	TaxPrice      float64 `json:"taxPrice"`
	TotalPrice    float64 `json:"totalPrice"`
}

func (c *Client) GetCart(ctx context.Context, credential string) (*domain.Cart, error) {
	var out cartResponse
	err := c.do(ctx, call{
		op:         "cart.get",
		method:     http.MethodGet,
		path:       "/cart",
		credential: credential,
		fallback:   "could not load cart",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &domain.Cart{
		Items:         out.Cart.Items,
		ItemsPrice:    out.ItemsPrice,
		ShippingPrice: out.ShippingPrice,
		TaxPrice:      out.TaxPrice,
		TotalPrice:    out.TotalPrice,
	}, nil
}

func (c *Client) AddToCart(ctx context.Context, credential, productID string, quantity int) error {
	return c.do(ctx, call{
		op:         "cart.add",
		method:     http.MethodPost,
		path:       "/cart/add",
		body:       cartLine{productID, quantity},
		credential: credential,
		fallback:   "could not add to cart",
	}, nil)
}

func (c *Client) UpdateCartItem(ctx context.Context, credential, productID string, quantity int) error {
	return c.do(ctx, call{
		op:         "cart.update",
		method:     http.MethodPut,
		path:       "/cart/update",
		body:       cartLine{productID, quantity},
		credential: credential,
		fallback:   "could not update cart",
	}, nil)
}

func (c *Client) RemoveFromCart(ctx context.Context, credential, productID string) error {
	return c.do(ctx, call{
		op:         "cart.remove",
		method:     http.MethodDelete,
		path:       "/cart/" + escape(productID),
		credential: credential,
		fallback:   "could not remove item from cart",
	}, nil)
}
