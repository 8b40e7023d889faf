package storefront

import (
	"context"
	"net/http"

	"github.com/99minutos/storefront-console/internal/core/domain"
)

func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	err := c.do(ctx, call{
		op:       "products.list",
		method:   http.MethodGet,
		path:     "/products",
		fallback: "could not load products",
	}, &out)
	return out, err
}

// SearchProducts sends only the filters that are set.
func (c *Client) SearchProducts(ctx context.Context, params domain.ProductSearchParams) ([]domain.Product, error) {
	var out []domain.Product
	err := c.do(ctx, call{
		op:       "products.search",
		method:   http.MethodGet,
		path:     "/products/search",
		query:    params.Values(),
		fallback: "could not search products",
	}, &out)
	return out, err
}

func (c *Client) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var out domain.Product
	err := c.do(ctx, call{
		op:       "products.get",
		method:   http.MethodGet,
		path:     "/products/" + escape(id),
		fallback: "could not load product",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListReviews(ctx context.Context, productID string) ([]domain.Review, error) {
	var out []domain.Review
	err := c.do(ctx, call{
		op:       "products.reviews",
		method:   http.MethodGet,
		path:     "/products/" + escape(productID) + "/reviews",
		fallback: "could not load reviews",
	}, &out)
	return out, err
}

func (c *Client) SubmitReview(ctx context.Context, credential, productID string, rating int, comment string) (*domain.Message, error) {
	var out domain.Message
	err := c.do(ctx, call{
		op:     "products.submit_review",
		method: http.MethodPost,
		path:   "/products/" + escape(productID) + "/reviews",
		body: struct {
			Rating  int    `json:"rating"`
			Comment string `json:"comment"`
		}{rating, comment},
		credential: credential,
		fallback:   "could not submit review",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	err := c.do(ctx, call{
		op:       "categories.list",
		method:   http.MethodGet,
		path:     "/categories",
		fallback: "could not load categories",
	}, &out)
	return out, err
}

func (c *Client) AskChatbot(ctx context.Context, question string) (string, error) {
	var out struct {
		Response string `json:"response"`
	}
	err := c.do(ctx, call{
		op:       "chatbot.ask",
		method:   http.MethodPost,
		path:     "/chatbot",
		body:     map[string]string{"question": question},
		fallback: "chatbot is unavailable",
	}, &out)
	return out.Response, err
}
