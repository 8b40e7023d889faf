package storefront

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/99minutos/storefront-console/internal/core/domain"
)

// CreateProduct posts the product as multipart so the image travels with it.
func (c *Client) CreateProduct(ctx context.Context, credential string, in domain.ProductInput, image *domain.ImageUpload) (*domain.Product, error) {
	form := &multipartForm{fields: map[string]string{
		"name":         in.Name,
		"price":        strconv.FormatFloat(in.Price, 'f', -1, 64),
		"description":  in.Description,
		"category":     in.Category,
		"rating":       strconv.FormatFloat(in.Rating, 'f', -1, 64),
		"countInStock": strconv.Itoa(in.CountInStock),
	}}
	if image != nil {
		form.files = map[string]domain.ImageUpload{"image": *image}
	}

	var out domain.Product
	err := c.do(ctx, call{
		op:         "products.create",
		method:     http.MethodPost,
		path:       "/products",
		form:       form,
		credential: credential,
		fallback:   "could not create product",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, credential, id string, in domain.ProductInput) (*domain.Product, error) {
	var out domain.Product
	err := c.do(ctx, call{
		op:         "products.update",
		method:     http.MethodPut,
		path:       "/products/" + escape(id),
		body:       in,
		credential: credential,
		fallback:   "could not update product",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, credential, id string) (*domain.Message, error) {
	var out domain.Message
	err := c.do(ctx, call{
		op:         "products.delete",
		method:     http.MethodDelete,
		path:       "/products/" + escape(id),
		credential: credential,
		fallback:   "could not delete product",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadImage stores an image and returns its public URL.
func (c *Client) UploadImage(ctx context.Context, credential string, image domain.ImageUpload) (string, error) {
	var out struct {
		ImageURL string `json:"imageUrl"`
	}
	err := c.do(ctx, call{
		op:         "upload.image",
		method:     http.MethodPost,
		path:       "/upload",
		form:       &multipartForm{files: map[string]domain.ImageUpload{"image": image}},
		credential: credential,
		fallback:   "could not upload image",
	}, &out)
	if err != nil {
		return "", err
	}
	if out.ImageURL == "" {
		return "", &domain.APIError{Op: "upload.image", Status: http.StatusOK, Message: "upload response carries no imageUrl"}
	}
	return out.ImageURL, nil
}

func (c *Client) CreateCategory(ctx context.Context, credential, name string) (*domain.Category, error) {
	var out domain.Category
	err := c.do(ctx, call{
		op:         "categories.create",
		method:     http.MethodPost,
		path:       "/categories",
		body:       map[string]string{"name": name},
		credential: credential,
		fallback:   "could not create category",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCategory(ctx context.Context, credential, id, name string) (*domain.Category, error) {
	var out domain.Category
	err := c.do(ctx, call{
		op:         "categories.update",
		method:     http.MethodPut,
		path:       "/categories/" + escape(id),
		body:       map[string]string{"name": name},
		credential: credential,
		fallback:   "could not update category",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCategory(ctx context.Context, credential, id string) (*domain.Message, error) {
	var out domain.Message
	err := c.do(ctx, call{
		op:         "categories.delete",
		method:     http.MethodDelete,
		path:       "/categories/" + escape(id),
		credential: credential,
		fallback:   "could not delete category",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListUsers(ctx context.Context, credential string) ([]domain.Identity, error) {
	var out []domain.Identity
	err := c.do(ctx, call{
		op:         "users.list",
		method:     http.MethodGet,
		path:       "/users",
		credential: credential,
		fallback:   "could not load users",
	}, &out)
	return out, err
}

func (c *Client) GetUser(ctx context.Context, credential, id string) (*domain.Identity, error) {
	var out domain.Identity
	err := c.do(ctx, call{
		op:         "users.get",
		method:     http.MethodGet,
		path:       "/users/" + escape(id),
		credential: credential,
		fallback:   "could not load user",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateUser(ctx context.Context, credential, id string, update domain.UserUpdate) (*domain.Identity, error) {
	var out domain.Identity
	err := c.do(ctx, call{
		op:         "users.update",
		method:     http.MethodPut,
		path:       "/users/" + escape(id),
		body:       update,
		credential: credential,
		fallback:   "could not update user",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteUser(ctx context.Context, credential, id string) (*domain.Message, error) {
	var out domain.Message
	err := c.do(ctx, call{
		op:         "users.delete",
		method:     http.MethodDelete,
		path:       "/users/" + escape(id),
		credential: credential,
		fallback:   "could not delete user",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListOrders(ctx context.Context, credential string) ([]domain.Order, error) {
	var out []domain.Order
	err := c.do(ctx, call{
		op:         "orders.list",
		method:     http.MethodGet,
		path:       "/orders",
		credential: credential,
		fallback:   "could not load orders",
	}, &out)
	return out, err
}

func (c *Client) UpdateOrderStatus(ctx context.Context, credential, orderID string, action domain.AdminOrderAction) error {
	if _, ok := action.ResultingStatus(); !ok {
		return domain.NewValidationError("action", fmt.Sprintf("unknown order action %q", action))
	}
	return c.do(ctx, call{
		op:         "orders." + string(action),
		method:     http.MethodPut,
		path:       "/orders/" + escape(orderID) + "/" + string(action),
		body:       struct{}{},
		credential: credential,
		fallback:   "could not update order status",
	}, nil)
}
