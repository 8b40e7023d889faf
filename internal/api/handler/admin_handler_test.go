package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/storefront-console/internal/core/domain"
)

func multipartContext(t *testing.T, e *echo.Echo, fields map[string]string, image []byte) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if image != nil {
		part, err := w.CreateFormFile("image", "shoe.png")
		if err != nil {
			t.Fatalf("create file: %v", err)
		}
		_, _ = part.Write(image)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/admin/products", buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAdminHandler_CreateProduct_Multipart(t *testing.T) {
	e := newEcho()
	h := NewAdminHandler(&stubAdmin{
		createProductFn: func(ctx context.Context, in domain.ProductInput, image *domain.ImageUpload) (*domain.Product, error) {
			if in.Name != "Shoe" || in.Price != 49.5 || in.CountInStock != 3 || in.Category != "c1" {
				t.Fatalf("unexpected input: %+v", in)
			}
			if image == nil || image.Filename != "shoe.png" || string(image.Data) != "png-bytes" {
				t.Fatalf("unexpected image: %+v", image)
			}
			return &domain.Product{ID: "p1", Name: in.Name}, nil
		},
	})

	c, rec := multipartContext(t, e, map[string]string{
		"name": "Shoe", "price": "49.5", "countInStock": "3", "category": "c1",
	}, []byte("png-bytes"))
	if err := h.CreateProduct(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestAdminHandler_CreateProduct_WithoutImage(t *testing.T) {
	e := newEcho()
	h := NewAdminHandler(&stubAdmin{
		createProductFn: func(ctx context.Context, in domain.ProductInput, image *domain.ImageUpload) (*domain.Product, error) {
			if image != nil {
				t.Fatalf("expected no image")
			}
			return &domain.Product{ID: "p2"}, nil
		},
	})

	c, _ := multipartContext(t, e, map[string]string{"name": "Hat", "price": "5", "category": "c1"}, nil)
	if err := h.CreateProduct(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestAdminHandler_CreateProduct_BadPrice(t *testing.T) {
	e := newEcho()
	h := NewAdminHandler(&stubAdmin{})

	c, _ := multipartContext(t, e, map[string]string{"name": "Hat", "price": "cheap"}, nil)
	expectHTTPError(t, h.CreateProduct(c), http.StatusBadRequest)
}

func TestAdminHandler_UpdateOrderStatus(t *testing.T) {
	e := newEcho()
	h := NewAdminHandler(&stubAdmin{
		orderStatusFn: func(ctx context.Context, id string, action domain.AdminOrderAction) (domain.OrderStatus, error) {
			if id != "o1" || action != domain.ActionShip {
				t.Fatalf("unexpected args: %s %s", id, action)
			}
			return domain.OrderShipping, nil
		},
	})

	c, rec := jsonContext(e, http.MethodPut, "/api/admin/orders/o1/ship", "")
	c.SetParamNames("id", "action")
	c.SetParamValues("o1", "ship")
	if err := h.UpdateOrderStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp orderStatusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Status != domain.OrderShipping {
		t.Fatalf("expected shipping, got %q", resp.Status)
	}
}
