package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/99minutos/storefront-console/internal/core/domain"
)

func TestCatalogHandler_Search_ParsesFilters(t *testing.T) {
	e := newEcho()
	h := NewCatalogHandler(&stubCatalog{
		searchFn: func(ctx context.Context, p domain.ProductSearchParams) ([]domain.Product, error) {
			if p.Keyword != "phone" || p.MinPrice == nil || *p.MinPrice != 100 || p.MaxPrice != nil {
				t.Fatalf("unexpected params: %+v", p)
			}
			if p.SortBy != domain.SortPriceLowHigh {
				t.Fatalf("unexpected sort: %q", p.SortBy)
			}
			return []domain.Product{{ID: "p1", Name: "Phone"}}, nil
		},
	})

	c, rec := jsonContext(e, http.MethodGet, "/api/products/search?keyword=phone&minPrice=100&maxPrice=&sortBy=priceLowHigh", "")
	if err := h.Search(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCatalogHandler_Search_RejectsBadFilter(t *testing.T) {
	e := newEcho()
	h := NewCatalogHandler(&stubCatalog{
		searchFn: func(context.Context, domain.ProductSearchParams) ([]domain.Product, error) {
			mustNotCall(t)
			return nil, nil
		},
	})

	c, _ := jsonContext(e, http.MethodGet, "/api/products/search?rating=9", "")
	var ve *domain.ValidationError
	if err := h.Search(c); !errors.As(err, &ve) || ve.Field != "rating" {
		t.Fatalf("expected rating validation error, got %v", err)
	}
}

func TestCatalogHandler_SubmitReview(t *testing.T) {
	e := newEcho()
	h := NewCatalogHandler(&stubCatalog{
		reviewFn: func(ctx context.Context, productID string, rating int, comment string) (*domain.Message, error) {
			if productID != "p1" || rating != 4 || comment != "solid" {
				t.Fatalf("unexpected args: %s %d %s", productID, rating, comment)
			}
			return &domain.Message{Message: "Review added"}, nil
		},
	})

	c, rec := jsonContext(e, http.MethodPost, "/api/products/p1/reviews", `{"rating":4,"comment":"solid"}`)
	c.SetParamNames("id")
	c.SetParamValues("p1")
	if err := h.SubmitReview(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	c, _ = jsonContext(e, http.MethodPost, "/api/products/p1/reviews", `{"rating":6,"comment":"solid"}`)
	expectHTTPError(t, h.SubmitReview(c), http.StatusBadRequest)
}
