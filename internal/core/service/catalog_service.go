package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/99minutos/storefront-console/internal/core/domain"
	"github.com/99minutos/storefront-console/internal/core/ports"
)

// CatalogService serves the public catalog. Only reviews need a session.
type CatalogService struct {
	api     ports.CatalogAPI
	session ports.SessionService
	log     zerolog.Logger
}

func NewCatalogService(api ports.CatalogAPI, session ports.SessionService, log zerolog.Logger) *CatalogService {
	return &CatalogService{api: api, session: session, log: log}
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.api.ListProducts(ctx)
}

func (s *CatalogService) Search(ctx context.Context, params domain.ProductSearchParams) ([]domain.Product, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.api.SearchProducts(ctx, params)
}

func (s *CatalogService) Product(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, domain.NewValidationError("id", "is required")
	}
	return s.api.GetProduct(ctx, id)
}

func (s *CatalogService) Reviews(ctx context.Context, productID string) ([]domain.Review, error) {
	if productID == "" {
		return nil, domain.NewValidationError("productId", "is required")
	}
	return s.api.ListReviews(ctx, productID)
}

func (s *CatalogService) SubmitReview(ctx context.Context, productID string, rating int, comment string) (*domain.Message, error) {
	if productID == "" {
		return nil, domain.NewValidationError("productId", "is required")
	}
	if rating < 1 || rating > 5 {
		return nil, domain.NewValidationError("rating", "must be between 1 and 5")
	}
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return nil, domain.NewValidationError("comment", "is required")
	}

	g, err := begin(ctx, s.session)
	if err != nil {
		return nil, err
	}
	return s.api.SubmitReview(ctx, g.credential, productID, rating, comment)
}

func (s *CatalogService) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.api.ListCategories(ctx)
}

func (s *CatalogService) AskChatbot(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", domain.NewValidationError("question", "is required")
	}
	return s.api.AskChatbot(ctx, question)
}
