package handler

import (
	"context"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/storefront-console/internal/core/domain"
	"github.com/99minutos/storefront-console/internal/core/ports"
)

// Each stub embeds its interface; calling a method without a fn panics,
// which flags an unexpected call.

type stubAuth struct {
	ports.AuthService
	loginFn         func(ctx context.Context, email, password string) (*domain.Identity, error)
	logoutFn        func(ctx context.Context) error
	registerFn      func(ctx context.Context, reg domain.Registration) (*domain.Identity, error)
	updateProfileFn func(ctx context.Context, update domain.ProfileUpdate) (*domain.Identity, error)
}

func (s *stubAuth) Login(ctx context.Context, email, password string) (*domain.Identity, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuth) Logout(ctx context.Context) error { return s.logoutFn(ctx) }

func (s *stubAuth) Register(ctx context.Context, reg domain.Registration) (*domain.Identity, error) {
	return s.registerFn(ctx, reg)
}

func (s *stubAuth) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.Identity, error) {
	return s.updateProfileFn(ctx, update)
}

type stubSession struct {
	ports.SessionService
	state    domain.SessionState
	identity *domain.Identity
}

func (s *stubSession) State() domain.SessionState { return s.state }

func (s *stubSession) Identity() (domain.Identity, bool) {
	if s.identity == nil {
		return domain.Identity{}, false
	}
	return *s.identity, true
}

type stubCatalog struct {
	ports.CatalogService
	searchFn  func(ctx context.Context, params domain.ProductSearchParams) ([]domain.Product, error)
	productFn func(ctx context.Context, id string) (*domain.Product, error)
	reviewFn  func(ctx context.Context, productID string, rating int, comment string) (*domain.Message, error)
}

func (s *stubCatalog) Search(ctx context.Context, params domain.ProductSearchParams) ([]domain.Product, error) {
	return s.searchFn(ctx, params)
}

func (s *stubCatalog) Product(ctx context.Context, id string) (*domain.Product, error) {
	return s.productFn(ctx, id)
}

func (s *stubCatalog) SubmitReview(ctx context.Context, productID string, rating int, comment string) (*domain.Message, error) {
	return s.reviewFn(ctx, productID, rating, comment)
}

type stubCart struct {
	ports.CartService
	countFn  func(ctx context.Context) (int, error)
	addFn    func(ctx context.Context, productID string, quantity int) (*domain.Cart, error)
	updateFn func(ctx context.Context, productID string, quantity int) (*domain.Cart, error)
}

func (s *stubCart) ItemCount(ctx context.Context) (int, error) { return s.countFn(ctx) }

func (s *stubCart) Add(ctx context.Context, productID string, quantity int) (*domain.Cart, error) {
	return s.addFn(ctx, productID, quantity)
}

func (s *stubCart) UpdateQuantity(ctx context.Context, productID string, quantity int) (*domain.Cart, error) {
	return s.updateFn(ctx, productID, quantity)
}

type stubCheckout struct {
	ports.CheckoutService
	checkoutFn func(ctx context.Context, in ports.CheckoutInput) (*ports.CheckoutResult, error)
	returnFn   func(ctx context.Context, query url.Values) ports.PaymentOutcome
}

func (s *stubCheckout) Checkout(ctx context.Context, in ports.CheckoutInput) (*ports.CheckoutResult, error) {
	return s.checkoutFn(ctx, in)
}

func (s *stubCheckout) HandlePaymentReturn(ctx context.Context, query url.Values) ports.PaymentOutcome {
	return s.returnFn(ctx, query)
}

type stubAdmin struct {
	ports.AdminService
	createProductFn func(ctx context.Context, in domain.ProductInput, image *domain.ImageUpload) (*domain.Product, error)
	orderStatusFn   func(ctx context.Context, orderID string, action domain.AdminOrderAction) (domain.OrderStatus, error)
}

func (s *stubAdmin) CreateProduct(ctx context.Context, in domain.ProductInput, image *domain.ImageUpload) (*domain.Product, error) {
	return s.createProductFn(ctx, in, image)
}

func (s *stubAdmin) UpdateOrderStatus(ctx context.Context, orderID string, action domain.AdminOrderAction) (domain.OrderStatus, error) {
	return s.orderStatusFn(ctx, orderID, action)
}

type stubStorage struct {
	ports.ClientStorage
	pingErr error
}

func (s *stubStorage) Ping(context.Context) error { return s.pingErr }

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func expectHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T (%v)", err, err)
	}
	if he.Code != code {
		t.Fatalf("expected %d, got %d (%v)", code, he.Code, he.Message)
	}
}

func mustNotCall(t *testing.T) {
	t.Helper()
	t.Fatalf("service should not be called")
}
