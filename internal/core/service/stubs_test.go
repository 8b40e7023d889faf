package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/99minutos/storefront-console/internal/core/domain"
	"github.com/99minutos/storefront-console/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubStorage struct {
	mu        sync.Mutex
	entries   map[string]string
	setErr    error
	deleteErr error
}

func newStubStorage() *stubStorage {
	return &stubStorage{entries: make(map[string]string)}
}

func (s *stubStorage) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.entries[key]
	return v, ok, nil
}

func (s *stubStorage) SetMany(_ context.Context, entries map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	for k, v := range entries {
		s.entries[k] = v
	}
	return nil
}

func (s *stubStorage) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	for _, k := range keys {
		delete(s.entries, k)
	}
	return nil
}

func (s *stubStorage) Ping(context.Context) error { return nil }

func (s *stubStorage) has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[key]
	return ok
}

// stubAPI implements only the calls a test sets; the embedded nil interface
// makes any other call panic.
type stubAPI struct {
	ports.StorefrontAPI

	loginFn          func(ctx context.Context, email, password string) (*domain.LoginResult, error)
	updateProfileFn  func(ctx context.Context, credential string, u domain.ProfileUpdate) (*domain.Identity, error)
	updatePasswordFn func(ctx context.Context, credential, oldPw, newPw string) (*domain.Message, error)
	searchFn         func(ctx context.Context, p domain.ProductSearchParams) ([]domain.Product, error)
	submitReviewFn   func(ctx context.Context, credential, productID string, rating int, comment string) (*domain.Message, error)
	getCartFn        func(ctx context.Context, credential string) (*domain.Cart, error)
	addToCartFn      func(ctx context.Context, credential, productID string, qty int) error
	removeFn         func(ctx context.Context, credential, productID string) error
	createOrderFn    func(ctx context.Context, credential string, o domain.NewOrder) (*domain.Order, error)
	myOrdersFn       func(ctx context.Context, credential string) ([]domain.Order, error)
	markPaidFn       func(ctx context.Context, credential, orderID string) error
	paymentLinkFn    func(ctx context.Context, credential, orderID string) (string, error)
	uploadImageFn    func(ctx context.Context, credential string, img domain.ImageUpload) (string, error)
	updateProductFn  func(ctx context.Context, credential, id string, in domain.ProductInput) (*domain.Product, error)
	createCategoryFn func(ctx context.Context, credential, name string) (*domain.Category, error)
	listUsersFn      func(ctx context.Context, credential string) ([]domain.Identity, error)
	orderStatusFn    func(ctx context.Context, credential, orderID string, a domain.AdminOrderAction) error
}

func (a *stubAPI) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	return a.loginFn(ctx, email, password)
}

func (a *stubAPI) UpdateProfile(ctx context.Context, credential string, u domain.ProfileUpdate) (*domain.Identity, error) {
	return a.updateProfileFn(ctx, credential, u)
}

func (a *stubAPI) UpdatePassword(ctx context.Context, credential, oldPw, newPw string) (*domain.Message, error) {
	return a.updatePasswordFn(ctx, credential, oldPw, newPw)
}

func (a *stubAPI) SearchProducts(ctx context.Context, p domain.ProductSearchParams) ([]domain.Product, error) {
	return a.searchFn(ctx, p)
}

func (a *stubAPI) SubmitReview(ctx context.Context, credential, productID string, rating int, comment string) (*domain.Message, error) {
	return a.submitReviewFn(ctx, credential, productID, rating, comment)
}

func (a *stubAPI) GetCart(ctx context.Context, credential string) (*domain.Cart, error) {
	return a.getCartFn(ctx, credential)
}

func (a *stubAPI) AddToCart(ctx context.Context, credential, productID string, qty int) error {
	return a.addToCartFn(ctx, credential, productID, qty)
}

func (a *stubAPI) RemoveFromCart(ctx context.Context, credential, productID string) error {
	return a.removeFn(ctx, credential, productID)
}

func (a *stubAPI) CreateOrder(ctx context.Context, credential string, o domain.NewOrder) (*domain.Order, error) {
	return a.createOrderFn(ctx, credential, o)
}

func (a *stubAPI) MyOrders(ctx context.Context, credential string) ([]domain.Order, error) {
	return a.myOrdersFn(ctx, credential)
}

func (a *stubAPI) MarkOrderPaid(ctx context.Context, credential, orderID string) error {
	return a.markPaidFn(ctx, credential, orderID)
}

func (a *stubAPI) CreatePaymentLink(ctx context.Context, credential, orderID string) (string, error) {
	return a.paymentLinkFn(ctx, credential, orderID)
}

func (a *stubAPI) UploadImage(ctx context.Context, credential string, img domain.ImageUpload) (string, error) {
	return a.uploadImageFn(ctx, credential, img)
}

func (a *stubAPI) UpdateProduct(ctx context.Context, credential, id string, in domain.ProductInput) (*domain.Product, error) {
	return a.updateProductFn(ctx, credential, id, in)
}

func (a *stubAPI) CreateCategory(ctx context.Context, credential, name string) (*domain.Category, error) {
	return a.createCategoryFn(ctx, credential, name)
}

func (a *stubAPI) ListUsers(ctx context.Context, credential string) ([]domain.Identity, error) {
	return a.listUsersFn(ctx, credential)
}

func (a *stubAPI) UpdateOrderStatus(ctx context.Context, credential, orderID string, act domain.AdminOrderAction) error {
	return a.orderStatusFn(ctx, credential, orderID, act)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var errStorageDown = errors.New("storage down")

// tokenExpiringAt returns an HS256 JWT whose exp claim is at.
func tokenExpiringAt(t *testing.T, at time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  "u1",
		"exp": at.Unix(),
	})
	signed, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func validToken(t *testing.T) string {
	return tokenExpiringAt(t, time.Now().Add(time.Hour))
}

func newTestSession() (*SessionStore, *stubStorage) {
	storage := newStubStorage()
	return NewSessionStore(storage, zerolog.Nop()), storage
}

// loggedIn returns a session holding identity with a credential valid for an hour.
func loggedIn(t *testing.T, identity domain.Identity) (*SessionStore, string) {
	t.Helper()
	s, _ := newTestSession()
	tok := validToken(t)
	if err := s.Login(context.Background(), identity, tok); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	return s, tok
}

var (
	customer = domain.Identity{ID: "u1", Name: "Ann", Email: "ann@example.com"}
	admin    = domain.Identity{ID: "a1", Name: "Root", Email: "root@example.com", IsAdmin: true}
)
