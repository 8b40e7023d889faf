package ports

import (
	"context"
	"net/url"

	"github.com/99minutos/storefront-console/internal/core/domain"
)

// CatalogService serves browsing, search and reviews.
type CatalogService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	Search(ctx context.Context, params domain.ProductSearchParams) ([]domain.Product, error)
	Product(ctx context.Context, id string) (*domain.Product, error)
	Reviews(ctx context.Context, productID string) ([]domain.Review, error)
	SubmitReview(ctx context.Context, productID string, rating int, comment string) (*domain.Message, error)
	Categories(ctx context.Context) ([]domain.Category, error)
	AskChatbot(ctx context.Context, question string) (string, error)
}

// CartService manages the caller's cart.
type CartService interface {
	Get(ctx context.Context) (*domain.Cart, error)
	ItemCount(ctx context.Context) (int, error)
	Add(ctx context.Context, productID string, quantity int) (*domain.Cart, error)
	UpdateQuantity(ctx context.Context, productID string, quantity int) (*domain.Cart, error)
	Remove(ctx context.Context, productID string) (*domain.Cart, error)
}

// CheckoutInput describes an order to place. When BuyNow is set the order
// holds that single product with quantity 1; otherwise the cart is used.
type CheckoutInput struct {
	BuyNow          *domain.Product
	ShippingAddress domain.ShippingAddress
	PaymentMethod   string
}

// CheckoutResult is returned after an order has been placed.
type CheckoutResult struct {
	Order       *domain.Order       `json:"order"`
	Summary     domain.PriceSummary `json:"summary"`
	PaymentLink string              `json:"paymentLink,omitempty"`
	// Note is set when the order was placed but the session changed while
	// the request was in flight. The order stands and must not be placed again.
	Note string `json:"note,omitempty"`
}

// PaymentOutcome is the console's view of a gateway return.
type PaymentOutcome struct {
	Payment    domain.PaymentReturn `json:"payment"`
	OrderPaid  bool                 `json:"orderPaid"`
	UpdateNote string               `json:"updateError,omitempty"`
}

// CheckoutService places orders and handles payment.
type CheckoutService interface {
	Checkout(ctx context.Context, in CheckoutInput) (*CheckoutResult, error)
	PaymentLink(ctx context.Context, orderID string) (string, error)
	HandlePaymentReturn(ctx context.Context, query url.Values) PaymentOutcome
	MyOrders(ctx context.Context) ([]domain.Order, error)
	CancelOrder(ctx context.Context, orderID string) (*domain.Message, error)
}

// AdminService is the back-office. Every operation requires an admin identity.
type AdminService interface {
	CreateProduct(ctx context.Context, in domain.ProductInput, image *domain.ImageUpload) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, in domain.ProductInput, image *domain.ImageUpload) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) (*domain.Message, error)

	CreateCategory(ctx context.Context, name string) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id, name string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id string) (*domain.Message, error)

	Users(ctx context.Context) ([]domain.Identity, error)
	User(ctx context.Context, id string) (*domain.Identity, error)
	UpdateUser(ctx context.Context, id string, update domain.UserUpdate) (*domain.Identity, error)
	DeleteUser(ctx context.Context, id string) (*domain.Message, error)

	Orders(ctx context.Context) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, action domain.AdminOrderAction) (domain.OrderStatus, error)
}
