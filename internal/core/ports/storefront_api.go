package ports

import (
	"context"

	"github.com/99minutos/storefront-console/internal/core/domain"
)

// UnauthorizedHandler reacts to a 401 from the remote API. credential is the
// bearer value that was rejected.
type UnauthorizedHandler func(ctx context.Context, credential string)

// UserAPI covers account endpoints of the remote API.
type UserAPI interface {
	Login(ctx context.Context, email, password string) (*domain.LoginResult, error)
	Register(ctx context.Context, reg domain.Registration) (*domain.Identity, error)
	ForgotPassword(ctx context.Context, email string) (*domain.Message, error)
	ResetPassword(ctx context.Context, resetToken, newPassword string) (*domain.Message, error)
	UpdatePassword(ctx context.Context, credential, oldPassword, newPassword string) (*domain.Message, error)
	UpdateProfile(ctx context.Context, credential string, update domain.ProfileUpdate) (*domain.Identity, error)
}

// CatalogAPI covers products, reviews, categories and the chatbot.
type CatalogAPI interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	SearchProducts(ctx context.Context, params domain.ProductSearchParams) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListReviews(ctx context.Context, productID string) ([]domain.Review, error)
	SubmitReview(ctx context.Context, credential, productID string, rating int, comment string) (*domain.Message, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	AskChatbot(ctx context.Context, question string) (string, error)
}

// CartAPI covers the caller's server-side cart.
type CartAPI interface {
	GetCart(ctx context.Context, credential string) (*domain.Cart, error)
	AddToCart(ctx context.Context, credential, productID string, quantity int) error
	UpdateCartItem(ctx context.Context, credential, productID string, quantity int) error
	RemoveFromCart(ctx context.Context, credential, productID string) error
}

// OrderAPI covers customer orders and payment-link creation.
type OrderAPI interface {
	CreateOrder(ctx context.Context, credential string, order domain.NewOrder) (*domain.Order, error)
	MyOrders(ctx context.Context, credential string) ([]domain.Order, error)
	CancelOrder(ctx context.Context, credential, orderID string) (*domain.Message, error)
	MarkOrderPaid(ctx context.Context, credential, orderID string) error
	CreatePaymentLink(ctx context.Context, credential, orderID string) (string, error)
}

// AdminAPI covers back-office endpoints. Every call needs an admin credential.
type AdminAPI interface {
	CreateProduct(ctx context.Context, credential string, in domain.ProductInput, image *domain.ImageUpload) (*domain.Product, error)
	UpdateProduct(ctx context.Context, credential, id string, in domain.ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, credential, id string) (*domain.Message, error)
	UploadImage(ctx context.Context, credential string, image domain.ImageUpload) (string, error)

	CreateCategory(ctx context.Context, credential, name string) (*domain.Category, error)
	UpdateCategory(ctx context.Context, credential, id, name string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, credential, id string) (*domain.Message, error)

	ListUsers(ctx context.Context, credential string) ([]domain.Identity, error)
	GetUser(ctx context.Context, credential, id string) (*domain.Identity, error)
	UpdateUser(ctx context.Context, credential, id string, update domain.UserUpdate) (*domain.Identity, error)
	DeleteUser(ctx context.Context, credential, id string) (*domain.Message, error)

	ListOrders(ctx context.Context, credential string) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, credential, orderID string, action domain.AdminOrderAction) error
}

// StorefrontAPI is the full remote API surface.
type StorefrontAPI interface {
	UserAPI
	CatalogAPI
	CartAPI
	OrderAPI
	AdminAPI
}
