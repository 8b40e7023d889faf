package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/storefront-console/docs"
	"github.com/99minutos/storefront-console/internal/api/handler"
	"github.com/99minutos/storefront-console/internal/api/middleware"
	"github.com/99minutos/storefront-console/internal/core/ports"
)

// Dependencies are the services the HTTP surface is built on.
type Dependencies struct {
	Session  ports.SessionService
	Auth     ports.AuthService
	Catalog  ports.CatalogService
	Cart     ports.CartService
	Checkout ports.CheckoutService
	Admin    ports.AdminService
	Storage  ports.ClientStorage

	// Registry receives the HTTP metrics. Nil means the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.PropagateRequestID())
	e.Use(requestLogger(log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	requireSession := middleware.RequireSession(deps.Session)

	// --- Operational endpoints ---
	health := handler.NewHealthHandler(deps.Storage)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// --- Session ---
	sessions := handler.NewSessionHandler(deps.Auth, deps.Session)
	api.POST("/session/login", sessions.Login)
	api.POST("/session/logout", sessions.Logout)
	api.GET("/session", sessions.Current)

	// --- Account ---
	account := handler.NewAccountHandler(deps.Auth)
	api.POST("/account/register", account.Register)
	api.POST("/account/forgot-password", account.ForgotPassword)
	api.POST("/account/reset-password/:token", account.ResetPassword)
	api.PUT("/account/password", account.ChangePassword, requireSession)
	api.GET("/account/profile", account.Profile, requireSession)
	api.PUT("/account/profile", account.UpdateProfile, requireSession)

	// --- Catalog ---
	catalog := handler.NewCatalogHandler(deps.Catalog)
	api.GET("/products", catalog.List)
	api.GET("/products/search", catalog.Search)
	api.GET("/products/:id", catalog.Get)
	api.GET("/products/:id/reviews", catalog.Reviews)
	api.POST("/products/:id/reviews", catalog.SubmitReview, requireSession)
	api.GET("/categories", catalog.Categories)
	api.POST("/chatbot", catalog.Chatbot)

	// --- Cart ---
	cart := handler.NewCartHandler(deps.Cart)
	api.GET("/cart/count", cart.Count)
	carts := api.Group("/cart", requireSession)
	carts.GET("", cart.Get)
	carts.POST("/items", cart.Add)
	carts.PUT("/items/:productId", cart.UpdateQuantity)
	carts.DELETE("/items/:productId", cart.Remove)

	// --- Orders ---
	orders := handler.NewOrderHandler(deps.Checkout, deps.Catalog)
	e.GET("/payment-result", orders.PaymentResult)
	og := api.Group("/orders", requireSession)
	og.POST("", orders.Checkout)
	og.GET("/mine", orders.Mine)
	og.DELETE("/:id", orders.Cancel)
	og.POST("/:id/payment-link", orders.PaymentLink)

	// --- Back-office ---
	admin := handler.NewAdminHandler(deps.Admin)
	ag := api.Group("/admin", requireSession, middleware.AdminOnly())
	ag.POST("/products", admin.CreateProduct)
	ag.PUT("/products/:id", admin.UpdateProduct)
	ag.DELETE("/products/:id", admin.DeleteProduct)
	ag.POST("/categories", admin.CreateCategory)
	ag.PUT("/categories/:id", admin.UpdateCategory)
	ag.DELETE("/categories/:id", admin.DeleteCategory)
	ag.GET("/users", admin.Users)
	ag.GET("/users/:id", admin.User)
	ag.PUT("/users/:id", admin.UpdateUser)
	ag.DELETE("/users/:id", admin.DeleteUser)
	ag.GET("/orders", admin.Orders)
	ag.PUT("/orders/:id/:action", admin.UpdateOrderStatus)

	return e
}

// requestLogger writes one zerolog line per request. Only the route template
// is logged; the raw URI can carry reset tokens and search terms.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil || v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("route", c.Path()).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
