package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/Slganeshkarthik/AgriConnect/internal/api/handler"
	"github.com/Slganeshkarthik/AgriConnect/internal/api/middleware"
	"github.com/Slganeshkarthik/AgriConnect/internal/core/domain"
	"github.com/Slganeshkarthik/AgriConnect/internal/core/ports"
	"github.com/Slganeshkarthik/AgriConnect/internal/pkg/validation"
)

// Deps are the services the local API exposes.
type Deps struct {
	Cart     ports.CartStore
	Session  ports.SessionStore
	Checkout ports.CheckoutService
	Orders   ports.OrderService
	// Health lists the dependencies checked by the readiness probe.
	Health map[string]ports.Pinger
	Log    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validation.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.Metrics())
	e.Use(middleware.RequestLogger(d.Log))

	// --- Handlers ---
	cartHandler := handler.NewCartHandler(d.Cart)
	sessionHandler := handler.NewSessionHandler(d.Session)
	checkoutHandler := handler.NewCheckoutHandler(d.Checkout)
	orderHandler := handler.NewOrderHandler(d.Orders)

	signedIn := middleware.Guard(domain.RouteAuthenticated, d.Session)
	adminOnly := middleware.Guard(domain.RouteAdmin, d.Session)

	v1 := e.Group("/v1")

	// --- Public routes ---
	v1.GET("/cart", cartHandler.Get)
	v1.POST("/cart/items", cartHandler.AddItem)
	v1.PUT("/cart/items/:id", cartHandler.SetQuantity)
	v1.DELETE("/cart/items/:id", cartHandler.RemoveItem)
	v1.DELETE("/cart", cartHandler.Clear)

	v1.GET("/session", sessionHandler.Get)
	v1.POST("/session/check", sessionHandler.Check)
	v1.POST("/session/login", sessionHandler.Login)
	v1.POST("/session/signup", sessionHandler.Signup)
	v1.POST("/session/logout", sessionHandler.Logout)

	// --- Signed-in routes ---
	v1.PATCH("/session/user", sessionHandler.UpdateUser, signedIn)
	v1.PUT("/checkout/details", checkoutHandler.SaveDetails, signedIn)
	v1.POST("/checkout/orders", checkoutHandler.PlaceOrder, signedIn)
	v1.GET("/profile", orderHandler.Profile, signedIn)

	// --- Admin routes ---
	v1.GET("/admin/orders", orderHandler.AdminOrders, adminOnly)
	v1.PUT("/admin/orders/:id/status", orderHandler.UpdateStatus, adminOnly)

	// --- Health probes and metrics (no guard) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Health)

	e.GET("/health", healthHandler.Liveness)            // liveness: is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness: are dependencies up?
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
