// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"storefront/config"
	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/router/handler"
	"storefront/internal/domain/service"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams defines the handlers and middlewares the router wires up.
type RouterParams struct {
	fx.In

	Config           *config.Config
	CheckoutHandler  *handler.CheckoutHandler
	CatalogHandler   *handler.CatalogHandler
	InventoryHandler *handler.InventoryHandler
	CustomerHandler  *handler.CustomerHandler
	InsightHandler   *handler.InsightHandler
	ReportHandler    *handler.ReportHandler
	TokenHandler     *handler.TokenHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up all the API routes for the application.
// Storefront reads are public; everything that mutates state or reads the
// admin dashboards requires an authenticated role.
func (r *router) RegisterRoutes(e *echo.Echo) {
	p := r.params

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Development-only token issuance.
	if p.Config.Env.Debug {
		e.POST("/auth/token", p.TokenHandler.Issue)
	}

	// Public storefront reads
	e.GET("/products", p.CatalogHandler.ListProducts)
	e.GET("/products/:id", p.CatalogHandler.GetProduct)
	e.GET("/products/:id/reviews", p.CatalogHandler.ListReviews)
	e.GET("/categories", p.CatalogHandler.ListCategories)

	// Checkout and reviews: any authenticated caller
	authed := e.Group("", p.AuthMiddleware.Authenticate)
	{
		authed.POST("/orders/checkout", p.CheckoutHandler.Checkout)
		authed.GET("/orders/:id", p.CheckoutHandler.GetOrder)
		authed.GET("/customers/:id/orders", p.CheckoutHandler.ListCustomerOrders)
		authed.POST("/products/:id/reviews", p.CatalogHandler.AddReview)
	}

	// Admin surfaces: catalog mutation, inventory, customers, insights, reports
	admin := e.Group("/admin",
		p.AuthMiddleware.Authenticate,
		p.AuthMiddleware.RequireRole(service.RoleAdmin),
	)
	{
		admin.POST("/products", p.CatalogHandler.CreateProduct)
		admin.PUT("/products/:id", p.CatalogHandler.UpdateProduct)
		admin.POST("/products/:id/price", p.CatalogHandler.ApplyPrice)
		admin.POST("/categories", p.CatalogHandler.CreateCategory)

		admin.POST("/products/:id/inventory", p.InventoryHandler.Post)
		admin.GET("/products/:id/inventory", p.InventoryHandler.History)
		admin.GET("/products/:id/inventory/reconcile", p.InventoryHandler.Reconcile)

		admin.GET("/customers", p.CustomerHandler.List)
		admin.GET("/customers/:id", p.CustomerHandler.Get)
		admin.POST("/customers", p.CustomerHandler.Create)
		admin.PUT("/customers/:id", p.CustomerHandler.Update)
		admin.POST("/customers/:id/points", p.CustomerHandler.GrantPoints)
		admin.GET("/customers/:id/points/verify", p.CustomerHandler.VerifyBalance)

		admin.GET("/insights/forecast", p.InsightHandler.DemandForecasts)
		admin.GET("/insights/pricing", p.InsightHandler.PricingSuggestions)
		admin.GET("/insights/reorder", p.InsightHandler.ReorderSuggestions)
		admin.GET("/insights/anomalies", p.InsightHandler.Anomalies)

		admin.GET("/reports/sales", p.ReportHandler.Sales)
		admin.GET("/reports/inventory", p.ReportHandler.Inventory)
		admin.GET("/reports/customers", p.ReportHandler.Customers)
	}
}
