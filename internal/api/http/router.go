package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront-service/internal/api/http/handlers"
	"github.com/spec-kit/storefront-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Storefront     *handlers.StorefrontHandler
	Products       *handlers.ProductsHandler
	Coupons        *handlers.CouponsHandler
	Orders         *handlers.OrdersHandler
	Featured       *handlers.FeaturedHandler
	Staff          *handlers.StaffHandler
	Customers      *handlers.CustomersHandler
	Activity       *handlers.ActivityHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. The storefront group authenticates via
// token claims only; admin routes re-read the principal from the store on
// every request so deactivations take effect immediately.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/staff/login", cfg.Auth.StaffLogin)
	authGroup.Post("/customers/register", cfg.Auth.CustomerRegister)
	authGroup.Post("/customers/login", cfg.Auth.CustomerLogin)
	authGroup.Post("/refresh", cfg.Auth.Refresh)

	session := authGroup.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	session.Post("/logout", cfg.Auth.Logout)
	session.Get("/me", cfg.Auth.Me)
	session.Post("/password/change", cfg.Auth.ChangePassword)

	storefront := app.Group("/storefront")
	storefront.Get("/products", cfg.Storefront.ListProducts)
	storefront.Get("/products/:id", cfg.Storefront.GetProduct)
	storefront.Get("/featured", cfg.Storefront.ListFeatured)
	storefront.Get("/coupons/:code", cfg.Storefront.CheckCoupon)

	shopper := storefront.Group("", cfg.AuthMiddleware.Handle, auth.RequireCustomer())
	shopper.Post("/orders", cfg.Storefront.PlaceOrder)
	shopper.Get("/orders", cfg.Storefront.ListOrders)
	shopper.Get("/orders/:id", cfg.Storefront.GetOrder)
	shopper.Get("/profile", cfg.Storefront.Profile)
	shopper.Put("/profile", cfg.Storefront.UpdateProfile)

	admin := app.Group("/admin", cfg.AuthMiddleware.HandleFresh, auth.RequireStaffRole(auth.RequireAdmin))
	admin.Post("/products", cfg.Products.Create)
	admin.Get("/products", cfg.Products.List)
	admin.Get("/products/:id", cfg.Products.Get)
	admin.Put("/products/:id", cfg.Products.Update)
	admin.Delete("/products/:id", cfg.Products.Delete)

	admin.Post("/coupons", cfg.Coupons.Create)
	admin.Get("/coupons", cfg.Coupons.List)
	admin.Get("/coupons/:id", cfg.Coupons.Get)
	admin.Put("/coupons/:id", cfg.Coupons.Update)
	admin.Delete("/coupons/:id", cfg.Coupons.Delete)

	admin.Get("/orders", cfg.Orders.List)
	admin.Get("/orders/:id", cfg.Orders.Get)
	admin.Patch("/orders/:id/status", cfg.Orders.UpdateStatus)

	admin.Get("/featured", cfg.Featured.List)
	admin.Put("/featured", cfg.Featured.Replace)

	admin.Get("/customers", cfg.Customers.List)
	admin.Get("/customers/:id", cfg.Customers.Get)
	admin.Patch("/customers/:id/status", cfg.Customers.SetStatus)

	admin.Get("/activity", cfg.Activity.List)

	// Any admin manages staff accounts; granting SUPER_ADMIN is checked
	// inside the service against the acting principal.
	admin.Post("/staff", cfg.Staff.Create)
	admin.Get("/staff", cfg.Staff.List)
	admin.Get("/staff/:id", cfg.Staff.Get)
	admin.Patch("/staff/:id", cfg.Staff.Update)
}
