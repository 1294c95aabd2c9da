package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-service/internal/api/http/handlers"
	"github.com/spec-kit/shop-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Products       *handlers.ProductsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	users := app.Group("/users")
	users.Post("/signup", cfg.Users.Signup)
	users.Post("/signin", cfg.Users.Signin)
	users.Get("/me", cfg.AuthMiddleware.Handle, auth.RequireUser(), cfg.Users.Me)

	products := app.Group("/api/product", cfg.AuthMiddleware.Handle, auth.RequireUser())
	products.Get("", cfg.Products.List)
	products.Post("", cfg.Products.Create)
	products.Put("", cfg.Products.Update)
	products.Delete("", cfg.Products.Delete)
}
