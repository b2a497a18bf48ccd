package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/stylahq/styla-backend/internal/handlers"
	"github.com/stylahq/styla-backend/internal/middleware"
	"github.com/stylahq/styla-backend/internal/services"
)

func Setup(
	app *fiber.App,
	authService *services.AuthService,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	catalogHandler *handlers.CatalogHandler,
	profileHandler *handlers.ProfileHandler,
	boxHandler *handlers.BoxHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Identity is resolved for every request; routes that need it check
	// locals themselves.
	api.Use(middleware.SessionResolver(authService))

	api.Get("/health", healthHandler.Check)

	// Auth-specific rate limit: 10 req/min per IP (stricter)
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/sign-up", authHandler.SignUp)
	auth.Post("/sign-in", authHandler.SignIn)
	auth.Post("/sign-out", authHandler.SignOut)

	api.Get("/session", authHandler.Session)

	api.Get("/product", catalogHandler.ListProducts)
	api.Get("/product/:id", catalogHandler.GetProduct)

	api.Get("/box", boxHandler.ListBoxes)
	api.Post("/box", middleware.AdminRequired(), boxHandler.CreateBox)
	api.Get("/box/newest", boxHandler.NewestBox)

	api.Get("/customer", profileHandler.ListCustomers)
	api.Get("/check-info", profileHandler.CheckInfo)
	api.Post("/customerDetail", profileHandler.SubmitDetail)
}
