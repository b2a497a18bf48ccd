package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/stylahq/styla-backend/internal/config"
)

func CORS(cfg *config.Config) fiber.Handler {
	// Credentials are required for the session cookie; "*" origins would
	// break that, so the fallback stays permissive only without credentials.
	allowCredentials := cfg.CORSOrigins != "*"
	return cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		AllowCredentials: allowCredentials,
	})
}
