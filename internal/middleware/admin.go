package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/stylahq/styla-backend/internal/dto"
)

// AdminRequired gates a route on the resolved identity having the admin
// role. Must run after SessionResolver.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		if !user.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Admin access required",
			})
		}
		return c.Next()
	}
}
