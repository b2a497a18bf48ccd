package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/stylahq/styla-backend/internal/models"
	"github.com/stylahq/styla-backend/internal/services"
)

// SessionCookie is the cookie the auth endpoints set alongside the JSON
// token response.
const SessionCookie = "styla_session"

// SessionResolver resolves the request's session token to a (user, session)
// pair and stores both in locals. It never rejects: routes that need an
// identity check CurrentUser themselves, matching the per-route 401
// contract of the API.
func SessionResolver(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			token = c.Cookies(SessionCookie)
		}
		if token == "" {
			return c.Next()
		}

		user, session, err := auth.ResolveSession(token)
		if err != nil {
			return c.Next()
		}

		c.Locals("user", user)
		c.Locals("session", session)
		return c.Next()
	}
}

// CurrentUser returns the resolved user, or nil for anonymous requests.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("user").(*models.User)
	return user
}

func CurrentSession(c *fiber.Ctx) *models.Session {
	session, _ := c.Locals("session").(*models.Session)
	return session
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
