package auth

import (
	"backend-soultrip/internal/apperr"

	"github.com/gofiber/fiber/v2"
)

// RequireSession validates the session cookie and stores user_id in locals.
func RequireSession(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookie)
		if token == "" {
			return apperr.ErrUnauthenticated
		}

		userID, err := svc.ValidateSession(c.Context(), token)
		if err != nil {
			return apperr.ErrUnauthenticated
		}

		c.Locals("user_id", userID)
		return c.Next()
	}
}

// CurrentUserID returns the user id stored by RequireSession, 0 when absent.
func CurrentUserID(c *fiber.Ctx) int64 {
	id, _ := c.Locals("user_id").(int64)
	return id
}
