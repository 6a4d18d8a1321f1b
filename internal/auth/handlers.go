package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, requireSession fiber.Handler) {
	r.Post("/signup", func(c *fiber.Ctx) error {
		var req SignupRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		user, err := svc.Signup(c.Context(), req)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "user created successfully",
			"user_id": user.ID,
		})
	})

	r.Post("/login", func(c *fiber.Ctx) error {
		var req LoginRequest
		if err := c.BodyParser(&req); err != nil || req.Username == "" || req.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "missing username or password")
		}

		user, token, err := svc.Login(c.Context(), req)
		if err == ErrInvalidCredentials {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}
		if err != nil {
			return err
		}

		c.Cookie(&fiber.Cookie{
			Name:     SessionCookie,
			Value:    token,
			Expires:  time.Now().Add(sessionTTL),
			HTTPOnly: true,
		})
		return c.JSON(fiber.Map{
			"message": "login successful",
			"user_id": user.ID,
		})
	})

	r.Post("/logout", requireSession, func(c *fiber.Ctx) error {
		if err := svc.Logout(c.Context(), c.Cookies(SessionCookie)); err != nil {
			return err
		}
		c.Cookie(&fiber.Cookie{
			Name:     SessionCookie,
			Value:    "",
			Expires:  time.Now().Add(-time.Hour),
			HTTPOnly: true,
		})
		return c.JSON(fiber.Map{"message": "logged out successfully"})
	})

	r.Get("/profile", requireSession, func(c *fiber.Ctx) error {
		user, err := svc.Profile(c.Context(), CurrentUserID(c))
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		})
	})
}
