package contact

import (
	"backend-soultrip/internal/apperr"
	"backend-soultrip/internal/auth"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, requireSession fiber.Handler) {
	r.Post("/", requireSession, func(c *fiber.Ctx) error {
		var req CreateRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		contact, err := svc.Create(c.Context(), auth.CurrentUserID(c), req)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "contact added successfully",
			"contact": contact,
		})
	})

	r.Get("/", requireSession, func(c *fiber.Ctx) error {
		contacts, err := svc.List(c.Context(), auth.CurrentUserID(c))
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"contacts": contacts})
	})

	// registered before /:id so the literal segment wins
	r.Get("/search", requireSession, func(c *fiber.Ctx) error {
		query := c.Query("query")
		contacts, err := svc.Search(c.Context(), auth.CurrentUserID(c), query)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"contacts": contacts,
			"count":    len(contacts),
		})
	})

	r.Get("/:id", requireSession, func(c *fiber.Ctx) error {
		contactID, err := c.ParamsInt("id")
		if err != nil {
			return apperr.NotFound("contact")
		}
		contact, err := svc.Get(c.Context(), auth.CurrentUserID(c), int64(contactID))
		if err != nil {
			return err
		}
		return c.JSON(contact)
	})

	r.Put("/:id", requireSession, func(c *fiber.Ctx) error {
		contactID, err := c.ParamsInt("id")
		if err != nil {
			return apperr.NotFound("contact")
		}
		var req UpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		contact, err := svc.Update(c.Context(), auth.CurrentUserID(c), int64(contactID), req)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"message": "contact updated successfully",
			"contact": contact,
		})
	})

	r.Delete("/:id", requireSession, func(c *fiber.Ctx) error {
		contactID, err := c.ParamsInt("id")
		if err != nil {
			return apperr.NotFound("contact")
		}
		if err := svc.Delete(c.Context(), auth.CurrentUserID(c), int64(contactID)); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"message": "contact deleted successfully"})
	})
}

// RegisterEmergencyRoutes mounts the notify endpoint outside the contacts
// group.
func RegisterEmergencyRoutes(r fiber.Router, svc *Service, requireSession fiber.Handler) {
	r.Post("/notify", requireSession, func(c *fiber.Ctx) error {
		var req NotifyRequest
		// an empty body is fine, both fields have defaults
		_ = c.BodyParser(&req)
		payload, err := svc.Notify(c.Context(), auth.CurrentUserID(c), req)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"message":       "emergency notification data generated successfully",
			"email_payload": payload,
		})
	})
}
