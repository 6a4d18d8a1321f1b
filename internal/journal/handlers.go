package journal

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
		entry, err := svc.Create(c.Context(), auth.CurrentUserID(c), req)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message":       "journal entry created successfully",
			"journal_entry": entry,
		})
	})

	r.Get("/", requireSession, func(c *fiber.Ctx) error {
		entries, err := svc.List(c.Context(), auth.CurrentUserID(c), c.QueryInt("limit", 0))
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"journal_entries": entries,
			"count":           len(entries),
		})
	})

	// registered before /:id so the literal segments win
	r.Get("/search", requireSession, func(c *fiber.Ctx) error {
		query := c.Query("query")
		entries, err := svc.Search(c.Context(), auth.CurrentUserID(c), query)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"journal_entries": entries,
			"count":           len(entries),
			"query":           query,
		})
	})

	r.Get("/stats", requireSession, func(c *fiber.Ctx) error {
		stats, err := svc.Stats(c.Context(), auth.CurrentUserID(c))
		if err != nil {
			return err
		}
		return c.JSON(stats)
	})

	r.Get("/:id", requireSession, func(c *fiber.Ctx) error {
		entryID, err := c.ParamsInt("id")
		if err != nil {
			return apperr.NotFound("journal entry")
		}
		entry, err := svc.Get(c.Context(), auth.CurrentUserID(c), int64(entryID))
		if err != nil {
			return err
		}
		return c.JSON(entry)
	})

	r.Put("/:id", requireSession, func(c *fiber.Ctx) error {
		entryID, err := c.ParamsInt("id")
		if err != nil {
			return apperr.NotFound("journal entry")
		}
		var req UpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		entry, err := svc.Update(c.Context(), auth.CurrentUserID(c), int64(entryID), req)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"message":       "journal entry updated successfully",
			"journal_entry": entry,
		})
	})

	r.Delete("/:id", requireSession, func(c *fiber.Ctx) error {
		entryID, err := c.ParamsInt("id")
		if err != nil {
			return apperr.NotFound("journal entry")
		}
		if err := svc.Delete(c.Context(), auth.CurrentUserID(c), int64(entryID)); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"message": "journal entry deleted successfully"})
	})
}
