package trip

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
		trip, err := svc.Create(c.Context(), auth.CurrentUserID(c), req)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "trip created successfully",
			"trip":    trip,
		})
	})

	r.Get("/", requireSession, func(c *fiber.Ctx) error {
		trips, err := svc.List(c.Context(), auth.CurrentUserID(c))
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"trips": trips})
	})

	// registered before /:id so the literal segments win
	r.Get("/stats", requireSession, func(c *fiber.Ctx) error {
		stats, err := svc.Stats(c.Context(), auth.CurrentUserID(c))
		if err != nil {
			return err
		}
		return c.JSON(stats)
	})

	r.Get("/upcoming", requireSession, func(c *fiber.Ctx) error {
		upcoming, err := svc.Upcoming(c.Context(), auth.CurrentUserID(c))
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"upcoming_trips": upcoming})
	})

	r.Get("/:id", requireSession, func(c *fiber.Ctx) error {
		tripID, err := c.ParamsInt("id")
		if err != nil {
			return apperr.NotFound("trip")
		}
		trip, locations, err := svc.Get(c.Context(), auth.CurrentUserID(c), int64(tripID))
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"id":          trip.ID,
			"destination": trip.Destination,
			"start_date":  trip.StartDate,
			"end_date":    trip.EndDate,
			"locations":   locations,
		})
	})

	r.Put("/:id", requireSession, func(c *fiber.Ctx) error {
		tripID, err := c.ParamsInt("id")
		if err != nil {
			return apperr.NotFound("trip")
		}
		var req UpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		trip, err := svc.Update(c.Context(), auth.CurrentUserID(c), int64(tripID), req)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"message": "trip updated successfully",
			"trip":    trip,
		})
	})

	r.Delete("/:id", requireSession, func(c *fiber.Ctx) error {
		tripID, err := c.ParamsInt("id")
		if err != nil {
			return apperr.NotFound("trip")
		}
		if err := svc.Delete(c.Context(), auth.CurrentUserID(c), int64(tripID)); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"message": "trip and all associated locations deleted successfully"})
	})
}
