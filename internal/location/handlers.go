package location

import (
	"fmt"
	"strconv"

	"backend-soultrip/internal/apperr"
	"backend-soultrip/internal/auth"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the /locations surface.
func RegisterRoutes(r fiber.Router, svc *Service, requireSession fiber.Handler) {
	r.Get("/", requireSession, func(c *fiber.Ctx) error {
		locations, err := svc.All(c.Context(), auth.CurrentUserID(c))
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"locations": locations})
	})

	// registered before /:id so the literal segment wins
	r.Get("/nearby", requireSession, func(c *fiber.Ctx) error {
		lat, err := strconv.ParseFloat(c.Query("latitude"), 64)
		if err != nil {
			return apperr.Validation("invalid parameters")
		}
		lng, err := strconv.ParseFloat(c.Query("longitude"), 64)
		if err != nil {
			return apperr.Validation("invalid parameters")
		}
		radius := DefaultRadiusKm
		if raw := c.Query("radius"); raw != "" {
			radius, err = strconv.ParseFloat(raw, 64)
			if err != nil {
				return apperr.Validation("invalid parameters")
			}
		}

		nearby, err := svc.Nearby(c.Context(), auth.CurrentUserID(c), lat, lng, radius)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"center":    fiber.Map{"latitude": lat, "longitude": lng},
			"radius":    radius,
			"locations": nearby,
			"count":     len(nearby),
		})
	})

	r.Get("/:id", requireSession, func(c *fiber.Ctx) error {
		locationID, err := c.ParamsInt("id")
		if err != nil {
			return apperr.NotFound("location")
		}
		detail, err := svc.Get(c.Context(), auth.CurrentUserID(c), int64(locationID))
		if err != nil {
			return err
		}
		return c.JSON(detail)
	})

	r.Put("/:id", requireSession, func(c *fiber.Ctx) error {
		locationID, err := c.ParamsInt("id")
		if err != nil {
			return apperr.NotFound("location")
		}
		var req UpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		loc, err := svc.Update(c.Context(), auth.CurrentUserID(c), int64(locationID), req)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"message":  "location updated successfully",
			"location": loc,
		})
	})

	r.Delete("/:id", requireSession, func(c *fiber.Ctx) error {
		locationID, err := c.ParamsInt("id")
		if err != nil {
			return apperr.NotFound("location")
		}
		if err := svc.Delete(c.Context(), auth.CurrentUserID(c), int64(locationID)); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"message": "location deleted successfully"})
	})
}

// RegisterTripRoutes mounts the nested /trips/:id/locations surface.
func RegisterTripRoutes(r fiber.Router, svc *Service, requireSession fiber.Handler) {
	r.Get("/:id/locations", requireSession, func(c *fiber.Ctx) error {
		tripID, err := c.ParamsInt("id")
		if err != nil {
			return apperr.NotFound("trip")
		}
		locations, err := svc.ListByTrip(c.Context(), auth.CurrentUserID(c), int64(tripID))
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"locations": locations})
	})

	r.Post("/:id/locations", requireSession, func(c *fiber.Ctx) error {
		tripID, err := c.ParamsInt("id")
		if err != nil {
			return apperr.NotFound("trip")
		}
		var input Input
		if err := c.BodyParser(&input); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		loc, err := svc.AddToTrip(c.Context(), auth.CurrentUserID(c), int64(tripID), input)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message":  "location added successfully",
			"location": loc,
		})
	})

	r.Post("/:id/locations/bulk", requireSession, func(c *fiber.Ctx) error {
		tripID, err := c.ParamsInt("id")
		if err != nil {
			return apperr.NotFound("trip")
		}
		var items []Input
		if err := c.BodyParser(&items); err != nil {
			return apperr.Validation("invalid data format, expected a list of locations")
		}
		locations, err := svc.BulkAdd(c.Context(), auth.CurrentUserID(c), int64(tripID), items)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message":   fmt.Sprintf("successfully added %d locations", len(locations)),
			"locations": locations,
			"count":     len(locations),
		})
	})
}
