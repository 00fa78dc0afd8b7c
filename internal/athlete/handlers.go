package athlete

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/:id/info", func(c *fiber.Ctx) error {
		info, err := svc.GetOrCreate(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(info)
	})

	r.Put("/:id/info", authMiddleware, func(c *fiber.Ctx) error {
		var patch UpdateRequest
		if err := c.BodyParser(&patch); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		info, err := svc.Update(c.Context(), c.Params("id"), patch)
		if errors.Is(err, ErrWeightRange) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"weight": err.Error()})
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(info)
	})
}
