package item

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware, coachOnly fiber.Handler) {
	r.Post("/upload", authMiddleware, coachOnly, func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"detail": "No file provided under 'file'.",
			})
		}
		f, err := fileHeader.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"detail": "No file provided under 'file'.",
			})
		}
		defer f.Close()

		rejected, err := svc.Import(c.Context(), f)
		if errors.Is(err, ErrBadWorkbook) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": err.Error()})
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(rejected)
	})

	r.Get("/items", func(c *fiber.Ctx) error {
		items, err := svc.List(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if items == nil {
			items = []Item{}
		}
		return c.JSON(items)
	})
}
