package challenge

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Get("/", func(c *fiber.Ctx) error {
		challenges, err := svc.List(c.Context(), c.Query("athlete"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if challenges == nil {
			challenges = []Challenge{}
		}
		return c.JSON(challenges)
	})
}
