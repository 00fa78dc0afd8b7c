package run

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

const transitionDetail = "Run already started or finished!"

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req Run
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.AthleteID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "athlete required")
		}
		created, err := svc.Create(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	})

	r.Get("/", func(c *fiber.Ctx) error {
		runs, err := svc.List(c.Context(), c.Query("status"), c.Query("athlete"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if runs == nil {
			runs = []Run{}
		}
		return c.JSON(runs)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		loaded, err := svc.Get(c.Context(), c.Params("id"))
		if errors.Is(err, ErrRunNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "run not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(loaded)
	})

	r.Delete("/:id", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.Delete(c.Context(), c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Post("/:id/start", authMiddleware, func(c *fiber.Ctx) error {
		started, err := svc.Start(c.Context(), c.Params("id"))
		if err != nil {
			return transitionResponse(c, err)
		}
		return c.JSON(fiber.Map{"id": started.ID, "status": started.Status})
	})

	r.Post("/:id/stop", authMiddleware, func(c *fiber.Ctx) error {
		stopped, err := svc.Stop(c.Context(), c.Params("id"))
		if err != nil {
			return transitionResponse(c, err)
		}
		return c.JSON(fiber.Map{
			"id":       stopped.ID,
			"status":   stopped.Status,
			"distance": stopped.Distance,
		})
	})
}

func transitionResponse(c *fiber.Ctx, err error) error {
	if errors.Is(err, ErrRunNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "run not found")
	}
	var conflict *TransitionError
	if errors.As(err, &conflict) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": transitionDetail,
			"id":     conflict.ID,
			"status": conflict.Status,
		})
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}
