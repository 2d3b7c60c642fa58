package controller

import (
	"github.com/benbeisheim/xadrez-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

// Version is reported by /health. Overridden at build time with -ldflags.
var Version = "dev"

type StatusController struct {
	gameService *service.GameService
}

func NewStatusController(gameService *service.GameService) *StatusController {
	return &StatusController{gameService: gameService}
}

func (sc *StatusController) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": Version,
	})
}

func (sc *StatusController) Status(c *fiber.Ctx) error {
	return c.JSON(sc.gameService.Status())
}
