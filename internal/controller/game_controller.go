package controller

import (
	"bytes"

	"github.com/benbeisheim/xadrez-backend/internal/middleware"
	"github.com/benbeisheim/xadrez-backend/internal/model"
	"github.com/benbeisheim/xadrez-backend/internal/render"
	"github.com/benbeisheim/xadrez-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

type importRequest struct {
	FEN string `json:"fen"`
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	gameID, err := gc.gameService.CreateGame()
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Game created",
		"gameId":  gameID,
	})
}

// ImportGame creates a game from a posted position.
func (gc *GameController) ImportGame(c *fiber.Ctx) error {
	var req importRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	gameID, err := gc.gameService.ImportGame(req.FEN)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Game imported",
		"gameId":  gameID,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := middleware.PlayerID(c)

	color, err := gc.gameService.JoinGame(gameID, playerID, middleware.PlayerName(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) GetFEN(c *fiber.Ctx) error {
	fen, err := gc.gameService.GetFEN(c.Params("gameId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"fen": fen,
	})
}

// LegalMoves lists the destinations of the piece on :square. The list is empty
// for an empty square or a piece of the side not to move.
func (gc *GameController) LegalMoves(c *fiber.Ctx) error {
	square := c.Params("square")
	destinations, err := gc.gameService.LegalMoves(c.Params("gameId"), square)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"square":       square,
		"destinations": destinations,
	})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var move model.SimpleMove
	if err := c.BodyParser(&move); err != nil {
		return badRequest(c, "invalid move: "+err.Error())
	}
	result, err := gc.gameService.HandleMove(c.Params("gameId"), middleware.PlayerID(c), move)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (gc *GameController) ResetGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if err := gc.gameService.ResetGame(gameID, middleware.PlayerID(c)); err != nil {
		return respondError(c, err)
	}
	state, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(state)
}

// BoardSVG renders the current position. ?flip=true draws it from black's side.
func (gc *GameController) BoardSVG(c *fiber.Ctx) error {
	board, last, err := gc.gameService.GetBoard(c.Params("gameId"))
	if err != nil {
		return respondError(c, err)
	}
	var buf bytes.Buffer
	render.SVG(&buf, board, render.SVGOptions{
		Flip:     c.QueryBool("flip"),
		LastMove: last,
	})
	c.Set(fiber.HeaderContentType, "image/svg+xml")
	return c.Send(buf.Bytes())
}

func (gc *GameController) JoinMatchmaking(c *fiber.Ctx) error {
	if err := gc.gameService.JoinMatchmaking(middleware.PlayerID(c), middleware.PlayerName(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"status": "queued",
	})
}

func (gc *GameController) LeaveMatchmaking(c *fiber.Ctx) error {
	gc.gameService.LeaveMatchmaking(middleware.PlayerID(c))
	return c.JSON(fiber.Map{
		"status": "left",
	})
}
