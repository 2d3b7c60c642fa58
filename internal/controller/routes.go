package controller

import (
	"github.com/benbeisheim/xadrez-backend/internal/middleware"
	"github.com/benbeisheim/xadrez-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// SetupRoutes mounts the REST and websocket endpoints on app.
func SetupRoutes(app *fiber.App, gameService *service.GameService, allowOrigins []string) {
	statusController := NewStatusController(gameService)
	gameController := NewGameController(gameService)
	wsController := NewWebSocketController(gameService)

	app.Get("/health", statusController.Health)
	app.Get("/status", statusController.Status)

	// WebSocket routes
	wsConfig := websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         allowOrigins,
	}
	wsRoutes := app.Group("/ws", middleware.EnsurePlayerID(), middleware.WebSocketUpgrade())
	wsRoutes.Get("/matchmaking", websocket.New(wsController.HandleMatchmaking, wsConfig))
	wsRoutes.Get("/game/:gameId", websocket.New(wsController.HandleConnection, wsConfig))

	// REST routes
	api := app.Group("/api", middleware.EnsurePlayerID())

	gameRoutes := api.Group("/game")
	gameRoutes.Post("/matchmaking/join", gameController.JoinMatchmaking)
	gameRoutes.Post("/matchmaking/leave", gameController.LeaveMatchmaking)
	gameRoutes.Post("/create", gameController.CreateGame)
	gameRoutes.Post("/import", gameController.ImportGame)
	gameRoutes.Post("/join/:gameId", gameController.JoinGame)
	gameRoutes.Get("/:gameId", gameController.GetGameState)
	gameRoutes.Get("/:gameId/fen", gameController.GetFEN)
	gameRoutes.Get("/:gameId/moves/:square", gameController.LegalMoves)
	gameRoutes.Post("/:gameId/move", gameController.MakeMove)
	gameRoutes.Post("/:gameId/reset", gameController.ResetGame)
	gameRoutes.Get("/:gameId/board.svg", gameController.BoardSVG)
}
