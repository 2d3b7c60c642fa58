package controller

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/benbeisheim/xadrez-backend/internal/middleware"
	"github.com/benbeisheim/xadrez-backend/internal/model"
	"github.com/benbeisheim/xadrez-backend/internal/service"
	"github.com/benbeisheim/xadrez-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

func connPlayer(c *websocket.Conn) (string, string) {
	id, _ := c.Locals(middleware.PlayerIDKey).(string)
	name, _ := c.Locals(middleware.PlayerNameKey).(string)
	return id, name
}

// HandleConnection attaches the socket to the game's hub and serves inbound
// commands until the client goes away. Spectators may connect and query legal
// moves; moves and resets are checked against the seats.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID, _ := connPlayer(c)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Warnf("game %s: failed to register connection for %s: %v", gameID, playerID, err)
		wsc.closeWithReason(c, err)
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, c)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warnf("game %s: read error from %s: %v", gameID, playerID, err)
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.sendError(gameID, playerID, fmt.Errorf("malformed message: %w", err))
			continue
		}
		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			log.Debugf("game %s: %s from %s failed: %v", gameID, msg.Type, playerID, err)
			wsc.sendError(gameID, playerID, err)
		}
	}
}

func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.SimpleMove
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		// the hub relays the committed move to every participant
		_, err := wsc.gameService.HandleMove(gameID, playerID, move)
		return err

	case ws.MessageTypeLegalMoves:
		var req ws.LegalMovesRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return err
		}
		destinations, err := wsc.gameService.LegalMoves(gameID, req.Square.String())
		if err != nil {
			return err
		}
		reply, err := ws.NewMessage(ws.MessageTypeLegalMoves, ws.LegalMovesResponse{
			Square:       req.Square,
			Destinations: destinations,
		})
		if err != nil {
			return err
		}
		return wsc.gameService.SendTo(gameID, playerID, reply)

	case ws.MessageTypeReset:
		return wsc.gameService.ResetGame(gameID, playerID)

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

// sendError goes through the hub so it never races a broadcast on the same socket.
func (wsc *WebSocketController) sendError(gameID, playerID string, cause error) {
	msg, err := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: cause.Error()})
	if err != nil {
		return
	}
	if err := wsc.gameService.SendTo(gameID, playerID, msg); err != nil {
		log.Debugf("game %s: failed to send error to %s: %v", gameID, playerID, err)
	}
}

// closeWithReason is only used before the socket joins a hub.
func (wsc *WebSocketController) closeWithReason(c *websocket.Conn, cause error) {
	code := websocket.CloseInternalServerErr
	switch {
	case errors.Is(cause, ws.ErrDuplicateConnection):
		code = websocket.ClosePolicyViolation
	case errors.Is(cause, service.ErrGameNotFound):
		code = websocket.CloseNormalClosure
	}
	_ = c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(code, cause.Error()))
	_ = c.Close()
}

// HandleMatchmaking queues the player and waits for a pairing. The socket gets a
// single matchFound message and is then closed; disconnecting leaves the queue.
func (wsc *WebSocketController) HandleMatchmaking(c *websocket.Conn) {
	playerID, name := connPlayer(c)

	matchFound := make(chan ws.MatchFoundEvent, 1)
	wsc.gameService.RegisterMatchmakingChannel(playerID, matchFound)
	if err := wsc.gameService.JoinMatchmaking(playerID, name); err != nil && !errors.Is(err, model.ErrAlreadyQueued) {
		wsc.gameService.UnregisterMatchmakingChannel(playerID, matchFound)
		wsc.closeWithReason(c, err)
		return
	}

	disconnected := make(chan struct{})
	go func() {
		defer close(disconnected)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	select {
	case event, ok := <-matchFound:
		if !ok {
			// a newer matchmaking socket for this player took over
			_ = c.Close()
			return
		}
		msg, err := ws.NewMessage(ws.MessageTypeMatchFound, event)
		if err == nil {
			err = c.WriteJSON(msg)
		}
		if err != nil {
			log.Warnf("matchmaking: failed to notify %s of game %s: %v", playerID, event.GameID, err)
		}
		_ = c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "match found"))
	case <-disconnected:
		wsc.gameService.LeaveMatchmaking(playerID)
		wsc.gameService.UnregisterMatchmakingChannel(playerID, matchFound)
	}
	_ = c.Close()
}
