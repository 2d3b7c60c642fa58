package service

import (
	"fmt"

	"github.com/benbeisheim/xadrez-backend/internal/model"
	"github.com/benbeisheim/xadrez-backend/internal/ws"
	petname "github.com/dustinkirkland/golang-petname"
	"github.com/gofiber/fiber/v2/log"
)

// GameService is the API the controllers talk to. Squares arrive as labels.
type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

// identify returns the known player for playerID, naming newcomers.
func (gs *GameService) identify(playerID, name string) model.Player {
	if name == "" {
		if known, ok := gs.gameManager.Player(playerID); ok {
			return known
		}
		name = petname.Generate(2, "-")
	}
	return gs.gameManager.RegisterPlayer(model.Player{ID: playerID, Name: name})
}

func (gs *GameService) CreateGame() (string, error) {
	gameID := gs.gameManager.NewGameID()
	if _, err := gs.gameManager.CreateGame(gameID, model.NewGame()); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}
	return gameID, nil
}

// ImportGame starts a game from an exported position.
func (gs *GameService) ImportGame(fen string) (string, error) {
	game, err := model.NewGameFromFEN(fen)
	if err != nil {
		return "", err
	}
	gameID := gs.gameManager.NewGameID()
	if _, err := gs.gameManager.CreateGame(gameID, game); err != nil {
		return "", fmt.Errorf("failed to import game: %w", err)
	}
	return gameID, nil
}

func (gs *GameService) JoinGame(gameID, playerID, name string) (model.Color, error) {
	return gs.gameManager.AddPlayerToGame(gameID, gs.identify(playerID, name))
}

func (gs *GameService) JoinMatchmaking(playerID, name string) error {
	return gs.gameManager.JoinMatchmaking(gs.identify(playerID, name))
}

func (gs *GameService) LeaveMatchmaking(playerID string) {
	gs.gameManager.LeaveMatchmaking(playerID)
}

func (gs *GameService) GetGameState(gameID string) (RoomState, error) {
	room, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return RoomState{}, err
	}
	return room.State(), nil
}

func (gs *GameService) GetFEN(gameID string) (string, error) {
	room, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return room.FEN(), nil
}

// GetBoard returns the position and, when there is one, the last move.
func (gs *GameService) GetBoard(gameID string) (model.Board, *model.SimpleMove, error) {
	room, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.Board{}, nil, err
	}
	var last *model.SimpleMove
	if mv, ok := room.LastMove(); ok {
		last = &model.SimpleMove{From: mv.From, To: mv.To}
	}
	return room.Board(), last, nil
}

func (gs *GameService) LegalMoves(gameID, square string) ([]model.Square, error) {
	room, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	sq, err := model.ParseSquare(square)
	if err != nil {
		return nil, err
	}
	return room.LegalMoves(sq), nil
}

func (gs *GameService) HandleMove(gameID, playerID string, move model.SimpleMove) (model.MoveResult, error) {
	room, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.MoveResult{}, err
	}
	res, err := room.MakeMove(playerID, move.From, move.To)
	if err != nil {
		log.Debugf("game %s: move %s-%s by %s rejected: %v", gameID, move.From, move.To, playerID, err)
		return model.MoveResult{}, err
	}
	if res.Finished() {
		log.Infof("game %s: %s captured the king", gameID, res.Winner)
	}
	return res, nil
}

func (gs *GameService) ResetGame(gameID, playerID string) error {
	room, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return room.Reset(playerID)
}

// RegisterConnection attaches conn to the game's hub and sends it the current state.
func (gs *GameService) RegisterConnection(gameID, playerID string, conn ws.Conn) error {
	room, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	if err := room.Hub().Register(playerID, conn); err != nil {
		return err
	}
	msg, err := ws.NewMessage(ws.MessageTypeGameState, ws.StateEvent{GameID: gameID, State: room.State()})
	if err != nil {
		return err
	}
	return room.Hub().Send(playerID, msg)
}

func (gs *GameService) UnregisterConnection(gameID, playerID string, conn ws.Conn) {
	room, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return
	}
	room.Hub().Unregister(playerID, conn)
}

// SendTo writes msg to one player's connection in gameID.
func (gs *GameService) SendTo(gameID, playerID string, msg ws.Message) error {
	room, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return room.Hub().Send(playerID, msg)
}

func (gs *GameService) RegisterMatchmakingChannel(playerID string, ch chan ws.MatchFoundEvent) {
	gs.gameManager.RegisterMatchmakingChannel(playerID, ch)
}

func (gs *GameService) UnregisterMatchmakingChannel(playerID string, ch chan ws.MatchFoundEvent) {
	gs.gameManager.UnregisterMatchmakingChannel(playerID, ch)
}

func (gs *GameService) Status() Stats {
	return gs.gameManager.Stats()
}
