package service

import (
	"sync"
	"time"

	"github.com/benbeisheim/xadrez-backend/internal/model"
	"github.com/benbeisheim/xadrez-backend/internal/ws"
)

// Relay is the outbound side of move synchronization. ws.Hub implements it.
type Relay interface {
	PublishMove(ev ws.MoveEvent)
	PublishGameOver(ev ws.GameOverEvent)
	PublishState(ev ws.StateEvent)
}

// Room wraps one model.Game for concurrent callers. Every call into the game
// happens under mu, so at most one move is in flight per game.
type Room struct {
	ID        string
	mu        sync.Mutex
	game      *model.Game
	hub       *ws.Hub
	relay     Relay
	clock     *model.Clock
	white     *model.ClientPlayer
	black     *model.ClientPlayer
	moveCount int
	now       func() time.Time
}

type Seats struct {
	White *model.ClientPlayer `json:"white"`
	Black *model.ClientPlayer `json:"black"`
}

// RoomState is the snapshot sent to clients.
type RoomState struct {
	GameID string `json:"gameId"`
	model.GameState
	Players        Seats `json:"players"`
	ElapsedSeconds int64 `json:"elapsedSeconds"`
}

type RoomOption func(*Room)

// WithRelay sends move events somewhere other than the room's own hub.
func WithRelay(relay Relay) RoomOption {
	return func(r *Room) {
		r.relay = relay
	}
}

// WithRoomTimeSource drives the game clock and event timestamps from now.
func WithRoomTimeSource(now func() time.Time) RoomOption {
	return func(r *Room) {
		r.now = now
	}
}

func NewRoom(id string, game *model.Game, opts ...RoomOption) *Room {
	r := &Room{
		ID:   id,
		game: game,
		hub:  ws.NewHub(id),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.relay == nil {
		r.relay = r.hub
	}
	r.clock = model.NewClockWithTimeSource(r.now)
	if !game.IsFinished() {
		r.clock.Start()
	}
	return r
}

func (r *Room) Hub() *ws.Hub {
	return r.hub
}

// AddPlayer seats player as white, then black. The same player may take both
// seats for a hot-seat game; a seated player joining a full room gets their color back.
func (r *Room) AddPlayer(player model.Player) (model.Color, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.white == nil {
		r.white = &model.ClientPlayer{ID: player.ID, Name: player.Name, Color: model.White}
		return model.White, nil
	}
	if r.black == nil {
		r.black = &model.ClientPlayer{ID: player.ID, Name: player.Name, Color: model.Black}
		return model.Black, nil
	}
	if r.white.ID == player.ID {
		return model.White, nil
	}
	if r.black.ID == player.ID {
		return model.Black, nil
	}
	return "", ErrGameFull
}

func (r *Room) IsPlayerInGame(playerID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.isPlayerInGame(playerID)
}

func (r *Room) isPlayerInGame(playerID string) bool {
	return (r.white != nil && r.white.ID == playerID) || (r.black != nil && r.black.ID == playerID)
}

func (r *Room) seatedAs(playerID string, color model.Color) bool {
	switch color {
	case model.White:
		return r.white != nil && r.white.ID == playerID
	case model.Black:
		return r.black != nil && r.black.ID == playerID
	}
	return false
}

func (r *Room) playerCount() int {
	n := 0
	if r.white != nil {
		n++
	}
	if r.black != nil && (r.white == nil || r.black.ID != r.white.ID) {
		n++
	}
	return n
}

// LegalMoves answers the destination query for sq.
func (r *Room) LegalMoves(sq model.Square) []model.Square {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.game.LegalMovesFrom(sq)
}

// MakeMove applies from-to on behalf of playerID and relays the outcome.
func (r *Room) MakeMove(playerID string, from, to model.Square) (model.MoveResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.game.IsFinished() {
		if !r.isPlayerInGame(playerID) {
			return model.MoveResult{}, ErrNotSeated
		}
		if !r.seatedAs(playerID, r.game.ActiveColor()) {
			return model.MoveResult{}, ErrNotYourTurn
		}
	}

	res, err := r.game.ApplyMove(from, to)
	if err != nil {
		return model.MoveResult{}, err
	}
	r.moveCount++

	r.relay.PublishMove(ws.MoveEvent{
		ID:          r.moveCount,
		GameID:      r.ID,
		PlayerID:    playerID,
		Move:        res.Move,
		ActiveColor: res.ActiveColor,
		Status:      res.Status,
	})
	if res.Finished() {
		r.clock.Stop()
		r.relay.PublishGameOver(ws.GameOverEvent{
			GameID: r.ID,
			Winner: res.Winner,
			At:     r.now(),
		})
	}
	return res, nil
}

// Reset starts the game over. Only seated players may reset.
func (r *Room) Reset(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.isPlayerInGame(playerID) {
		return ErrNotSeated
	}
	r.game.Reset()
	r.moveCount = 0
	r.clock.Reset()
	r.clock.Start()
	r.relay.PublishState(ws.StateEvent{GameID: r.ID, State: r.state()})
	return nil
}

func (r *Room) State() RoomState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state()
}

func (r *Room) state() RoomState {
	return RoomState{
		GameID:         r.ID,
		GameState:      r.game.State(),
		Players:        Seats{White: copySeat(r.white), Black: copySeat(r.black)},
		ElapsedSeconds: int64(r.clock.Elapsed() / time.Second),
	}
}

func copySeat(p *model.ClientPlayer) *model.ClientPlayer {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

func (r *Room) FEN() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.game.FEN()
}

func (r *Room) Board() model.Board {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.game.Board()
}

// LastMove returns the most recent committed move, if any.
func (r *Room) LastMove() (model.Move, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.game.LastMove()
}

// MoveCount is the number of moves committed since the last reset.
func (r *Room) MoveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.moveCount
}
