package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/benbeisheim/xadrez-backend/internal/model"
	"github.com/benbeisheim/xadrez-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

// GameManager is the registry of rooms and the matchmaking queue.
type GameManager struct {
	games            map[string]*Room
	players          map[string]model.Player
	queue            *model.Queue
	matchingChannels map[string]chan ws.MatchFoundEvent
	mu               sync.RWMutex
	startedAt        time.Time
	newID            func() string
	roomOpts         []RoomOption
}

// Stats is the server summary reported by /status.
type Stats struct {
	Games      int           `json:"games"`
	Players    int           `json:"players"`
	Queued     int           `json:"queued"`
	TotalMoves int           `json:"totalMoves"`
	Uptime     time.Duration `json:"-"`
	UptimeSecs int64         `json:"uptime"`
}

type ManagerOption func(*GameManager)

// WithIDGenerator replaces uuid game IDs.
func WithIDGenerator(newID func() string) ManagerOption {
	return func(gm *GameManager) {
		gm.newID = newID
	}
}

// WithRoomOptions is applied to every room the manager creates.
func WithRoomOptions(opts ...RoomOption) ManagerOption {
	return func(gm *GameManager) {
		gm.roomOpts = append(gm.roomOpts, opts...)
	}
}

func NewGameManager(opts ...ManagerOption) *GameManager {
	gm := &GameManager{
		games:            make(map[string]*Room),
		players:          make(map[string]model.Player),
		queue:            model.NewQueue(),
		matchingChannels: make(map[string]chan ws.MatchFoundEvent),
		startedAt:        time.Now(),
		newID:            func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(gm)
	}
	return gm
}

// CreateGame registers a room under gameID holding game.
func (gm *GameManager) CreateGame(gameID string, game *model.Game) (*Room, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return nil, ErrGameExists
	}

	room := NewRoom(gameID, game, gm.roomOpts...)
	gm.games[gameID] = room
	log.Infof("game %s created", gameID)
	return room, nil
}

// NewGameID returns a fresh game identifier.
func (gm *GameManager) NewGameID() string {
	return gm.newID()
}

func (gm *GameManager) GetGame(gameID string) (*Room, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	room, exists := gm.games[gameID]
	if !exists {
		return nil, fmt.Errorf("game %s: %w", gameID, ErrGameNotFound)
	}
	return room, nil
}

// RemoveGame drops a room and closes its connections.
func (gm *GameManager) RemoveGame(gameID string) error {
	gm.mu.Lock()
	room, exists := gm.games[gameID]
	delete(gm.games, gameID)
	gm.mu.Unlock()

	if !exists {
		return fmt.Errorf("game %s: %w", gameID, ErrGameNotFound)
	}
	room.Hub().CloseAll()
	return nil
}

// RegisterPlayer records a player's display name, keeping an earlier name when
// the new one is empty.
func (gm *GameManager) RegisterPlayer(player model.Player) model.Player {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if existing, ok := gm.players[player.ID]; ok && player.Name == "" {
		return existing
	}
	gm.players[player.ID] = player
	return player
}

func (gm *GameManager) Player(playerID string) (model.Player, bool) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	p, ok := gm.players[playerID]
	return p, ok
}

func (gm *GameManager) AddPlayerToGame(gameID string, player model.Player) (model.Color, error) {
	room, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}
	color, err := room.AddPlayer(player)
	if err != nil {
		return "", fmt.Errorf("game %s: %w", gameID, err)
	}
	log.Infof("game %s: player %s seated as %s", gameID, player.ID, color)
	return color, nil
}

func (gm *GameManager) JoinMatchmaking(player model.Player) error {
	if err := gm.queue.AddPlayer(player); err != nil {
		return err
	}
	log.Infof("player %s joined matchmaking", player.ID)
	return nil
}

func (gm *GameManager) LeaveMatchmaking(playerID string) bool {
	return gm.queue.RemovePlayer(playerID)
}

// RegisterMatchmakingChannel sets where playerID's match notification goes.
// A previously registered channel is closed.
func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan ws.MatchFoundEvent) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if existing, exists := gm.matchingChannels[playerID]; exists {
		delete(gm.matchingChannels, playerID)
		close(existing)
	}
	gm.matchingChannels[playerID] = ch
}

// UnregisterMatchmakingChannel forgets ch without closing it; its creator owns
// it. A different channel registered since for playerID is left alone.
func (gm *GameManager) UnregisterMatchmakingChannel(playerID string, ch chan ws.MatchFoundEvent) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	if current, ok := gm.matchingChannels[playerID]; ok && current == ch {
		delete(gm.matchingChannels, playerID)
	}
}

// RunMatchmaking pairs queued players every interval until ctx is done.
func (gm *GameManager) RunMatchmaking(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for gm.matchNextPair() {
			}
		}
	}
}

// matchNextPair creates one game for the two longest waiting players. It reports
// false when fewer than two players are queued.
func (gm *GameManager) matchNextPair() bool {
	player1, player2, ok := gm.queue.GetNextPair()
	if !ok {
		return false
	}

	gameID := gm.newID()
	room, err := gm.CreateGame(gameID, model.NewGame())
	if err != nil {
		log.Errorf("matchmaking: %v", err)
		return true
	}
	p1Color, err1 := room.AddPlayer(player1)
	p2Color, err2 := room.AddPlayer(player2)
	if err1 != nil || err2 != nil {
		log.Errorf("matchmaking: seating players in %s: %v %v", gameID, err1, err2)
		return true
	}

	gm.mu.Lock()
	defer gm.mu.Unlock()
	sendEventAndCleanup := func(playerID string, event ws.MatchFoundEvent) {
		ch, ok := gm.matchingChannels[playerID]
		if !ok {
			log.Warnf("matchmaking: no channel for player %s", playerID)
			return
		}
		select {
		case ch <- event:
		default:
			log.Warnf("matchmaking: player %s is not listening", playerID)
		}
		delete(gm.matchingChannels, playerID)
		close(ch)
	}
	sendEventAndCleanup(player1.ID, ws.MatchFoundEvent{GameID: gameID, Color: p1Color})
	sendEventAndCleanup(player2.ID, ws.MatchFoundEvent{GameID: gameID, Color: p2Color})
	log.Infof("matchmaking: %s (%s) vs %s (%s) in game %s", player1.ID, p1Color, player2.ID, p2Color, gameID)
	return true
}

func (gm *GameManager) Stats() Stats {
	gm.mu.RLock()
	rooms := make([]*Room, 0, len(gm.games))
	for _, room := range gm.games {
		rooms = append(rooms, room)
	}
	gm.mu.RUnlock()

	stats := Stats{Games: len(rooms), Queued: gm.queue.Size()}
	for _, room := range rooms {
		room.mu.Lock()
		stats.Players += room.playerCount()
		stats.TotalMoves += room.moveCount
		room.mu.Unlock()
	}
	stats.Uptime = time.Since(gm.startedAt)
	stats.UptimeSecs = int64(stats.Uptime / time.Second)
	return stats
}
