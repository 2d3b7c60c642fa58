package ws

import (
	"errors"
	"sync"

	"github.com/gofiber/fiber/v2/log"
)

var ErrDuplicateConnection = errors.New("connection already exists")

// Conn is the part of a websocket connection the hub writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Hub holds the open connections of one game, keyed by player ID, and relays
// committed moves to them. Writes happen under the hub lock so a connection
// never sees two concurrent writers.
type Hub struct {
	gameID      string
	mu          sync.Mutex
	connections map[string]Conn
}

func NewHub(gameID string) *Hub {
	return &Hub{
		gameID:      gameID,
		connections: make(map[string]Conn),
	}
}

// Register adds conn for playerID. A player keeps the first healthy connection.
func (h *Hub) Register(playerID string, conn Conn) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.connections[playerID]; exists {
		return ErrDuplicateConnection
	}
	h.connections[playerID] = conn
	log.Debugf("game %s: registered connection for player %s", h.gameID, playerID)
	return nil
}

// Unregister removes playerID only while conn is still its current connection.
func (h *Hub) Unregister(playerID string, conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if current, exists := h.connections[playerID]; exists && current == conn {
		delete(h.connections, playerID)
		log.Debugf("game %s: unregistered connection for player %s", h.gameID, playerID)
	}
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.connections)
}

// Send writes msg to one player. Unknown players are ignored.
func (h *Hub) Send(playerID string, msg Message) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn, ok := h.connections[playerID]
	if !ok {
		return nil
	}
	if err := conn.WriteJSON(msg); err != nil {
		delete(h.connections, playerID)
		return err
	}
	return nil
}

// Broadcast writes msg to every connection, dropping the ones that fail.
func (h *Hub) Broadcast(msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for playerID, conn := range h.connections {
		if err := conn.WriteJSON(msg); err != nil {
			log.Warnf("game %s: failed to send %s to player %s: %v", h.gameID, msg.Type, playerID, err)
			delete(h.connections, playerID)
			_ = conn.Close()
		}
	}
}

func (h *Hub) publish(t MessageType, payload interface{}) {
	msg, err := NewMessage(t, payload)
	if err != nil {
		log.Errorf("game %s: failed to encode %s: %v", h.gameID, t, err)
		return
	}
	h.Broadcast(msg)
}

func (h *Hub) PublishMove(ev MoveEvent) {
	h.publish(MessageTypeMoveApplied, ev)
}

func (h *Hub) PublishGameOver(ev GameOverEvent) {
	h.publish(MessageTypeGameOver, ev)
}

func (h *Hub) PublishState(ev StateEvent) {
	h.publish(MessageTypeGameState, ev)
}

// CloseAll closes and forgets every connection.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for playerID, conn := range h.connections {
		_ = conn.Close()
		delete(h.connections, playerID)
	}
}
