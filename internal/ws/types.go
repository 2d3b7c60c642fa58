package ws

import (
	"encoding/json"
	"time"

	"github.com/benbeisheim/xadrez-backend/internal/model"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	// inbound
	MessageTypeMove       MessageType = "move"
	MessageTypeLegalMoves MessageType = "legalMoves"
	MessageTypeReset      MessageType = "reset"

	// outbound
	MessageTypeGameState   MessageType = "gameState"
	MessageTypeMoveApplied MessageType = "moveApplied"
	MessageTypeGameOver    MessageType = "gameOver"
	MessageTypeMatchFound  MessageType = "matchFound"
	MessageTypeError       MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// NewMessage encodes payload into a Message of type t.
func NewMessage(t MessageType, payload interface{}) (Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: data}, nil
}

// LegalMovesRequest asks for the destinations of the piece on Square.
type LegalMovesRequest struct {
	Square model.Square `json:"square"`
}

type LegalMovesResponse struct {
	Square       model.Square   `json:"square"`
	Destinations []model.Square `json:"destinations"`
}

// MoveEvent is relayed to every participant after a move is committed. ID counts
// moves within the game starting at 1.
type MoveEvent struct {
	ID          int          `json:"id"`
	GameID      string       `json:"gameId"`
	PlayerID    string       `json:"playerId"`
	Move        model.Move   `json:"move"`
	ActiveColor model.Color  `json:"activeColor"`
	Status      model.Status `json:"status"`
}

type GameOverEvent struct {
	GameID string      `json:"gameId"`
	Winner model.Color `json:"winner"`
	At     time.Time   `json:"at"`
}

// StateEvent carries a full snapshot, sent on connect and after a reset.
type StateEvent struct {
	GameID string      `json:"gameId"`
	State  interface{} `json:"state"`
}

type MatchFoundEvent struct {
	GameID string      `json:"gameId"`
	Color  model.Color `json:"color"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}
