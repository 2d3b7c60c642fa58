package controller

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/benbeisheim/xadrez-backend/internal/model"
	"github.com/benbeisheim/xadrez-backend/internal/service"
	"github.com/benbeisheim/xadrez-backend/internal/ws"
)

type recordingConn struct {
	mu       sync.Mutex
	messages []ws.Message
}

func (c *recordingConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, v.(ws.Message))
	return nil
}

func (c *recordingConn) Close() error { return nil }

func (c *recordingConn) types() []ws.MessageType {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ws.MessageType, len(c.messages))
	for i, m := range c.messages {
		out[i] = m.Type
	}
	return out
}

func (c *recordingConn) last() ws.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.messages[len(c.messages)-1]
}

func newWSFixture(t *testing.T, fen string) (*WebSocketController, *service.GameService, string, *recordingConn, *recordingConn) {
	t.Helper()
	gs := service.NewGameService(service.NewGameManager())
	gameID, err := gs.ImportGame(fen)
	if err != nil {
		t.Fatalf("ImportGame() error: %v", err)
	}
	white, black := &recordingConn{}, &recordingConn{}
	for _, id := range []string{"alice", "bob"} {
		if _, err := gs.JoinGame(gameID, id, id); err != nil {
			t.Fatalf("JoinGame(%s) error: %v", id, err)
		}
	}
	if err := gs.RegisterConnection(gameID, "alice", white); err != nil {
		t.Fatalf("RegisterConnection(alice) error: %v", err)
	}
	if err := gs.RegisterConnection(gameID, "bob", black); err != nil {
		t.Fatalf("RegisterConnection(bob) error: %v", err)
	}
	return NewWebSocketController(gs), gs, gameID, white, black
}

func message(t *testing.T, typ ws.MessageType, payload interface{}) ws.Message {
	t.Helper()
	msg, err := ws.NewMessage(typ, payload)
	if err != nil {
		t.Fatalf("NewMessage() error: %v", err)
	}
	return msg
}

func TestWebSocketMoveIsRelayed(t *testing.T) {
	wsc, _, gameID, white, black := newWSFixture(t, model.InitialFEN)

	move := model.SimpleMove{From: model.MustSquare("e2"), To: model.MustSquare("e4")}
	if err := wsc.handleMessage(gameID, "alice", message(t, ws.MessageTypeMove, move)); err != nil {
		t.Fatalf("handleMessage(move) error: %v", err)
	}

	for name, conn := range map[string]*recordingConn{"white": white, "black": black} {
		got := conn.types()
		if len(got) != 2 || got[0] != ws.MessageTypeGameState || got[1] != ws.MessageTypeMoveApplied {
			t.Errorf("%s received %v", name, got)
			continue
		}
		var ev ws.MoveEvent
		if err := json.Unmarshal(conn.last().Payload, &ev); err != nil {
			t.Fatalf("decoding move event: %v", err)
		}
		if ev.ID != 1 || ev.Move.Notation != "e4" || ev.ActiveColor != model.Black {
			t.Errorf("%s event = %+v", name, ev)
		}
	}

	err := wsc.handleMessage(gameID, "alice", message(t, ws.MessageTypeMove, move))
	if !errors.Is(err, service.ErrNotYourTurn) {
		t.Errorf("second white move error = %v, want ErrNotYourTurn", err)
	}
}

func TestWebSocketLegalMovesReply(t *testing.T) {
	wsc, _, gameID, white, black := newWSFixture(t, model.InitialFEN)

	req := ws.LegalMovesRequest{Square: model.MustSquare("g1")}
	if err := wsc.handleMessage(gameID, "alice", message(t, ws.MessageTypeLegalMoves, req)); err != nil {
		t.Fatalf("handleMessage(legalMoves) error: %v", err)
	}
	reply := white.last()
	if reply.Type != ws.MessageTypeLegalMoves {
		t.Fatalf("reply type = %s", reply.Type)
	}
	var resp ws.LegalMovesResponse
	if err := json.Unmarshal(reply.Payload, &resp); err != nil {
		t.Fatalf("decoding reply: %v", err)
	}
	if len(resp.Destinations) != 2 {
		t.Errorf("destinations = %v", resp.Destinations)
	}
	if len(black.types()) != 1 {
		t.Errorf("legal moves reply leaked to the other player: %v", black.types())
	}
}

func TestWebSocketKingCaptureSendsGameOver(t *testing.T) {
	wsc, _, gameID, _, black := newWSFixture(t, "4k3/8/8/8/8/8/4Q3/4K3 w")

	move := model.SimpleMove{From: model.MustSquare("e2"), To: model.MustSquare("e8")}
	if err := wsc.handleMessage(gameID, "alice", message(t, ws.MessageTypeMove, move)); err != nil {
		t.Fatalf("handleMessage(move) error: %v", err)
	}
	got := black.types()
	want := []ws.MessageType{ws.MessageTypeGameState, ws.MessageTypeMoveApplied, ws.MessageTypeGameOver}
	if len(got) != len(want) {
		t.Fatalf("black received %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("black received %v, want %v", got, want)
		}
	}

	if err := wsc.handleMessage(gameID, "bob", message(t, ws.MessageTypeReset, struct{}{})); err != nil {
		t.Fatalf("handleMessage(reset) error: %v", err)
	}
	if black.last().Type != ws.MessageTypeGameState {
		t.Errorf("reset broadcast %s, want gameState", black.last().Type)
	}
}

func TestWebSocketErrorsGoToSender(t *testing.T) {
	wsc, _, gameID, white, black := newWSFixture(t, model.InitialFEN)

	err := wsc.handleMessage(gameID, "alice", ws.Message{Type: "castle"})
	if err == nil {
		t.Fatal("unknown message type accepted")
	}
	wsc.sendError(gameID, "alice", err)

	if white.last().Type != ws.MessageTypeError {
		t.Fatalf("white last message = %s, want error", white.last().Type)
	}
	var payload ws.ErrorPayload
	if err := json.Unmarshal(white.last().Payload, &payload); err != nil || payload.Error == "" {
		t.Errorf("error payload = %s (%v)", white.last().Payload, err)
	}
	if len(black.types()) != 1 {
		t.Errorf("error leaked to the other player: %v", black.types())
	}
}
