package service

import (
	"errors"
	"testing"
	"time"

	"github.com/benbeisheim/xadrez-backend/internal/model"
	"github.com/benbeisheim/xadrez-backend/internal/ws"
	"github.com/google/go-cmp/cmp"
)

type recordingRelay struct {
	moves    []ws.MoveEvent
	gameOver []ws.GameOverEvent
	states   []ws.StateEvent
}

func (r *recordingRelay) PublishMove(ev ws.MoveEvent)         { r.moves = append(r.moves, ev) }
func (r *recordingRelay) PublishGameOver(ev ws.GameOverEvent) { r.gameOver = append(r.gameOver, ev) }
func (r *recordingRelay) PublishState(ev ws.StateEvent)       { r.states = append(r.states, ev) }

var roomTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestRoom(t *testing.T, fen string) (*Room, *recordingRelay) {
	t.Helper()
	game := model.NewGame()
	if fen != "" {
		var err error
		game, err = model.NewGameFromFEN(fen)
		if err != nil {
			t.Fatalf("NewGameFromFEN(%q) error: %v", fen, err)
		}
	}
	relay := &recordingRelay{}
	room := NewRoom("g1", game, WithRelay(relay), WithRoomTimeSource(func() time.Time { return roomTime }))
	return room, relay
}

func seat(t *testing.T, r *Room, ids ...string) {
	t.Helper()
	for _, id := range ids {
		if _, err := r.AddPlayer(model.Player{ID: id, Name: id}); err != nil {
			t.Fatalf("AddPlayer(%s) error: %v", id, err)
		}
	}
}

func sq(label string) model.Square {
	return model.MustSquare(label)
}

func TestRoomSeating(t *testing.T) {
	r, _ := newTestRoom(t, "")
	tests := []struct {
		id      string
		want    model.Color
		wantErr error
	}{
		{"alice", model.White, nil},
		{"bob", model.Black, nil},
		{"alice", model.White, nil},
		{"bob", model.Black, nil},
		{"carol", "", ErrGameFull},
	}
	for _, tt := range tests {
		got, err := r.AddPlayer(model.Player{ID: tt.id})
		if !errors.Is(err, tt.wantErr) {
			t.Fatalf("AddPlayer(%s) error = %v, want %v", tt.id, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("AddPlayer(%s) = %s, want %s", tt.id, got, tt.want)
		}
	}
	if r.IsPlayerInGame("carol") {
		t.Error("carol should not be seated")
	}
}

func TestRoomMakeMoveRelaysEvent(t *testing.T) {
	r, relay := newTestRoom(t, "")
	seat(t, r, "alice", "bob")

	if _, err := r.MakeMove("bob", sq("e7"), sq("e5")); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("black moving first error = %v, want ErrNotYourTurn", err)
	}
	if _, err := r.MakeMove("bob", sq("e2"), sq("e4")); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("bob moving white piece error = %v, want ErrNotYourTurn", err)
	}
	if _, err := r.MakeMove("mallory", sq("e2"), sq("e4")); !errors.Is(err, ErrNotSeated) {
		t.Fatalf("spectator move error = %v, want ErrNotSeated", err)
	}
	if _, err := r.MakeMove("alice", sq("e2"), sq("e5")); !errors.Is(err, model.ErrIllegalMove) {
		t.Fatalf("illegal move error = %v, want ErrIllegalMove", err)
	}
	if len(relay.moves) != 0 {
		t.Fatalf("rejected moves were relayed: %+v", relay.moves)
	}

	if _, err := r.MakeMove("alice", sq("e2"), sq("e4")); err != nil {
		t.Fatalf("MakeMove(e2, e4) error: %v", err)
	}
	if _, err := r.MakeMove("bob", sq("e7"), sq("e5")); err != nil {
		t.Fatalf("MakeMove(e7, e5) error: %v", err)
	}

	if len(relay.moves) != 2 {
		t.Fatalf("relayed %d moves, want 2", len(relay.moves))
	}
	got := relay.moves[1]
	if got.ID != 2 || got.PlayerID != "bob" || got.ActiveColor != model.White || got.Move.From != sq("e7") {
		t.Errorf("second event = %+v", got)
	}
	if r.MoveCount() != 2 {
		t.Errorf("MoveCount() = %d, want 2", r.MoveCount())
	}
}

func TestRoomHotSeat(t *testing.T) {
	r, _ := newTestRoom(t, "")
	seat(t, r, "solo", "solo")
	for _, mv := range [][2]string{{"e2", "e4"}, {"e7", "e5"}, {"d1", "h5"}} {
		if _, err := r.MakeMove("solo", sq(mv[0]), sq(mv[1])); err != nil {
			t.Fatalf("hot-seat move %s-%s error: %v", mv[0], mv[1], err)
		}
	}
}

func TestRoomKingCapture(t *testing.T) {
	r, relay := newTestRoom(t, "4k3/8/8/8/8/8/4Q3/4K3 w")
	seat(t, r, "alice", "bob")

	res, err := r.MakeMove("alice", sq("e2"), sq("e8"))
	if err != nil {
		t.Fatalf("MakeMove() error: %v", err)
	}
	if !res.Finished() {
		t.Fatalf("result = %+v, want finished", res)
	}
	want := []ws.GameOverEvent{{GameID: "g1", Winner: model.White, At: roomTime}}
	if diff := cmp.Diff(want, relay.gameOver); diff != "" {
		t.Errorf("game over events mismatch (-want +got):\n%s", diff)
	}
	if len(relay.moves) != 1 || relay.moves[0].Status != model.StatusFinished {
		t.Errorf("move events = %+v", relay.moves)
	}

	_, err = r.MakeMove("bob", sq("e8"), sq("d8"))
	if !errors.Is(err, model.ErrGameFinished) {
		t.Errorf("move after finish error = %v, want ErrGameFinished", err)
	}

	if err := r.Reset("mallory"); !errors.Is(err, ErrNotSeated) {
		t.Errorf("Reset by spectator error = %v, want ErrNotSeated", err)
	}
	if err := r.Reset("bob"); err != nil {
		t.Fatalf("Reset() error: %v", err)
	}
	state := r.State()
	if state.Status != model.StatusActive || state.FEN != model.InitialFEN || r.MoveCount() != 0 {
		t.Errorf("after reset: status %s fen %q moves %d", state.Status, state.FEN, r.MoveCount())
	}
	if len(relay.states) != 1 {
		t.Errorf("reset relayed %d states, want 1", len(relay.states))
	}
}

func TestRoomStateSeats(t *testing.T) {
	r, _ := newTestRoom(t, "")
	seat(t, r, "alice")
	state := r.State()
	if state.GameID != "g1" || state.Players.White == nil || state.Players.White.ID != "alice" || state.Players.Black != nil {
		t.Errorf("state players = %+v", state.Players)
	}
	state.Players.White.Name = "changed"
	if r.State().Players.White.Name != "alice" {
		t.Error("State exposes internal seat")
	}
}
