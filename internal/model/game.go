package model

import (
	"time"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusFinished Status = "finished"
)

// Game owns one board, the side to move and the move history. It holds no lock:
// callers that share a Game between goroutines must serialize access themselves.
type Game struct {
	board       Board
	activeColor Color
	history     []Move
	status      Status
	winner      Color
	now         func() time.Time
}

// PlacedPiece pairs a piece with its square for exported snapshots.
type PlacedPiece struct {
	Square Square `json:"square"`
	Piece  Piece  `json:"piece"`
}

// GameState is a read-only snapshot of a Game.
type GameState struct {
	FEN         string        `json:"fen"`
	Board       []PlacedPiece `json:"board"`
	ActiveColor Color         `json:"activeColor"`
	Status      Status        `json:"status"`
	Winner      Color         `json:"winner,omitempty"`
	MoveHistory []Move        `json:"moveHistory"`
	LastMove    *SimpleMove   `json:"lastMove"`
}

type GameOption func(*Game)

// WithTimeSource replaces time.Now for move timestamps.
func WithTimeSource(now func() time.Time) GameOption {
	return func(g *Game) {
		if now != nil {
			g.now = now
		}
	}
}

func NewGame(opts ...GameOption) *Game {
	g := &Game{now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	g.Reset()
	return g
}

// NewGameFromFEN starts an active game from an exported position.
func NewGameFromFEN(fen string, opts ...GameOption) (*Game, error) {
	board, active, err := ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	g := NewGame(opts...)
	g.board = board
	g.activeColor = active
	return g, nil
}

// Reset discards everything and sets up the initial position with white to move.
func (g *Game) Reset() {
	g.board = newBoard()
	g.activeColor = White
	g.history = make([]Move, 0)
	g.status = StatusActive
	g.winner = ""
}

func (g *Game) Board() Board {
	return g.board
}

func (g *Game) ActiveColor() Color {
	return g.activeColor
}

func (g *Game) Status() Status {
	return g.status
}

func (g *Game) IsFinished() bool {
	return g.status == StatusFinished
}

// Winner returns the winning color once the game is finished.
func (g *Game) Winner() (Color, bool) {
	return g.winner, g.status == StatusFinished
}

// History returns a copy of the committed moves, oldest first.
func (g *Game) History() []Move {
	out := make([]Move, len(g.history))
	copy(out, g.history)
	return out
}

func (g *Game) LastMove() (Move, bool) {
	if len(g.history) == 0 {
		return Move{}, false
	}
	return g.history[len(g.history)-1], true
}

// Selectable reports whether the piece on sq belongs to the side to move in an active game.
func (g *Game) Selectable(sq Square) bool {
	if g.status != StatusActive {
		return false
	}
	p, ok := g.board.PieceAt(sq)
	return ok && p.Color == g.activeColor
}

// LegalMovesFrom is empty unless sq is selectable.
func (g *Game) LegalMovesFrom(sq Square) []Square {
	if !g.Selectable(sq) {
		return []Square{}
	}
	moves := LegalDestinations(&g.board, sq)
	if moves == nil {
		return []Square{}
	}
	return moves
}

// ApplyMove commits from-to for the side to move. A rejected move leaves the game
// untouched. Capturing a king finishes the game in the mover's favor; the board
// and turn then stay as they were and the capturing move is returned for relaying.
func (g *Game) ApplyMove(from, to Square) (MoveResult, error) {
	if err := g.validateMove(from, to); err != nil {
		return MoveResult{}, err
	}

	piece, _ := g.board.PieceAt(from)
	move := Move{
		From:      from,
		To:        to,
		Piece:     piece,
		Color:     g.activeColor,
		Timestamp: g.now(),
	}
	if captured, ok := g.board.PieceAt(to); ok {
		move.CapturedPiece = &captured
	}
	move.Notation = getNotation(piece, from, to, move.IsCapture())

	if move.CapturedPiece != nil && move.CapturedPiece.Type == King {
		g.status = StatusFinished
		g.winner = g.activeColor
		return g.result(move), nil
	}

	g.board.move(from, to)
	g.history = append(g.history, move)
	g.switchTurn()
	return g.result(move), nil
}

func (g *Game) validateMove(from, to Square) error {
	if g.status == StatusFinished {
		return &MoveError{Err: ErrGameFinished, From: from, To: to}
	}
	if !from.Valid() || !to.Valid() {
		return &MoveError{Err: ErrInvalidSquare, From: from, To: to, Reason: "out of bounds"}
	}
	piece, ok := g.board.PieceAt(from)
	if !ok {
		return &MoveError{Err: ErrIllegalMove, From: from, To: to, Reason: "no piece at origin"}
	}
	if piece.Color != g.activeColor {
		return &MoveError{Err: ErrIllegalMove, From: from, To: to, Reason: "not " + string(piece.Color) + "'s turn"}
	}
	if !containsSquare(LegalDestinations(&g.board, from), to) {
		return &MoveError{Err: ErrIllegalMove, From: from, To: to, Reason: "destination not reachable"}
	}
	return nil
}

func (g *Game) result(move Move) MoveResult {
	return MoveResult{
		Move:        move,
		ActiveColor: g.activeColor,
		Status:      g.status,
		Winner:      g.winner,
	}
}

func (g *Game) switchTurn() {
	g.activeColor = g.activeColor.Opposite()
}

// State snapshots the game for export.
func (g *Game) State() GameState {
	state := GameState{
		FEN:         g.FEN(),
		Board:       make([]PlacedPiece, 0, 32),
		ActiveColor: g.activeColor,
		Status:      g.status,
		Winner:      g.winner,
		MoveHistory: g.History(),
	}
	for i, p := range g.board.squares {
		if p.Type != "" {
			state.Board = append(state.Board, PlacedPiece{Square: squareAt(i), Piece: p})
		}
	}
	if last, ok := g.LastMove(); ok {
		state.LastMove = &SimpleMove{From: last.From, To: last.To}
	}
	return state
}

// FEN exports the piece placement and side to move.
func (g *Game) FEN() string {
	return g.board.FEN(g.activeColor)
}
