package model

import (
	"strings"
)

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

// getPieceNotation returns the upper case letter used in position strings.
func (p PieceType) getPieceNotation() byte {
	switch p {
	case King:
		return 'K'
	case Queen:
		return 'Q'
	case Rook:
		return 'R'
	case Bishop:
		return 'B'
	case Knight:
		return 'N'
	case Pawn:
		return 'P'
	}
	return '?'
}

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) Valid() bool {
	return c == White || c == Black
}

type Piece struct {
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
}

// Notation is the piece letter, upper case for white and lower case for black.
func (p Piece) Notation() byte {
	letter := p.Type.getPieceNotation()
	if p.Color == Black {
		return letter + ('a' - 'A')
	}
	return letter
}

// Board maps every square to at most one piece. The zero value is an empty board.
type Board struct {
	squares [boardFiles * boardRanks]Piece
}

var backRank = [boardFiles]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

func newBoard() Board {
	var board Board
	for file := 0; file < boardFiles; file++ {
		board.place(Square{File: file, Rank: 1}, Piece{Type: backRank[file], Color: White})
		board.place(Square{File: file, Rank: 2}, Piece{Type: Pawn, Color: White})
		board.place(Square{File: file, Rank: 7}, Piece{Type: Pawn, Color: Black})
		board.place(Square{File: file, Rank: 8}, Piece{Type: backRank[file], Color: Black})
	}
	return board
}

// StandardBoard returns the initial position.
func StandardBoard() Board {
	return newBoard()
}

// PieceAt reports the piece on sq. The second result is false for an empty square
// or an address outside the board.
func (b *Board) PieceAt(sq Square) (Piece, bool) {
	if !sq.Valid() {
		return Piece{}, false
	}
	p := b.squares[sq.index()]
	return p, p.Type != ""
}

func (b *Board) isEmpty(sq Square) bool {
	_, ok := b.PieceAt(sq)
	return !ok
}

func (b *Board) place(sq Square, p Piece) {
	b.squares[sq.index()] = p
}

func (b *Board) remove(sq Square) {
	b.squares[sq.index()] = Piece{}
}

// move places the origin piece on the destination, overwriting whatever was there.
func (b *Board) move(from, to Square) {
	p := b.squares[from.index()]
	b.place(to, p)
	b.remove(from)
}

// Pieces lists the squares occupied by color, a1 first.
func (b *Board) Pieces(color Color) []Square {
	var out []Square
	for i, p := range b.squares {
		if p.Type != "" && p.Color == color {
			out = append(out, squareAt(i))
		}
	}
	return out
}

// String draws the board rank 8 first, one line per rank, '.' for empty squares.
func (b *Board) String() string {
	var sb strings.Builder
	for rank := boardRanks; rank >= 1; rank-- {
		sb.WriteByte(byte('0' + rank))
		sb.WriteByte(' ')
		for file := 0; file < boardFiles; file++ {
			p, ok := b.PieceAt(Square{File: file, Rank: rank})
			if ok {
				sb.WriteByte(p.Notation())
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  abcdefgh\n")
	return sb.String()
}
