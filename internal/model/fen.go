package model

import (
	"fmt"
	"strings"
	"unicode"
)

// InitialFEN is the standard starting placement with white to move.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w"

func convertFENCharToPiece(c rune) (Piece, bool) {
	color := White
	if unicode.IsLower(c) {
		color = Black
	}
	var kind PieceType
	switch unicode.ToUpper(c) {
	case 'K':
		kind = King
	case 'Q':
		kind = Queen
	case 'R':
		kind = Rook
	case 'B':
		kind = Bishop
	case 'N':
		kind = Knight
	case 'P':
		kind = Pawn
	default:
		return Piece{}, false
	}
	return Piece{Type: kind, Color: color}, true
}

// FEN writes the placement (rank 8 first, upper case white, digits for runs of
// empty squares) followed by the side to move.
func (b *Board) FEN(active Color) string {
	var sb strings.Builder
	writePiecePositions(&sb, b)
	sb.WriteByte(' ')
	if active == Black {
		sb.WriteByte('b')
	} else {
		sb.WriteByte('w')
	}
	return sb.String()
}

// ExtendedFEN pads FEN with empty castling and en passant fields and move counters
// so standard six-field parsers accept it.
func (b *Board) ExtendedFEN(active Color) string {
	return b.FEN(active) + " - - 0 1"
}

func writePiecePositions(sb *strings.Builder, b *Board) {
	for rank := boardRanks; rank >= 1; rank-- {
		emptyCount := 0
		for file := 0; file < boardFiles; file++ {
			p, ok := b.PieceAt(Square{File: file, Rank: rank})
			if !ok {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(p.Notation())
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if rank > 1 {
			sb.WriteByte('/')
		}
	}
}

// ParseFEN reads a placement and optional side to move (white when absent).
// Castling, en passant and clock fields are accepted and ignored.
func ParseFEN(fen string) (Board, Color, error) {
	parts := strings.Fields(fen)
	if len(parts) == 0 {
		return Board{}, "", fmt.Errorf("empty FEN string: %w", ErrInvalidFEN)
	}
	board, err := parsePiecePositions(parts[0])
	if err != nil {
		return Board{}, "", err
	}
	active := White
	if len(parts) >= 2 {
		switch parts[1] {
		case "w":
			active = White
		case "b":
			active = Black
		default:
			return Board{}, "", fmt.Errorf("invalid side to move %q: %w", parts[1], ErrInvalidFEN)
		}
	}
	return board, active, nil
}

func parsePiecePositions(positions string) (Board, error) {
	var board Board
	ranks := strings.Split(positions, "/")
	if len(ranks) != boardRanks {
		return Board{}, fmt.Errorf("want %d ranks, got %d: %w", boardRanks, len(ranks), ErrInvalidFEN)
	}
	for i, row := range ranks {
		rank := boardRanks - i
		file := 0
		for _, c := range row {
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				if file > boardFiles {
					return Board{}, fmt.Errorf("rank %d overflows: %w", rank, ErrInvalidFEN)
				}
				continue
			}
			piece, ok := convertFENCharToPiece(c)
			if !ok {
				return Board{}, fmt.Errorf("invalid piece character %q: %w", c, ErrInvalidFEN)
			}
			if file >= boardFiles {
				return Board{}, fmt.Errorf("rank %d overflows: %w", rank, ErrInvalidFEN)
			}
			board.place(Square{File: file, Rank: rank}, piece)
			file++
		}
		if file != boardFiles {
			return Board{}, fmt.Errorf("rank %d has %d files: %w", rank, file, ErrInvalidFEN)
		}
	}
	return board, nil
}
