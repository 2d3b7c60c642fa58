package model

type direction struct {
	df, dr int
}

var (
	rookDirs   = []direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirs = []direction{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	queenDirs  = append(append([]direction{}, rookDirs...), bishopDirs...)
	knightDirs = []direction{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
	kingDirs   = []direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

// LegalDestinations lists every square the piece on from may move to. Squares held
// by the opposite color are included as captures; squares held by the mover's own
// color never are. King safety is not considered. An empty origin yields nil.
func LegalDestinations(board *Board, from Square) []Square {
	piece, ok := board.PieceAt(from)
	if !ok {
		return nil
	}
	switch piece.Type {
	case Pawn:
		return pawnDestinations(board, from, piece.Color)
	case Knight:
		return stepDestinations(board, from, piece.Color, knightDirs)
	case Bishop:
		return slideDestinations(board, from, piece.Color, bishopDirs)
	case Rook:
		return slideDestinations(board, from, piece.Color, rookDirs)
	case Queen:
		return slideDestinations(board, from, piece.Color, queenDirs)
	case King:
		return stepDestinations(board, from, piece.Color, kingDirs)
	default:
		return nil
	}
}

func pawnDirection(color Color) int {
	if color == Black {
		return -1
	}
	return 1
}

func pawnStartRank(color Color) int {
	if color == Black {
		return 7
	}
	return 2
}

func pawnDestinations(board *Board, from Square, color Color) []Square {
	var out []Square
	dir := pawnDirection(color)

	if one, ok := from.Offset(0, dir); ok && board.isEmpty(one) {
		out = append(out, one)
		if from.Rank == pawnStartRank(color) {
			if two, ok := one.Offset(0, dir); ok && board.isEmpty(two) {
				out = append(out, two)
			}
		}
	}

	// diagonals only ever capture
	for _, df := range []int{-1, 1} {
		target, ok := from.Offset(df, dir)
		if !ok {
			continue
		}
		if p, occupied := board.PieceAt(target); occupied && p.Color != color {
			out = append(out, target)
		}
	}
	return out
}

// slideDestinations walks each ray until the edge or the first occupied square,
// which is kept only when it holds an enemy piece.
func slideDestinations(board *Board, from Square, color Color, dirs []direction) []Square {
	var out []Square
	for _, d := range dirs {
		target, ok := from.Offset(d.df, d.dr)
		for ok {
			p, occupied := board.PieceAt(target)
			if !occupied {
				out = append(out, target)
				target, ok = target.Offset(d.df, d.dr)
				continue
			}
			if p.Color != color {
				out = append(out, target)
			}
			break
		}
	}
	return out
}

func stepDestinations(board *Board, from Square, color Color, dirs []direction) []Square {
	var out []Square
	for _, d := range dirs {
		target, ok := from.Offset(d.df, d.dr)
		if !ok {
			continue
		}
		if p, occupied := board.PieceAt(target); !occupied || p.Color != color {
			out = append(out, target)
		}
	}
	return out
}

func containsSquare(squares []Square, sq Square) bool {
	for _, s := range squares {
		if s == sq {
			return true
		}
	}
	return false
}
