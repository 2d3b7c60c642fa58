package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"
	"github.com/benbeisheim/xadrez-backend/internal/model"
)

const (
	squareSize = 60
	boardSize  = squareSize * 8
	margin     = 20
)

var glyphs = map[model.Color]map[model.PieceType]string{
	model.White: {
		model.King: "♔", model.Queen: "♕", model.Rook: "♖",
		model.Bishop: "♗", model.Knight: "♘", model.Pawn: "♙",
	},
	model.Black: {
		model.King: "♚", model.Queen: "♛", model.Rook: "♜",
		model.Bishop: "♝", model.Knight: "♞", model.Pawn: "♟",
	},
}

// SVGOptions controls the board drawing.
type SVGOptions struct {
	// Flip draws the board from black's side.
	Flip bool
	// LastMove, when set, highlights its origin and destination.
	LastMove *model.SimpleMove
}

// SVG draws board as a standalone SVG document with coordinates along the edges.
func SVG(w io.Writer, board model.Board, opts SVGOptions) {
	canvas := svg.New(w)
	total := boardSize + 2*margin
	canvas.Start(total, total)
	canvas.Title("board")
	canvas.Rect(0, 0, total, total, "fill:#312e2b")

	for rank := 1; rank <= 8; rank++ {
		for file := 0; file < 8; file++ {
			sq := model.Square{File: file, Rank: rank}
			x, y := squareOrigin(sq, opts.Flip)
			canvas.Rect(x, y, squareSize, squareSize, "fill:"+squareFill(sq, opts.LastMove))

			if p, ok := board.PieceAt(sq); ok {
				canvas.Text(x+squareSize/2, y+squareSize*3/4, glyphs[p.Color][p.Type],
					"text-anchor:middle;font-size:44px;fill:#000")
			}
		}
	}

	canvas.Gstyle("font-size:12px;fill:#ccc;text-anchor:middle")
	for i := 0; i < 8; i++ {
		file, rank := i, 8-i
		if opts.Flip {
			file, rank = 7-i, i+1
		}
		canvas.Text(margin+i*squareSize+squareSize/2, total-margin/3, string(rune('a'+file)))
		canvas.Text(margin/2, margin+i*squareSize+squareSize/2+4, fmt.Sprint(rank))
	}
	canvas.Gend()
	canvas.End()
}

func squareOrigin(sq model.Square, flip bool) (int, int) {
	col, row := sq.File, 8-sq.Rank
	if flip {
		col, row = 7-sq.File, sq.Rank-1
	}
	return margin + col*squareSize, margin + row*squareSize
}

func squareFill(sq model.Square, last *model.SimpleMove) string {
	light := (sq.File+sq.Rank)%2 == 1
	if last != nil && (sq == last.From || sq == last.To) {
		if light {
			return "#f6f669"
		}
		return "#baca2b"
	}
	if light {
		return "#f0d9b5"
	}
	return "#b58863"
}
