package render

import (
	"io"
	"strings"

	"github.com/benbeisheim/xadrez-backend/internal/model"
	"github.com/fatih/color"
)

var (
	lightSquare = color.New(color.BgHiWhite)
	darkSquare  = color.New(color.BgHiBlack)
	whitePiece  = color.New(color.FgHiRed, color.Bold)
	blackPiece  = color.New(color.FgBlue, color.Bold)
	highlight   = color.New(color.BgYellow)
)

// Text writes a colored diagram of board to w, rank 8 at the top. Selected squares
// such as legal destinations are drawn on a yellow background.
func Text(w io.Writer, board model.Board, selected []model.Square) {
	marked := make(map[model.Square]bool, len(selected))
	for _, sq := range selected {
		marked[sq] = true
	}

	var sb strings.Builder
	for rank := 8; rank >= 1; rank-- {
		sb.WriteByte(byte('0' + rank))
		sb.WriteByte(' ')
		for file := 0; file < 8; file++ {
			sq := model.Square{File: file, Rank: rank}
			cell := " . "
			var fg *color.Color
			if p, ok := board.PieceAt(sq); ok {
				cell = " " + string(p.Notation()) + " "
				fg = whitePiece
				if p.Color == model.Black {
					fg = blackPiece
				}
			}
			sb.WriteString(paint(cell, background(sq, marked[sq]), fg))
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   a  b  c  d  e  f  g  h\n")
	_, _ = io.WriteString(w, sb.String())
}

func background(sq model.Square, marked bool) *color.Color {
	switch {
	case marked:
		return highlight
	case (sq.File+sq.Rank)%2 == 1:
		return lightSquare
	default:
		return darkSquare
	}
}

func paint(cell string, bg, fg *color.Color) string {
	if color.NoColor {
		return cell
	}
	if fg != nil {
		cell = fg.Sprint(cell)
	}
	return bg.Sprint(cell)
}
