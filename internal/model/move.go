package model

import (
	"fmt"
	"time"
)

// SimpleMove is an origin/destination pair, the shape of an inbound move command.
type SimpleMove struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

// Move is a committed move. It is never edited once appended to history.
type Move struct {
	From          Square    `json:"from"`
	To            Square    `json:"to"`
	Piece         Piece     `json:"piece"`
	CapturedPiece *Piece    `json:"capturedPiece"`
	Color         Color     `json:"color"`
	Timestamp     time.Time `json:"timestamp"`
	Notation      string    `json:"notation"`
}

// IsCapture reports whether the move took a piece.
func (m Move) IsCapture() bool {
	return m.CapturedPiece != nil
}

// MoveResult is what ApplyMove hands back for relaying.
type MoveResult struct {
	Move        Move   `json:"move"`
	ActiveColor Color  `json:"activeColor"`
	Status      Status `json:"status"`
	Winner      Color  `json:"winner,omitempty"`
}

// Finished reports whether this move ended the game.
func (r MoveResult) Finished() bool {
	return r.Status == StatusFinished
}

func getNotation(piece Piece, from, to Square, captured bool) string {
	prefix := ""
	if piece.Type != Pawn {
		prefix = string(piece.Type.getPieceNotation())
	}
	pawnFileSpecifier := ""
	if piece.Type == Pawn && captured {
		pawnFileSpecifier = fmt.Sprintf("%c", 'a'+from.File)
	}
	capture := ""
	if captured {
		capture = "x"
	}
	return fmt.Sprintf("%s%s%s%s", prefix, pawnFileSpecifier, capture, to)
}
