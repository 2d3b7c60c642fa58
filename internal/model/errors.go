package model

import (
	"errors"
	"fmt"
)

// Sentinel errors. Use errors.Is to test for them through any wrapping.
var (
	// ErrIllegalMove covers an empty origin, a piece of the wrong color, and a
	// destination outside the generated set.
	ErrIllegalMove = errors.New("illegal move")

	// ErrInvalidSquare indicates an address outside the 8x8 board.
	ErrInvalidSquare = errors.New("invalid square")

	// ErrGameFinished rejects mutations after a king has been captured.
	ErrGameFinished = errors.New("game is finished")

	// ErrInvalidFEN indicates a malformed position string.
	ErrInvalidFEN = errors.New("invalid FEN string")
)

// MoveError keeps the attempted move next to the reason it was refused.
type MoveError struct {
	Err    error
	From   Square
	To     Square
	Reason string
}

func (e *MoveError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("move %s-%s: %s: %v", e.From, e.To, e.Reason, e.Err)
	}
	return fmt.Sprintf("move %s-%s: %v", e.From, e.To, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}
