package model

import "fmt"

const (
	boardFiles = 8
	boardRanks = 8
)

// Square addresses one of the 64 cells. File runs 0-7 (a-h), Rank runs 1-8.
type Square struct {
	File int
	Rank int
}

// NewSquare returns the square at file, rank or ErrInvalidSquare when either
// coordinate falls outside the board.
func NewSquare(file, rank int) (Square, error) {
	sq := Square{File: file, Rank: rank}
	if !sq.Valid() {
		return Square{}, fmt.Errorf("file %d rank %d: %w", file, rank, ErrInvalidSquare)
	}
	return sq, nil
}

// ParseSquare reads a two character label such as "e2".
func ParseSquare(label string) (Square, error) {
	if len(label) != 2 {
		return Square{}, fmt.Errorf("label %q: %w", label, ErrInvalidSquare)
	}
	file := int(label[0]) - 'a'
	rank := int(label[1]) - '0'
	sq := Square{File: file, Rank: rank}
	if !sq.Valid() {
		return Square{}, fmt.Errorf("label %q: %w", label, ErrInvalidSquare)
	}
	return sq, nil
}

// MustSquare is ParseSquare for labels known at compile time.
func MustSquare(label string) Square {
	sq, err := ParseSquare(label)
	if err != nil {
		panic(err)
	}
	return sq
}

func (s Square) Valid() bool {
	return s.File >= 0 && s.File < boardFiles && s.Rank >= 1 && s.Rank <= boardRanks
}

// Offset steps by (df, dr). The second result is false when the target is off the board.
func (s Square) Offset(df, dr int) (Square, bool) {
	next := Square{File: s.File + df, Rank: s.Rank + dr}
	return next, next.Valid()
}

func (s Square) index() int {
	return (s.Rank-1)*boardFiles + s.File
}

func squareAt(index int) Square {
	return Square{File: index % boardFiles, Rank: index/boardFiles + 1}
}

func (s Square) String() string {
	if !s.Valid() {
		return fmt.Sprintf("(%d,%d)", s.File, s.Rank)
	}
	return fmt.Sprintf("%c%d", 'a'+s.File, s.Rank)
}

func (s Square) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("marshal %v: %w", s, ErrInvalidSquare)
	}
	return []byte(s.String()), nil
}

func (s *Square) UnmarshalText(text []byte) error {
	sq, err := ParseSquare(string(text))
	if err != nil {
		return err
	}
	*s = sq
	return nil
}
