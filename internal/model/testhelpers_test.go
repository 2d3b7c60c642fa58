package model

import (
	"sort"
	"testing"
)

func squares(labels ...string) []Square {
	out := make([]Square, 0, len(labels))
	for _, l := range labels {
		out = append(out, MustSquare(l))
	}
	return out
}

func sortSquares(in []Square) []Square {
	out := append([]Square{}, in...)
	sort.Slice(out, func(i, j int) bool {
		return out[i].index() < out[j].index()
	})
	return out
}

func mustBoard(t *testing.T, fen string) Board {
	t.Helper()
	board, _, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q) error: %v", fen, err)
	}
	return board
}
