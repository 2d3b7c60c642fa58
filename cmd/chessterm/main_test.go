package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/benbeisheim/xadrez-backend/internal/model"
	"github.com/fatih/color"
)

func TestRunHotSeat(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	game, err := model.NewGameFromFEN("4k3/8/8/8/8/8/4Q3/4K3 w")
	if err != nil {
		t.Fatalf("NewGameFromFEN() error: %v", err)
	}
	input := strings.Join([]string{
		"moves e1",
		"e2 e9",
		"e8 e7",
		"e2 e8",
		"e8 d8",
		"fen",
		"quit",
		"e1 d1",
	}, "\n")

	var out bytes.Buffer
	run(game, strings.NewReader(input), &out)
	got := out.String()

	for _, want := range []string{
		"invalid square",
		"illegal move",
		"white played Qxe8",
		"white captured the king and wins",
		"game is finished",
		"4k3/8/8/8/8/8/4Q3/4K3 w",
		"game over> ",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if !game.IsFinished() {
		t.Error("game should be finished")
	}
}
