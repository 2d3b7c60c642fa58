// Command chessterm plays a hot-seat game on the terminal.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/benbeisheim/xadrez-backend/internal/model"
	"github.com/benbeisheim/xadrez-backend/internal/render"
	"github.com/fatih/color"
)

var (
	info    = color.New(color.FgCyan)
	warning = color.New(color.FgYellow)
	victory = color.New(color.FgGreen, color.Bold)
)

func main() {
	fen := model.InitialFEN
	if len(os.Args) > 1 {
		fen = strings.Join(os.Args[1:], " ")
	}
	game, err := model.NewGameFromFEN(fen)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	run(game, os.Stdin, color.Output)
}

func run(game *model.Game, in io.Reader, out io.Writer) {
	board := game.Board()
	render.Text(out, board, nil)
	prompt(out, game)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			prompt(out, game)
			continue
		}

		var selected []model.Square
		switch fields[0] {
		case "quit", "exit":
			return
		case "fen":
			info.Fprintln(out, game.FEN())
			prompt(out, game)
			continue
		case "reset":
			game.Reset()
		case "moves":
			if len(fields) != 2 {
				warning.Fprintln(out, "usage: moves <square>")
				prompt(out, game)
				continue
			}
			sq, err := model.ParseSquare(fields[1])
			if err != nil {
				warning.Fprintln(out, err)
				prompt(out, game)
				continue
			}
			selected = game.LegalMovesFrom(sq)
			if len(selected) == 0 {
				warning.Fprintf(out, "%s has no moves\n", sq)
			}
		default:
			if err := play(game, fields, out); err != nil {
				warning.Fprintln(out, err)
				prompt(out, game)
				continue
			}
		}

		board = game.Board()
		render.Text(out, board, selected)
		prompt(out, game)
	}
}

func play(game *model.Game, fields []string, out io.Writer) error {
	if len(fields) != 2 {
		return errors.New(`enter a move as "e2 e4", or moves, fen, reset, quit`)
	}
	from, err := model.ParseSquare(fields[0])
	if err != nil {
		return err
	}
	to, err := model.ParseSquare(fields[1])
	if err != nil {
		return err
	}
	res, err := game.ApplyMove(from, to)
	if err != nil {
		return err
	}
	info.Fprintf(out, "%s played %s\n", res.Move.Color, res.Move.Notation)
	if res.Finished() {
		victory.Fprintf(out, "%s captured the king and wins. Type reset to play again.\n", res.Winner)
	}
	return nil
}

func prompt(out io.Writer, game *model.Game) {
	if game.IsFinished() {
		fmt.Fprint(out, "game over> ")
		return
	}
	fmt.Fprintf(out, "%s> ", game.ActiveColor())
}
