// Package replay replays coordinate-notation move lists through a GameState.
//
// Input holds one game per line: whitespace-separated moves such as
// "e2e4 e7e5 g1f3". A line may start with a FEN position followed by "|",
// in which case the moves are played from that position. Blank lines and
// lines starting with "#" are skipped.
package replay

import (
	"bufio"
	"io"
	"strings"

	"github.com/lgbarn/chesscore-go/internal/engine"
	"github.com/lgbarn/chesscore-go/internal/errors"
)

// Game is one move list read from the input.
type Game struct {
	Number int      // 1-based game number
	Source string   // Input name
	Line   int      // 1-based source line
	FEN    string   // Starting position; empty for the standard one
	Moves  []string // Coordinate-notation moves
}

// ReadGames reads every game from r. source names the input in errors.
func ReadGames(r io.Reader, source string) ([]Game, error) {
	var games []Game
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		games = append(games, parseLine(line, source, lineNum, len(games)+1))
	}
	if err := scanner.Err(); err != nil {
		return games, errors.Wrapf(err, "reading %s", source)
	}
	return games, nil
}

// parseLine splits a line into its optional FEN and its moves.
func parseLine(line, source string, lineNum, number int) Game {
	g := Game{Number: number, Source: source, Line: lineNum}
	if fen, moves, ok := strings.Cut(line, "|"); ok {
		g.FEN = strings.TrimSpace(fen)
		line = moves
	}
	g.Moves = strings.Fields(line)
	return g
}

// ReplayGame plays the game's moves in order, checking each against the
// generated move set. It stops at the first rejected move and returns the
// state reached so far together with the error. The state is nil only if
// the starting FEN is malformed.
func ReplayGame(g Game) (*engine.GameState, error) {
	gs, err := startingPosition(g)
	if err != nil {
		return nil, err
	}

	for _, text := range g.Moves {
		if _, err := gs.Play(text); err != nil {
			return gs, moveError(err, g, gs.Ply()+1, text)
		}
	}
	return gs, nil
}

// startingPosition returns the game's initial state.
func startingPosition(g Game) (*engine.GameState, error) {
	if g.FEN == "" {
		return engine.NewGame(), nil
	}
	gs, err := engine.NewGameFromFEN(g.FEN)
	if err != nil {
		return nil, &errors.ParseError{
			Err:      err,
			File:     g.Source,
			Line:     g.Line,
			Expected: "FEN position",
			Got:      g.FEN,
		}
	}
	return gs, nil
}

// moveError attaches the game number to err, adding ply and notation when
// err does not already carry them.
func moveError(err error, g Game, ply int, text string) error {
	var me *errors.MoveError
	if errors.As(err, &me) {
		me.GameNum = g.Number
		return err
	}
	return &errors.MoveError{Err: err, GameNum: g.Number, Ply: ply, Notation: text}
}
