package engine

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/errors"
)

// ParseMove builds a Move from four-character coordinate notation such as
// "e2e4", reading the moved and captured pieces from the current board.
// It does not check that the move is pseudo-legal.
func (gs *GameState) ParseMove(text string) (chess.Move, error) {
	start, end, err := ParseCoordinates(text)
	if err != nil {
		return chess.Move{}, err
	}
	return chess.NewMove(start, end, &gs.board)
}

// ParseCoordinates splits coordinate notation into its two squares.
func ParseCoordinates(text string) (start, end chess.Square, err error) {
	s := strings.ToLower(strings.TrimSpace(text))
	if len(s) != 4 {
		return start, end, fmt.Errorf("%q: want 4 characters: %w", text, errors.ErrInvalidNotation)
	}
	start, ok := chess.ParseSquare(s[:2])
	if !ok {
		return start, end, fmt.Errorf("%q: bad start square: %w", text, errors.ErrInvalidNotation)
	}
	end, ok = chess.ParseSquare(s[2:])
	if !ok {
		return start, end, fmt.Errorf("%q: bad end square: %w", text, errors.ErrInvalidNotation)
	}
	return start, end, nil
}

// Notations converts moves to their coordinate notation.
func Notations(moves []chess.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.Notation()
	}
	return out
}
