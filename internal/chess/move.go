package chess

import (
	"fmt"

	"github.com/lgbarn/chesscore-go/internal/errors"
)

// Move records a single displacement of a piece. The moved and captured
// occupants are read from the board when the Move is built, so a Move stays
// correct after the board changes. Move is an immutable value.
type Move struct {
	start    Square
	end      Square
	moved    Occupant
	captured Occupant
	id       int
}

// NewMove builds a Move from start to end, capturing the occupants of both
// squares from board. Both squares must be on the board.
func NewMove(start, end Square, board *Board) (Move, error) {
	if !start.Valid() || !end.Valid() {
		return Move{}, fmt.Errorf("move %v -> %v: %w", start, end, errors.ErrSquareOutOfRange)
	}
	return Move{
		start:    start,
		end:      end,
		moved:    board.Get(start),
		captured: board.Get(end),
		id:       moveID(start, end),
	}, nil
}

// MustMove is like NewMove but panics if either square is off the board.
// It is meant for coordinates already known to be valid.
func MustMove(start, end Square, board *Board) Move {
	m, err := NewMove(start, end, board)
	if err != nil {
		panic(err)
	}
	return m
}

// moveID packs the four coordinates into one decimal number:
// start row, start column, end row, end column.
func moveID(start, end Square) int {
	return start.Row*1000 + start.Col*100 + end.Row*10 + end.Col
}

// Start returns the source square.
func (m Move) Start() Square { return m.start }

// End returns the destination square.
func (m Move) End() Square { return m.end }

// PieceMoved returns the occupant that moved.
func (m Move) PieceMoved() Occupant { return m.moved }

// PieceCaptured returns the occupant of the destination before the move (Empty if none).
func (m Move) PieceCaptured() Occupant { return m.captured }

// ID returns the coordinate-derived identifier of the move.
func (m Move) ID() int { return m.id }

// Equal reports whether two moves share start and end squares.
// The moved and captured occupants do not take part in equality.
func (m Move) Equal(other Move) bool {
	return m.id == other.id
}

// IsCapture returns true if the move lands on an occupied square.
func (m Move) IsCapture() bool {
	return !m.captured.IsEmpty()
}

// Notation returns the four-character coordinate notation, e.g. "e2e4".
func (m Move) Notation() string {
	return m.start.String() + m.end.String()
}

// String returns the notation with the moved piece, e.g. "wp e2e4".
func (m Move) String() string {
	return m.moved.String() + " " + m.Notation()
}

// ContainsMove reports whether moves holds a move equal to m.
func ContainsMove(moves []Move, m Move) bool {
	return IndexMove(moves, m) >= 0
}

// IndexMove returns the index of the first move equal to m, or -1.
func IndexMove(moves []Move, m Move) int {
	for i := range moves {
		if moves[i].Equal(m) {
			return i
		}
	}
	return -1
}
