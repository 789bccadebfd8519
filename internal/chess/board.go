package chess

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chesscore-go/internal/errors"
)

// Board is the 8x8 grid of occupants, indexed [row][col]. Row 0 is rank 8
// (Black's home rank) and column 0 is file a. Every cell always holds an
// Occupant; an empty cell holds Empty.
//
// Board is a value type: assigning a Board copies the position.
type Board struct {
	Squares [BoardSize][BoardSize]Occupant
}

// backRank lists the pieces on the first rank from file a to file h.
var backRank = [BoardSize]Piece{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard creates a new empty board.
func NewBoard() *Board {
	return &Board{}
}

// NewInitialBoard creates a board holding the standard starting position.
func NewInitialBoard() *Board {
	b := NewBoard()
	b.SetupInitialPosition()
	return b
}

// SetupInitialPosition sets up the standard chess starting position.
func (b *Board) SetupInitialPosition() {
	b.Clear()
	for col := 0; col < BoardSize; col++ {
		b.Squares[0][col] = B(backRank[col])
		b.Squares[1][col] = B(Pawn)
		b.Squares[6][col] = W(Pawn)
		b.Squares[7][col] = W(backRank[col])
	}
}

// Clear empties every cell.
func (b *Board) Clear() {
	for row := range b.Squares {
		for col := range b.Squares[row] {
			b.Squares[row][col] = Empty
		}
	}
}

// Get returns the occupant of sq. Off-board squares read as Empty.
func (b *Board) Get(sq Square) Occupant {
	if !sq.Valid() {
		return Empty
	}
	return b.Squares[sq.Row][sq.Col]
}

// Set places an occupant on sq. Setting an off-board square is a no-op.
func (b *Board) Set(sq Square, occ Occupant) {
	if sq.Valid() {
		b.Squares[sq.Row][sq.Col] = occ
	}
}

// Copy creates a copy of the board.
func (b *Board) Copy() *Board {
	newBoard := &Board{}
	*newBoard = *b
	return newBoard
}

// Count returns the number of cells holding occ.
func (b *Board) Count(occ Occupant) int {
	n := 0
	for row := range b.Squares {
		for col := range b.Squares[row] {
			if b.Squares[row][col] == occ {
				n++
			}
		}
	}
	return n
}

// Rows returns the board as eight rows of two-character occupant codes,
// rank 8 first.
func (b *Board) Rows() [][]string {
	rows := make([][]string, BoardSize)
	for row := range b.Squares {
		rows[row] = make([]string, BoardSize)
		for col, occ := range b.Squares[row] {
			rows[row][col] = occ.String()
		}
	}
	return rows
}

// String renders the board as eight space-separated lines of occupant codes.
func (b *Board) String() string {
	var sb strings.Builder
	for i, row := range b.Rows() {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(strings.Join(row, " "))
	}
	return sb.String()
}

// ParseBoard reads the format produced by String: eight lines of eight
// whitespace-separated occupant codes.
func ParseBoard(text string) (*Board, error) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) != BoardSize {
		return nil, boardShapeError(len(lines), "rows")
	}
	b := NewBoard()
	for row, line := range lines {
		codes := strings.Fields(line)
		if len(codes) != BoardSize {
			return nil, boardShapeError(len(codes), "columns")
		}
		for col, code := range codes {
			occ, err := ParseOccupant(code)
			if err != nil {
				return nil, err
			}
			b.Squares[row][col] = occ
		}
	}
	return b, nil
}

func boardShapeError(n int, what string) error {
	return fmt.Errorf("board has %d %s, want %d: %w", n, what, BoardSize, errors.ErrInvalidNotation)
}
