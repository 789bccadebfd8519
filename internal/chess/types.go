// Package chess provides core chess types: colours, pieces, squares, the 8x8 board
// and the immutable Move value.
package chess

import (
	"fmt"

	"github.com/lgbarn/chesscore-go/internal/errors"
)

// Colour represents the colour of a piece or player.
type Colour int

const (
	White Colour = iota
	Black
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// Letter returns the lower-case colour prefix used by the two-character occupant code.
func (c Colour) Letter() byte {
	if c == White {
		return 'w'
	}
	return 'b'
}

// Forward returns the row delta a pawn of this colour advances by.
// Row 0 is rank 8, so White moves towards lower rows.
func (c Colour) Forward() int {
	if c == White {
		return -1
	}
	return 1
}

// HomeRow returns the row a pawn of this colour starts on.
func (c Colour) HomeRow() int {
	if c == White {
		return 6
	}
	return 1
}

// Piece represents a chess piece kind.
type Piece int

const (
	NoPiece Piece = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the string representation of a piece.
func (p Piece) String() string {
	names := []string{"None", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if p >= 0 && int(p) < len(names) {
		return names[p]
	}
	return "Unknown"
}

// Letter returns the letter used for the piece in the two-character occupant code.
// Pawns use a lower-case 'p', every other piece its upper-case initial.
func (p Piece) Letter() byte {
	letters := []byte{'-', 'p', 'N', 'B', 'R', 'Q', 'K'}
	if p >= 0 && int(p) < len(letters) {
		return letters[p]
	}
	return '?'
}

// pieceFromLetter is the inverse of Piece.Letter.
func pieceFromLetter(c byte) Piece {
	switch c {
	case 'p':
		return Pawn
	case 'N':
		return Knight
	case 'B':
		return Bishop
	case 'R':
		return Rook
	case 'Q':
		return Queen
	case 'K':
		return King
	default:
		return NoPiece
	}
}

// Occupant is the content of a single board cell: either Empty or a piece of a colour.
// The zero value is Empty.
type Occupant struct {
	Colour Colour
	Piece  Piece
}

// Empty is the occupant of a vacant cell.
var Empty = Occupant{}

// Occupied returns the occupant for a piece of the given colour.
func Occupied(colour Colour, piece Piece) Occupant {
	return Occupant{Colour: colour, Piece: piece}
}

// W creates a white occupant.
func W(piece Piece) Occupant {
	return Occupied(White, piece)
}

// B creates a black occupant.
func B(piece Piece) Occupant {
	return Occupied(Black, piece)
}

// IsEmpty reports whether the cell holds no piece.
func (o Occupant) IsEmpty() bool {
	return o.Piece == NoPiece
}

// Is reports whether the occupant is a piece of the given colour.
func (o Occupant) Is(colour Colour) bool {
	return !o.IsEmpty() && o.Colour == colour
}

// String returns the two-character code: "--" for Empty, otherwise colour then piece ("wp", "bK").
func (o Occupant) String() string {
	if o.IsEmpty() {
		return "--"
	}
	return string([]byte{o.Colour.Letter(), o.Piece.Letter()})
}

// ParseOccupant converts a two-character code back into an Occupant.
func ParseOccupant(code string) (Occupant, error) {
	if code == "--" {
		return Empty, nil
	}
	if len(code) != 2 {
		return Empty, fmt.Errorf("occupant code %q: want 2 characters: %w", code, errors.ErrInvalidNotation)
	}
	var colour Colour
	switch code[0] {
	case 'w':
		colour = White
	case 'b':
		colour = Black
	default:
		return Empty, fmt.Errorf("occupant code %q: unknown colour %q: %w", code, code[0], errors.ErrInvalidNotation)
	}
	piece := pieceFromLetter(code[1])
	if piece == NoPiece {
		return Empty, fmt.Errorf("occupant code %q: unknown piece %q: %w", code, code[1], errors.ErrInvalidNotation)
	}
	return Occupied(colour, piece), nil
}

// BoardSize is the number of rows and columns on the board.
const BoardSize = 8

// Square addresses a board cell. Row 0 is rank 8 and column 0 is file a.
type Square struct {
	Row int
	Col int
}

// Sq is shorthand for Square{Row: row, Col: col}.
func Sq(row, col int) Square {
	return Square{Row: row, Col: col}
}

// Valid reports whether the square lies on the board.
func (s Square) Valid() bool {
	return s.Row >= 0 && s.Row < BoardSize && s.Col >= 0 && s.Col < BoardSize
}

// Offset returns the square dr rows and dc columns away. The result may be off-board.
func (s Square) Offset(dr, dc int) Square {
	return Square{Row: s.Row + dr, Col: s.Col + dc}
}

// File returns the file letter of the square.
func (s Square) File() byte {
	return colsToFiles[s.Col]
}

// Rank returns the rank digit of the square.
func (s Square) Rank() byte {
	return rowsToRanks[s.Row]
}

// String returns the coordinate name of the square, e.g. "e2". Off-board squares print as "??".
func (s Square) String() string {
	if !s.Valid() {
		return "??"
	}
	return string([]byte{s.File(), s.Rank()})
}

// ParseSquare converts a coordinate name such as "e2" into a Square.
func ParseSquare(name string) (Square, bool) {
	if len(name) != 2 {
		return Square{}, false
	}
	col, ok := filesToCols[name[0]]
	if !ok {
		return Square{}, false
	}
	row, ok := ranksToRows[name[1]]
	if !ok {
		return Square{}, false
	}
	return Square{Row: row, Col: col}, true
}

// Rank and file lookup tables. Row 0 is rank '8', row 7 is rank '1'.
var (
	rowsToRanks = [BoardSize]byte{'8', '7', '6', '5', '4', '3', '2', '1'}
	colsToFiles = [BoardSize]byte{'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h'}
	ranksToRows = map[byte]int{
		'1': 7, '2': 6, '3': 5, '4': 4,
		'5': 3, '6': 2, '7': 1, '8': 0,
	}
	filesToCols = map[byte]int{
		'a': 0, 'b': 1, 'c': 2, 'd': 3,
		'e': 4, 'f': 5, 'g': 6, 'h': 7,
	}
)
