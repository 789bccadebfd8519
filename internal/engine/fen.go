package engine

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position. Castling
// is not modelled, so the castling field is always "-".
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"

// fenPieceChars maps piece kinds to upper-case FEN letters.
var fenPieceChars = map[chess.Piece]byte{
	chess.Pawn:   'P',
	chess.Knight: 'N',
	chess.Bishop: 'B',
	chess.Rook:   'R',
	chess.Queen:  'Q',
	chess.King:   'K',
}

// ConvertFENCharToPiece converts a FEN character to a piece kind.
func ConvertFENCharToPiece(c byte) chess.Piece {
	switch c {
	case 'K', 'k':
		return chess.King
	case 'Q', 'q':
		return chess.Queen
	case 'R', 'r':
		return chess.Rook
	case 'N', 'n':
		return chess.Knight
	case 'B', 'b':
		return chess.Bishop
	case 'P', 'p':
		return chess.Pawn
	default:
		return chess.NoPiece
	}
}

// OccupantToFENLetter returns the FEN letter for an occupant: upper case for
// White, lower case for Black.
func OccupantToFENLetter(occ chess.Occupant) byte {
	letter, ok := fenPieceChars[occ.Piece]
	if !ok {
		return '?'
	}
	if occ.Colour == chess.Black {
		letter = byte(unicode.ToLower(rune(letter)))
	}
	return letter
}

// NewGameFromFEN creates a game from a FEN string. Placement and side to move
// are required; castling and en passant fields are accepted and ignored, and
// the clocks seed the counters reported by ToFEN.
func NewGameFromFEN(fen string) (*GameState, error) {
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return nil, fmt.Errorf("empty FEN string: %w", errors.ErrInvalidFEN)
	}

	board := chess.NewBoard()
	if err := parsePiecePositions(board, parts[0]); err != nil {
		return nil, err
	}

	toMove, err := parseSideToMove(parts)
	if err != nil {
		return nil, err
	}

	gs := NewGameFromBoard(board, toMove)
	parseClocks(gs, parts)
	return gs, nil
}

// parsePiecePositions parses the piece placement field of a FEN string.
func parsePiecePositions(board *chess.Board, positions string) error {
	ranks := strings.Split(positions, "/")
	if len(ranks) != chess.BoardSize {
		return fmt.Errorf("want %d ranks, got %d: %w", chess.BoardSize, len(ranks), errors.ErrInvalidFEN)
	}

	for row, rank := range ranks {
		col := 0
		for _, c := range rank {
			switch {
			case c >= '1' && c <= '8':
				col += int(c - '0')
			case c > unicode.MaxASCII:
				return fmt.Errorf("invalid piece character: %q: %w", c, errors.ErrInvalidFEN)
			default:
				piece := ConvertFENCharToPiece(byte(c))
				if piece == chess.NoPiece {
					return fmt.Errorf("invalid piece character: %c: %w", c, errors.ErrInvalidFEN)
				}
				if col >= chess.BoardSize {
					return fmt.Errorf("position out of bounds: %w", errors.ErrInvalidFEN)
				}
				colour := chess.White
				if unicode.IsLower(c) {
					colour = chess.Black
				}
				board.Set(chess.Sq(row, col), chess.Occupied(colour, piece))
				col++
			}
		}
		if col != chess.BoardSize {
			return fmt.Errorf("rank %d has %d files: %w", chess.BoardSize-row, col, errors.ErrInvalidFEN)
		}
	}
	return nil
}

// parseSideToMove parses the side to move field. A missing field means White.
func parseSideToMove(parts []string) (chess.Colour, error) {
	if len(parts) < 2 {
		return chess.White, nil
	}
	switch parts[1] {
	case "w":
		return chess.White, nil
	case "b":
		return chess.Black, nil
	default:
		return chess.White, fmt.Errorf("invalid side to move: %s: %w", parts[1], errors.ErrInvalidFEN)
	}
}

// parseClocks parses the halfmove clock and fullmove number fields.
func parseClocks(gs *GameState, parts []string) {
	if len(parts) >= 5 {
		fmt.Sscanf(parts[4], "%d", &gs.startHalfmove) //nolint:errcheck // malformed clocks keep the default
	}
	if len(parts) >= 6 {
		fmt.Sscanf(parts[5], "%d", &gs.startMoveNumber) //nolint:errcheck // malformed clocks keep the default
		if gs.startMoveNumber < 1 {
			gs.startMoveNumber = 1
		}
	}
}

// ToFEN converts the current position to a FEN string.
func (gs *GameState) ToFEN() string {
	var sb strings.Builder

	writePiecePositions(&sb, &gs.board)
	sb.WriteByte(' ')
	sb.WriteByte(gs.toMove.Letter())
	sb.WriteString(" - - ")
	fmt.Fprintf(&sb, "%d %d", gs.HalfmoveClock(), gs.MoveNumber())

	return sb.String()
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, board *chess.Board) {
	for row := 0; row < chess.BoardSize; row++ {
		emptyCount := 0
		for col := 0; col < chess.BoardSize; col++ {
			occ := board.Get(chess.Sq(row, col))
			if occ.IsEmpty() {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(OccupantToFENLetter(occ))
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if row < chess.BoardSize-1 {
			sb.WriteByte('/')
		}
	}
}

// StartMoveNumber returns the full-move number of the starting position.
func (gs *GameState) StartMoveNumber() int {
	return gs.startMoveNumber
}

// InitialSideToMove returns the side that moved first from the starting position.
func (gs *GameState) InitialSideToMove() chess.Colour {
	return gs.initialToMove
}

// MoveNumber returns the full-move number: it starts at the position's move
// number and increments after each Black move.
func (gs *GameState) MoveNumber() int {
	plies := gs.Ply()
	if gs.initialToMove == chess.Black {
		plies++
	}
	return gs.startMoveNumber + plies/2
}

// HalfmoveClock returns the number of plies since the last pawn move or capture.
func (gs *GameState) HalfmoveClock() int {
	n := 0
	for i := len(gs.log) - 1; i >= 0; i-- {
		m := gs.log[i]
		if m.PieceMoved().Piece == chess.Pawn || m.IsCapture() {
			return n
		}
		n++
	}
	return gs.startHalfmove + n
}
