package engine

import (
	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/errors"
)

// ApplyMove applies move to the board: the source square empties, the
// destination takes the moved piece (discarding any previous occupant), the
// move is logged and the side to move flips.
//
// ApplyMove does not validate the move. The caller must first check that move
// belongs to the result of GeneratePseudoLegalMoves; use ApplyChecked for a
// validating variant.
func (gs *GameState) ApplyMove(move chess.Move) {
	gs.board.Set(move.Start(), chess.Empty)
	gs.board.Set(move.End(), move.PieceMoved())
	gs.log = append(gs.log, move)
	gs.toMove = gs.toMove.Opposite()
}

// UndoLastMove reverts the most recent move. It returns false, and does
// nothing, when the log is empty.
func (gs *GameState) UndoLastMove() bool {
	if len(gs.log) == 0 {
		return false
	}
	move := gs.log[len(gs.log)-1]
	gs.log = gs.log[:len(gs.log)-1]
	gs.board.Set(move.Start(), move.PieceMoved())
	gs.board.Set(move.End(), move.PieceCaptured())
	gs.toMove = gs.toMove.Opposite()
	return true
}

// ApplyChecked applies move only if it is a member of the current
// pseudo-legal move set and the game is not over.
//
// The generated Move is applied rather than the argument, so the captured
// piece recorded in the log always matches the live board even if move was
// built from a stale board.
func (gs *GameState) ApplyChecked(move chess.Move) error {
	if gs.IsGameOver() {
		return &errors.MoveError{Err: errors.ErrGameOver, Ply: gs.Ply() + 1, Notation: move.Notation()}
	}
	moves := gs.GeneratePseudoLegalMoves()
	i := chess.IndexMove(moves, move)
	if i < 0 {
		return &errors.MoveError{Err: errors.ErrInvalidMove, Ply: gs.Ply() + 1, Notation: move.Notation()}
	}
	gs.ApplyMove(moves[i])
	return nil
}

// Play parses a coordinate-notation move and applies it with ApplyChecked.
func (gs *GameState) Play(notation string) (chess.Move, error) {
	move, err := gs.ParseMove(notation)
	if err != nil {
		return chess.Move{}, err
	}
	if err := gs.ApplyChecked(move); err != nil {
		return chess.Move{}, err
	}
	last, _ := gs.LastMove()
	return last, nil
}
