// Package engine holds the game state and pseudo-legal move generation.
//
// A GameState is driven by a single caller: generate the move set, check that
// a candidate move belongs to it, then apply it (or undo the last move).
// GameState is not safe for concurrent use.
package engine

import "github.com/lgbarn/chesscore-go/internal/chess"

// GameState owns the board, the side to move and the log of applied moves.
type GameState struct {
	board         chess.Board
	toMove        chess.Colour
	initialToMove chess.Colour
	log           []chess.Move

	// FEN move counters of the starting position.
	startMoveNumber int
	startHalfmove   int
}

// NewGame creates a game at the standard starting position with White to move.
func NewGame() *GameState {
	return NewGameFromBoard(chess.NewInitialBoard(), chess.White)
}

// NewGameFromBoard creates a game from an arbitrary position. The board is copied.
func NewGameFromBoard(board *chess.Board, toMove chess.Colour) *GameState {
	return &GameState{
		board:           *board,
		toMove:          toMove,
		initialToMove:   toMove,
		startMoveNumber: 1,
	}
}

// SideToMove returns the colour whose turn it is.
func (gs *GameState) SideToMove() chess.Colour {
	return gs.toMove
}

// Board returns a copy of the current position.
func (gs *GameState) Board() *chess.Board {
	return gs.board.Copy()
}

// At returns the occupant of sq.
func (gs *GameState) At(sq chess.Square) chess.Occupant {
	return gs.board.Get(sq)
}

// MoveLog returns a copy of the applied moves, oldest first.
func (gs *GameState) MoveLog() []chess.Move {
	out := make([]chess.Move, len(gs.log))
	copy(out, gs.log)
	return out
}

// Ply returns the number of moves in the log.
func (gs *GameState) Ply() int {
	return len(gs.log)
}

// LastMove returns the most recent move, if any.
func (gs *GameState) LastMove() (chess.Move, bool) {
	if len(gs.log) == 0 {
		return chess.Move{}, false
	}
	return gs.log[len(gs.log)-1], true
}

// CountKings returns the number of kings of either colour on the board.
func (gs *GameState) CountKings() int {
	return gs.board.Count(chess.W(chess.King)) + gs.board.Count(chess.B(chess.King))
}

// IsGameOver reports whether fewer than two kings remain.
//
// This is the only game-over test: there is no check, checkmate or stalemate
// detection, so a game ends when a king is captured.
func (gs *GameState) IsGameOver() bool {
	return gs.CountKings() < 2
}

// Winner returns the colour of the remaining king once the game is over.
// ok is false while the game is still running or if no king is left.
func (gs *GameState) Winner() (colour chess.Colour, ok bool) {
	if !gs.IsGameOver() {
		return chess.White, false
	}
	switch {
	case gs.board.Count(chess.W(chess.King)) > 0:
		return chess.White, true
	case gs.board.Count(chess.B(chess.King)) > 0:
		return chess.Black, true
	default:
		return chess.White, false
	}
}

// Clone returns an independent copy of the game, log included.
func (gs *GameState) Clone() *GameState {
	c := *gs
	c.log = gs.MoveLog()
	return &c
}
