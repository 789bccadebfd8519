package engine

import "github.com/lgbarn/chesscore-go/internal/chess"

// GeneratePseudoLegalMoves returns every move available to the side to move,
// ignoring whether the mover's king is left attacked.
//
// Squares are scanned row by row from row 0 and column by column within a
// row; each piece's moves follow the order of its direction table. The board
// is not modified.
func (gs *GameState) GeneratePseudoLegalMoves() []chess.Move {
	moves := make([]chess.Move, 0, 48)
	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			from := chess.Sq(row, col)
			occ := gs.board.Get(from)
			if !occ.Is(gs.toMove) {
				continue
			}
			moves = gs.pieceMoves(from, occ, moves)
		}
	}
	return moves
}

// MovesFrom returns the pseudo-legal moves of the piece on sq, or nil if sq
// does not hold a piece of the side to move.
func (gs *GameState) MovesFrom(sq chess.Square) []chess.Move {
	occ := gs.board.Get(sq)
	if !occ.Is(gs.toMove) {
		return nil
	}
	return gs.pieceMoves(sq, occ, nil)
}

// pieceMoves dispatches to the rule for the piece kind of occ.
func (gs *GameState) pieceMoves(from chess.Square, occ chess.Occupant, moves []chess.Move) []chess.Move {
	switch occ.Piece {
	case chess.Pawn:
		return gs.pawnMoves(from, occ.Colour, moves)
	case chess.Knight:
		return gs.step(from, occ.Colour, knightJumps, moves)
	case chess.Bishop:
		return gs.slide(from, occ.Colour, bishopDirs, moves)
	case chess.Rook:
		return gs.slide(from, occ.Colour, rookDirs, moves)
	case chess.Queen:
		moves = gs.slide(from, occ.Colour, rookDirs, moves)
		return gs.slide(from, occ.Colour, bishopDirs, moves)
	case chess.King:
		return gs.step(from, occ.Colour, kingSteps, moves)
	default:
		return moves
	}
}

// pawnMoves appends the single advance, the double advance from the home
// row, and the two diagonal captures. There is no en passant or promotion;
// a pawn on the far row has no moves.
func (gs *GameState) pawnMoves(from chess.Square, us chess.Colour, moves []chess.Move) []chess.Move {
	dir := us.Forward()

	one := from.Offset(dir, 0)
	if !one.Valid() {
		return moves
	}
	if gs.board.Get(one).IsEmpty() {
		moves = append(moves, chess.MustMove(from, one, &gs.board))
		two := from.Offset(2*dir, 0)
		if from.Row == us.HomeRow() && gs.board.Get(two).IsEmpty() {
			moves = append(moves, chess.MustMove(from, two, &gs.board))
		}
	}

	for _, dc := range [2]int{-1, 1} {
		to := from.Offset(dir, dc)
		if to.Valid() && gs.board.Get(to).Is(us.Opposite()) {
			moves = append(moves, chess.MustMove(from, to, &gs.board))
		}
	}
	return moves
}
