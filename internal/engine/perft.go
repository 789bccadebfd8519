package engine

// Perft counts the leaf nodes of the pseudo-legal move tree to the given
// depth, using ApplyMove and UndoLastMove. Captured kings do not end the
// search. The state is left unchanged.
func Perft(gs *GameState, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := gs.GeneratePseudoLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		gs.ApplyMove(m)
		nodes += Perft(gs, depth-1)
		gs.UndoLastMove()
	}
	return nodes
}

// Divide returns the perft count below each root move, keyed by notation.
func Divide(gs *GameState, depth int) map[string]uint64 {
	out := make(map[string]uint64)
	if depth <= 0 {
		return out
	}
	for _, m := range gs.GeneratePseudoLegalMoves() {
		gs.ApplyMove(m)
		out[m.Notation()] = Perft(gs, depth-1)
		gs.UndoLastMove()
	}
	return out
}
