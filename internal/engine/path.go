package engine

import "github.com/lgbarn/chesscore-go/internal/chess"

// offset is a (row, column) displacement.
type offset [2]int

// Direction tables. Their order fixes the order of generated moves.
var (
	rookDirs    = []offset{{-1, 0}, {0, -1}, {1, 0}, {0, 1}}
	bishopDirs  = []offset{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	knightJumps = []offset{
		{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
		{1, -2}, {1, 2}, {2, -1}, {2, 1},
	}
	kingSteps = []offset{
		{-1, -1}, {-1, 0}, {-1, 1},
		{0, -1}, {0, 1},
		{1, -1}, {1, 0}, {1, 1},
	}
)

// slide appends moves from `from` along each direction until the edge of the
// board or the first occupied square. An enemy on that square is captured;
// an ally blocks without being offered.
func (gs *GameState) slide(from chess.Square, us chess.Colour, dirs []offset, moves []chess.Move) []chess.Move {
	for _, d := range dirs {
		for i := 1; i < chess.BoardSize; i++ {
			to := from.Offset(d[0]*i, d[1]*i)
			if !to.Valid() {
				break
			}
			target := gs.board.Get(to)
			if target.IsEmpty() {
				moves = append(moves, chess.MustMove(from, to, &gs.board))
				continue
			}
			if !target.Is(us) {
				moves = append(moves, chess.MustMove(from, to, &gs.board))
			}
			break
		}
	}
	return moves
}

// step appends a move to each on-board square reached by one of the offsets
// that is not occupied by an ally.
func (gs *GameState) step(from chess.Square, us chess.Colour, offsets []offset, moves []chess.Move) []chess.Move {
	for _, o := range offsets {
		to := from.Offset(o[0], o[1])
		if to.Valid() && !gs.board.Get(to).Is(us) {
			moves = append(moves, chess.MustMove(from, to, &gs.board))
		}
	}
	return moves
}
