package engine

import "testing"

var benchFENs = map[string]string{
	"Initial": InitialFEN,
	"Midgame": "r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w - - 4 4",
	"Endgame": "8/5k2/8/8/8/8/5K2/4R3 w - - 0 1",
	"Complex": "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w - - 0 1",
}

func BenchmarkNewGameFromFEN(b *testing.B) {
	for name, fen := range benchFENs {
		b.Run(name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				NewGameFromFEN(fen) //nolint:errcheck // benchmark
			}
		})
	}
}

func BenchmarkToFEN(b *testing.B) {
	for name, fen := range benchFENs {
		b.Run(name, func(b *testing.B) {
			gs, _ := NewGameFromFEN(fen)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				gs.ToFEN()
			}
		})
	}
}

func BenchmarkGeneratePseudoLegalMoves(b *testing.B) {
	for name, fen := range benchFENs {
		b.Run(name, func(b *testing.B) {
			gs, _ := NewGameFromFEN(fen)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				gs.GeneratePseudoLegalMoves()
			}
		})
	}
}

func BenchmarkApplyUndo(b *testing.B) {
	gs := NewGame()
	moves := gs.GeneratePseudoLegalMoves()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		gs.ApplyMove(moves[i%len(moves)])
		gs.UndoLastMove()
	}
}

func BenchmarkPerft3(b *testing.B) {
	gs := NewGame()
	for i := 0; i < b.N; i++ {
		Perft(gs, 3)
	}
}
