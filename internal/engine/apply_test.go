package engine

import (
	"testing"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/errors"
	"github.com/lgbarn/chesscore-go/internal/testutil"
)

// snapshot captures everything apply/undo may change.
type snapshot struct {
	board  chess.Board
	toMove chess.Colour
	log    []chess.Move
}

func takeSnapshot(gs *GameState) snapshot {
	return snapshot{board: *gs.Board(), toMove: gs.SideToMove(), log: gs.MoveLog()}
}

func assertSameState(t *testing.T, got, want snapshot) {
	t.Helper()
	if got.board != want.board {
		t.Errorf("board differs:\ngot:\n%s\nwant:\n%s", &got.board, &want.board)
	}
	if got.toMove != want.toMove {
		t.Errorf("side to move = %v, want %v", got.toMove, want.toMove)
	}
	if len(got.log) != len(want.log) {
		t.Fatalf("log length = %d, want %d", len(got.log), len(want.log))
	}
	for i := range got.log {
		if got.log[i] != want.log[i] {
			t.Errorf("log[%d] = %v, want %v", i, got.log[i], want.log[i])
		}
	}
}

func TestApplyMove(t *testing.T) {
	gs := NewGame()
	m := chess.MustMove(chess.Sq(6, 4), chess.Sq(4, 4), gs.Board())

	gs.ApplyMove(m)

	if got := gs.At(chess.Sq(6, 4)); got != chess.Empty {
		t.Errorf("e2 = %v after e2e4, want Empty", got)
	}
	if got := gs.At(chess.Sq(4, 4)); got != chess.W(chess.Pawn) {
		t.Errorf("e4 = %v after e2e4, want wp", got)
	}
	if gs.SideToMove() != chess.Black {
		t.Errorf("SideToMove() = %v, want Black", gs.SideToMove())
	}
	if gs.Ply() != 1 {
		t.Errorf("Ply() = %d, want 1", gs.Ply())
	}
	last, ok := gs.LastMove()
	if !ok || !last.Equal(m) {
		t.Errorf("LastMove() = %v, %v; want %v, true", last, ok, m)
	}
}

func TestApplyMove_Capture(t *testing.T) {
	board := testutil.BoardWith(t, map[string]chess.Occupant{
		"a1": chess.W(chess.Rook),
		"a7": chess.B(chess.Knight),
		"e1": chess.W(chess.King),
		"e8": chess.B(chess.King),
	})
	gs := NewGameFromBoard(board, chess.White)
	before := takeSnapshot(gs)

	m := chess.MustMove(chess.Sq(7, 0), chess.Sq(1, 0), gs.Board())
	gs.ApplyMove(m)

	if got := gs.At(chess.Sq(1, 0)); got != chess.W(chess.Rook) {
		t.Errorf("a7 = %v after capture, want wR", got)
	}
	if got := gs.Board().Count(chess.B(chess.Knight)); got != 0 {
		t.Errorf("black knights = %d after capture, want 0", got)
	}

	if !gs.UndoLastMove() {
		t.Fatal("UndoLastMove() = false, want true")
	}
	assertSameState(t, takeSnapshot(gs), before)
	if got := gs.At(chess.Sq(1, 0)); got != chess.B(chess.Knight) {
		t.Errorf("a7 = %v after undo, want bN", got)
	}
}

func TestUndoLastMove_EmptyLog(t *testing.T) {
	gs := NewGame()
	before := takeSnapshot(gs)

	if gs.UndoLastMove() {
		t.Error("UndoLastMove() on empty log = true, want false")
	}
	assertSameState(t, takeSnapshot(gs), before)
}

func TestApplyUndoInverse(t *testing.T) {
	// Walk a line of play; at every position, each generated move must be
	// exactly reverted by UndoLastMove.
	line := []string{"e2e4", "d7d5", "e4d5", "g8f6", "f1b5", "c7c6", "d5c6", "d8d2", "b1d2", "b7c6"}
	gs := NewGame()

	for _, next := range line {
		before := takeSnapshot(gs)
		for _, m := range gs.GeneratePseudoLegalMoves() {
			gs.ApplyMove(m)
			gs.UndoLastMove()
			assertSameState(t, takeSnapshot(gs), before)
		}
		if _, err := gs.Play(next); err != nil {
			t.Fatalf("Play(%s) error: %v", next, err)
		}
	}
}

func TestTurnAlternation(t *testing.T) {
	gs := NewGame()
	for i := 0; i < 60; i++ {
		wantWhite := gs.Ply()%2 == 0
		if (gs.SideToMove() == chess.White) != wantWhite {
			t.Fatalf("ply %d: SideToMove() = %v", gs.Ply(), gs.SideToMove())
		}
		moves := gs.GeneratePseudoLegalMoves()
		if len(moves) == 0 {
			break
		}
		gs.ApplyMove(moves[(i*7)%len(moves)])
	}

	for gs.UndoLastMove() {
		wantWhite := gs.Ply()%2 == 0
		if (gs.SideToMove() == chess.White) != wantWhite {
			t.Fatalf("after undo to ply %d: SideToMove() = %v", gs.Ply(), gs.SideToMove())
		}
	}
	if *gs.Board() != *chess.NewInitialBoard() {
		t.Error("undoing every move did not restore the initial position")
	}
}

func TestApplyChecked(t *testing.T) {
	t.Run("member is applied", func(t *testing.T) {
		gs := NewGame()
		m := chess.MustMove(chess.Sq(7, 6), chess.Sq(5, 5), gs.Board())
		testutil.AssertNoError(t, gs.ApplyChecked(m))
		testutil.AssertEqual(t, gs.At(chess.Sq(5, 5)), chess.W(chess.Knight))
	})

	t.Run("non-member is rejected", func(t *testing.T) {
		gs := NewGame()
		before := takeSnapshot(gs)
		m := chess.MustMove(chess.Sq(6, 4), chess.Sq(3, 4), gs.Board())

		err := gs.ApplyChecked(m)
		testutil.AssertErrorIs(t, err, errors.ErrInvalidMove)

		var moveErr *errors.MoveError
		if !errors.As(err, &moveErr) {
			t.Fatalf("error %v is not a MoveError", err)
		}
		testutil.AssertEqual(t, moveErr.Ply, 1)
		testutil.AssertEqual(t, moveErr.Notation, "e2e5")
		assertSameState(t, takeSnapshot(gs), before)
	})

	t.Run("stale move records live capture", func(t *testing.T) {
		gs := NewGame()
		for _, mv := range []string{"e2e4", "d7d5"} {
			if _, err := gs.Play(mv); err != nil {
				t.Fatalf("Play(%s) error: %v", mv, err)
			}
		}
		// Built against the initial board, so it believes d5 is empty.
		stale := chess.MustMove(chess.Sq(4, 4), chess.Sq(3, 3), chess.NewInitialBoard())
		testutil.AssertEqual(t, stale.PieceCaptured(), chess.Empty)

		testutil.AssertNoError(t, gs.ApplyChecked(stale))
		last, _ := gs.LastMove()
		testutil.AssertEqual(t, last.PieceMoved(), chess.W(chess.Pawn))
		testutil.AssertEqual(t, last.PieceCaptured(), chess.B(chess.Pawn))

		gs.UndoLastMove()
		testutil.AssertEqual(t, gs.At(chess.Sq(3, 3)), chess.B(chess.Pawn))
	})
}

func TestPlay(t *testing.T) {
	gs := NewGame()

	m, err := gs.Play("e2e4")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, m.Notation(), "e2e4")

	_, err = gs.Play("e2e4")
	testutil.AssertErrorIs(t, err, errors.ErrInvalidMove, "moving from an empty square")

	_, err = gs.Play("Nf6")
	testutil.AssertErrorIs(t, err, errors.ErrInvalidNotation)

	testutil.AssertEqual(t, gs.Ply(), 1)
}
