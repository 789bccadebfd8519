package replay

import (
	"strings"
	"testing"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/errors"
	"github.com/lgbarn/chesscore-go/internal/testutil"
)

const sampleInput = `# opening lines
e2e4 e7e5 g1f3

d2d4 d7d5 c2c4
   # indented comment
4k3/8/8/8/8/8/8/R3K3 w - - 0 1 | a1a8
`

func TestReadGames(t *testing.T) {
	games, err := ReadGames(strings.NewReader(sampleInput), "sample")
	testutil.AssertNoError(t, err)

	want := []Game{
		{Number: 1, Source: "sample", Line: 2, Moves: []string{"e2e4", "e7e5", "g1f3"}},
		{Number: 2, Source: "sample", Line: 4, Moves: []string{"d2d4", "d7d5", "c2c4"}},
		{Number: 3, Source: "sample", Line: 6, FEN: "4k3/8/8/8/8/8/8/R3K3 w - - 0 1", Moves: []string{"a1a8"}},
	}
	testutil.AssertEqual(t, games, want)
}

func TestReadGames_Empty(t *testing.T) {
	games, err := ReadGames(strings.NewReader("\n# nothing\n\n"), "empty")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(games), 0)
}

func TestReplayGame(t *testing.T) {
	tests := []struct {
		name     string
		game     Game
		wantPly  int
		wantSide chess.Colour
		wantErr  error
		errPly   int
	}{
		{
			name:     "legal line",
			game:     Game{Number: 1, Moves: []string{"e2e4", "e7e5", "g1f3"}},
			wantPly:  3,
			wantSide: chess.Black,
		},
		{
			name:     "empty line",
			game:     Game{Number: 2},
			wantPly:  0,
			wantSide: chess.White,
		},
		{
			name:     "illegal move stops replay",
			game:     Game{Number: 3, Moves: []string{"e2e4", "e7e4", "g1f3"}},
			wantPly:  1,
			wantSide: chess.Black,
			wantErr:  errors.ErrInvalidMove,
			errPly:   2,
		},
		{
			name:     "bad notation",
			game:     Game{Number: 4, Moves: []string{"e2e4", "Nf6"}},
			wantPly:  1,
			wantSide: chess.Black,
			wantErr:  errors.ErrInvalidNotation,
			errPly:   2,
		},
		{
			name:     "from FEN",
			game:     Game{Number: 5, FEN: "4k3/8/8/8/8/8/8/R3K3 b - - 0 1", Moves: []string{"e8d8", "a1a8"}},
			wantPly:  2,
			wantSide: chess.Black,
		},
		{
			name:     "moves after king capture",
			game:     Game{Number: 6, Moves: []string{"e2e4", "f7f6", "d1h5", "e8f7", "h5f7", "a7a6"}},
			wantPly:  5,
			wantSide: chess.Black,
			wantErr:  errors.ErrGameOver,
			errPly:   6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs, err := ReplayGame(tt.game)
			if gs == nil {
				t.Fatalf("ReplayGame returned nil state (err %v)", err)
			}
			testutil.AssertEqual(t, gs.Ply(), tt.wantPly)
			testutil.AssertEqual(t, gs.SideToMove(), tt.wantSide)

			if tt.wantErr == nil {
				testutil.AssertNoError(t, err)
				return
			}
			testutil.AssertErrorIs(t, err, tt.wantErr)
			var me *errors.MoveError
			if !errors.As(err, &me) {
				t.Fatalf("error %v is not a MoveError", err)
			}
			testutil.AssertEqual(t, me.GameNum, tt.game.Number)
			testutil.AssertEqual(t, me.Ply, tt.errPly)
			testutil.AssertEqual(t, me.Notation, tt.game.Moves[tt.errPly-1])
		})
	}
}

func TestReplayGame_BadFEN(t *testing.T) {
	gs, err := ReplayGame(Game{Number: 1, Source: "in.txt", Line: 7, FEN: "8/8/8 w", Moves: []string{"e2e4"}})
	if gs != nil {
		t.Error("expected nil state for a malformed FEN")
	}
	testutil.AssertErrorIs(t, err, errors.ErrInvalidFEN)

	var pe *errors.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error %v is not a ParseError", err)
	}
	testutil.AssertEqual(t, pe.Line, 7)
	if !strings.HasPrefix(err.Error(), "in.txt:7: expected FEN position") {
		t.Errorf("error text = %q", err.Error())
	}
}
