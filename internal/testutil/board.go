package testutil

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/lgbarn/chesscore-go/internal/chess"
)

// EmptyRow is a row of eight empty cells in the occupant-code format.
const EmptyRow = "-- -- -- -- -- -- -- --"

// MustBoard builds a board from eight rows of occupant codes, rank 8 first.
// It calls t.Fatal if the rows are malformed.
func MustBoard(t *testing.T, rows ...string) *chess.Board {
	t.Helper()
	b, err := chess.ParseBoard(strings.Join(rows, "\n"))
	if err != nil {
		t.Fatalf("MustBoard: %v", err)
	}
	return b
}

// BoardWith returns an empty board holding the given pieces, keyed by square name.
func BoardWith(t *testing.T, pieces map[string]chess.Occupant) *chess.Board {
	t.Helper()
	b := chess.NewBoard()
	for name, occ := range pieces {
		sq, ok := chess.ParseSquare(name)
		if !ok {
			t.Fatalf("BoardWith: bad square %q", name)
		}
		b.Set(sq, occ)
	}
	return b
}

// Notations returns the coordinate notation of each move, in order.
func Notations(moves []chess.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.Notation()
	}
	return out
}

// AssertNotations compares the ordered notations of moves with want.
func AssertNotations(t *testing.T, moves []chess.Move, want ...string) {
	t.Helper()
	if want == nil {
		want = []string{}
	}
	if diff := cmp.Diff(want, Notations(moves)); diff != "" {
		t.Errorf("moves mismatch (-want +got):\n%s", diff)
	}
}

// AssertMoveSet compares moves with want, ignoring order.
func AssertMoveSet(t *testing.T, moves []chess.Move, want ...string) {
	t.Helper()
	if want == nil {
		want = []string{}
	}
	sortStrings := cmpopts.SortSlices(func(a, b string) bool { return a < b })
	if diff := cmp.Diff(want, Notations(moves), sortStrings); diff != "" {
		t.Errorf("move set mismatch (-want +got):\n%s", diff)
	}
}
