package matching

import (
	"strings"
	"testing"

	"github.com/lgbarn/chesscore-go/internal/errors"
	"github.com/lgbarn/chesscore-go/internal/testutil"
)

func TestVariationMatcher_Opening(t *testing.T) {
	vm := NewVariationMatcher(false)
	testutil.AssertNoError(t, vm.AddMoveSequence("1. E2E4 e7e5 2. g1f3"))

	testutil.AssertTrue(t, vm.Match(play(t, "e2e4", "e7e5", "g1f3", "b8c6")))
	testutil.AssertFalse(t, vm.Match(play(t, "e2e4", "e7e5")), "game shorter than the sequence")
	testutil.AssertFalse(t, vm.Match(play(t, "d2d4", "e7e5", "g1f3")))
}

func TestVariationMatcher_Anywhere(t *testing.T) {
	gs := play(t, "e2e4", "e7e5", "g1f3", "b8c6")

	anchored := NewVariationMatcher(false)
	testutil.AssertNoError(t, anchored.AddMoveSequence("g1f3 b8c6"))
	testutil.AssertFalse(t, anchored.Match(gs))

	anywhere := NewVariationMatcher(true)
	testutil.AssertNoError(t, anywhere.AddMoveSequence("g1f3 b8c6"))
	testutil.AssertTrue(t, anywhere.Match(gs))
	testutil.AssertFalse(t, anywhere.Match(play(t, "g1f3", "e7e5", "b1c3", "b8c6")), "moves must be consecutive")
}

func TestVariationMatcher_NoCriteria(t *testing.T) {
	vm := NewVariationMatcher(false)
	testutil.AssertFalse(t, vm.HasCriteria())
	testutil.AssertTrue(t, vm.Match(play(t, "a2a3")))
}

func TestVariationMatcher_BadSequence(t *testing.T) {
	vm := NewVariationMatcher(false)
	testutil.AssertErrorIs(t, vm.AddMoveSequence("e2e4 e7e9"), errors.ErrInvalidNotation)
	testutil.AssertErrorIs(t, vm.AddMoveSequence("1. 2."), errors.ErrInvalidNotation)
	testutil.AssertFalse(t, vm.HasCriteria())
}

func TestVariationMatcher_LoadFromReader(t *testing.T) {
	input := "# openings\n1. d2d4 d7d5\n\n1. e2e4 nonsense\n"
	vm := NewVariationMatcher(false)
	err := vm.LoadFromReader(strings.NewReader(input), "vars.txt")

	var pe *errors.ParseError
	testutil.AssertTrue(t, errors.As(err, &pe), "want ParseError, got %v", err)
	testutil.AssertEqual(t, pe.File, "vars.txt")
	testutil.AssertEqual(t, pe.Line, 4)
	testutil.AssertErrorIs(t, err, errors.ErrInvalidNotation)

	// Lines before the bad one are kept.
	testutil.AssertTrue(t, vm.Match(play(t, "d2d4", "d7d5")))
}

func TestVariationMatcher_Positional(t *testing.T) {
	input := strings.Join([]string{
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b - - 0 1",
		"rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR",
		"",
		"# second sequence",
		"rnbqkbnr/pppppppp/8/8/3P4/8/PPP1PPPP/RNBQKBNR",
	}, "\n")
	vm := NewVariationMatcher(false)
	testutil.AssertNoError(t, vm.LoadPositionalFromReader(strings.NewReader(input)))
	testutil.AssertTrue(t, vm.HasCriteria())

	testutil.AssertTrue(t, vm.Match(play(t, "e2e4", "e7e5", "g1f3")))
	testutil.AssertFalse(t, vm.Match(play(t, "e2e4", "c7c5")))
	testutil.AssertTrue(t, vm.Match(play(t, "d2d4")))
}
