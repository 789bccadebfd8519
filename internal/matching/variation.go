package matching

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lgbarn/chesscore-go/internal/engine"
	"github.com/lgbarn/chesscore-go/internal/errors"
)

// VariationMatcher matches games against move sequences and against
// sequences of positions.
type VariationMatcher struct {
	// Move sequences in coordinate notation
	moveSequences [][]string
	// Piece placements the game must pass through in order
	positionSequences [][]string
	// anywhere lets a move sequence start at any ply, not just the first
	anywhere bool
}

// NewVariationMatcher creates a new variation matcher. With anywhere set,
// move sequences may occur at any point in a game; otherwise a game must
// open with one of them.
func NewVariationMatcher(anywhere bool) *VariationMatcher {
	return &VariationMatcher{anywhere: anywhere}
}

// LoadFromFile loads move sequences from a file.
func (vm *VariationMatcher) LoadFromFile(filename string) error {
	file, err := os.Open(filename) //nolint:gosec // G304: CLI tool opens user-specified files
	if err != nil {
		return err
	}
	defer file.Close()
	return vm.LoadFromReader(file, filename)
}

// LoadFromReader loads move sequences, one per line, such as
// "1. e2e4 e7e5 2. g1f3". Blank lines and lines starting with '#' are
// skipped.
func (vm *VariationMatcher) LoadFromReader(r io.Reader, source string) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := vm.AddMoveSequence(line); err != nil {
			return &errors.ParseError{
				Err:      err,
				File:     source,
				Line:     lineNo,
				Expected: "coordinate moves",
				Got:      line,
			}
		}
	}
	return scanner.Err()
}

// LoadPositionalFromFile loads position sequences from a file.
func (vm *VariationMatcher) LoadPositionalFromFile(filename string) error {
	file, err := os.Open(filename) //nolint:gosec // G304: CLI tool opens user-specified files
	if err != nil {
		return err
	}
	defer file.Close()
	return vm.LoadPositionalFromReader(file)
}

// LoadPositionalFromReader loads position sequences: one FEN per line, with
// blank lines separating sequences. Only the placement field is compared.
func (vm *VariationMatcher) LoadPositionalFromReader(r io.Reader) error {
	var currentSequence []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			if len(currentSequence) > 0 {
				vm.positionSequences = append(vm.positionSequences, currentSequence)
				currentSequence = nil
			}
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}

		currentSequence = append(currentSequence, placement(line))
	}

	if len(currentSequence) > 0 {
		vm.positionSequences = append(vm.positionSequences, currentSequence)
	}

	return scanner.Err()
}

// AddMoveSequence adds a line of moves to match. Move numbers are ignored.
func (vm *VariationMatcher) AddMoveSequence(line string) error {
	moves, err := parseMoveSequence(line)
	if err != nil {
		return err
	}
	if len(moves) == 0 {
		return fmt.Errorf("%q: no moves: %w", line, errors.ErrInvalidNotation)
	}
	vm.moveSequences = append(vm.moveSequences, moves)
	return nil
}

// Match reports whether the game contains any of the move sequences or
// passes through any of the position sequences. A matcher with no
// sequences matches every game.
func (vm *VariationMatcher) Match(gs *engine.GameState) bool {
	if !vm.HasCriteria() {
		return true
	}

	played := engine.Notations(gs.MoveLog())
	for _, seq := range vm.moveSequences {
		if vm.matchMoveSequence(played, seq) {
			return true
		}
	}

	for _, seq := range vm.positionSequences {
		if matchPositionSequence(gs, seq) {
			return true
		}
	}

	return false
}

// matchMoveSequence checks if played contains seq, at the start or, with
// anywhere set, at any ply.
func (vm *VariationMatcher) matchMoveSequence(played, seq []string) bool {
	last := 0
	if vm.anywhere {
		last = len(played) - len(seq)
	}
	for start := 0; start <= last && start+len(seq) <= len(played); start++ {
		if equalMoves(played[start:start+len(seq)], seq) {
			return true
		}
	}
	return false
}

func equalMoves(a, b []string) bool {
	for i := range b {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// matchPositionSequence checks if the game passes through all placements in
// order, not necessarily on consecutive plies.
func matchPositionSequence(gs *engine.GameState, seq []string) bool {
	seqIdx := 0
	return walkPositions(gs, func(pos *engine.GameState) bool {
		if placement(pos.ToFEN()) == seq[seqIdx] {
			seqIdx++
		}
		return seqIdx == len(seq)
	})
}

// parseMoveSequence splits a line into moves, dropping move numbers such as
// "1." and "1...".
func parseMoveSequence(line string) ([]string, error) {
	var moves []string

	for _, part := range strings.Fields(line) {
		if strings.HasSuffix(part, ".") {
			continue
		}
		if _, _, err := engine.ParseCoordinates(part); err != nil {
			return nil, err
		}
		moves = append(moves, strings.ToLower(part))
	}

	return moves, nil
}

// placement returns the first field of a FEN string.
func placement(fen string) string {
	if i := strings.IndexByte(fen, ' '); i >= 0 {
		return fen[:i]
	}
	return fen
}

// HasCriteria returns true if any matching criteria are set.
func (vm *VariationMatcher) HasCriteria() bool {
	return len(vm.moveSequences) > 0 || len(vm.positionSequences) > 0
}

// Name implements GameMatcher.
func (vm *VariationMatcher) Name() string {
	return "VariationMatcher"
}
