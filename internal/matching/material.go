package matching

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/engine"
	"github.com/lgbarn/chesscore-go/internal/errors"
)

// MaterialMatcher matches games that reach a given material balance.
type MaterialMatcher struct {
	// Pattern like "QR:qrr" means white has Q+R, black has Q+2R
	pattern    string
	exactMatch bool
	counts     [2][chess.King + 1]int
}

// NewMaterialMatcher creates a new material matcher.
// Pattern format: "QRN:qrn" (white pieces : black pieces), letters as in
// FEN. With exact set a position must hold exactly those pieces; otherwise
// at least those pieces.
func NewMaterialMatcher(pattern string, exact bool) (*MaterialMatcher, error) {
	mm := &MaterialMatcher{
		pattern:    pattern,
		exactMatch: exact,
	}
	if err := mm.parsePattern(pattern); err != nil {
		return nil, err
	}
	return mm, nil
}

// parsePattern parses a material pattern like "QR:qrr". Either side may be
// left empty.
func (mm *MaterialMatcher) parsePattern(pattern string) error {
	parts := strings.Split(pattern, ":")
	if len(parts) > 2 {
		return fmt.Errorf("material %q: more than one ':': %w", pattern, errors.ErrInvalidNotation)
	}
	for i, part := range parts {
		colour := chess.White
		if i == 1 {
			colour = chess.Black
		}
		for j := 0; j < len(part); j++ {
			occ := chess.Occupant{Colour: colour, Piece: engine.ConvertFENCharToPiece(part[j])}
			if occ.Piece == chess.NoPiece || engine.OccupantToFENLetter(occ) != part[j] {
				return fmt.Errorf("material %q: unexpected %q: %w", pattern, part[j], errors.ErrInvalidNotation)
			}
			mm.counts[colour][occ.Piece]++
		}
	}
	return nil
}

// Match reports whether any position in the game matches the pattern.
func (mm *MaterialMatcher) Match(gs *engine.GameState) bool {
	return walkPositions(gs, func(pos *engine.GameState) bool {
		return mm.matchBoard(pos.Board())
	})
}

// matchBoard checks a single position against the pattern.
func (mm *MaterialMatcher) matchBoard(board *chess.Board) bool {
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		for piece := chess.Pawn; piece <= chess.King; piece++ {
			want := mm.counts[colour][piece]
			have := board.Count(chess.Occupant{Colour: colour, Piece: piece})
			if have < want || (mm.exactMatch && have != want) {
				return false
			}
		}
	}
	return true
}

// HasCriteria returns true if a material pattern is set.
func (mm *MaterialMatcher) HasCriteria() bool {
	return mm.pattern != ""
}

// Name implements GameMatcher.
func (mm *MaterialMatcher) Name() string {
	if mm.exactMatch {
		return "MaterialMatcher(exact " + mm.pattern + ")"
	}
	return "MaterialMatcher(" + mm.pattern + ")"
}
