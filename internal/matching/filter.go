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

// GameFilter combines material, variation, position and length criteria.
// A game passes when it meets every criterion that is set.
type GameFilter struct {
	Material   *MaterialMatcher
	Variations *VariationMatcher
	Positions  *PositionMatcher
	MinPly     int // 0 = no lower bound
	MaxPly     int // 0 = no upper bound
}

// NewGameFilter creates a new game filter with no criteria.
func NewGameFilter() *GameFilter {
	return &GameFilter{
		Variations: NewVariationMatcher(false),
		Positions:  NewPositionMatcher(),
	}
}

// SetMaterial sets the material balance a game must reach.
func (gf *GameFilter) SetMaterial(pattern string, exact bool) error {
	mm, err := NewMaterialMatcher(pattern, exact)
	if err != nil {
		return err
	}
	gf.Material = mm
	return nil
}

// SetPlyRange bounds the number of plies a game may have.
func (gf *GameFilter) SetPlyRange(minPly, maxPly int) error {
	if minPly < 0 || maxPly < 0 || (maxPly > 0 && minPly > maxPly) {
		return fmt.Errorf("ply range %d-%d: %w", minPly, maxPly, errors.ErrInvalidConfig)
	}
	gf.MinPly, gf.MaxPly = minPly, maxPly
	return nil
}

// AddPosition adds a position criterion. A full FEN (with a side to move)
// must match exactly; a bare placement is treated as a wildcard pattern.
func (gf *GameFilter) AddPosition(text string, label string) error {
	text = strings.TrimSpace(text)
	if strings.ContainsRune(text, ' ') {
		return gf.Positions.AddFEN(text, label)
	}
	gf.Positions.AddPattern(text, label, false)
	return nil
}

// LoadPositionFile loads position criteria from a file.
func (gf *GameFilter) LoadPositionFile(filename string) error {
	file, err := os.Open(filename) //nolint:gosec // G304: CLI tool opens user-specified files
	if err != nil {
		return err
	}
	defer file.Close()
	return gf.LoadPositions(file, filename)
}

// LoadPositions reads one position criterion per line, as for AddPosition.
// Blank lines and lines starting with '#' are skipped.
func (gf *GameFilter) LoadPositions(r io.Reader, source string) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := gf.AddPosition(line, ""); err != nil {
			return &errors.ParseError{
				Err:      err,
				File:     source,
				Line:     lineNo,
				Expected: "FEN or placement pattern",
				Got:      line,
			}
		}
	}
	return scanner.Err()
}

// HasCriteria returns true if any filter criteria are set.
func (gf *GameFilter) HasCriteria() bool {
	return gf.Material != nil ||
		gf.Variations.HasCriteria() ||
		gf.Positions.PatternCount() > 0 ||
		gf.MinPly > 0 || gf.MaxPly > 0
}

// Match implements GameMatcher. Cheap checks run first.
func (gf *GameFilter) Match(gs *engine.GameState) bool {
	ply := gs.Ply()
	if ply < gf.MinPly || (gf.MaxPly > 0 && ply > gf.MaxPly) {
		return false
	}
	return gf.matcher().Match(gs)
}

// matcher assembles the criteria that are set into one composite.
func (gf *GameFilter) matcher() *CompositeMatcher {
	c := NewCompositeMatcher(MatchAll)
	if gf.Material != nil {
		c.Add(gf.Material)
	}
	if gf.Variations.HasCriteria() {
		c.Add(gf.Variations)
	}
	if gf.Positions.PatternCount() > 0 {
		c.Add(gf.Positions)
	}
	return c
}

// Name implements GameMatcher.
func (gf *GameFilter) Name() string {
	return "GameFilter(" + gf.matcher().Name() + ")"
}
