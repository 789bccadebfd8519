// Package matching selects replayed games by the positions and moves they
// contain.
package matching

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chesscore-go/internal/engine"
)

// GameMatcher is the interface for all game matching implementations.
type GameMatcher interface {
	// Match returns true if the game matches the matcher's criteria.
	Match(gs *engine.GameState) bool

	// Name returns a descriptive name for this matcher.
	Name() string
}

// MatchMode specifies how multiple matchers are combined.
type MatchMode int

const (
	// MatchAll requires all matchers to match (AND logic).
	MatchAll MatchMode = iota

	// MatchAny requires at least one matcher to match (OR logic).
	MatchAny
)

// CompositeMatcher combines multiple GameMatchers with AND or OR logic.
type CompositeMatcher struct {
	matchers []GameMatcher
	mode     MatchMode
}

// NewCompositeMatcher creates a new CompositeMatcher with the given mode and matchers.
func NewCompositeMatcher(mode MatchMode, matchers ...GameMatcher) *CompositeMatcher {
	return &CompositeMatcher{
		matchers: matchers,
		mode:     mode,
	}
}

// Match implements GameMatcher.
func (c *CompositeMatcher) Match(gs *engine.GameState) bool {
	if len(c.matchers) == 0 {
		// AND over nothing is vacuously true
		return c.mode == MatchAll
	}

	switch c.mode {
	case MatchAll:
		for _, m := range c.matchers {
			if !m.Match(gs) {
				return false
			}
		}
		return true
	case MatchAny:
		for _, m := range c.matchers {
			if m.Match(gs) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Name implements GameMatcher.
func (c *CompositeMatcher) Name() string {
	if len(c.matchers) == 0 {
		return "CompositeMatcher(empty)"
	}

	names := make([]string, len(c.matchers))
	for i, m := range c.matchers {
		names[i] = m.Name()
	}

	modeStr := "AND"
	if c.mode == MatchAny {
		modeStr = "OR"
	}

	return fmt.Sprintf("CompositeMatcher(%s: %s)", modeStr, strings.Join(names, ", "))
}

// Add adds a matcher to the composite.
func (c *CompositeMatcher) Add(m GameMatcher) {
	c.matchers = append(c.matchers, m)
}

// Len returns the number of matchers in the composite.
func (c *CompositeMatcher) Len() int {
	return len(c.matchers)
}

// walkPositions calls visit on the game's starting position and then after
// each logged move, stopping early when visit returns true. gs is not
// modified. It reports whether visit ever returned true.
func walkPositions(gs *engine.GameState, visit func(*engine.GameState) bool) bool {
	replay := gs.Clone()
	log := replay.MoveLog()
	for replay.UndoLastMove() {
	}

	if visit(replay) {
		return true
	}
	for _, m := range log {
		replay.ApplyMove(m)
		if visit(replay) {
			return true
		}
	}
	return false
}
