package matching

import (
	"strings"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/engine"
	"github.com/lgbarn/chesscore-go/internal/hashing"
)

// FENPattern represents a FEN pattern to match.
// Supports wildcards:
//   - ? matches any square (empty or occupied)
//   - ! matches any non-empty square
//   - * matches zero or more of anything
//   - A matches any white piece
//   - a matches any black piece
//   - _ matches empty square
type FENPattern struct {
	Pattern       string
	Label         string // optional label for matched position
	Hash          uint64 // position key for exact FEN matches
	IsExact       bool   // true if this is an exact FEN (no wildcards)
	IncludeInvert bool   // also match color-inverted position
	ranks         []string
}

// PositionMatcher matches games that pass through given positions.
type PositionMatcher struct {
	patterns    []*FENPattern
	exactHashes map[uint64]*FENPattern
}

// NewPositionMatcher creates a new position matcher.
func NewPositionMatcher() *PositionMatcher {
	return &PositionMatcher{
		exactHashes: make(map[uint64]*FENPattern),
	}
}

// AddFEN adds an exact position to match. Placement and side to move must
// both agree.
func (pm *PositionMatcher) AddFEN(fen string, label string) error {
	gs, err := engine.NewGameFromFEN(fen)
	if err != nil {
		return err
	}

	hash := hashing.PositionKey(gs)
	pattern := &FENPattern{
		Pattern: fen,
		Label:   label,
		Hash:    hash,
		IsExact: true,
	}

	pm.patterns = append(pm.patterns, pattern)
	pm.exactHashes[hash] = pattern

	return nil
}

// AddPattern adds a placement pattern with wildcards, ranks separated by '/'
// and rank 8 first.
func (pm *PositionMatcher) AddPattern(pattern string, label string, includeInvert bool) {
	p := &FENPattern{
		Pattern:       pattern,
		Label:         label,
		IncludeInvert: includeInvert,
		ranks:         strings.Split(pattern, "/"),
	}
	pm.patterns = append(pm.patterns, p)

	if includeInvert {
		inverted := invertPattern(pattern)
		pm.patterns = append(pm.patterns, &FENPattern{
			Pattern: inverted,
			Label:   label,
			ranks:   strings.Split(inverted, "/"),
		})
	}
}

// MatchGame returns the first pattern matched by any position of the game,
// or nil.
func (pm *PositionMatcher) MatchGame(gs *engine.GameState) *FENPattern {
	if len(pm.patterns) == 0 {
		return nil
	}

	var found *FENPattern
	walkPositions(gs, func(pos *engine.GameState) bool {
		found = pm.matchPosition(pos)
		return found != nil
	})
	return found
}

// Match implements GameMatcher.
func (pm *PositionMatcher) Match(gs *engine.GameState) bool {
	return pm.MatchGame(gs) != nil
}

// Name implements GameMatcher.
func (pm *PositionMatcher) Name() string {
	return "PositionMatcher"
}

// matchPosition checks if a position matches any pattern.
func (pm *PositionMatcher) matchPosition(gs *engine.GameState) *FENPattern {
	if pattern, ok := pm.exactHashes[hashing.PositionKey(gs)]; ok {
		return pattern
	}

	var boardRanks [chess.BoardSize]string
	ranksBuilt := false
	for _, pattern := range pm.patterns {
		if pattern.IsExact {
			continue
		}
		if !ranksBuilt {
			boardRanks = boardToRanks(gs.Board())
			ranksBuilt = true
		}
		if matchPattern(boardRanks, pattern) {
			return pattern
		}
	}

	return nil
}

// matchPattern checks board ranks against a wildcard pattern.
func matchPattern(boardRanks [chess.BoardSize]string, pattern *FENPattern) bool {
	if len(pattern.ranks) == 0 {
		return false
	}

	for i, patternRank := range pattern.ranks {
		if i >= chess.BoardSize {
			break
		}
		if !matchRank(boardRanks[i], patternRank) {
			return false
		}
	}

	return true
}

// boardToRanks converts a board to rank strings, rank 8 first, '_' for
// empty squares.
func boardToRanks(board *chess.Board) [chess.BoardSize]string {
	var ranks [chess.BoardSize]string

	for row := 0; row < chess.BoardSize; row++ {
		var sb strings.Builder
		for col := 0; col < chess.BoardSize; col++ {
			occ := board.Squares[row][col]
			if occ == chess.Empty {
				sb.WriteByte('_')
				continue
			}
			sb.WriteByte(engine.OccupantToFENLetter(occ))
		}
		ranks[row] = sb.String()
	}

	return ranks
}

// matchRank matches a board rank string against a pattern rank.
func matchRank(boardRank, patternRank string) bool {
	bi := 0 // board index
	pi := 0 // pattern index

	for pi < len(patternRank) {
		if bi >= len(boardRank) && patternRank[pi] != '*' {
			return false
		}

		c := patternRank[pi]

		switch c {
		case '*':
			pi++
			if pi >= len(patternRank) {
				return true
			}
			for bi <= len(boardRank) {
				if matchRank(boardRank[bi:], patternRank[pi:]) {
					return true
				}
				bi++
			}
			return false

		case '?':
			bi++
			pi++

		case '!':
			if boardRank[bi] == '_' {
				return false
			}
			bi++
			pi++

		case 'A':
			if boardRank[bi] < 'A' || boardRank[bi] > 'Z' {
				return false
			}
			bi++
			pi++

		case 'a':
			if boardRank[bi] < 'a' || boardRank[bi] > 'z' {
				return false
			}
			bi++
			pi++

		case '1', '2', '3', '4', '5', '6', '7', '8':
			// N empty squares
			count := int(c - '0')
			for i := 0; i < count; i++ {
				if bi >= len(boardRank) || boardRank[bi] != '_' {
					return false
				}
				bi++
			}
			pi++

		default:
			// '_' or an exact piece letter
			if boardRank[bi] != c {
				return false
			}
			bi++
			pi++
		}
	}

	return bi == len(boardRank)
}

// invertPattern swaps the colours in a pattern and mirrors it top to bottom.
func invertPattern(pattern string) string {
	var result strings.Builder

	for _, c := range pattern {
		switch {
		case c >= 'A' && c <= 'Z':
			result.WriteRune(c + 32)
		case c >= 'a' && c <= 'z':
			result.WriteRune(c - 32)
		default:
			result.WriteRune(c)
		}
	}

	ranks := strings.Split(result.String(), "/")
	for i, j := 0, len(ranks)-1; i < j; i, j = i+1, j-1 {
		ranks[i], ranks[j] = ranks[j], ranks[i]
	}

	return strings.Join(ranks, "/")
}

// PatternCount returns the number of patterns.
func (pm *PositionMatcher) PatternCount() int {
	return len(pm.patterns)
}
