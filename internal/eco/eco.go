// Package eco provides ECO (Encyclopaedia of Chess Openings) classification.
package eco

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/engine"
	"github.com/lgbarn/chesscore-go/internal/errors"
	"github.com/lgbarn/chesscore-go/internal/hashing"
)

// ECOHalfMoveLimit is the maximum distance from an ECO line for a match.
const ECOHalfMoveLimit = 6

// ECOTableSize is the size of the ECO hash table.
const ECOTableSize = 4096

//go:embed openings.txt
var defaultBook string

// ECOEntry represents a single ECO classification entry.
type ECOEntry struct {
	ECOCode   string `json:"eco"`                 // e.g., "B33"
	Opening   string `json:"name"`                // e.g., "Sicilian Defence"
	Variation string `json:"variation,omitempty"` // e.g., "Sveshnikov"
	HalfMoves int    `json:"-"`                   // Number of half-moves to reach this position

	requiredHash   uint64 // Position hash for matching
	cumulativeHash uint64 // XOR of the hashes of every position on the way
	next           *ECOEntry
}

// String returns the code and full name, e.g. "C50 Italian Game: Giuoco Piano".
func (e *ECOEntry) String() string {
	s := e.ECOCode + " " + e.Opening
	if e.Variation != "" {
		s += ": " + e.Variation
	}
	return s
}

// ECOClassifier provides ECO classification for chess games.
// It is safe for concurrent use once loaded.
type ECOClassifier struct {
	table         [ECOTableSize]*ECOEntry
	maxHalfMoves  int
	entriesLoaded int
}

// NewECOClassifier creates a new ECO classifier.
func NewECOClassifier() *ECOClassifier {
	return &ECOClassifier{
		maxHalfMoves: ECOHalfMoveLimit,
	}
}

var (
	defaultOnce       sync.Once
	defaultClassifier atomic.Pointer[ECOClassifier]
)

// Default returns the shared classifier, loaded from the built-in opening
// book unless SetDefault replaced it.
func Default() *ECOClassifier {
	defaultOnce.Do(func() {
		ec := NewECOClassifier()
		if err := ec.LoadFromReader(strings.NewReader(defaultBook), "openings.txt"); err != nil {
			panic(fmt.Sprintf("eco: built-in opening book: %v", err))
		}
		defaultClassifier.CompareAndSwap(nil, ec)
	})
	return defaultClassifier.Load()
}

// SetDefault replaces the shared classifier.
func SetDefault(ec *ECOClassifier) {
	defaultClassifier.Store(ec)
}

// LoadFromFile loads ECO data from an opening book file.
func (ec *ECOClassifier) LoadFromFile(filename string) error {
	file, err := os.Open(filename) //nolint:gosec // G304: user-specified book
	if err != nil {
		return fmt.Errorf("cannot open ECO file: %w", err)
	}
	defer file.Close()

	return ec.LoadFromReader(file, filename)
}

// LoadFromReader loads ECO data from a reader. Each line holds
// "code | name[: variation] | moves"; blank lines and lines starting with
// "#" are skipped.
func (ec *ECOClassifier) LoadFromReader(r io.Reader, source string) error {
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := ec.addECOEntry(line); err != nil {
			return &errors.ParseError{
				Err:      err,
				File:     source,
				Line:     lineNum,
				Expected: "code | name | moves",
				Got:      line,
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "reading %s", source)
	}
	return nil
}

// addECOEntry parses a book line, replays its moves and adds it to the table.
func (ec *ECOClassifier) addECOEntry(line string) error {
	fields := strings.Split(line, "|")
	if len(fields) != 3 {
		return errors.ErrInvalidNotation
	}
	ecoCode := strings.TrimSpace(fields[0])
	opening, variation, _ := strings.Cut(strings.TrimSpace(fields[1]), ": ")
	moves := strings.Fields(fields[2])
	if ecoCode == "" || opening == "" || len(moves) == 0 {
		return errors.ErrInvalidNotation
	}

	// Replay the line to get position hashes
	gs := engine.NewGame()
	var cumulativeHash uint64
	for _, text := range moves {
		if _, err := gs.Play(text); err != nil {
			return err
		}
		cumulativeHash ^= hashing.PositionKey(gs)
	}

	entry := &ECOEntry{
		ECOCode:        ecoCode,
		Opening:        opening,
		Variation:      variation,
		HalfMoves:      gs.Ply(),
		requiredHash:   hashing.PositionKey(gs),
		cumulativeHash: cumulativeHash,
	}

	// Check for collision
	ix := entry.requiredHash % ECOTableSize
	for existing := ec.table[ix]; existing != nil; existing = existing.next {
		if existing.requiredHash == entry.requiredHash &&
			existing.HalfMoves == entry.HalfMoves &&
			existing.cumulativeHash == entry.cumulativeHash {
			// Same line twice: keep the first
			return nil
		}
	}

	entry.next = ec.table[ix]
	ec.table[ix] = entry
	ec.entriesLoaded++

	if entry.HalfMoves+ECOHalfMoveLimit > ec.maxHalfMoves {
		ec.maxHalfMoves = entry.HalfMoves + ECOHalfMoveLimit
	}
	return nil
}

// ClassifyGame finds the best ECO match for a game by replaying its move log
// from the start. Games that did not begin at the standard position, and
// games matching no entry, return nil. gs is not modified.
func (ec *ECOClassifier) ClassifyGame(gs *engine.GameState) *ECOEntry {
	if ec == nil || ec.entriesLoaded == 0 || gs.Ply() == 0 {
		return nil
	}

	replay := gs.Clone()
	log := replay.MoveLog()
	for replay.UndoLastMove() {
	}
	if replay.SideToMove() != chess.White || *replay.Board() != *chess.NewInitialBoard() {
		return nil
	}

	var bestMatch *ECOEntry
	var cumulativeHash uint64

	for i, m := range log {
		halfMoves := i + 1
		// Don't bother checking if we're past max ECO depth
		if halfMoves > ec.maxHalfMoves {
			break
		}
		replay.ApplyMove(m)

		posHash := hashing.PositionKey(replay)
		cumulativeHash ^= posHash

		if match := ec.findMatch(posHash, cumulativeHash, halfMoves); match != nil {
			bestMatch = match
		}
	}

	return bestMatch
}

// findMatch looks up a position in the ECO table.
func (ec *ECOClassifier) findMatch(posHash, cumulativeHash uint64, halfMoves int) *ECOEntry {
	ix := posHash % ECOTableSize
	var possible *ECOEntry

	for entry := ec.table[ix]; entry != nil; entry = entry.next {
		if entry.requiredHash == posHash {
			// Exact match on position and cumulative hash
			if entry.HalfMoves == halfMoves && entry.cumulativeHash == cumulativeHash {
				return entry
			}
			// Partial match within limit
			if abs(halfMoves-entry.HalfMoves) <= ECOHalfMoveLimit {
				possible = entry
			}
		}
	}

	return possible
}

// EntriesLoaded returns the number of ECO entries loaded.
func (ec *ECOClassifier) EntriesLoaded() int {
	return ec.entriesLoaded
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
