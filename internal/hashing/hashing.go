// Package hashing provides position hashing and duplicate detection for
// replayed games.
package hashing

import (
	"math/rand"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/engine"
)

// HashCode is a cheap secondary position hash.
type HashCode uint32

// zobristSeed fixes the key table so hashes are stable across runs.
const zobristSeed = 0x5eed_c4e55

var (
	// pieceKeys is indexed by row, column, colour and piece.
	pieceKeys   [chess.BoardSize][chess.BoardSize][2][chess.King + 1]uint64
	blackToMove uint64
)

func init() {
	r := rand.New(rand.NewSource(zobristSeed)) //nolint:gosec // G404: hash keys, not secrets
	for row := range pieceKeys {
		for col := range pieceKeys[row] {
			for colour := range pieceKeys[row][col] {
				for piece := chess.Pawn; piece <= chess.King; piece++ {
					pieceKeys[row][col][colour][piece] = r.Uint64()
				}
			}
		}
	}
	blackToMove = r.Uint64()
}

// GenerateZobristHash returns the Zobrist hash of a position.
func GenerateZobristHash(board *chess.Board, toMove chess.Colour) uint64 {
	var hash uint64
	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			occ := board.Squares[row][col]
			if occ.IsEmpty() {
				continue
			}
			hash ^= pieceKeys[row][col][occ.Colour][occ.Piece]
		}
	}
	if toMove == chess.Black {
		hash ^= blackToMove
	}
	return hash
}

// WeakHash returns a fast position hash that ignores the side to move.
func WeakHash(board *chess.Board) HashCode {
	var h HashCode
	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			occ := board.Squares[row][col]
			if occ.IsEmpty() {
				continue
			}
			code := HashCode(occ.Piece) + HashCode(occ.Colour)*7
			h += code * HashCode(row*chess.BoardSize+col+1)
		}
	}
	return h
}

// PositionKey returns the Zobrist hash of a game's current position.
func PositionKey(gs *engine.GameState) uint64 {
	return GenerateZobristHash(gs.Board(), gs.SideToMove())
}

// DuplicateDetector tracks final positions for duplicate game detection.
type DuplicateDetector struct {
	// hashTable stores seen hash codes
	hashTable map[uint64][]GameSignature
	// useExactMatch also requires equal ply counts
	useExactMatch bool
	// duplicateCount tracks number of duplicates found
	duplicateCount int
	// maxCapacity bounds the number of stored signatures (0 = unlimited)
	maxCapacity int
	size        int
}

// GameSignature stores identifying information about a game.
type GameSignature struct {
	// Hash is the Zobrist hash of the final position
	Hash uint64
	// Ply is the number of half-moves played
	Ply int
	// WeakHash is a fast hash for quick comparison
	WeakHash HashCode
}

// NewDuplicateDetector creates a new duplicate detector.
// maxCapacity of 0 means unlimited capacity.
func NewDuplicateDetector(exactMatch bool, maxCapacity int) *DuplicateDetector {
	return &DuplicateDetector{
		hashTable:     make(map[uint64][]GameSignature),
		useExactMatch: exactMatch,
		maxCapacity:   maxCapacity,
	}
}

// CheckAndAdd checks if a game is a duplicate and adds it to the hash table.
// Returns true if the game is a duplicate. Once the detector is full, new
// games are still checked but no longer stored.
func (d *DuplicateDetector) CheckAndAdd(gs *engine.GameState) bool {
	if gs == nil {
		return false
	}

	sig := GameSignature{
		Hash:     PositionKey(gs),
		Ply:      gs.Ply(),
		WeakHash: WeakHash(gs.Board()),
	}

	// Check for duplicates
	for _, existing := range d.hashTable[sig.Hash] {
		if d.signaturesMatch(sig, existing) {
			d.duplicateCount++
			return true
		}
	}

	if d.IsFull() {
		return false
	}
	d.hashTable[sig.Hash] = append(d.hashTable[sig.Hash], sig)
	d.size++
	return false
}

// signaturesMatch checks if two game signatures match.
func (d *DuplicateDetector) signaturesMatch(a, b GameSignature) bool {
	if a.Hash != b.Hash || a.WeakHash != b.WeakHash {
		return false
	}
	return !d.useExactMatch || a.Ply == b.Ply
}

// DuplicateCount returns the number of duplicates detected.
func (d *DuplicateDetector) DuplicateCount() int {
	return d.duplicateCount
}

// UniqueCount returns the number of unique games stored.
func (d *DuplicateDetector) UniqueCount() int {
	return d.size
}

// IsFull returns true if the detector has reached its capacity limit.
// Always returns false for unlimited capacity (maxCapacity = 0).
func (d *DuplicateDetector) IsFull() bool {
	return d.maxCapacity > 0 && d.size >= d.maxCapacity
}

// Reset clears the hash table.
func (d *DuplicateDetector) Reset() {
	d.hashTable = make(map[uint64][]GameSignature)
	d.duplicateCount = 0
	d.size = 0
}
