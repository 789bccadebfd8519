// Package processing analyses replayed games for repeated positions, long
// quiet stretches and uneven starting material.
package processing

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/engine"
	"github.com/lgbarn/chesscore-go/internal/hashing"
)

// GameAnalysis holds analysis results from replaying a game.
type GameAnalysis struct {
	Positions []uint64 `json:"-"` // Zobrist keys, starting position first

	DistinctPositions  int  `json:"distinctPositions"`
	MaxRepetitions     int  `json:"maxRepetitions"`
	HasRepetition      bool `json:"repetition"`  // a position occurred three times
	Has5FoldRepetition bool `json:"repetition5"` // a position occurred five times
	HasFiftyMoveRule   bool `json:"fiftyMove"`   // 100 plies without a pawn move or capture
	Has75MoveRule      bool `json:"seventyFiveMove"`
	HasMaterialOdds    bool `json:"materialOdds"` // the sides started with different pieces
	Captures           int  `json:"captures"`
	KingCaptured       bool `json:"kingCaptured"`
}

// String lists the features found, e.g. "3 captures, repetition x3, fifty-move".
func (ga *GameAnalysis) String() string {
	var parts []string
	switch ga.Captures {
	case 0:
		parts = append(parts, "no captures")
	case 1:
		parts = append(parts, "1 capture")
	default:
		parts = append(parts, fmt.Sprintf("%d captures", ga.Captures))
	}
	if ga.KingCaptured {
		parts = append(parts, "king captured")
	}
	if ga.MaxRepetitions > 1 {
		parts = append(parts, fmt.Sprintf("repetition x%d", ga.MaxRepetitions))
	}
	switch {
	case ga.Has75MoveRule:
		parts = append(parts, "seventy-five-move")
	case ga.HasFiftyMoveRule:
		parts = append(parts, "fifty-move")
	}
	if ga.HasMaterialOdds {
		parts = append(parts, "material odds")
	}
	return strings.Join(parts, ", ")
}

// AnalyzeGame replays a game's move log from its starting position and
// analyzes it. gs is not modified.
func AnalyzeGame(gs *engine.GameState) *GameAnalysis {
	replay := gs.Clone()
	log := replay.MoveLog()
	for replay.UndoLastMove() {
	}

	analysis := &GameAnalysis{
		HasMaterialOdds: hasMaterialOdds(replay.Board()),
	}

	positionCount := make(map[uint64]int)
	record := func() {
		posHash := hashing.PositionKey(replay)
		analysis.Positions = append(analysis.Positions, posHash)
		positionCount[posHash]++

		n := positionCount[posHash]
		if n > analysis.MaxRepetitions {
			analysis.MaxRepetitions = n
		}
		// 3-fold repetition
		if n >= 3 {
			analysis.HasRepetition = true
		}
		// 5-fold repetition
		if n >= 5 {
			analysis.Has5FoldRepetition = true
		}
	}
	record()

	// With the log undone the clock is the starting position's.
	clock := replay.HalfmoveClock()
	for _, m := range log {
		replay.ApplyMove(m)

		if m.PieceMoved().Piece == chess.Pawn || m.IsCapture() {
			clock = 0
		} else {
			clock++
		}

		if m.IsCapture() {
			analysis.Captures++
			if m.PieceCaptured().Piece == chess.King {
				analysis.KingCaptured = true
			}
		}

		// 50-move rule (100 half-moves)
		if clock >= 100 {
			analysis.HasFiftyMoveRule = true
		}
		// 75-move rule (150 half-moves)
		if clock >= 150 {
			analysis.Has75MoveRule = true
		}

		record()
	}

	analysis.DistinctPositions = len(positionCount)
	return analysis
}

// hasMaterialOdds reports whether the two sides have different pieces.
func hasMaterialOdds(board *chess.Board) bool {
	for piece := chess.Pawn; piece <= chess.King; piece++ {
		if board.Count(chess.W(piece)) != board.Count(chess.B(piece)) {
			return true
		}
	}
	return false
}
