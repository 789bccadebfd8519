// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"

	"github.com/lgbarn/chesscore-go/internal/config"
)

var (
	// Output options
	outputFile   = flag.String("o", "", "Output file (default: stdout)")
	appendOutput = flag.Bool("a", false, "Append to output file instead of overwrite")
	lineLength   = flag.Int("w", 80, "Maximum line length for move lists")
	jsonOutput   = flag.Bool("J", false, "Output in JSON format")
	jsonLines    = flag.Bool("jsonl", false, "Output one JSON document per game as it is written")
	showDetail   = flag.Bool("detail", false, "Print the move list and final board of every game")

	// Replay options
	stopOnError = flag.Bool("stop", false, "Stop at the first game with an illegal move")
	workers     = flag.Int("workers", 0, "Number of worker threads (0 = auto-detect based on CPU cores)")
	bufferSize  = flag.Int("buffer", 100, "Work queue capacity")
	analyze     = flag.Bool("analyze", false, "Report captures, repetitions and move-rule counts per game")

	// Duplicate detection
	suppressDuplicates = flag.Bool("D", false, "Drop games whose final position repeats an earlier game")
	duplicateCapacity  = flag.Int("duplicate-capacity", 0, "Maximum positions remembered for -D (0 = unlimited)")

	// Game filters
	materialMatch      = flag.String("z", "", "Material balance a game must reach (e.g., 'QR:qrr')")
	materialMatchExact = flag.String("y", "", "Exact material balance a game must reach")
	variationFile      = flag.String("varfile", "", "File with move sequences a game must open with")
	varAnywhere        = flag.Bool("vanywhere", false, "Match -varfile sequences anywhere in the game")
	positionalFile     = flag.String("x", "", "File with position sequences a game must pass through")
	fenFilter          = flag.String("Tf", "", "Position a game must reach: full FEN or placement pattern")
	positionFile       = flag.String("posfile", "", "File of positions for -Tf, one per line")
	minPly             = flag.Int("minply", 0, "Minimum ply count")
	maxPly             = flag.Int("maxply", 0, "Maximum ply count (0 = no limit)")

	// Perft
	perftDepth = flag.Int("perft", 0, "Count move paths to depth N from -fen instead of replaying")
	perftFEN   = flag.String("fen", "", "Start position for -perft (default: standard position)")
	divide     = flag.Bool("divide", false, "With -perft, print the count below each root move")

	// ECO classification
	ecoFile = flag.String("e", "", "Opening book replacing the built-in one (code | name | moves per line)")

	// Logging
	logFile   = flag.String("l", "", "Write diagnostics to log file")
	appendLog = flag.String("L", "", "Append diagnostics to log file")
	verbose   = flag.Bool("v", false, "Log every rejected move")

	// Other options
	quiet   = flag.Bool("s", false, "Silent mode (no summary)")
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config) {
	cfg.Server = nil
	applyReplayFlags(cfg)

	switch {
	case *quiet:
		cfg.Verbosity = config.Quiet
	case *verbose:
		cfg.Verbosity = config.Verbose
	}
}

// applyReplayFlags configures the replay settings.
func applyReplayFlags(cfg *config.Config) {
	cfg.Replay.Workers = *workers
	cfg.Replay.BufferSize = *bufferSize
	cfg.Replay.JSONOutput = *jsonOutput || *jsonLines
	cfg.Replay.StopOnError = *stopOnError
	cfg.Replay.Analyze = *analyze
	cfg.Replay.SuppressDuplicates = *suppressDuplicates
	cfg.Replay.DuplicateCapacity = *duplicateCapacity
}
