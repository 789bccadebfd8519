// chess-replay replays move lists through the chess engine and reports where
// each game ends up.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/lgbarn/chesscore-go/internal/config"
	"github.com/lgbarn/chesscore-go/internal/eco"
	"github.com/lgbarn/chesscore-go/internal/engine"
	"github.com/lgbarn/chesscore-go/internal/output"
	"github.com/lgbarn/chesscore-go/internal/replay"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("chess-replay version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Set up logging and output files
	setupLogFile(cfg)
	setupOutputFile(cfg)
	loadECOClassifier(cfg)

	if *perftDepth > 0 {
		if err := runPerft(cfg.OutputFile, *perftFEN, *perftDepth, *divide); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	filter, err := buildFilter()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	var opts []replay.Option
	if filter.HasCriteria() {
		opts = append(opts, replay.WithFilter(filter))
	}

	games := readAllInputs(flag.Args(), cfg)
	stats, err := replay.Run(games, cfg, newGameWriter(cfg), opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}
	if stats.Failed > 0 {
		os.Exit(2)
	}
}

// loadECOClassifier replaces the built-in opening book if -e is given.
func loadECOClassifier(cfg *config.Config) {
	if *ecoFile == "" {
		return
	}

	classifier := eco.NewECOClassifier()
	if err := classifier.LoadFromFile(*ecoFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ECO file %s: %v\n", *ecoFile, err)
		os.Exit(1)
	}
	eco.SetDefault(classifier)

	cfg.Logf(config.Summary, "Loaded %d ECO entries", classifier.EntriesLoaded())
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) {
	if *logFile != "" {
		file, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating log file %s: %v\n", *logFile, err)
			os.Exit(1)
		}
		cfg.LogFilename = *logFile
		cfg.LogFile = file
	}

	if *appendLog != "" {
		file, err := os.OpenFile(*appendLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file %s: %v\n", *appendLog, err)
			os.Exit(1)
		}
		cfg.LogFilename = *appendLog
		cfg.LogFile = file
	}
}

// setupOutputFile configures the output file based on command-line flags.
func setupOutputFile(cfg *config.Config) {
	if *outputFile == "" {
		return
	}

	var file *os.File
	var err error

	if *appendOutput {
		file, err = os.OpenFile(*outputFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created output files
	} else {
		file, err = os.Create(*outputFile)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file %s: %v\n", *outputFile, err)
		os.Exit(1)
	}
	cfg.OutputFilename = *outputFile
	cfg.OutputFile = file
}

// newGameWriter picks the record writer for the configured output format.
func newGameWriter(cfg *config.Config) output.GameWriter {
	switch {
	case *jsonLines:
		return output.NewJSONWriterSingle(cfg.OutputFile)
	case cfg.Replay.JSONOutput:
		return output.NewJSONWriter(cfg.OutputFile)
	default:
		return output.NewTextWriter(cfg.OutputFile, *lineLength, *showDetail)
	}
}

// readAllInputs reads games from every named file, or from stdin when none
// are given. Games are numbered across all inputs.
func readAllInputs(args []string, cfg *config.Config) []replay.Game {
	if len(args) == 0 {
		games, err := replay.ReadGames(os.Stdin, "stdin")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return games
	}

	var all []replay.Game
	for _, filename := range args {
		file, err := os.Open(filename) //nolint:gosec // G304: CLI tool opens user-specified files
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening file %s: %v\n", filename, err)
			continue
		}

		games, err := replay.ReadGames(file, filename)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		file.Close() //nolint:errcheck,gosec // G104: read-only file

		cfg.Logf(config.Verbose, "%s: %d games", filename, len(games))
		all = append(all, renumber(games, len(all))...)
	}
	return all
}

// renumber shifts game numbers so they continue after offset earlier games.
func renumber(games []replay.Game, offset int) []replay.Game {
	for i := range games {
		games[i].Number += offset
	}
	return games
}

// runPerft prints the perft count for fen at depth, and with divide set,
// the count below each root move in sorted order.
func runPerft(w io.Writer, fen string, depth int, divide bool) error {
	gs := engine.NewGame()
	if fen != "" {
		var err error
		if gs, err = engine.NewGameFromFEN(fen); err != nil {
			return err
		}
	}

	if divide {
		counts := engine.Divide(gs, depth)
		moves := make([]string, 0, len(counts))
		for m := range counts {
			moves = append(moves, m)
		}
		sort.Strings(moves)

		var total uint64
		for _, m := range moves {
			fmt.Fprintf(w, "%s: %d\n", m, counts[m])
			total += counts[m]
		}
		fmt.Fprintf(w, "\nNodes: %d\n", total)
		return nil
	}

	fmt.Fprintf(w, "perft(%d) = %d\n", depth, engine.Perft(gs, depth))
	return nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chess-replay [options] [input-files...]\n\n")
	fmt.Fprintf(os.Stderr, "Replays chess move lists and reports the resulting positions.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nInput format:\n")
	fmt.Fprintf(os.Stderr, "  One game per line of coordinate moves, e.g. \"e2e4 e7e5 g1f3\".\n")
	fmt.Fprintf(os.Stderr, "  Prefix a line with \"<FEN> |\" to start from another position.\n")
	fmt.Fprintf(os.Stderr, "  Blank lines and lines starting with # are ignored.\n")
	fmt.Fprintf(os.Stderr, "\nFilters (-z, -y, -varfile, -x, -Tf, -posfile, -minply, -maxply) drop\n")
	fmt.Fprintf(os.Stderr, "games that replay cleanly but do not match. Failed games are always written.\n")
	fmt.Fprintf(os.Stderr, "\nExit status is 2 when any game contains an illegal move.\n")
}
