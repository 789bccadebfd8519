// chess-server serves chess games over HTTP and websockets.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lgbarn/chesscore-go/internal/config"
	"github.com/lgbarn/chesscore-go/internal/controller"
	"github.com/lgbarn/chesscore-go/internal/eco"
	"github.com/lgbarn/chesscore-go/internal/service"
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
		fmt.Printf("chess-server version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	setupLogFile(cfg)
	loadECOClassifier(cfg)

	// Initialize services
	gameManager := service.NewGameManager(cfg.Server.MaxGames)
	gameService := service.NewGameService(gameManager, cfg)
	app := controller.NewApp(gameService, cfg)

	// Shut down cleanly on interrupt
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		cfg.Logf(config.Summary, "shutting down")
		app.Shutdown() //nolint:errcheck,gosec // exiting anyway
	}()

	cfg.Logf(config.Summary, "chess-server %s listening on %s", programVersion, cfg.Server.ListenAddr)
	if err := app.Listen(cfg.Server.ListenAddr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
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

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chess-server [options]\n\n")
	fmt.Fprintf(os.Stderr, "Serves chess games over HTTP and websockets.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nRoutes:\n")
	fmt.Fprintf(os.Stderr, "  POST   /api/games             create a game, body {\"fen\": ...} optional\n")
	fmt.Fprintf(os.Stderr, "  GET    /api/games/:id         game state\n")
	fmt.Fprintf(os.Stderr, "  GET    /api/games/:id/moves   moves for the side to move\n")
	fmt.Fprintf(os.Stderr, "  POST   /api/games/:id/moves   play a move, body {\"move\": \"e2e4\"}\n")
	fmt.Fprintf(os.Stderr, "  POST   /api/games/:id/undo    take back the last move\n")
	fmt.Fprintf(os.Stderr, "  DELETE /api/games/:id         end a game\n")
	fmt.Fprintf(os.Stderr, "  GET    /ws/games/:id          websocket: move, undo and state messages\n")
}
