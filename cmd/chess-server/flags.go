// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"

	"github.com/lgbarn/chesscore-go/internal/config"
)

var (
	// Server options
	listenAddr     = flag.String("addr", ":3000", "Address to listen on")
	allowedOrigins = flag.String("origins", "http://localhost:5173", "Comma-separated allowed CORS and websocket origins")
	maxGames       = flag.Int("maxgames", 0, "Maximum number of live games (0 = unlimited)")
	readBuffer     = flag.Int("ws-read-buffer", 1024, "Websocket read buffer size")
	writeBuffer    = flag.Int("ws-write-buffer", 1024, "Websocket write buffer size")
	accessLog      = flag.Bool("accesslog", false, "Log every HTTP request")

	// ECO classification
	ecoFile = flag.String("e", "", "Opening book replacing the built-in one (code | name | moves per line)")

	// Logging
	logFile   = flag.String("l", "", "Write diagnostics to log file")
	appendLog = flag.String("L", "", "Append diagnostics to log file")
	verbose   = flag.Bool("v", false, "Log every game, move and connection")

	// Other options
	quiet   = flag.Bool("s", false, "Silent mode (no start-up message)")
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config) {
	cfg.Replay = nil
	applyServerFlags(cfg)

	switch {
	case *quiet:
		cfg.Verbosity = config.Quiet
	case *verbose:
		cfg.Verbosity = config.Verbose
	}
}

// applyServerFlags configures the HTTP and websocket settings.
func applyServerFlags(cfg *config.Config) {
	cfg.Server.ListenAddr = *listenAddr
	cfg.Server.AllowedOrigins = *allowedOrigins
	cfg.Server.MaxGames = *maxGames
	cfg.Server.ReadBufferSize = *readBuffer
	cfg.Server.WriteBufferSize = *writeBuffer
	cfg.Server.RequestLogging = *accessLog
}
