// Package config provides configuration for the chess server and the replay tool.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Verbosity levels.
const (
	Quiet   = 0 // nothing
	Summary = 1 // start-up and per-run totals
	Verbose = 2 // running commentary: every game, request or move
)

// Config holds all program configuration.
type Config struct {
	Server *ServerConfig
	Replay *ReplayConfig

	Verbosity int

	// File handling
	OutputFilename string
	LogFilename    string

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Server:     NewServerConfig(),
		Replay:     NewReplayConfig(),
		Verbosity:  Summary,
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// SetOutput sets the output writer.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// SetLog sets the log writer.
func (c *Config) SetLog(w io.Writer) {
	c.LogFile = w
}

// Logf writes a line to the log stream when the verbosity is at least level.
func (c *Config) Logf(level int, format string, args ...interface{}) {
	if c.LogFile == nil || c.Verbosity < level {
		return
	}
	line := fmt.Sprintf(format, args...)
	if !strings.HasSuffix(line, "\n") {
		line += "\n"
	}
	io.WriteString(c.LogFile, line) //nolint:errcheck // logging is best effort
}

// Validate checks every section of the configuration.
func (c *Config) Validate() error {
	if c.Server != nil {
		if err := c.Server.Validate(); err != nil {
			return err
		}
	}
	if c.Replay != nil {
		if err := c.Replay.Validate(); err != nil {
			return err
		}
	}
	return nil
}
