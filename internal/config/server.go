package config

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chesscore-go/internal/errors"
)

// ServerConfig holds settings for the HTTP and websocket server.
type ServerConfig struct {
	// ListenAddr is the address passed to the HTTP listener
	ListenAddr string

	// AllowedOrigins is a comma-separated CORS and websocket origin list
	AllowedOrigins string

	// ReadBufferSize and WriteBufferSize size the websocket I/O buffers
	ReadBufferSize  int
	WriteBufferSize int

	// MaxGames caps the number of live games (0 = unlimited)
	MaxGames int

	// RequestLogging enables the per-request access log
	RequestLogging bool
}

// NewServerConfig creates a ServerConfig with default values.
func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		ListenAddr:      ":3000",
		AllowedOrigins:  "http://localhost:5173",
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
}

// Origins returns the allowed origins as a list, with blanks dropped.
func (s *ServerConfig) Origins() []string {
	var out []string
	for _, o := range strings.Split(s.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Validate checks that the server configuration is valid.
func (s *ServerConfig) Validate() error {
	if s.ListenAddr == "" {
		return fmt.Errorf("empty listen address: %w", errors.ErrInvalidConfig)
	}
	if s.ReadBufferSize <= 0 || s.WriteBufferSize <= 0 {
		return fmt.Errorf("websocket buffer sizes must be positive (read %d, write %d): %w",
			s.ReadBufferSize, s.WriteBufferSize, errors.ErrInvalidConfig)
	}
	if s.MaxGames < 0 {
		return fmt.Errorf("max games (%d) < 0: %w", s.MaxGames, errors.ErrInvalidConfig)
	}
	return nil
}
