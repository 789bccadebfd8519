package config

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/lgbarn/chesscore-go/internal/errors"
)

// TestServerConfig_Defaults verifies ServerConfig has sensible defaults
func TestServerConfig_Defaults(t *testing.T) {
	cfg := NewServerConfig()

	if cfg.ListenAddr != ":3000" {
		t.Errorf("ListenAddr = %q, want :3000", cfg.ListenAddr)
	}
	if cfg.ReadBufferSize != 1024 || cfg.WriteBufferSize != 1024 {
		t.Errorf("buffer sizes = %d/%d, want 1024/1024", cfg.ReadBufferSize, cfg.WriteBufferSize)
	}
	if cfg.MaxGames != 0 {
		t.Errorf("MaxGames = %d, want 0 (unlimited)", cfg.MaxGames)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

// TestReplayConfig_Defaults verifies ReplayConfig has sensible defaults
func TestReplayConfig_Defaults(t *testing.T) {
	cfg := NewReplayConfig()

	if cfg.JSONOutput {
		t.Error("JSONOutput should be false by default")
	}
	if cfg.StopOnError {
		t.Error("StopOnError should be false by default")
	}
	if cfg.BufferSize != 100 {
		t.Errorf("BufferSize = %d, want 100", cfg.BufferSize)
	}
	if cfg.WorkerCount() < 1 {
		t.Errorf("WorkerCount() = %d, want >= 1", cfg.WorkerCount())
	}
}

func TestServerConfig_Origins(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"http://a", 1},
		{"http://a, http://b ,", 2},
	}
	for _, tt := range tests {
		cfg := &ServerConfig{AllowedOrigins: tt.in}
		if got := cfg.Origins(); len(got) != tt.want {
			t.Errorf("Origins(%q) = %v, want %d entries", tt.in, got, tt.want)
		}
	}
}

// TestConfig_Validate verifies config validation
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(*Config) {}, false},
		{"empty listen address", func(c *Config) { c.Server.ListenAddr = "" }, true},
		{"zero read buffer", func(c *Config) { c.Server.ReadBufferSize = 0 }, true},
		{"negative max games", func(c *Config) { c.Server.MaxGames = -1 }, true},
		{"negative workers", func(c *Config) { c.Replay.Workers = -2 }, true},
		{"zero buffer", func(c *Config) { c.Replay.BufferSize = 0 }, true},
		{"negative duplicate capacity", func(c *Config) { c.Replay.DuplicateCapacity = -1 }, true},
		{"explicit workers", func(c *Config) { c.Replay.Workers = 4 }, false},
		{"nil sections", func(c *Config) { c.Server, c.Replay = nil, nil }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

// TestConfig_SetOutput verifies output stream setting
func TestConfig_SetOutput(t *testing.T) {
	cfg := NewConfig()
	buf := &bytes.Buffer{}

	cfg.SetOutput(buf)

	if cfg.OutputFile != buf {
		t.Error("SetOutput did not set OutputFile")
	}
}

func TestConfig_Logf(t *testing.T) {
	buf := &bytes.Buffer{}
	cfg := NewConfig()
	cfg.SetLog(buf)
	cfg.Verbosity = Summary

	cfg.Logf(Summary, "listening on %s", ":3000")
	cfg.Logf(Verbose, "not shown")
	cfg.Logf(Quiet, "done\n")

	want := "listening on :3000\ndone\n"
	if buf.String() != want {
		t.Errorf("log = %q, want %q", buf.String(), want)
	}

	cfg.LogFile = nil
	cfg.Logf(Quiet, "no writer") // must not panic
}

// lineWriter records each Write call separately.
type lineWriter struct {
	mu     sync.Mutex
	writes []string
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.writes = append(w.writes, string(p))
	return len(p), nil
}

// TestConfig_LogfSingleWrite checks that each line reaches the writer whole,
// so lines logged from several goroutines never interleave.
func TestConfig_LogfSingleWrite(t *testing.T) {
	w := &lineWriter{}
	cfg := NewConfig()
	cfg.SetLog(w)
	cfg.Verbosity = Verbose

	cfg.Logf(Summary, "game %d: %s", 7, "e2e5")
	cfg.Logf(Summary, "%s", "ends in newline\n")
	if len(w.writes) != 2 || w.writes[0] != "game 7: e2e5\n" || w.writes[1] != "ends in newline\n" {
		t.Fatalf("writes = %q", w.writes)
	}

	w.writes = nil
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cfg.Logf(Verbose, "worker %d done", i)
		}(i)
	}
	wg.Wait()

	if len(w.writes) != 50 {
		t.Fatalf("writes = %d, want 50", len(w.writes))
	}
	for _, line := range w.writes {
		if !strings.HasPrefix(line, "worker ") || !strings.HasSuffix(line, " done\n") {
			t.Errorf("torn line %q", line)
		}
	}
}

// TestConfigBuilder verifies the builder pattern works correctly
func TestConfigBuilder(t *testing.T) {
	buf := &bytes.Buffer{}
	cfg := NewConfigBuilder().
		WithListenAddr(":8080").
		WithAllowedOrigins("http://a,http://b").
		WithMaxGames(10).
		WithWorkers(3).
		WithBufferSize(7).
		WithJSONOutput(true).
		StopOnError(true).
		SuppressDuplicates(64).
		WithOutput(buf).
		WithLog(buf).
		WithVerbosity(Verbose).
		Build()

	if cfg.Server.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, want :8080", cfg.Server.ListenAddr)
	}
	if len(cfg.Server.Origins()) != 2 {
		t.Errorf("Origins() = %v, want 2 entries", cfg.Server.Origins())
	}
	if cfg.Server.MaxGames != 10 {
		t.Errorf("MaxGames = %d, want 10", cfg.Server.MaxGames)
	}
	if cfg.Replay.WorkerCount() != 3 || cfg.Replay.BufferSize != 7 {
		t.Errorf("workers/buffer = %d/%d, want 3/7", cfg.Replay.WorkerCount(), cfg.Replay.BufferSize)
	}
	if !cfg.Replay.JSONOutput || !cfg.Replay.StopOnError {
		t.Error("JSONOutput and StopOnError should be true")
	}
	if !cfg.Replay.SuppressDuplicates || cfg.Replay.DuplicateCapacity != 64 {
		t.Errorf("duplicates = %v/%d, want true/64", cfg.Replay.SuppressDuplicates, cfg.Replay.DuplicateCapacity)
	}
	if cfg.OutputFile != buf || cfg.LogFile != buf {
		t.Error("writers not set")
	}
	if cfg.Verbosity != Verbose {
		t.Errorf("Verbosity = %d, want %d", cfg.Verbosity, Verbose)
	}
}
