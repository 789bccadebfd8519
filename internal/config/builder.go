package config

import "io"

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithListenAddr sets the server listen address.
func (b *ConfigBuilder) WithListenAddr(addr string) *ConfigBuilder {
	b.cfg.Server.ListenAddr = addr
	return b
}

// WithAllowedOrigins sets the comma-separated origin list.
func (b *ConfigBuilder) WithAllowedOrigins(origins string) *ConfigBuilder {
	b.cfg.Server.AllowedOrigins = origins
	return b
}

// WithMaxGames caps the number of live games.
func (b *ConfigBuilder) WithMaxGames(n int) *ConfigBuilder {
	b.cfg.Server.MaxGames = n
	return b
}

// WithWorkers sets the number of replay workers.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Replay.Workers = n
	return b
}

// WithBufferSize sets the replay queue capacity.
func (b *ConfigBuilder) WithBufferSize(n int) *ConfigBuilder {
	b.cfg.Replay.BufferSize = n
	return b
}

// WithJSONOutput enables JSON output.
func (b *ConfigBuilder) WithJSONOutput(enabled bool) *ConfigBuilder {
	b.cfg.Replay.JSONOutput = enabled
	return b
}

// StopOnError controls whether replay stops at the first failing game.
func (b *ConfigBuilder) StopOnError(stop bool) *ConfigBuilder {
	b.cfg.Replay.StopOnError = stop
	return b
}

// WithAnalysis enables per-game analysis.
func (b *ConfigBuilder) WithAnalysis(enabled bool) *ConfigBuilder {
	b.cfg.Replay.Analyze = enabled
	return b
}

// SuppressDuplicates drops replayed games that end in an already seen
// position, remembering at most capacity positions (0 = unlimited).
func (b *ConfigBuilder) SuppressDuplicates(capacity int) *ConfigBuilder {
	b.cfg.Replay.SuppressDuplicates = true
	b.cfg.Replay.DuplicateCapacity = capacity
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}

// WithLog sets the log writer.
func (b *ConfigBuilder) WithLog(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}
