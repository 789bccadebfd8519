package config

import (
	"fmt"
	"runtime"

	"github.com/lgbarn/chesscore-go/internal/errors"
)

// ReplayConfig holds settings for batch replay of move lists.
type ReplayConfig struct {
	// Workers is the number of concurrent replays (0 = one per CPU)
	Workers int

	// BufferSize is the capacity of the work and result queues
	BufferSize int

	// JSONOutput writes one JSON document per game instead of text lines
	JSONOutput bool

	// StopOnError stops reading input after the first game that fails
	StopOnError bool

	// Analyze reports repetitions, captures and move-rule counts per game
	Analyze bool

	// SuppressDuplicates drops games whose final position was already written
	SuppressDuplicates bool

	// DuplicateCapacity bounds the positions remembered (0 = unlimited)
	DuplicateCapacity int
}

// NewReplayConfig creates a ReplayConfig with default values.
func NewReplayConfig() *ReplayConfig {
	return &ReplayConfig{
		BufferSize: 100,
	}
}

// WorkerCount returns the effective number of workers.
func (r *ReplayConfig) WorkerCount() int {
	if r.Workers <= 0 {
		return runtime.NumCPU()
	}
	return r.Workers
}

// Validate checks that the replay configuration is valid.
func (r *ReplayConfig) Validate() error {
	if r.Workers < 0 {
		return fmt.Errorf("workers (%d) < 0: %w", r.Workers, errors.ErrInvalidConfig)
	}
	if r.BufferSize < 1 {
		return fmt.Errorf("buffer size (%d) < 1: %w", r.BufferSize, errors.ErrInvalidConfig)
	}
	if r.DuplicateCapacity < 0 {
		return fmt.Errorf("duplicate capacity (%d) < 0: %w", r.DuplicateCapacity, errors.ErrInvalidConfig)
	}
	return nil
}
