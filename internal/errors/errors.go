// Package errors provides sentinel errors and error types for chesscore.
// It defines common error conditions and structured error types that preserve
// context while allowing error inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrInvalidMove indicates a move that is not in the current pseudo-legal move set.
	ErrInvalidMove = errors.New("invalid move")

	// ErrSquareOutOfRange indicates a row or column outside 0-7.
	ErrSquareOutOfRange = errors.New("square out of range")

	// ErrInvalidNotation indicates malformed coordinate notation or occupant codes.
	ErrInvalidNotation = errors.New("invalid notation")

	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrGameOver indicates a move was attempted after a king was captured.
	ErrGameOver = errors.New("game over")

	// ErrGameNotFound indicates an unknown game identifier.
	ErrGameNotFound = errors.New("game not found")

	// ErrGameExists indicates a game identifier that is already in use.
	ErrGameExists = errors.New("game already exists")

	// ErrTooManyGames indicates the configured game limit has been reached.
	ErrTooManyGames = errors.New("too many games")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// MoveError wraps errors with game context, including the game, the ply
// and the move notation. It implements the error interface
// and supports unwrapping via errors.Is() and errors.As().
type MoveError struct {
	Err      error  // The underlying error
	GameID   string // Game identifier (if known)
	GameNum  int    // 1-based game number in an input file (0 if not applicable)
	Ply      int    // 1-based ply the move would have been (0 if not applicable)
	Notation string // The move text that caused the error (if applicable)
}

// Error returns a formatted error message including all available context.
func (e *MoveError) Error() string {
	var parts []string

	if e.GameID != "" {
		parts = append(parts, fmt.Sprintf("game %s", e.GameID))
	}
	if e.GameNum > 0 {
		parts = append(parts, fmt.Sprintf("game %d", e.GameNum))
	}
	if e.Ply > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.Ply))
	}
	if e.Notation != "" {
		parts = append(parts, fmt.Sprintf("move %q", e.Notation))
	}

	context := strings.Join(parts, ", ")

	switch {
	case e.Err == nil:
		return context
	case context == "":
		return e.Err.Error()
	default:
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the MoveError wrapper.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// ParseError represents an input error with location context.
// It's used for move-list lines and FEN strings.
type ParseError struct {
	Err      error  // The underlying error
	File     string // Source name
	Line     int    // Line number (1-based)
	Column   int    // Field number within the line (1-based)
	Expected string // What was expected
	Got      string // What was found instead
}

// Error returns a formatted error message with location and context.
func (e *ParseError) Error() string {
	var parts []string

	if e.File != "" {
		loc := e.File
		if e.Line > 0 {
			loc += fmt.Sprintf(":%d", e.Line)
			if e.Column > 0 {
				loc += fmt.Sprintf(":%d", e.Column)
			}
		}
		parts = append(parts, loc)
	}

	if e.Expected != "" && e.Got != "" {
		parts = append(parts, fmt.Sprintf("expected %s, got %s", e.Expected, e.Got))
	} else if e.Expected != "" {
		parts = append(parts, fmt.Sprintf("expected %s", e.Expected))
	} else if e.Got != "" {
		parts = append(parts, fmt.Sprintf("unexpected %s", e.Got))
	}

	if e.Err != nil {
		if len(parts) > 0 {
			return fmt.Sprintf("%s: %v", strings.Join(parts, ": "), e.Err)
		}
		return e.Err.Error()
	}

	if len(parts) > 0 {
		return strings.Join(parts, ": ")
	}
	return "parse error"
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is reports whether any error in err's tree matches target.
// It forwards to the standard library so callers need only this package.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
