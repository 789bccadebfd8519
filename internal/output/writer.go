// Package output provides game output formatting as text and JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/lgbarn/chesscore-go/internal/eco"
	"github.com/lgbarn/chesscore-go/internal/engine"
	"github.com/lgbarn/chesscore-go/internal/processing"
)

// Record is a game ready for output: its number in the input, the final
// state and the error that stopped it, if any. Analysis is set when the
// replay was asked to analyse games.
type Record struct {
	Number   int
	ID       string
	State    *engine.GameState
	Analysis *processing.GameAnalysis
	Err      error
}

// GameWriter is the interface for writing games to output.
// Different implementations handle different output formats (text, JSON).
type GameWriter interface {
	// WriteRecord writes a single game to the output.
	WriteRecord(rec *Record) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close closes the writer and releases any resources.
	// For batch writers (like JSON), this also writes any pending output.
	Close() error
}

// TextWriter writes one summary line per game, optionally followed by the
// move list and a board diagram.
type TextWriter struct {
	w             io.Writer
	maxLineLength int
	detail        bool
}

// NewTextWriter creates a new text writer. With detail set, each summary is
// followed by the numbered move list and the final position.
func NewTextWriter(w io.Writer, maxLineLength int, detail bool) *TextWriter {
	return &TextWriter{
		w:             w,
		maxLineLength: maxLineLength,
		detail:        detail,
	}
}

// WriteRecord writes a game summary.
func (tw *TextWriter) WriteRecord(rec *Record) error {
	line := Summary(rec)
	if rec.Analysis != nil {
		line += " [" + rec.Analysis.String() + "]"
	}
	if _, err := fmt.Fprintln(tw.w, line); err != nil {
		return err
	}
	if !tw.detail || rec.State == nil {
		return nil
	}
	if opening := eco.Default().ClassifyGame(rec.State); opening != nil {
		fmt.Fprintf(tw.w, "Opening: %s\n", opening)
	}
	OutputMoveList(rec.State, tw.w, tw.maxLineLength)
	OutputBoard(rec.State.Board(), tw.w)
	_, err := fmt.Fprintln(tw.w)
	return err
}

// Flush flushes the text writer (no-op as it writes immediately).
func (tw *TextWriter) Flush() error {
	return nil
}

// Close closes the text writer.
func (tw *TextWriter) Close() error {
	return nil
}

// JSONWriter writes games in JSON format.
// It buffers games and writes them as a JSON array on Close or Flush.
type JSONWriter struct {
	w       io.Writer
	records []*JSONRecord
	single  bool // If true, write each game immediately instead of batching
}

// NewJSONWriter creates a new JSON writer.
// By default, it batches games and writes them as an array on Close().
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{
		w:       w,
		records: make([]*JSONRecord, 0),
	}
}

// NewJSONWriterSingle creates a JSON writer that writes each game immediately.
func NewJSONWriterSingle(w io.Writer) *JSONWriter {
	return &JSONWriter{
		w:      w,
		single: true,
	}
}

// WriteRecord buffers a game for JSON output (or writes immediately in single mode).
// The view is built now, so later changes to rec.State are not reflected.
func (jw *JSONWriter) WriteRecord(rec *Record) error {
	jr := NewJSONRecord(rec)
	if jw.single {
		enc := json.NewEncoder(jw.w)
		enc.SetIndent("", "  ")
		return enc.Encode(jr)
	}

	jw.records = append(jw.records, jr)
	return nil
}

// Flush writes all buffered games as a JSON array.
func (jw *JSONWriter) Flush() error {
	if jw.single || len(jw.records) == 0 {
		return nil
	}

	enc := json.NewEncoder(jw.w)
	enc.SetIndent("", "  ")
	err := enc.Encode(&JSONOutput{Games: jw.records})

	// Clear buffer after writing
	jw.records = jw.records[:0]

	return err
}

// Close flushes and closes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}
