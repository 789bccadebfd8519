package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/engine"
)

// OutputWriter handles formatted output with line length control.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
}

// NewOutputWriter creates a new output writer.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	if maxLineLength <= 0 {
		maxLineLength = 80
	}
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

// Write writes a string, adding a space separator if needed.
func (o *OutputWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		// Check if we need a new line
		if o.lineLength+1+len(s) > o.maxLineLength {
			fmt.Fprintln(o.w)
			o.lineLength = 0
			o.needsSpace = false
		} else {
			fmt.Fprint(o.w, " ")
			o.lineLength++
		}
	}

	fmt.Fprint(o.w, s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine starts a new line.
func (o *OutputWriter) NewLine() {
	fmt.Fprintln(o.w)
	o.lineLength = 0
	o.needsSpace = false
}

// Summary returns the one-line description of a replayed game:
//
//	game 3: ply 5, side to move Black, kings 2
//	game 4: ply 2, side to move White, kings 1, game over: Black wins
//	game 5: ply 0, side to move White, kings 2, error: ...
func Summary(rec *Record) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "game %d:", rec.Number)
	if gs := rec.State; gs != nil {
		fmt.Fprintf(&sb, " ply %d, side to move %s, kings %d", gs.Ply(), gs.SideToMove(), gs.CountKings())
		if gs.IsGameOver() {
			if winner, ok := gs.Winner(); ok {
				fmt.Fprintf(&sb, ", game over: %s wins", winner)
			} else {
				sb.WriteString(", game over: no kings")
			}
		}
	}
	if rec.Err != nil {
		if rec.State != nil {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, " error: %v", rec.Err)
	}
	return sb.String()
}

// OutputMoveList writes the numbered move log, wrapped at maxLineLength.
func OutputMoveList(gs *engine.GameState, w io.Writer, maxLineLength int) {
	ow := NewOutputWriter(w, maxLineLength)

	moveNum := gs.StartMoveNumber()
	isWhite := gs.InitialSideToMove() == chess.White

	for i, m := range gs.MoveLog() {
		if isWhite {
			ow.Write(fmt.Sprintf("%d.", moveNum))
		} else if i == 0 {
			// Black to move at start
			ow.Write(fmt.Sprintf("%d...", moveNum))
		}
		ow.Write(m.Notation())

		if !isWhite {
			moveNum++
		}
		isWhite = !isWhite
	}

	if gs.IsGameOver() {
		ow.Write(resultText(gs))
	}
	ow.NewLine()
}

// resultText returns the result marker for a finished game.
func resultText(gs *engine.GameState) string {
	winner, ok := gs.Winner()
	switch {
	case !ok:
		return "*"
	case winner == chess.White:
		return "1-0"
	default:
		return "0-1"
	}
}

// OutputBoard writes a diagram of the board, rank 8 first, with rank and
// file labels around the occupant codes.
func OutputBoard(board *chess.Board, w io.Writer) {
	rows := board.Rows()
	for row, cells := range rows {
		fmt.Fprintf(w, "%d  %s\n", chess.BoardSize-row, strings.Join(cells, " "))
	}
	fmt.Fprintln(w, "   a  b  c  d  e  f  g  h")
}
