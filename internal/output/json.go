package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/eco"
	"github.com/lgbarn/chesscore-go/internal/engine"
	"github.com/lgbarn/chesscore-go/internal/hashing"
	"github.com/lgbarn/chesscore-go/internal/processing"
)

// GameView is the JSON form of a game: the position, the moves available
// to the side to move and the log of applied moves.
type GameView struct {
	ID         string        `json:"id,omitempty"`
	FEN        string        `json:"fen"`
	Hash       string        `json:"hash"` // Zobrist key of the position
	Board      [][]string    `json:"board"`
	SideToMove string        `json:"sideToMove"` // "white" or "black"
	Ply        int           `json:"ply"`
	MoveNumber int           `json:"moveNumber"`
	Moves      []string      `json:"moves"`
	Log        []JSONMove    `json:"log"`
	Kings      int           `json:"kings"`
	GameOver   bool          `json:"gameOver"`
	Winner     string        `json:"winner,omitempty"`
	LastMove   string        `json:"lastMove,omitempty"`
	Opening    *eco.ECOEntry `json:"opening,omitempty"`
}

// JSONMove represents an applied move in JSON format.
type JSONMove struct {
	Ply        int    `json:"ply"`
	MoveNumber int    `json:"moveNumber"`
	Color      string `json:"color"` // "white" or "black"
	UCI        string `json:"uci"`
	From       string `json:"from"`
	To         string `json:"to"`
	Piece      string `json:"piece"`
	Captured   string `json:"captured,omitempty"`
}

// JSONRecord is one replayed game: its number in the input, the final view
// and the error that stopped it, if any.
type JSONRecord struct {
	Game int `json:"game"`
	*GameView
	Analysis *processing.GameAnalysis `json:"analysis,omitempty"`
	Error    string                   `json:"error,omitempty"`
}

// JSONOutput holds multiple records for array output.
type JSONOutput struct {
	Games []*JSONRecord `json:"games"`
}

// NewGameView builds the JSON view of gs. id may be empty.
func NewGameView(id string, gs *engine.GameState) *GameView {
	view := &GameView{
		ID:         id,
		FEN:        gs.ToFEN(),
		Hash:       fmt.Sprintf("%016x", hashing.PositionKey(gs)),
		Board:      gs.Board().Rows(),
		SideToMove: colourName(gs.SideToMove()),
		Ply:        gs.Ply(),
		MoveNumber: gs.MoveNumber(),
		Moves:      engine.Notations(gs.GeneratePseudoLegalMoves()),
		Log:        convertMoveLog(gs),
		Kings:      gs.CountKings(),
		GameOver:   gs.IsGameOver(),
	}
	if winner, ok := gs.Winner(); ok {
		view.Winner = colourName(winner)
	}
	if last, ok := gs.LastMove(); ok {
		view.LastMove = last.Notation()
	}
	view.Opening = eco.Default().ClassifyGame(gs)
	return view
}

// convertMoveLog converts the move log to JSON format, numbering moves from
// the starting position.
func convertMoveLog(gs *engine.GameState) []JSONMove {
	log := gs.MoveLog()
	result := make([]JSONMove, 0, len(log))

	moveNum := gs.StartMoveNumber()
	isWhite := gs.InitialSideToMove() == chess.White

	for i, m := range log {
		jm := JSONMove{
			Ply:        i + 1,
			MoveNumber: moveNum,
			Color:      colourName(m.PieceMoved().Colour),
			UCI:        m.Notation(),
			From:       m.Start().String(),
			To:         m.End().String(),
			Piece:      strings.ToLower(m.PieceMoved().Piece.String()),
		}
		if m.IsCapture() {
			jm.Captured = strings.ToLower(m.PieceCaptured().Piece.String())
		}
		result = append(result, jm)

		if !isWhite {
			moveNum++
		}
		isWhite = !isWhite
	}
	return result
}

// colourName returns the lower-case colour name used in JSON.
func colourName(c chess.Colour) string {
	return strings.ToLower(c.String())
}

// NewJSONRecord builds the JSON form of a replay record.
func NewJSONRecord(rec *Record) *JSONRecord {
	jr := &JSONRecord{Game: rec.Number, Analysis: rec.Analysis}
	if rec.State != nil {
		jr.GameView = NewGameView(rec.ID, rec.State)
	}
	if rec.Err != nil {
		jr.Error = rec.Err.Error()
	}
	return jr
}

// OutputGameJSON writes a single game view as indented JSON.
func OutputGameJSON(view *GameView, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(view)
}
