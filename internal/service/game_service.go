package service

import (
	"github.com/google/uuid"

	"github.com/lgbarn/chesscore-go/internal/config"
	"github.com/lgbarn/chesscore-go/internal/engine"
	"github.com/lgbarn/chesscore-go/internal/errors"
	"github.com/lgbarn/chesscore-go/internal/output"
)

// GameService creates games under fresh identifiers and forwards play to
// the GameManager, logging what happens.
type GameService struct {
	gameManager *GameManager
	cfg         *config.Config
}

// NewGameService creates a service over gameManager.
func NewGameService(gameManager *GameManager, cfg *config.Config) *GameService {
	return &GameService{
		gameManager: gameManager,
		cfg:         cfg,
	}
}

// CreateGame starts a new game and returns its id. An empty fen starts from
// the standard position.
func (gs *GameService) CreateGame(fen string) (string, error) {
	state := engine.NewGame()
	if fen != "" {
		var err error
		if state, err = engine.NewGameFromFEN(fen); err != nil {
			return "", err
		}
	}

	gameID := uuid.New().String()
	if err := gs.gameManager.CreateGame(gameID, state); err != nil {
		return "", errors.Wrap(err, "failed to create game")
	}

	gs.cfg.Logf(config.Verbose, "created game %s (%d live)", gameID, gs.gameManager.Count())
	return gameID, nil
}

// GetGameState returns the current view of a game.
func (gs *GameService) GetGameState(gameID string) (*output.GameView, error) {
	return gs.gameManager.State(gameID)
}

// GetMoves returns the moves available to the side to move.
func (gs *GameService) GetMoves(gameID string) ([]string, error) {
	return gs.gameManager.Moves(gameID)
}

// HandleMove plays a coordinate-notation move.
func (gs *GameService) HandleMove(gameID, notation string) (*output.GameView, error) {
	view, err := gs.gameManager.MakeMove(gameID, notation)
	if err != nil {
		gs.cfg.Logf(config.Verbose, "rejected: %v", err)
		return nil, err
	}
	gs.cfg.Logf(config.Verbose, "game %s: %s", gameID, view.LastMove)
	if view.GameOver {
		gs.cfg.Logf(config.Summary, "game %s over: %s wins", gameID, view.Winner)
	}
	return view, nil
}

// Undo reverts the last move of a game.
func (gs *GameService) Undo(gameID string) (*output.GameView, error) {
	return gs.gameManager.Undo(gameID)
}

// DeleteGame ends a game and disconnects its watchers.
func (gs *GameService) DeleteGame(gameID string) error {
	if err := gs.gameManager.DeleteGame(gameID); err != nil {
		return err
	}
	gs.cfg.Logf(config.Verbose, "deleted game %s", gameID)
	return nil
}

// Subscribe registers for updates to a game.
func (gs *GameService) Subscribe(gameID string) (<-chan *output.GameView, func(), error) {
	return gs.gameManager.Subscribe(gameID)
}
