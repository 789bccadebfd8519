// Package service owns the live games behind the HTTP and websocket API.
//
// A GameState is not safe for concurrent use, so every game here carries its
// own mutex and all access to a game's state goes through it. The manager's
// map of games is guarded separately by a read-write mutex.
package service

import (
	"sync"

	"github.com/lgbarn/chesscore-go/internal/engine"
	"github.com/lgbarn/chesscore-go/internal/errors"
	"github.com/lgbarn/chesscore-go/internal/output"
)

// subscriberBuffer is the number of unread views a subscriber may lag behind
// before further updates to it are dropped.
const subscriberBuffer = 8

// Game is one live game and the channels watching it.
type Game struct {
	id          string
	mu          sync.Mutex
	state       *engine.GameState
	subscribers map[chan *output.GameView]struct{}
	deleted     bool
}

func newGame(id string, state *engine.GameState) *Game {
	return &Game{
		id:          id,
		state:       state,
		subscribers: make(map[chan *output.GameView]struct{}),
	}
}

// lock acquires g.mu. It fails once the game has been deleted, for callers
// that looked the game up before the delete.
func (g *Game) lock() error {
	g.mu.Lock()
	if g.deleted {
		g.mu.Unlock()
		return errors.Wrapf(errors.ErrGameNotFound, "game %s", g.id)
	}
	return nil
}

// view builds the JSON view. The caller holds g.mu.
func (g *Game) view() *output.GameView {
	return output.NewGameView(g.id, g.state)
}

// broadcast sends the current view to every subscriber without blocking.
// The caller holds g.mu.
func (g *Game) broadcast() {
	if len(g.subscribers) == 0 {
		return
	}
	v := g.view()
	for ch := range g.subscribers {
		select {
		case ch <- v:
		default:
		}
	}
}

// closeSubscribers closes and forgets every subscriber channel. The caller holds g.mu.
func (g *Game) closeSubscribers() {
	for ch := range g.subscribers {
		delete(g.subscribers, ch)
		close(ch)
	}
}

// GameManager keeps the live games keyed by id.
type GameManager struct {
	games    map[string]*Game
	maxGames int
	mu       sync.RWMutex
}

// NewGameManager creates an empty manager. maxGames caps the number of live
// games; 0 means unlimited.
func NewGameManager(maxGames int) *GameManager {
	return &GameManager{
		games:    make(map[string]*Game),
		maxGames: maxGames,
	}
}

// CreateGame registers state under gameID.
func (gm *GameManager) CreateGame(gameID string, state *engine.GameState) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return errors.Wrapf(errors.ErrGameExists, "game %s", gameID)
	}
	if gm.maxGames > 0 && len(gm.games) >= gm.maxGames {
		return errors.Wrapf(errors.ErrTooManyGames, "limit %d", gm.maxGames)
	}

	gm.games[gameID] = newGame(gameID, state)
	return nil
}

// GetGame returns the game registered under gameID.
func (gm *GameManager) GetGame(gameID string) (*Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, errors.Wrapf(errors.ErrGameNotFound, "game %s", gameID)
	}
	return game, nil
}

// DeleteGame removes a game and closes its subscriber channels.
func (gm *GameManager) DeleteGame(gameID string) error {
	gm.mu.Lock()
	game, exists := gm.games[gameID]
	delete(gm.games, gameID)
	gm.mu.Unlock()

	if !exists {
		return errors.Wrapf(errors.ErrGameNotFound, "game %s", gameID)
	}

	game.mu.Lock()
	game.deleted = true
	game.closeSubscribers()
	game.mu.Unlock()
	return nil
}

// Count returns the number of live games.
func (gm *GameManager) Count() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return len(gm.games)
}

// withGame runs fn with the game's lock held.
func (gm *GameManager) withGame(gameID string, fn func(g *Game) error) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	if err := game.lock(); err != nil {
		return err
	}
	defer game.mu.Unlock()
	return fn(game)
}

// State returns the current view of a game.
func (gm *GameManager) State(gameID string) (*output.GameView, error) {
	var v *output.GameView
	err := gm.withGame(gameID, func(g *Game) error {
		v = g.view()
		return nil
	})
	return v, err
}

// Moves returns the pseudo-legal moves of the side to move, in generation order.
func (gm *GameManager) Moves(gameID string) ([]string, error) {
	var moves []string
	err := gm.withGame(gameID, func(g *Game) error {
		moves = engine.Notations(g.state.GeneratePseudoLegalMoves())
		return nil
	})
	return moves, err
}

// MakeMove parses notation and applies it if it is in the generated move
// set. Moves are refused once the game is over.
func (gm *GameManager) MakeMove(gameID, notation string) (*output.GameView, error) {
	var v *output.GameView
	err := gm.withGame(gameID, func(g *Game) error {
		if _, err := g.state.Play(notation); err != nil {
			var me *errors.MoveError
			if errors.As(err, &me) {
				me.GameID = gameID
			}
			return err
		}
		g.broadcast()
		v = g.view()
		return nil
	})
	return v, err
}

// Undo reverts the last move. With an empty log the game is unchanged.
// Undo is allowed after the game is over, and restoring a captured king
// reopens the game.
func (gm *GameManager) Undo(gameID string) (*output.GameView, error) {
	var v *output.GameView
	err := gm.withGame(gameID, func(g *Game) error {
		if g.state.UndoLastMove() {
			g.broadcast()
		}
		v = g.view()
		return nil
	})
	return v, err
}

// Subscribe returns a channel that receives the game's view after every
// change. The channel is closed by the returned cancel function or when the
// game is deleted. Updates are dropped for a subscriber that falls behind.
func (gm *GameManager) Subscribe(gameID string) (<-chan *output.GameView, func(), error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return nil, nil, err
	}
	return game.subscribe()
}

func (g *Game) subscribe() (<-chan *output.GameView, func(), error) {
	if err := g.lock(); err != nil {
		return nil, nil, err
	}
	ch := make(chan *output.GameView, subscriberBuffer)
	g.subscribers[ch] = struct{}{}
	g.mu.Unlock()

	cancel := func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		if _, ok := g.subscribers[ch]; ok {
			delete(g.subscribers, ch)
			close(ch)
		}
	}
	return ch, cancel, nil
}
