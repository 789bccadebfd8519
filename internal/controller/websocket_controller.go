package controller

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/websocket/v2"

	"github.com/lgbarn/chesscore-go/internal/config"
	"github.com/lgbarn/chesscore-go/internal/output"
	"github.com/lgbarn/chesscore-go/internal/service"
	"github.com/lgbarn/chesscore-go/internal/ws"
)

// outboxSize is the number of replies queued for a connection's writer.
const outboxSize = 16

// WebSocketController serves a game over a websocket. Every connection is
// subscribed to the game: moves and undos, from any client, are pushed to
// all connections as gameState messages.
type WebSocketController struct {
	gameService *service.GameService
	cfg         *config.Config
}

// NewWebSocketController creates a controller over gameService.
func NewWebSocketController(gameService *service.GameService, cfg *config.Config) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
		cfg:         cfg,
	}
}

// HandleConnection is called when a new WebSocket connection is established.
// The connection is written only by its writer goroutine.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID, _ := c.Locals("gameID").(string)
	if gameID == "" {
		gameID = c.Params("id")
	}

	updates, cancel, err := wsc.gameService.Subscribe(gameID)
	if err != nil {
		c.WriteJSON(ws.ErrorMessage(err)) //nolint:errcheck // closing anyway
		c.Close()
		return
	}
	defer cancel()
	wsc.cfg.Logf(config.Verbose, "websocket connected to game %s", gameID)

	outbox := make(chan ws.Message, outboxSize)
	writerDone := make(chan struct{})
	readerDone := make(chan struct{})
	go wsc.writeLoop(c, outbox, updates, readerDone, writerDone)

	send := func(msg ws.Message) bool {
		select {
		case outbox <- msg:
			return true
		case <-writerDone:
			return false
		}
	}

	// Send initial state
	if reply := wsc.handleMessage(gameID, ws.Message{Type: ws.MessageTypeState}); reply != nil {
		send(*reply)
	}

	// Start message handling loop
	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			if !send(ws.ErrorMessage(fmt.Errorf("invalid message: %w", err))) {
				break
			}
			continue
		}
		if reply := wsc.handleMessage(gameID, msg); reply != nil && !send(*reply) {
			break
		}
	}

	close(readerDone)
	<-writerDone
	wsc.cfg.Logf(config.Verbose, "websocket disconnected from game %s", gameID)
}

// writeLoop writes queued replies and game updates until the reader stops
// or the game is deleted.
func (wsc *WebSocketController) writeLoop(c *websocket.Conn, outbox <-chan ws.Message,
	updates <-chan *output.GameView, readerDone <-chan struct{}, writerDone chan<- struct{}) {
	defer close(writerDone)

	for {
		select {
		case msg := <-outbox:
			if err := c.WriteJSON(msg); err != nil {
				return
			}
		case view, ok := <-updates:
			if !ok {
				// Game deleted: closing unblocks the reader.
				c.WriteMessage(websocket.CloseMessage, //nolint:errcheck // best effort
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game deleted"))
				c.Close()
				return
			}
			msg, err := ws.NewMessage(ws.MessageTypeGameState, view)
			if err != nil {
				continue
			}
			if err := c.WriteJSON(msg); err != nil {
				return
			}
		case <-readerDone:
			return
		}
	}
}

// handleMessage runs one client message and returns the direct reply, if any.
// Successful moves and undos have no direct reply: the new state reaches
// every connection, this one included, through the subscription.
func (wsc *WebSocketController) handleMessage(gameID string, msg ws.Message) *ws.Message {
	var err error
	switch msg.Type {
	case ws.MessageTypeMove:
		var move ws.MovePayload
		if err = json.Unmarshal(msg.Payload, &move); err == nil {
			_, err = wsc.gameService.HandleMove(gameID, move.Move)
		}

	case ws.MessageTypeUndo:
		_, err = wsc.gameService.Undo(gameID)

	case ws.MessageTypeState:
		var view *output.GameView
		if view, err = wsc.gameService.GetGameState(gameID); err == nil {
			reply, encErr := ws.NewMessage(ws.MessageTypeGameState, view)
			if encErr == nil {
				return &reply
			}
			err = encErr
		}

	default:
		err = fmt.Errorf("unknown message type: %s", msg.Type)
	}

	if err != nil {
		reply := ws.ErrorMessage(err)
		return &reply
	}
	return nil
}
