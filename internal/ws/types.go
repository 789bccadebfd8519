// Package ws defines the messages exchanged over a game's websocket.
package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	MessageTypeMove      MessageType = "move"
	MessageTypeUndo      MessageType = "undo"
	MessageTypeState     MessageType = "state"
	MessageTypeGameState MessageType = "gameState"
	MessageTypeError     MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MovePayload is the payload of a move message.
type MovePayload struct {
	Move string `json:"move"`
}

// ErrorPayload is the payload of an error message.
type ErrorPayload struct {
	Error string `json:"error"`
}

// NewMessage builds a message with payload encoded as JSON.
func NewMessage(t MessageType, payload interface{}) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: raw}, nil
}

// ErrorMessage builds an error message for err.
func ErrorMessage(err error) Message {
	// An ErrorPayload always marshals.
	msg, _ := NewMessage(MessageTypeError, ErrorPayload{Error: err.Error()})
	return msg
}
