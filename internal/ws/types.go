package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	MessageTypeMove      MessageType = "move"
	MessageTypeUndo      MessageType = "undo"
	MessageTypeReset     MessageType = "reset"
	MessageTypeGameState MessageType = "gameState"
	MessageTypeError     MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ErrorPayload is the payload of a MessageTypeError message.
type ErrorPayload struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// NewErrorMessage builds an error message ready to be written to a connection.
func NewErrorMessage(code, errorMsg string) Message {
	payload, _ := json.Marshal(ErrorPayload{Error: errorMsg, Code: code})
	return Message{Type: MessageTypeError, Payload: payload}
}
