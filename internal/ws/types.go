package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	MessageTypeSelect    MessageType = "select"
	MessageTypeMove      MessageType = "move"
	MessageTypePromote   MessageType = "promote"
	MessageTypeGameState MessageType = "gameState"
	MessageTypeError     MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// SquarePayload carries a 1-based square for select and move messages.
type SquarePayload struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// PromotePayload carries the replacement piece for a promoted pawn.
type PromotePayload struct {
	Piece string `json:"piece"`
}
