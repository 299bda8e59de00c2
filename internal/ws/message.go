package ws

import (
	"time"

	"github.com/HerbHall/energyguard/pkg/roles"
)

// MessageType discriminates WebSocket messages.
type MessageType string

const (
	MessageWelcome      MessageType = "welcome"
	MessageEvaluation   MessageType = "evaluation"
	MessageAlert        MessageType = "alert"
	MessageSessionReset MessageType = "session_reset"
	MessagePing         MessageType = "ping"
	MessagePong         MessageType = "pong"
)

// Message is the envelope for all WebSocket messages.
type Message struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      any         `json:"data,omitempty"`
}

// WelcomeData is the payload for welcome messages. Snapshot is nil when
// no advisor is available to describe the session.
type WelcomeData struct {
	Snapshot *roles.SessionSnapshot `json:"snapshot,omitempty"`
}
