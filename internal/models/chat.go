package models

import "time"

// ChatRole is the author of a chat message. Exactly two values exist; the
// store validates at the boundary and never coerces.
type ChatRole string

const (
	RoleUser ChatRole = "user"
	RoleBot  ChatRole = "bot"
)

// Valid reports whether r is "user" or "bot".
func (r ChatRole) Valid() bool {
	return r == RoleUser || r == RoleBot
}

// ChatSession is one conversation thread between a user and a chatbot.
// Token is the externally visible session identifier, unique across all
// sessions. MessageCount always equals the number of stored messages for
// the session.
type ChatSession struct {
	ID           int       `json:"id"`
	ChatbotID    int       `json:"chatbot_id"`
	UserID       int       `json:"user_id"`
	Token        string    `json:"session_id"`
	StartedAt    time.Time `json:"started_at"`
	LastActivity time.Time `json:"last_activity"`
	MessageCount int       `json:"message_count"`
	IsActive     bool      `json:"is_active"`
}

// Clone returns a value copy of the session.
func (s *ChatSession) Clone() *ChatSession {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

// ChatMessage is one ordered turn in a session. Ordering is by Timestamp
// ascending. TokensUsed and ProcessingTime are nil when the provider did
// not report them.
type ChatMessage struct {
	ID             int       `json:"id"`
	SessionID      int       `json:"session_id"`
	Role           ChatRole  `json:"role"`
	Content        string    `json:"content"`
	Timestamp      time.Time `json:"timestamp"`
	TokensUsed     *int      `json:"tokens_used,omitempty"`
	ProcessingTime *int      `json:"processing_time,omitempty"`
	HasError       bool      `json:"has_error"`
	ErrorMessage   string    `json:"error_message,omitempty"`
}

// Clone returns a deep copy of the message, including the optional counter
// fields, so callers can never reach into stored state.
func (m *ChatMessage) Clone() *ChatMessage {
	if m == nil {
		return nil
	}
	c := *m
	if m.TokensUsed != nil {
		v := *m.TokensUsed
		c.TokensUsed = &v
	}
	if m.ProcessingTime != nil {
		v := *m.ProcessingTime
		c.ProcessingTime = &v
	}
	return &c
}
