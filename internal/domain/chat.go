package domain

import "time"

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	Role      Role       `json:"role"`
	Content   string     `json:"content"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// ChatRequest is sent to the assistant.
type ChatRequest struct {
	Message        string         `json:"message"`
	ConversationID string         `json:"conversation_id,omitempty"`
	UserContext    map[string]any `json:"user_context,omitempty"`
}

// ChatResponse is the assistant's reply.
type ChatResponse struct {
	Message        string    `json:"message"`
	ConversationID string    `json:"conversation_id"`
	Suggestions    []string  `json:"suggestions,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// ConversationHistory holds the messages of a conversation in chronological order.
type ConversationHistory struct {
	ConversationID string        `json:"conversation_id"`
	Messages       []ChatMessage `json:"messages"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}
