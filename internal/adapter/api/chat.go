package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/hayawalid/smartexplorers/internal/config"
	"github.com/hayawalid/smartexplorers/internal/domain"
)

// ChatClient calls the travel assistant endpoints.
type ChatClient struct {
	t       *transport
	timeout time.Duration
}

// Send sends one message to the assistant.
// POST /api/chat/
func (c *ChatClient) Send(ctx context.Context, req domain.ChatRequest, opts ...CallOption) (*domain.ChatResponse, error) {
	var resp domain.ChatResponse
	if _, err := c.t.call(ctx, request{
		op:      "chat",
		method:  http.MethodPost,
		path:    config.ChatEndpoint + "/",
		body:    req,
		timeout: c.timeout,
	}, &resp, resolve(Raise, opts)); err != nil {
		return nil, err
	}
	return &resp, nil
}

// History fetches the messages of a conversation.
// GET /api/chat/history/:id
func (c *ChatClient) History(ctx context.Context, conversationID string, opts ...CallOption) (*domain.ConversationHistory, error) {
	var history domain.ConversationHistory
	if _, err := c.t.call(ctx, request{
		op:      "chat_history",
		method:  http.MethodGet,
		path:    pathJoin(config.ChatEndpoint+"/history", conversationID),
		timeout: c.timeout,
	}, &history, resolve(Raise, opts)); err != nil {
		return nil, err
	}
	return &history, nil
}

// Conversations lists the conversations of the current user.
// GET /api/chat/conversations
func (c *ChatClient) Conversations(ctx context.Context, opts ...CallOption) ([]domain.ConversationHistory, error) {
	var out []domain.ConversationHistory
	ok, err := c.t.call(ctx, request{
		op:      "list_conversations",
		method:  http.MethodGet,
		path:    config.ChatEndpoint + "/conversations",
		timeout: c.timeout,
	}, &out, resolve(ReturnEmpty, opts))
	if err != nil {
		return nil, err
	}
	if !ok || out == nil {
		return []domain.ConversationHistory{}, nil
	}
	return out, nil
}

// DeleteConversation deletes a conversation and reports whether it succeeded.
// DELETE /api/chat/history/:id
func (c *ChatClient) DeleteConversation(ctx context.Context, conversationID string, opts ...CallOption) (bool, error) {
	return c.t.succeeded(ctx, request{
		op:      "delete_conversation",
		method:  http.MethodDelete,
		path:    pathJoin(config.ChatEndpoint+"/history", conversationID),
		timeout: c.timeout,
	}, resolve(ReturnEmpty, opts))
}

// Close is a no-op: the transport is shared with the other clients and is
// released by Clients.Close.
func (c *ChatClient) Close() {}

// Conversation threads the conversation id returned by the assistant into
// every following request and keeps the exchanged messages in order.
type Conversation struct {
	client      *ChatClient
	userContext map[string]any

	mu       sync.Mutex
	id       string
	messages []domain.ChatMessage
}

// NewConversation starts a conversation; the server assigns its id on the
// first reply.
func (c *ChatClient) NewConversation(userContext map[string]any) *Conversation {
	return &Conversation{client: c, userContext: userContext}
}

// ResumeConversation continues an existing conversation.
func (c *ChatClient) ResumeConversation(conversationID string) *Conversation {
	return &Conversation{client: c, id: conversationID}
}

// ID returns the conversation id, or "" before the first reply.
func (cv *Conversation) ID() string {
	cv.mu.Lock()
	defer cv.mu.Unlock()
	return cv.id
}

// Messages returns a copy of the exchanged messages.
func (cv *Conversation) Messages() []domain.ChatMessage {
	cv.mu.Lock()
	defer cv.mu.Unlock()
	out := make([]domain.ChatMessage, len(cv.messages))
	copy(out, cv.messages)
	return out
}

// Send sends message within the conversation. Messages are recorded only when
// the assistant replies.
func (cv *Conversation) Send(ctx context.Context, message string, opts ...CallOption) (*domain.ChatResponse, error) {
	sentAt := time.Now().UTC()
	resp, err := cv.client.Send(ctx, domain.ChatRequest{
		Message:        message,
		ConversationID: cv.ID(),
		UserContext:    cv.userContext,
	}, opts...)
	if err != nil {
		return nil, err
	}

	cv.mu.Lock()
	defer cv.mu.Unlock()
	if resp.ConversationID != "" {
		cv.id = resp.ConversationID
	}
	replyAt := resp.Timestamp
	cv.messages = append(cv.messages,
		domain.ChatMessage{Role: domain.RoleUser, Content: message, Timestamp: &sentAt},
		domain.ChatMessage{Role: domain.RoleAssistant, Content: resp.Message, Timestamp: &replyAt},
	)
	return resp, nil
}
