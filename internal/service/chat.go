package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/hayawalid/smartexplorers/internal/domain"
)

type canned struct {
	keywords    []string
	reply       string
	suggestions []string
}

// The development assistant answers from a fixed table so that replies are
// deterministic.
var cannedReplies = []canned{
	{
		keywords:    []string{"safe", "emergency", "danger", "police"},
		reply:       "Your safety comes first. Add emergency contacts in the Safety tab and use the panic button if you ever feel unsafe. The tourist police hotline in Egypt is 126.",
		suggestions: []string{"Add an emergency contact", "Share my location"},
	},
	{
		keywords:    []string{"guide", "driver", "provider", "translator"},
		reply:       "Every provider on SmartExplorers is identity verified. Browse the marketplace to compare guides, drivers and hosts near you.",
		suggestions: []string{"Show verified guides", "Find a driver"},
	},
	{
		keywords:    []string{"plan", "itinerary", "trip", "days"},
		reply:       "I can help you plan. Tell me where you want to go and for how many days, or open the trip planner for a full itinerary.",
		suggestions: []string{"Plan 3 days in Cairo", "Open the trip planner"},
	},
	{
		keywords:    []string{"hello", "hi", "hey"},
		reply:       "Hello! I'm your SmartExplorers travel assistant. Ask me about places to visit, safety tips or finding a local guide.",
		suggestions: []string{"What should I see in Luxor?", "Is it safe to travel alone?"},
	},
}

const defaultReply = "I'm not sure about that yet. Try asking about destinations, safety tips or local guides."

func replyFor(message string) canned {
	words := strings.FieldsFunc(strings.ToLower(message), func(r rune) bool {
		return !('a' <= r && r <= 'z')
	})
	for _, c := range cannedReplies {
		for _, kw := range c.keywords {
			for _, w := range words {
				if w == kw {
					return c
				}
			}
		}
	}
	return canned{reply: defaultReply, suggestions: []string{"Top sights in Egypt", "Safety tips"}}
}

// Chat answers a message. A conversation is created when the request has no
// id or an unknown one; the id is returned so the client can continue it.
func (s *Service) Chat(ctx context.Context, userID string, req domain.ChatRequest) (*domain.ChatResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, newError(ErrInvalidInput, "message is required")
	}

	conversationID := req.ConversationID
	existing, err := s.store.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	if conversationID == "" || existing == nil {
		if conversationID == "" {
			conversationID = uuid.NewString()
		}
		if err := s.store.CreateConversation(ctx, conversationID, userID); err != nil {
			return nil, fmt.Errorf("failed to create conversation: %w", err)
		}
	}

	now := s.now()
	if err := s.store.AppendMessage(ctx, conversationID, domain.ChatMessage{Role: domain.RoleUser, Content: req.Message, Timestamp: &now}); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	answer := replyFor(req.Message)
	replyAt := s.now()
	if err := s.store.AppendMessage(ctx, conversationID, domain.ChatMessage{Role: domain.RoleAssistant, Content: answer.reply, Timestamp: &replyAt}); err != nil {
		return nil, fmt.Errorf("failed to store reply: %w", err)
	}

	return &domain.ChatResponse{
		Message:        answer.reply,
		ConversationID: conversationID,
		Suggestions:    answer.suggestions,
		Timestamp:      replyAt,
	}, nil
}

// ChatHistory returns a conversation with its messages.
func (s *Service) ChatHistory(ctx context.Context, conversationID string) (*domain.ConversationHistory, error) {
	h, err := s.store.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	if h == nil {
		return nil, newError(ErrNotFound, "Conversation not found")
	}
	return h, nil
}

// Conversations lists the conversations started by userID.
func (s *Service) Conversations(ctx context.Context, userID string) ([]domain.ConversationHistory, error) {
	return s.store.ListConversations(ctx, userID)
}

// DeleteConversation deletes a conversation.
func (s *Service) DeleteConversation(ctx context.Context, conversationID string) error {
	ok, err := s.store.DeleteConversation(ctx, conversationID)
	if err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	if !ok {
		return newError(ErrNotFound, "Conversation not found")
	}
	return nil
}
