package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/campustrade/campustrade/internal/model"
	"github.com/campustrade/campustrade/internal/store"
	"github.com/campustrade/campustrade/internal/validate"
)

// MessageService handles messages and the conversations derived from them.
// Conversations are never stored; they are recomputed from the message set on
// every read.
type MessageService struct {
	store store.Store
}

func NewMessageService(s store.Store) *MessageService { return &MessageService{store: s} }

// ConversationKey returns the canonical id for a participant pair: the two
// ids sorted and joined with "-". ULIDs contain no hyphen, so the key splits
// back unambiguously.
func ConversationKey(userA, userB string) string {
	if userB < userA {
		userA, userB = userB, userA
	}
	return userA + "-" + userB
}

// participants splits a conversation key back into its two user ids.
func participants(key string) (string, string, error) {
	a, b, ok := strings.Cut(key, "-")
	if !ok || a == "" || b == "" {
		return "", "", fmt.Errorf("malformed conversationId %q: %w", key, model.ErrValidation)
	}
	return a, b, nil
}

// ListByConversation returns the messages of a conversation in insertion
// order, matching sender/receiver in either direction.
func (s *MessageService) ListByConversation(ctx context.Context, key string) ([]*model.Message, error) {
	a, b, err := participants(key)
	if err != nil {
		return nil, err
	}
	return s.store.Messages().ListBetween(ctx, a, b)
}

// Send creates a message. The receiver is inferred as the other participant
// of the conversation key.
func (s *MessageService) Send(ctx context.Context, conversationID, senderID, itemID, content string) (*model.Message, error) {
	if err := validate.SendMessage(conversationID, senderID, content); err != nil {
		return nil, err
	}
	a, b, err := participants(conversationID)
	if err != nil {
		return nil, err
	}
	receiverID := a
	if senderID == a {
		receiverID = b
	}
	return s.store.Messages().Create(ctx, &model.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		ItemID:     itemID,
		Content:    content,
	})
}

// ListConversations derives conversation summaries for a user: one entry per
// counterpart, carrying the latest message and the count of messages the user
// has not read yet. Newest conversations come first.
func (s *MessageService) ListConversations(ctx context.Context, userID string) ([]*model.Conversation, error) {
	msgs, err := s.store.Messages().ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	byKey := map[string]*model.Conversation{}
	for _, m := range msgs {
		other := m.SenderID
		if other == userID {
			other = m.ReceiverID
		}
		key := ConversationKey(userID, other)
		c, ok := byKey[key]
		if !ok {
			a, b, _ := participants(key)
			c = &model.Conversation{ID: key, Participants: []string{a, b}}
			byKey[key] = c
		}
		// Messages arrive in insertion order, so the last seen wins.
		c.LastMessage = m
		if m.ReceiverID == userID && !m.Read {
			c.UnreadCount++
		}
	}

	out := make([]*model.Conversation, 0, len(byKey))
	for _, c := range byKey {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LastMessage.CreatedAt.After(out[j].LastMessage.CreatedAt)
	})
	return out, nil
}
