// ABOUTME: Conversation and message endpoint facade
// ABOUTME: Connects clients and developers around a project request

package api

import (
	"context"
	"fmt"
	"time"
)

// Conversation links a client and a developer around a request.
type Conversation struct {
	ID             int64      `json:"id"`
	RequestID      int64      `json:"request_id"`
	RequestTitle   string     `json:"request_title,omitempty"`
	ClientID       int64      `json:"client_id"`
	DeveloperID    int64      `json:"developer_id"`
	OtherPartyName string     `json:"other_party_name,omitempty"`
	Status         string     `json:"status"`
	UnreadCount    int        `json:"unread_count"`
	LastMessageAt  *time.Time `json:"last_message_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Message is one entry in a conversation.
type Message struct {
	ID             int64      `json:"id"`
	ConversationID int64      `json:"conversation_id"`
	SenderID       int64      `json:"sender_id"`
	SenderName     string     `json:"sender_name,omitempty"`
	Content        string     `json:"content"`
	ReadAt         *time.Time `json:"read_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Conversations lists the caller's conversations.
func (c *Client) Conversations(ctx context.Context) ([]Conversation, error) {
	var conversations []Conversation
	if err := c.Get(ctx, "/conversations/", &conversations); err != nil {
		return nil, err
	}
	return conversations, nil
}

// Conversation fetches a single conversation.
func (c *Client) Conversation(ctx context.Context, id int64) (*Conversation, error) {
	var conversation Conversation
	if err := c.Get(ctx, fmt.Sprintf("/conversations/%d", id), &conversation); err != nil {
		return nil, err
	}
	return &conversation, nil
}

// CreateConversation opens a conversation about a request. This is the
// call that trips the subscription gate for developers without an active
// plan; callers should branch on IsSubscriptionRequired.
func (c *Client) CreateConversation(ctx context.Context, requestID int64) (*Conversation, error) {
	body := struct {
		RequestID int64 `json:"request_id"`
	}{RequestID: requestID}

	var conversation Conversation
	if err := c.Post(ctx, "/conversations/", body, &conversation); err != nil {
		return nil, err
	}
	return &conversation, nil
}

// Messages lists the messages in a conversation.
func (c *Client) Messages(ctx context.Context, conversationID int64) ([]Message, error) {
	var messages []Message
	if err := c.Get(ctx, fmt.Sprintf("/conversations/%d/messages", conversationID), &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// SendMessage appends a message to a conversation.
func (c *Client) SendMessage(ctx context.Context, conversationID int64, content string) (*Message, error) {
	body := struct {
		Content string `json:"content"`
	}{Content: content}

	var message Message
	if err := c.Post(ctx, fmt.Sprintf("/conversations/%d/messages", conversationID), body, &message); err != nil {
		return nil, err
	}
	return &message, nil
}

// MarkRead marks all messages in a conversation as read.
func (c *Client) MarkRead(ctx context.Context, conversationID int64) error {
	return c.Put(ctx, fmt.Sprintf("/conversations/%d/read", conversationID), nil, nil)
}
