// ABOUTME: Messaging resource client
// ABOUTME: Roster, conversation history, send, mark-read, and unread summary endpoints
package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/tablevine/tablevine/models"
)

// Messaging is the client for the two-party conversation endpoints.
type Messaging struct {
	client *Client
}

// NewMessaging creates the messaging client.
func NewMessaging(client *Client) *Messaging {
	return &Messaging{client: client}
}

// Roster fetches the counterpart list. Unread counts and recency in the
// response are advisory; callers recompute them from conversation history.
func (m *Messaging) Roster(ctx context.Context) ([]models.Counterpart, error) {
	var roster []models.Counterpart
	if err := m.client.do(ctx, http.MethodGet, "/messages/roster", nil, &roster); err != nil {
		return nil, err
	}
	return roster, nil
}

// Conversation fetches the full message history with one counterpart.
func (m *Messaging) Conversation(ctx context.Context, counterpartID uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	path := "/messages/conversations/" + counterpartID.String()
	if err := m.client.do(ctx, http.MethodGet, path, nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// Send posts a message and returns the server's canonical copy.
func (m *Messaging) Send(ctx context.Context, counterpartID uuid.UUID, content string) (models.Message, error) {
	payload := struct {
		Content string `json:"content"`
	}{Content: content}

	var sent models.Message
	path := "/messages/conversations/" + counterpartID.String()
	if err := m.client.do(ctx, http.MethodPost, path, payload, &sent); err != nil {
		return models.Message{}, err
	}
	return sent, nil
}

// MarkRead acknowledges every unread message from one counterpart. Safe to
// call when nothing is unread.
func (m *Messaging) MarkRead(ctx context.Context, counterpartID uuid.UUID) error {
	path := "/messages/conversations/" + counterpartID.String() + "/read"
	return m.client.do(ctx, http.MethodPost, path, nil, nil)
}

// UnreadSummary is the server's aggregate unread report.
type UnreadSummary struct {
	Total         int            `json:"total"`
	ByCounterpart map[string]int `json:"by_counterpart,omitempty"`
}

// Unread fetches the aggregate unread summary without a per-conversation
// fan-out. Used for lightweight badges.
func (m *Messaging) Unread(ctx context.Context) (UnreadSummary, error) {
	var summary UnreadSummary
	if err := m.client.do(ctx, http.MethodGet, "/messages/unread", nil, &summary); err != nil {
		return UnreadSummary{}, err
	}
	return summary, nil
}
