// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package gateway

import "context"

// # Messages Capability

// Messages exposes direct messages and notifications.
type Messages struct {
	client *Client
}

// NewMessages binds the messages capability to a [Client].
func NewMessages(client *Client) *Messages {
	return &Messages{client: client}
}

// Conversations lists the visitor's direct-message threads.
func (messages *Messages) Conversations(ctx context.Context) ([]Conversation, error) {
	var conversations []Conversation
	if err := messages.client.Get(ctx, "/api/messages", nil, &conversations); err != nil {
		return nil, err
	}
	return conversations, nil
}

// Conversation returns one thread including its messages.
func (messages *Messages) Conversation(ctx context.Context, id string) (*Conversation, error) {
	var conversation Conversation
	if err := messages.client.Get(ctx, "/api/messages/"+segment(id), nil, &conversation); err != nil {
		return nil, err
	}
	return &conversation, nil
}

// Send appends a message to a thread.
func (messages *Messages) Send(ctx context.Context, id, content string) error {
	return messages.client.Post(ctx, "/api/messages/"+segment(id), map[string]string{"content": content}, nil)
}

// Notifications lists the visitor's recent activity.
func (messages *Messages) Notifications(ctx context.Context) ([]Notification, error) {
	var notifications []Notification
	if err := messages.client.Get(ctx, "/api/notifications", nil, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}
