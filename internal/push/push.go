// Package push delivers stored notifications to devices.
package push

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"

	"github.com/anonto42/nano-social/backend/internal/models"
)

// Pusher sends a notification that has already been persisted.
type Pusher interface {
	Push(ctx context.Context, n *models.Notification) error
}

// Topic is the FCM topic a user's devices subscribe to.
func Topic(userID uint) string {
	return fmt.Sprintf("user-%d", userID)
}

// FCMPusher publishes to the recipient's Firebase Cloud Messaging topic.
type FCMPusher struct {
	client *messaging.Client
}

func NewFCMPusher(client *messaging.Client) *FCMPusher {
	return &FCMPusher{client: client}
}

func (p *FCMPusher) Push(ctx context.Context, n *models.Notification) error {
	_, err := p.client.Send(ctx, Message(n))
	return err
}

// Message builds the FCM message for a notification.
func Message(n *models.Notification) *messaging.Message {
	return &messaging.Message{
		Topic: Topic(n.UserID),
		Notification: &messaging.Notification{
			Title: string(n.Type),
			Body:  n.Message,
		},
		Data: map[string]string{
			"notificationId": fmt.Sprint(n.ID),
			"type":           string(n.Type),
		},
	}
}

// NoopPusher is used when Firebase is not configured.
type NoopPusher struct{}

func (NoopPusher) Push(context.Context, *models.Notification) error { return nil }
