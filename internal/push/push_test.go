package push

import (
	"context"
	"testing"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestMessage(t *testing.T) {
	n := &models.Notification{ID: 7, UserID: 42, Type: models.NotificationPostLiked, Message: "Ann liked your post"}

	msg := Message(n)
	assert.Equal(t, "user-42", msg.Topic)
	assert.Equal(t, "POST_LIKED", msg.Notification.Title)
	assert.Equal(t, "Ann liked your post", msg.Notification.Body)
	assert.Equal(t, "7", msg.Data["notificationId"])
}

func TestNoopPusher(t *testing.T) {
	assert.NoError(t, NoopPusher{}.Push(context.Background(), &models.Notification{}))
}
