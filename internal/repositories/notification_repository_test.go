package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationRepository_ReadFlags(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostgresNotificationRepository(db)
	ctx := context.Background()

	testutil.CreateUser(t, db, 1, "alice")
	testutil.CreateUser(t, db, 2, "bob")
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.CreateNotification(ctx, &models.Notification{UserID: 1, Type: models.NotificationPostLiked, Message: "liked"}))
	}
	require.NoError(t, repo.CreateNotification(ctx, &models.Notification{UserID: 2, Type: models.NotificationPostLiked, Message: "liked"}))

	count, err := repo.GetUnreadCount(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	page, total, err := repo.GetByUserID(ctx, 1, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, page, 2)

	require.NoError(t, repo.MarkAsRead(ctx, page[0].ID))
	require.NoError(t, repo.MarkAsRead(ctx, page[0].ID))
	unread, err := repo.GetUnread(ctx, 1, 0)
	require.NoError(t, err)
	assert.Len(t, unread, 2)

	flipped, err := repo.MarkAllAsRead(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), flipped)

	count, err = repo.GetUnreadCount(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestNotificationRepository_GetGrouped(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostgresNotificationRepository(db)
	ctx := context.Background()

	testutil.CreateUser(t, db, 1, "alice")
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	for _, at := range []time.Time{
		now.Add(-time.Hour),
		now.AddDate(0, 0, -1),
		now.AddDate(0, 0, -3),
		now.AddDate(0, 0, -30),
	} {
		require.NoError(t, repo.CreateNotification(ctx, &models.Notification{UserID: 1, Type: models.NotificationSystemAnnouncement, Message: "m", CreatedAt: at}))
	}

	g, err := repo.GetGrouped(ctx, 1, now)
	require.NoError(t, err)
	assert.Len(t, g.Today, 1)
	assert.Len(t, g.Yesterday, 1)
	assert.Len(t, g.ThisWeek, 1)
	assert.Len(t, g.Older, 1)
}
