package services

import (
	"context"
	"testing"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/testutil"
	"github.com/anonto42/nano-social/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationService_Lifecycle(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	testutil.CreateUser(t, e.db, 1, "alice")
	require.True(t, e.fanout.NotifyAccountWarning(ctx, 1, "spam"))
	n := e.notificationsFor(t, 1)[0]

	err := e.inbox.Delete(ctx, 1, n.ID)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidState))

	read, err := e.inbox.MarkRead(ctx, 1, n.ID)
	require.NoError(t, err)
	assert.True(t, read.Read)

	// Marking again is a no-op.
	_, err = e.inbox.MarkRead(ctx, 1, n.ID)
	require.NoError(t, err)

	require.NoError(t, e.inbox.Delete(ctx, 1, n.ID))
	assert.Empty(t, e.notificationsFor(t, 1))

	_, err = e.inbox.MarkRead(ctx, 1, n.ID)
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
}

func TestNotificationService_OwnershipIsChecked(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	testutil.CreateUser(t, e.db, 1, "alice")
	testutil.CreateUser(t, e.db, 2, "mallory")
	require.True(t, e.fanout.NotifyAccountWarning(ctx, 1, "spam"))
	n := e.notificationsFor(t, 1)[0]

	_, err := e.inbox.MarkRead(ctx, 2, n.ID)
	assert.True(t, errors.Is(err, errors.ErrCodeForbidden))

	_, err = e.inbox.MarkRead(ctx, 1, n.ID)
	require.NoError(t, err)

	err = e.inbox.Delete(ctx, 2, n.ID)
	assert.True(t, errors.Is(err, errors.ErrCodeForbidden))
	assert.Len(t, e.notificationsFor(t, 1), 1)
}

func TestNotificationService_Listing(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	testutil.CreateUser(t, e.db, 1, "alice")
	for _, msg := range []string{"one", "two", "three"} {
		e.fanout.NotifySystemAnnouncement(ctx, msg, []uint{1})
	}

	page, total, err := e.inbox.List(ctx, 1, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 2)
	assert.Equal(t, "three", page[0].Message)

	count, err := e.inbox.UnreadCount(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	flipped, err := e.inbox.MarkAllRead(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), flipped)

	unread, err := e.inbox.Unread(ctx, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, unread)

	grouped, err := e.inbox.Grouped(ctx, 1)
	require.NoError(t, err)
	total = int64(len(grouped.Today) + len(grouped.Yesterday) + len(grouped.ThisWeek) + len(grouped.Older))
	assert.Equal(t, int64(3), total)
	for _, n := range grouped.Today {
		assert.Equal(t, models.NotificationSystemAnnouncement, n.Type)
	}
}
