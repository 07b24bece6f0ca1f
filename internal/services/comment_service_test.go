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

func TestCommentService(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	testutil.CreateUser(t, e.db, 1, "owner")
	testutil.CreateUser(t, e.db, 2, "writer")
	testutil.CreateUser(t, e.db, 3, "other")
	testutil.CreatePost(t, e.db, 10, 1, "post")

	_, err := e.comments.AddComment(ctx, asUser(2), 10, models.CreateCommentRequest{Text: "<i></i>"})
	assert.True(t, errors.Is(err, errors.ErrCodeValidation))

	c, err := e.comments.AddComment(ctx, asUser(2), 10, models.CreateCommentRequest{Text: "first!"})
	require.NoError(t, err)
	assert.Equal(t, "writer", c.Author)
	assert.False(t, c.IsEdited)

	_, err = e.comments.UpdateComment(ctx, asUser(3), c.ID, models.UpdateCommentRequest{Text: "hijack"})
	assert.True(t, errors.Is(err, errors.ErrCodeForbidden))

	edited, err := e.comments.UpdateComment(ctx, asUser(2), c.ID, models.UpdateCommentRequest{Text: "second"})
	require.NoError(t, err)
	assert.True(t, edited.IsEdited)

	list, err := e.comments.GetComments(ctx, asUser(3), 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "second", list[0].Text)

	assert.True(t, errors.Is(e.comments.DeleteComment(ctx, asUser(3), c.ID), errors.ErrCodeForbidden))
	require.NoError(t, e.comments.DeleteComment(ctx, asUser(2), c.ID))

	_, err = e.comments.AddComment(ctx, asUser(2), 99, models.CreateCommentRequest{Text: "lost"})
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
}

func TestLikeService(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	testutil.CreateUser(t, e.db, 1, "owner")
	testutil.CreateUser(t, e.db, 2, "fan")
	testutil.CreatePost(t, e.db, 10, 1, "post")

	_, err := e.likes.LikePost(ctx, asUser(1), 10)
	require.NoError(t, err)
	assert.Empty(t, e.notificationsFor(t, 1))

	_, err = e.likes.LikePost(ctx, asUser(2), 10)
	require.NoError(t, err)

	likers, err := e.likes.GetLikes(ctx, asUser(2), 10)
	require.NoError(t, err)
	assert.Len(t, likers, 2)

	require.NoError(t, e.likes.UnlikePost(ctx, asUser(2), 10))
	assert.True(t, errors.Is(e.likes.UnlikePost(ctx, asUser(2), 10), errors.ErrCodeNotFound))
}

func TestReportService(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	testutil.CreateUser(t, e.db, 1, "owner")
	testutil.CreateUser(t, e.db, 2, "reporter")
	testutil.CreateAdmin(t, e.db, 3, "mod")
	testutil.CreatePost(t, e.db, 10, 1, "post")

	report, err := e.reports.ReportPost(ctx, asUser(2), 10, models.CreateReportRequest{Reason: "spam"})
	require.NoError(t, err)
	assert.False(t, report.IsCommentReport())
	_, err = e.reports.ReportPost(ctx, asUser(2), 10, models.CreateReportRequest{Reason: "spam"})
	assert.True(t, errors.Is(err, errors.ErrCodeConflict))

	assert.Equal(t, []models.NotificationType{models.NotificationPostReported}, e.notificationTypes(t, 1))
	assert.Equal(t, []models.NotificationType{models.NotificationPostReported}, e.notificationTypes(t, 3))
	assert.Empty(t, e.notificationsFor(t, 2))

	c, err := e.comments.AddComment(ctx, asUser(1), 10, models.CreateCommentRequest{Text: "reply"})
	require.NoError(t, err)
	report, err = e.reports.ReportComment(ctx, asUser(2), c.ID, models.CreateReportRequest{Reason: "rude"})
	require.NoError(t, err)
	assert.True(t, report.IsCommentReport())
	assert.Equal(t, uint(10), *report.PostID)
	_, err = e.reports.ReportComment(ctx, asUser(2), c.ID, models.CreateReportRequest{Reason: "rude"})
	assert.True(t, errors.Is(err, errors.ErrCodeConflict))

	types := e.notificationTypes(t, 3)
	assert.Equal(t, models.NotificationCommentReported, types[len(types)-1])
}
