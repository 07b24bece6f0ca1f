package services

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/push"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/anonto42/nano-social/backend/pkg/logger"
	"github.com/anonto42/nano-social/backend/pkg/metrics"
)

var mentionRegex = regexp.MustCompile(`@(\w+)`)

// ExtractMentions returns the distinct usernames mentioned in text, in order
// of first appearance.
func ExtractMentions(text string) []string {
	matches := mentionRegex.FindAllStringSubmatch(text, -1)
	seen := make(map[string]bool, len(matches))
	var usernames []string
	for _, m := range matches {
		if !seen[m[1]] {
			seen[m[1]] = true
			usernames = append(usernames, m[1])
		}
	}
	return usernames
}

// NotificationFanout turns domain events into notification records. Every
// Notify method is best effort: failures are logged and counted, never
// returned, so the write that triggered the event always stands.
type NotificationFanout struct {
	notifications repositories.NotificationRepository
	users         repositories.UserRepository
	pusher        push.Pusher
}

func NewNotificationFanout(notifications repositories.NotificationRepository, users repositories.UserRepository, pusher push.Pusher) *NotificationFanout {
	if pusher == nil {
		pusher = push.NoopPusher{}
	}
	return &NotificationFanout{
		notifications: notifications,
		users:         users,
		pusher:        pusher,
	}
}

type payload map[string]interface{}

// create stores one notification and pushes it. It reports whether the
// record was stored.
func (f *NotificationFanout) create(ctx context.Context, userID uint, typ models.NotificationType, message string, data payload) bool {
	n := &models.Notification{
		UserID:  userID,
		Type:    typ,
		Message: message,
	}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			f.fail(typ, userID, err)
			return false
		}
		n.Data = raw
	}

	if err := f.notifications.CreateNotification(ctx, n); err != nil {
		f.fail(typ, userID, err)
		return false
	}
	metrics.NotificationsCreated.WithLabelValues(string(typ)).Inc()

	if err := f.pusher.Push(ctx, n); err != nil {
		metrics.PushDeliveries.WithLabelValues("error").Inc()
		logger.Warn("Push delivery failed", "notification_id", n.ID, "user_id", userID, "error", err)
	} else {
		metrics.PushDeliveries.WithLabelValues("ok").Inc()
	}
	return true
}

func (f *NotificationFanout) fail(typ models.NotificationType, userID uint, err error) {
	metrics.NotificationFailures.WithLabelValues(string(typ)).Inc()
	logger.Error("Failed to create notification", "type", typ, "user_id", userID, "error", err)
}

func (f *NotificationFanout) notifyAdmins(ctx context.Context, typ models.NotificationType, message string, data payload) {
	admins, err := f.users.GetAdmins(ctx)
	if err != nil {
		f.fail(typ, 0, err)
		return
	}
	for _, admin := range admins {
		f.create(ctx, admin.ID, typ, message, data)
	}
}

// NotifyPostLiked tells the post owner about a like, unless they liked it themselves.
func (f *NotificationFanout) NotifyPostLiked(ctx context.Context, post *models.Post, liker *models.User) {
	if post.UserID == liker.ID {
		return
	}
	f.create(ctx, post.UserID, models.NotificationPostLiked,
		fmt.Sprintf("%s liked your post %q", liker.FullName, post.Title),
		payload{"postId": post.ID, "postTitle": post.Title, "likerId": liker.ID, "likerName": liker.FullName})
}

// NotifyNewComment notifies the post owner and every mentioned user. A
// recipient gets at most one notification per comment: a post owner who is
// also mentioned receives only the mention.
func (f *NotificationFanout) NotifyNewComment(ctx context.Context, post *models.Post, comment *models.Comment, commenter *models.User) {
	data := payload{
		"postId":        post.ID,
		"postTitle":     post.Title,
		"commentId":     comment.ID,
		"commenterId":   commenter.ID,
		"commenterName": commenter.FullName,
	}

	mentioned := make(map[uint]bool)
	if usernames := ExtractMentions(comment.Text); len(usernames) > 0 {
		users, err := f.users.GetUsersByUsernames(ctx, usernames)
		if err != nil {
			f.fail(models.NotificationMentionedInComment, 0, err)
		}
		for _, u := range users {
			if u.ID == commenter.ID || mentioned[u.ID] {
				continue
			}
			mentioned[u.ID] = true
			f.create(ctx, u.ID, models.NotificationMentionedInComment,
				fmt.Sprintf("%s mentioned you in a comment", commenter.FullName), data)
		}
	}

	if post.UserID != commenter.ID && !mentioned[post.UserID] {
		f.create(ctx, post.UserID, models.NotificationPostCommented,
			fmt.Sprintf("%s commented on your post %q", commenter.FullName, post.Title), data)
	}
}

// NotifyPostReported notifies the post owner and every admin.
func (f *NotificationFanout) NotifyPostReported(ctx context.Context, post *models.Post, reportID uint) {
	f.create(ctx, post.UserID, models.NotificationPostReported,
		"Your post has been reported and is under review",
		payload{"postId": post.ID, "reportId": reportID, "postTitle": post.Title})

	f.notifyAdmins(ctx, models.NotificationPostReported,
		fmt.Sprintf("New post report: %q", post.Title),
		payload{"postId": post.ID, "reportId": reportID, "postTitle": post.Title, "authorId": post.UserID, "authorName": post.User.FullName})
}

// NotifyCommentReported notifies the comment owner and every admin.
func (f *NotificationFanout) NotifyCommentReported(ctx context.Context, comment *models.Comment, reportID uint) {
	f.create(ctx, comment.UserID, models.NotificationCommentReported,
		"Your comment has been reported and is under review",
		payload{"postId": comment.PostID, "commentId": comment.ID, "reportId": reportID})

	f.notifyAdmins(ctx, models.NotificationCommentReported,
		fmt.Sprintf("New comment report on post %q", comment.Post.Title),
		payload{"postId": comment.PostID, "commentId": comment.ID, "reportId": reportID, "authorId": comment.UserID, "authorName": comment.Author})
}

// NotifyPostStatusChange tells the owner about a moderation decision.
// Unrecognised statuses are ignored.
func (f *NotificationFanout) NotifyPostStatusChange(ctx context.Context, post *models.Post, status models.ContentStatus, reason string) {
	var typ models.NotificationType
	var message string
	switch status {
	case models.ContentStatusArchived:
		typ = models.NotificationPostArchived
		message = fmt.Sprintf("Your post %q has been archived. Reason: %s", post.Title, reason)
	case models.ContentStatusActive:
		typ = models.NotificationPostApproved
		message = fmt.Sprintf("Your post %q has been approved and is now visible", post.Title)
	case models.ContentStatusReported:
		typ = models.NotificationPostReported
		message = fmt.Sprintf("Your post %q has been reported and is under review", post.Title)
	default:
		return
	}
	f.create(ctx, post.UserID, typ, message, payload{"postId": post.ID, "postTitle": post.Title, "reason": reason})
}

// NotifyCommentStatusChange tells the owner about a moderation decision.
// Unrecognised statuses are ignored.
func (f *NotificationFanout) NotifyCommentStatusChange(ctx context.Context, comment *models.Comment, status models.ContentStatus, reason string) {
	var typ models.NotificationType
	var message string
	switch status {
	case models.ContentStatusArchived:
		typ = models.NotificationCommentArchived
		message = fmt.Sprintf("Your comment has been archived. Reason: %s", reason)
	case models.ContentStatusActive:
		typ = models.NotificationCommentApproved
		message = "Your comment has been approved and is now visible"
	case models.ContentStatusReported:
		typ = models.NotificationCommentReported
		message = "Your comment has been reported and is under review"
	default:
		return
	}
	f.create(ctx, comment.UserID, typ, message, payload{"postId": comment.PostID, "commentId": comment.ID, "reason": reason})
}

// NotifyConnectionRequest tells the target about an incoming request.
func (f *NotificationFanout) NotifyConnectionRequest(ctx context.Context, requester *models.User, targetID uint) {
	f.create(ctx, targetID, models.NotificationConnectionRequest,
		fmt.Sprintf("%s wants to connect with you", requester.FullName),
		payload{"requesterId": requester.ID, "requesterName": requester.FullName})
}

// NotifyNewFollower tells the followed user about an accepted connection.
// Pending connections produce nothing.
func (f *NotificationFanout) NotifyNewFollower(ctx context.Context, conn *models.Connection, follower *models.User) {
	if conn.Pending {
		return
	}
	f.create(ctx, conn.FollowingID, models.NotificationNewFollower,
		fmt.Sprintf("%s started following you", follower.FullName),
		payload{"followerId": follower.ID, "followerName": follower.FullName})
}

// NotifySystemAnnouncement sends message to the given users, or to every user
// when userIDs is empty. It returns how many notifications were stored.
func (f *NotificationFanout) NotifySystemAnnouncement(ctx context.Context, message string, userIDs []uint) int {
	var users []models.User
	var err error
	if len(userIDs) > 0 {
		users, err = f.users.GetUsersByIDs(ctx, userIDs)
	} else {
		users, err = f.users.SearchUsers(ctx, "")
	}
	if err != nil {
		f.fail(models.NotificationSystemAnnouncement, 0, err)
		return 0
	}

	sent := 0
	for _, u := range users {
		if f.create(ctx, u.ID, models.NotificationSystemAnnouncement, message, payload{"announcement": true}) {
			sent++
		}
	}
	return sent
}

// NotifyAccountWarning warns a single user.
func (f *NotificationFanout) NotifyAccountWarning(ctx context.Context, userID uint, reason string) bool {
	return f.create(ctx, userID, models.NotificationAccountWarning,
		fmt.Sprintf("Account Warning: %s", reason),
		payload{"warning": true, "reason": reason})
}
