package services

import (
	"context"
	"time"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/anonto42/nano-social/backend/pkg/errors"
)

// NotificationService is the recipient's inbox. Every mutation checks that
// the caller owns the notification.
type NotificationService struct {
	notifications repositories.NotificationRepository
	now           func() time.Time
}

func NewNotificationService(notifications repositories.NotificationRepository) *NotificationService {
	return &NotificationService{notifications: notifications, now: time.Now}
}

func (s *NotificationService) List(ctx context.Context, userID uint, page, limit int) ([]models.Notification, int64, error) {
	return s.notifications.GetByUserID(ctx, userID, page, limit)
}

func (s *NotificationService) Unread(ctx context.Context, userID uint, limit int) ([]models.Notification, error) {
	return s.notifications.GetUnread(ctx, userID, limit)
}

func (s *NotificationService) Grouped(ctx context.Context, userID uint) (*repositories.GroupedNotifications, error) {
	return s.notifications.GetGrouped(ctx, userID, s.now())
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.notifications.GetUnreadCount(ctx, userID)
}

func (s *NotificationService) owned(ctx context.Context, userID, id uint) (*models.Notification, error) {
	n, err := s.notifications.GetNotificationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.UserID != userID {
		return nil, errors.Forbidden("notification belongs to another user")
	}
	return n, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id uint) (*models.Notification, error) {
	n, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if !n.Read {
		if err := s.notifications.MarkAsRead(ctx, id); err != nil {
			return nil, err
		}
		n.Read = true
	}
	return n, nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	return s.notifications.MarkAllAsRead(ctx, userID)
}

// Delete is only allowed once the notification has been read.
func (s *NotificationService) Delete(ctx context.Context, userID, id uint) error {
	n, err := s.owned(ctx, userID, id)
	if err != nil {
		return err
	}
	if !n.Read {
		return errors.InvalidState("notification must be read before it can be deleted")
	}
	return s.notifications.DeleteNotification(ctx, id)
}
