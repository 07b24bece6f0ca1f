package repositories

import (
	"context"
	"time"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GroupedNotifications buckets a user's notifications by age.
type GroupedNotifications struct {
	Today     []models.Notification `json:"today"`
	Yesterday []models.Notification `json:"yesterday"`
	ThisWeek  []models.Notification `json:"thisWeek"`
	Older     []models.Notification `json:"older"`
}

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	GetNotificationByID(ctx context.Context, id uint) (*models.Notification, error)
	GetByUserID(ctx context.Context, userID uint, page, limit int) ([]models.Notification, int64, error)
	GetUnread(ctx context.Context, userID uint, limit int) ([]models.Notification, error)
	GetGrouped(ctx context.Context, userID uint, now time.Time) (*GroupedNotifications, error)
	GetUnreadCount(ctx context.Context, userID uint) (int64, error)
	MarkAsRead(ctx context.Context, id uint) error
	MarkAllAsRead(ctx context.Context, userID uint) (int64, error)
	DeleteNotification(ctx context.Context, id uint) error
}

type PostgresNotificationRepository struct {
	db *gorm.DB
}

func NewPostgresNotificationRepository(db *gorm.DB) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

func (r *PostgresNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(notification).Error
	return translate(err, "user not found", "notification already exists", "failed to create notification")
}

func (r *PostgresNotificationRepository) GetNotificationByID(ctx context.Context, id uint) (*models.Notification, error) {
	var n models.Notification
	if err := r.db.WithContext(ctx).First(&n, id).Error; err != nil {
		return nil, translate(err, "notification not found", "", "failed to get notification")
	}
	return &n, nil
}

// GetByUserID pages through a user's notifications, newest first. page is
// 1-based.
func (r *PostgresNotificationRepository) GetByUserID(ctx context.Context, userID uint, page, limit int) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Notification{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, errors.Internal(err, "failed to count notifications")
	}

	offset := (page - 1) * limit
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, errors.Internal(err, "failed to get notifications")
	}
	return notifications, total, nil
}

func (r *PostgresNotificationRepository) GetUnread(ctx context.Context, userID uint, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	q := r.db.WithContext(ctx).Where("user_id = ? AND read = ?", userID, false).
		Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&notifications).Error; err != nil {
		return nil, errors.Internal(err, "failed to get unread notifications")
	}
	return notifications, nil
}

func (r *PostgresNotificationRepository) GetGrouped(ctx context.Context, userID uint, now time.Time) (*GroupedNotifications, error) {
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	yesterdayStart := todayStart.AddDate(0, 0, -1)
	weekStart := todayStart.AddDate(0, 0, -7)

	db := r.db.WithContext(ctx)
	g := &GroupedNotifications{}

	// Today
	if err := db.Where("user_id = ? AND created_at >= ?", userID, todayStart).
		Order("created_at DESC").Find(&g.Today).Error; err != nil {
		return nil, errors.Internal(err, "failed to get notifications")
	}

	// Yesterday
	if err := db.Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, yesterdayStart, todayStart).
		Order("created_at DESC").Find(&g.Yesterday).Error; err != nil {
		return nil, errors.Internal(err, "failed to get notifications")
	}

	// This week (excluding today and yesterday)
	if err := db.Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, weekStart, yesterdayStart).
		Order("created_at DESC").Find(&g.ThisWeek).Error; err != nil {
		return nil, errors.Internal(err, "failed to get notifications")
	}

	// Older
	if err := db.Where("user_id = ? AND created_at < ?", userID, weekStart).
		Order("created_at DESC").Limit(50).Find(&g.Older).Error; err != nil {
		return nil, errors.Internal(err, "failed to get notifications")
	}

	return g, nil
}

func (r *PostgresNotificationRepository) GetUnreadCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, errors.Internal(err, "failed to count unread notifications")
	}
	return count, nil
}

// MarkAsRead is idempotent.
func (r *PostgresNotificationRepository) MarkAsRead(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Model(&models.Notification{}).Where("id = ?", id).Update("read", true).Error
	if err != nil {
		return errors.Internal(err, "failed to mark notification as read")
	}
	return nil
}

// MarkAllAsRead returns the number of notifications that flipped to read.
func (r *PostgresNotificationRepository) MarkAllAsRead(ctx context.Context, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true)
	if res.Error != nil {
		return 0, errors.Internal(res.Error, "failed to mark notifications as read")
	}
	return res.RowsAffected, nil
}

func (r *PostgresNotificationRepository) DeleteNotification(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Notification{}, id)
	if res.Error != nil {
		return errors.Internal(res.Error, "failed to delete notification")
	}
	if res.RowsAffected == 0 {
		return errors.NotFound("notification not found")
	}
	return nil
}
