package repositories

import (
	"context"
	"time"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/pkg/errors"
	"gorm.io/gorm"
)

// Totals are row counts across the main tables.
type Totals struct {
	Users       int64
	Posts       int64
	Connections int64
	Comments    int64
	Likes       int64
	Reports     int64
}

// StatsRepository serves the admin dashboard.
type StatsRepository interface {
	GetTotals(ctx context.Context) (*Totals, error)
	CountUsersCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
	GetRecentUsers(ctx context.Context, limit int) ([]models.User, error)
	GetRecentPosts(ctx context.Context, limit int) ([]models.Post, error)
}

type PostgresStatsRepository struct {
	db *gorm.DB
}

func NewPostgresStatsRepository(db *gorm.DB) *PostgresStatsRepository {
	return &PostgresStatsRepository{db: db}
}

func (r *PostgresStatsRepository) GetTotals(ctx context.Context) (*Totals, error) {
	db := r.db.WithContext(ctx)
	t := &Totals{}
	counts := []struct {
		model interface{}
		dest  *int64
	}{
		{&models.User{}, &t.Users},
		{&models.Post{}, &t.Posts},
		{&models.Comment{}, &t.Comments},
		{&models.Like{}, &t.Likes},
		{&models.Report{}, &t.Reports},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Count(c.dest).Error; err != nil {
			return nil, errors.Internal(err, "failed to count rows")
		}
	}
	if err := db.Model(&models.Connection{}).Where("pending = ?", false).Count(&t.Connections).Error; err != nil {
		return nil, errors.Internal(err, "failed to count connections")
	}
	return t, nil
}

// CountUsersCreatedBetween counts users created in [from, to).
func (r *PostgresStatsRepository) CountUsersCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error
	if err != nil {
		return 0, errors.Internal(err, "failed to count users")
	}
	return count, nil
}

func (r *PostgresStatsRepository) GetRecentUsers(ctx context.Context, limit int) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&users).Error; err != nil {
		return nil, errors.Internal(err, "failed to get recent users")
	}
	return users, nil
}

func (r *PostgresStatsRepository) GetRecentPosts(ctx context.Context, limit int) ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.WithContext(ctx).Preload("User").Order("created_at DESC").Limit(limit).Find(&posts).Error; err != nil {
		return nil, errors.Internal(err, "failed to get recent posts")
	}
	return posts, nil
}
