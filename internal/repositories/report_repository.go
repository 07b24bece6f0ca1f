package repositories

import (
	"context"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReportRepository interface {
	CreateReport(ctx context.Context, report *models.Report) error
	HasReportedPost(ctx context.Context, userID, postID uint) (bool, error)
	HasReportedComment(ctx context.Context, userID, commentID uint) (bool, error)
	GetReports(ctx context.Context, offset, limit int) ([]models.Report, int64, error)
}

type PostgresReportRepository struct {
	db *gorm.DB
}

func NewPostgresReportRepository(db *gorm.DB) *PostgresReportRepository {
	return &PostgresReportRepository{db: db}
}

func (r *PostgresReportRepository) CreateReport(ctx context.Context, report *models.Report) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(report).Error
	return translate(err, "target not found", "already reported", "failed to create report")
}

func (r *PostgresReportRepository) HasReportedPost(ctx context.Context, userID, postID uint) (bool, error) {
	return r.exists(ctx, "user_id = ? AND post_id = ? AND comment_id IS NULL", userID, postID)
}

func (r *PostgresReportRepository) HasReportedComment(ctx context.Context, userID, commentID uint) (bool, error) {
	return r.exists(ctx, "user_id = ? AND comment_id = ?", userID, commentID)
}

func (r *PostgresReportRepository) exists(ctx context.Context, query string, args ...interface{}) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Report{}).Where(query, args...).Count(&count).Error; err != nil {
		return false, errors.Internal(err, "failed to check report")
	}
	return count > 0, nil
}

func (r *PostgresReportRepository) GetReports(ctx context.Context, offset, limit int) ([]models.Report, int64, error) {
	var reports []models.Report
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Report{}).Count(&total).Error; err != nil {
		return nil, 0, errors.Internal(err, "failed to count reports")
	}
	err := r.db.WithContext(ctx).Order("created_at DESC").Offset(offset).Limit(limit).Find(&reports).Error
	if err != nil {
		return nil, 0, errors.Internal(err, "failed to get reports")
	}
	return reports, total, nil
}
