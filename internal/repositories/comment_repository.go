package repositories

import (
	"context"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id uint) (*models.Comment, error)
	GetCommentsByPostID(ctx context.Context, postID uint) ([]models.Comment, error)
	GetCommentsByStatus(ctx context.Context, status models.ContentStatus, offset, limit int) ([]models.Comment, int64, error)
	UpdateComment(ctx context.Context, comment *models.Comment) error
	UpdateStatus(ctx context.Context, id uint, status models.ContentStatus) error
	DeleteComment(ctx context.Context, id uint) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

func (r *PostgresCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	if comment.Status == "" {
		comment.Status = models.ContentStatusActive
	}
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error
	return translate(err, "post not found", "comment already exists", "failed to create comment")
}

// GetCommentByID loads the comment with its post.
func (r *PostgresCommentRepository) GetCommentByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("Post").First(&comment, id).Error; err != nil {
		return nil, translate(err, "comment not found", "", "failed to get comment")
	}
	return &comment, nil
}

// GetCommentsByPostID returns the non-archived comments of a post, newest first.
func (r *PostgresCommentRepository) GetCommentsByPostID(ctx context.Context, postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND status <> ?", postID, models.ContentStatusArchived).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, errors.Internal(err, "failed to get comments")
	}
	return comments, nil
}

func (r *PostgresCommentRepository) GetCommentsByStatus(ctx context.Context, status models.ContentStatus, offset, limit int) ([]models.Comment, int64, error) {
	var comments []models.Comment
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Comment{}).Where("status = ?", status).Count(&total).Error; err != nil {
		return nil, 0, errors.Internal(err, "failed to count comments")
	}
	err := r.db.WithContext(ctx).Where("status = ?", status).
		Order("updated_at DESC").Offset(offset).Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, 0, errors.Internal(err, "failed to get comments")
	}
	return comments, total, nil
}

func (r *PostgresCommentRepository) UpdateComment(ctx context.Context, comment *models.Comment) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(comment).Error
	return translate(err, "comment not found", "", "failed to update comment")
}

func (r *PostgresCommentRepository) UpdateStatus(ctx context.Context, id uint, status models.ContentStatus) error {
	res := r.db.WithContext(ctx).Model(&models.Comment{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return errors.Internal(res.Error, "failed to update comment status")
	}
	if res.RowsAffected == 0 {
		return errors.NotFound("comment not found")
	}
	return nil
}

func (r *PostgresCommentRepository) DeleteComment(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if res.Error != nil {
		return errors.Internal(res.Error, "failed to delete comment")
	}
	if res.RowsAffected == 0 {
		return errors.NotFound("comment not found")
	}
	return nil
}
