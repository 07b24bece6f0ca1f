package repositories

import (
	"context"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostEngagement is the per-viewer engagement summary of a post.
type PostEngagement struct {
	LikesCount    int64
	CommentsCount int64
	IsLiked       bool
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id uint) (*models.Post, error)
	GetPostsByUserID(ctx context.Context, userID uint, includeArchived bool) ([]models.Post, error)
	GetFeed(ctx context.Context, authorIDs []uint, offset, limit int) ([]models.Post, int64, error)
	GetPostsByStatus(ctx context.Context, status models.ContentStatus, offset, limit int) ([]models.Post, int64, error)
	UpdatePost(ctx context.Context, post *models.Post) error
	UpdateStatus(ctx context.Context, id uint, status models.ContentStatus) error
	DeletePost(ctx context.Context, id uint) error
	GetEngagement(ctx context.Context, postIDs []uint, viewerID uint) (map[uint]PostEngagement, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	if post.Status == "" {
		post.Status = models.ContentStatusActive
	}
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error
	return translate(err, "user not found", "post already exists", "failed to create post")
}

// GetPostByID loads the post with its author.
func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("User").First(&post, id).Error; err != nil {
		return nil, translate(err, "post not found", "", "failed to get post")
	}
	return &post, nil
}

func (r *PostgresPostRepository) GetPostsByUserID(ctx context.Context, userID uint, includeArchived bool) ([]models.Post, error) {
	q := r.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID)
	if !includeArchived {
		q = q.Where("status <> ?", models.ContentStatusArchived)
	}
	var posts []models.Post
	if err := q.Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, errors.Internal(err, "failed to get posts")
	}
	return posts, nil
}

// GetFeed pages through non-archived posts by the given authors, newest first.
func (r *PostgresPostRepository) GetFeed(ctx context.Context, authorIDs []uint, offset, limit int) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64
	if len(authorIDs) == 0 {
		return posts, 0, nil
	}

	base := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("user_id IN ? AND status <> ?", authorIDs, models.ContentStatusArchived)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, errors.Internal(err, "failed to count feed")
	}
	err := r.db.WithContext(ctx).Preload("User").
		Where("user_id IN ? AND status <> ?", authorIDs, models.ContentStatusArchived).
		Order("created_at DESC").Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, errors.Internal(err, "failed to get feed")
	}
	return posts, total, nil
}

func (r *PostgresPostRepository) GetPostsByStatus(ctx context.Context, status models.ContentStatus, offset, limit int) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Where("status = ?", status).Count(&total).Error; err != nil {
		return nil, 0, errors.Internal(err, "failed to count posts")
	}
	err := r.db.WithContext(ctx).Preload("User").Where("status = ?", status).
		Order("updated_at DESC").Offset(offset).Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, errors.Internal(err, "failed to get posts")
	}
	return posts, total, nil
}

func (r *PostgresPostRepository) UpdatePost(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(post).Error
	return translate(err, "post not found", "", "failed to update post")
}

func (r *PostgresPostRepository) UpdateStatus(ctx context.Context, id uint, status models.ContentStatus) error {
	res := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return errors.Internal(res.Error, "failed to update post status")
	}
	if res.RowsAffected == 0 {
		return errors.NotFound("post not found")
	}
	return nil
}

func (r *PostgresPostRepository) DeletePost(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if res.Error != nil {
		return errors.Internal(res.Error, "failed to delete post")
	}
	if res.RowsAffected == 0 {
		return errors.NotFound("post not found")
	}
	return nil
}

// GetEngagement counts likes and non-archived comments for each post and
// flags the posts viewerID has liked.
func (r *PostgresPostRepository) GetEngagement(ctx context.Context, postIDs []uint, viewerID uint) (map[uint]PostEngagement, error) {
	out := make(map[uint]PostEngagement, len(postIDs))
	if len(postIDs) == 0 {
		return out, nil
	}
	db := r.db.WithContext(ctx)

	var likes, comments []idCount
	if err := db.Model(&models.Like{}).
		Select("post_id AS id, COUNT(*) AS count").
		Where("post_id IN ?", postIDs).
		Group("post_id").Scan(&likes).Error; err != nil {
		return nil, errors.Internal(err, "failed to count likes")
	}
	if err := db.Model(&models.Comment{}).
		Select("post_id AS id, COUNT(*) AS count").
		Where("post_id IN ? AND status <> ?", postIDs, models.ContentStatusArchived).
		Group("post_id").Scan(&comments).Error; err != nil {
		return nil, errors.Internal(err, "failed to count comments")
	}

	var liked []uint
	if viewerID != 0 {
		if err := db.Model(&models.Like{}).
			Where("post_id IN ? AND user_id = ?", postIDs, viewerID).
			Pluck("post_id", &liked).Error; err != nil {
			return nil, errors.Internal(err, "failed to get likes")
		}
	}

	likeCounts := countsByID(likes)
	commentCounts := countsByID(comments)
	likedSet := make(map[uint]bool, len(liked))
	for _, id := range liked {
		likedSet[id] = true
	}
	for _, id := range postIDs {
		out[id] = PostEngagement{
			LikesCount:    likeCounts[id],
			CommentsCount: commentCounts[id],
			IsLiked:       likedSet[id],
		}
	}
	return out, nil
}
