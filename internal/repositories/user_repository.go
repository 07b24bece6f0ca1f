package repositories

import (
	"context"
	"strings"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []uint) ([]models.User, error)
	GetUsersByUsernames(ctx context.Context, usernames []string) ([]models.User, error)
	GetAdmins(ctx context.Context) ([]models.User, error)
	SearchUsers(ctx context.Context, query string) ([]models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	UpdateRole(ctx context.Context, id uint, role models.Role) error
	GetCounts(ctx context.Context, ids []uint) (map[uint]models.UserCounts, error)
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error
	return translate(err, "user not found", "username or email already exists", "failed to create user")
}

func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err, "user not found", "", "failed to get user")
	}
	return &user, nil
}

func (r *PostgresUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *PostgresUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.first(ctx, "LOWER(email) = ?", strings.ToLower(email))
}

func (r *PostgresUserRepository) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	return r.first(ctx, "username = ? OR LOWER(email) = ?", login, strings.ToLower(login))
}

func (r *PostgresUserRepository) GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error) {
	return r.first(ctx, "firebase_uid = ?", firebaseUID)
}

func (r *PostgresUserRepository) first(ctx context.Context, query string, args ...interface{}) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where(query, args...).First(&user).Error; err != nil {
		return nil, translate(err, "user not found", "", "failed to get user")
	}
	return &user, nil
}

func (r *PostgresUserRepository) GetUsersByIDs(ctx context.Context, ids []uint) ([]models.User, error) {
	var users []models.User
	if len(ids) == 0 {
		return users, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&users).Error; err != nil {
		return nil, errors.Internal(err, "failed to get users")
	}
	return users, nil
}

func (r *PostgresUserRepository) GetUsersByUsernames(ctx context.Context, usernames []string) ([]models.User, error) {
	var users []models.User
	if len(usernames) == 0 {
		return users, nil
	}
	if err := r.db.WithContext(ctx).Where("username IN ?", usernames).Order("id").Find(&users).Error; err != nil {
		return nil, errors.Internal(err, "failed to get users")
	}
	return users, nil
}

func (r *PostgresUserRepository) GetAdmins(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Where("role = ?", models.RoleAdmin).Order("id").Find(&users).Error; err != nil {
		return nil, errors.Internal(err, "failed to get admins")
	}
	return users, nil
}

// SearchUsers matches full name or username case-insensitively. An empty
// query returns every user.
func (r *PostgresUserRepository) SearchUsers(ctx context.Context, query string) ([]models.User, error) {
	var users []models.User
	q := r.db.WithContext(ctx).Order("id")
	if query != "" {
		like := "%" + strings.ToLower(query) + "%"
		q = q.Where("LOWER(full_name) LIKE ? OR LOWER(username) LIKE ?", like, like)
	}
	if err := q.Find(&users).Error; err != nil {
		return nil, errors.Internal(err, "failed to search users")
	}
	return users, nil
}

func (r *PostgresUserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(user).Error
	return translate(err, "user not found", "username or email already exists", "failed to update user")
}

func (r *PostgresUserRepository) UpdateRole(ctx context.Context, id uint, role models.Role) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("role", role)
	if res.Error != nil {
		return errors.Internal(res.Error, "failed to update role")
	}
	if res.RowsAffected == 0 {
		return errors.NotFound("user not found")
	}
	return nil
}

// GetCounts returns accepted connection counts (both directions) and
// non-archived post counts for each id.
func (r *PostgresUserRepository) GetCounts(ctx context.Context, ids []uint) (map[uint]models.UserCounts, error) {
	out := make(map[uint]models.UserCounts, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	db := r.db.WithContext(ctx)

	var asFollower, asFollowing, posts []idCount
	if err := db.Model(&models.Connection{}).
		Select("follower_id AS id, COUNT(*) AS count").
		Where("pending = ? AND follower_id IN ?", false, ids).
		Group("follower_id").Scan(&asFollower).Error; err != nil {
		return nil, errors.Internal(err, "failed to count connections")
	}
	if err := db.Model(&models.Connection{}).
		Select("following_id AS id, COUNT(*) AS count").
		Where("pending = ? AND following_id IN ?", false, ids).
		Group("following_id").Scan(&asFollowing).Error; err != nil {
		return nil, errors.Internal(err, "failed to count connections")
	}
	if err := db.Model(&models.Post{}).
		Select("user_id AS id, COUNT(*) AS count").
		Where("status <> ? AND user_id IN ?", models.ContentStatusArchived, ids).
		Group("user_id").Scan(&posts).Error; err != nil {
		return nil, errors.Internal(err, "failed to count posts")
	}

	connections := countsByID(append(asFollower, asFollowing...))
	postCounts := countsByID(posts)
	for _, id := range ids {
		out[id] = models.UserCounts{
			ConnectionCount: connections[id],
			PostsCount:      postCounts[id],
		}
	}
	return out, nil
}
