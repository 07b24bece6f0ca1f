package repositories

import (
	"context"
	"strings"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// eitherOrdering matches the row for an unordered pair: (a,b) or (b,a).
const eitherOrdering = "((follower_id = ? AND following_id = ?) OR (follower_id = ? AND following_id = ?))"

// ConnectionRepository owns every query over the connection edge set. Pair
// lookups always check both orderings.
type ConnectionRepository interface {
	CreateConnection(ctx context.Context, conn *models.Connection) error
	FindBetween(ctx context.Context, userID, otherID uint) (*models.Connection, error)
	AcceptConnection(ctx context.Context, followerID, followingID uint) (*models.Connection, error)
	DeleteBetween(ctx context.Context, userID, otherID uint) error
	AreConnected(ctx context.Context, userID, otherID uint) (bool, error)
	GetAcceptedConnections(ctx context.Context, userID uint, search string, limit int) ([]models.Connection, error)
	GetIncomingRequests(ctx context.Context, userID uint) ([]models.Connection, error)
	GetConnectedUserIDs(ctx context.Context, userID uint) ([]uint, error)
	GetRelatedUserIDs(ctx context.Context, userID uint) ([]uint, error)
}

type PostgresConnectionRepository struct {
	db *gorm.DB
}

func NewPostgresConnectionRepository(db *gorm.DB) *PostgresConnectionRepository {
	return &PostgresConnectionRepository{db: db}
}

func (r *PostgresConnectionRepository) CreateConnection(ctx context.Context, conn *models.Connection) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(conn).Error
	return translate(err, "user not found", "a connection already exists between these users", "failed to create connection")
}

func (r *PostgresConnectionRepository) FindBetween(ctx context.Context, userID, otherID uint) (*models.Connection, error) {
	var conn models.Connection
	err := r.db.WithContext(ctx).
		Where(eitherOrdering, userID, otherID, otherID, userID).
		First(&conn).Error
	if err != nil {
		return nil, translate(err, "connection not found", "", "failed to get connection")
	}
	return &conn, nil
}

func (r *PostgresConnectionRepository) AcceptConnection(ctx context.Context, followerID, followingID uint) (*models.Connection, error) {
	res := r.db.WithContext(ctx).Model(&models.Connection{}).
		Where("follower_id = ? AND following_id = ? AND pending = ?", followerID, followingID, true).
		Update("pending", false)
	if res.Error != nil {
		return nil, errors.Internal(res.Error, "failed to accept connection")
	}
	if res.RowsAffected == 0 {
		return nil, errors.NotFound("connection request not found")
	}
	return r.FindBetween(ctx, followerID, followingID)
}

func (r *PostgresConnectionRepository) DeleteBetween(ctx context.Context, userID, otherID uint) error {
	res := r.db.WithContext(ctx).
		Where(eitherOrdering, userID, otherID, otherID, userID).
		Delete(&models.Connection{})
	if res.Error != nil {
		return errors.Internal(res.Error, "failed to remove connection")
	}
	if res.RowsAffected == 0 {
		return errors.NotFound("connection not found")
	}
	return nil
}

func (r *PostgresConnectionRepository) AreConnected(ctx context.Context, userID, otherID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Connection{}).
		Where(eitherOrdering+" AND pending = ?", userID, otherID, otherID, userID, false).
		Count(&count).Error
	if err != nil {
		return false, errors.Internal(err, "failed to check connection")
	}
	return count > 0, nil
}

// GetAcceptedConnections returns accepted rows touching userID with both
// parties preloaded. search filters the other party's full name or username.
func (r *PostgresConnectionRepository) GetAcceptedConnections(ctx context.Context, userID uint, search string, limit int) ([]models.Connection, error) {
	q := r.db.WithContext(ctx).
		Preload("Follower").Preload("Following").
		Where("pending = ? AND (follower_id = ? OR following_id = ?)", false, userID, userID)

	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		matching := r.db.Model(&models.User{}).Select("id").
			Where("LOWER(full_name) LIKE ? OR LOWER(username) LIKE ?", like, like)
		q = q.Where("((follower_id = ? AND following_id IN (?)) OR (following_id = ? AND follower_id IN (?)))",
			userID, matching, userID, matching)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var conns []models.Connection
	if err := q.Order("updated_at DESC").Find(&conns).Error; err != nil {
		return nil, errors.Internal(err, "failed to get connections")
	}
	return conns, nil
}

// GetIncomingRequests returns pending rows where userID is the following side.
func (r *PostgresConnectionRepository) GetIncomingRequests(ctx context.Context, userID uint) ([]models.Connection, error) {
	var conns []models.Connection
	err := r.db.WithContext(ctx).Preload("Follower").
		Where("following_id = ? AND pending = ?", userID, true).
		Order("created_at DESC").
		Find(&conns).Error
	if err != nil {
		return nil, errors.Internal(err, "failed to get connection requests")
	}
	return conns, nil
}

// GetConnectedUserIDs returns the other party of every accepted row.
func (r *PostgresConnectionRepository) GetConnectedUserIDs(ctx context.Context, userID uint) ([]uint, error) {
	return r.otherParties(ctx, userID, "pending = ?", false)
}

// GetRelatedUserIDs returns the other party of every row touching userID,
// pending or accepted.
func (r *PostgresConnectionRepository) GetRelatedUserIDs(ctx context.Context, userID uint) ([]uint, error) {
	return r.otherParties(ctx, userID, "1 = 1")
}

func (r *PostgresConnectionRepository) otherParties(ctx context.Context, userID uint, cond string, args ...interface{}) ([]uint, error) {
	db := r.db.WithContext(ctx)

	var following, followers []uint
	if err := db.Model(&models.Connection{}).Where("follower_id = ?", userID).Where(cond, args...).
		Pluck("following_id", &following).Error; err != nil {
		return nil, errors.Internal(err, "failed to get related users")
	}
	if err := db.Model(&models.Connection{}).Where("following_id = ?", userID).Where(cond, args...).
		Pluck("follower_id", &followers).Error; err != nil {
		return nil, errors.Internal(err, "failed to get related users")
	}

	seen := make(map[uint]bool, len(following)+len(followers))
	ids := make([]uint, 0, len(following)+len(followers))
	for _, id := range append(following, followers...) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, nil
}
