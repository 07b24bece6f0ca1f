// Package testutil provides an in-memory store and fixtures for tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/pkg/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewTestDB opens a private in-memory SQLite database with every model migrated.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps the shared in-memory database alive and
	// serialises writes.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, config.Migrate(db))
	return db
}

// CreateUser inserts a user with the given id and username.
func CreateUser(t *testing.T, db *gorm.DB, id uint, username string) *models.User {
	t.Helper()
	return createUser(t, db, id, username, models.RoleUser)
}

// CreateAdmin inserts a user with the ADMIN role.
func CreateAdmin(t *testing.T, db *gorm.DB, id uint, username string) *models.User {
	t.Helper()
	return createUser(t, db, id, username, models.RoleAdmin)
}

func createUser(t *testing.T, db *gorm.DB, id uint, username string, role models.Role) *models.User {
	user := &models.User{
		ID:       id,
		Username: username,
		FullName: username + " Fullname",
		Email:    username + "@example.com",
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreatePost inserts an active post owned by userID.
func CreatePost(t *testing.T, db *gorm.DB, id, userID uint, title string) *models.Post {
	t.Helper()
	post := &models.Post{
		ID:      id,
		UserID:  userID,
		Title:   title,
		Content: title + " content",
		Status:  models.ContentStatusActive,
	}
	require.NoError(t, db.Omit("User").Create(post).Error)
	return post
}

// Connect inserts a connection row directly, bypassing the service rules.
func Connect(t *testing.T, db *gorm.DB, followerID, followingID uint, pending bool) *models.Connection {
	t.Helper()
	conn := &models.Connection{FollowerID: followerID, FollowingID: followingID, Pending: pending}
	require.NoError(t, db.Omit("Follower", "Following").Create(conn).Error)
	return conn
}

// SetPrivacy stores a settings row with the given privacy for every content class
// unless overridden by the non-empty arguments.
func SetPrivacy(t *testing.T, db *gorm.DB, userID uint, details, connections, posts models.Privacy) *models.Settings {
	t.Helper()
	settings := models.DefaultSettings(userID)
	if details != "" {
		settings.DetailsPrivacy = details
	}
	if connections != "" {
		settings.ConnectionsPrivacy = connections
	}
	if posts != "" {
		settings.PostsPrivacy = posts
	}
	require.NoError(t, db.Create(settings).Error)
	return settings
}
