package repositories

import (
	"context"
	"testing"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/testutil"
	"github.com/anonto42/nano-social/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateDuplicate(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostgresUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateUser(ctx, &models.User{Username: "alice", Email: "alice@example.com"}))
	err := repo.CreateUser(ctx, &models.User{Username: "alice", Email: "other@example.com"})
	assert.True(t, errors.Is(err, errors.ErrCodeConflict))
}

func TestUserRepository_Lookups(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostgresUserRepository(db)
	ctx := context.Background()

	testutil.CreateUser(t, db, 1, "alice")
	testutil.CreateAdmin(t, db, 2, "root")

	u, err := repo.GetUserByLogin(ctx, "ALICE@example.com")
	require.NoError(t, err)
	assert.Equal(t, uint(1), u.ID)

	u, err = repo.GetUserByLogin(ctx, "root")
	require.NoError(t, err)
	assert.True(t, u.IsAdmin())

	_, err = repo.GetUserByID(ctx, 99)
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))

	admins, err := repo.GetAdmins(ctx)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "root", admins[0].Username)

	users, err := repo.GetUsersByUsernames(ctx, []string{"alice", "ghost"})
	require.NoError(t, err)
	require.Len(t, users, 1)

	found, err := repo.SearchUsers(ctx, "ali")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "alice", found[0].Username)

	require.NoError(t, repo.UpdateRole(ctx, 1, models.RoleAdmin))
	assert.True(t, errors.Is(repo.UpdateRole(ctx, 99, models.RoleAdmin), errors.ErrCodeNotFound))
}

func TestUserRepository_GetCounts(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostgresUserRepository(db)
	ctx := context.Background()

	testutil.CreateUser(t, db, 1, "alice")
	testutil.CreateUser(t, db, 2, "bob")
	testutil.CreateUser(t, db, 3, "carol")
	testutil.Connect(t, db, 1, 2, false)
	testutil.Connect(t, db, 3, 1, false)
	testutil.Connect(t, db, 2, 3, true)
	testutil.CreatePost(t, db, 10, 1, "hello")
	archived := testutil.CreatePost(t, db, 11, 1, "old")
	require.NoError(t, db.Model(archived).Update("status", models.ContentStatusArchived).Error)

	counts, err := repo.GetCounts(ctx, []uint{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, models.UserCounts{ConnectionCount: 2, PostsCount: 1}, counts[1])
	assert.Equal(t, models.UserCounts{ConnectionCount: 1}, counts[2])
	assert.Equal(t, models.UserCounts{ConnectionCount: 1}, counts[3])
}
