package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/router"
	"github.com/anonto42/nano-social/backend/internal/testutil"
	"github.com/anonto42/nano-social/backend/pkg/config"
	"github.com/anonto42/nano-social/backend/pkg/errors"
)

func testServices(t *testing.T) (*router.Services, *bytes.Buffer) {
	t.Helper()
	db := testutil.NewTestDB(t)
	testutil.CreateUser(t, db, 1, "alice")
	testutil.CreateUser(t, db, 2, "bob")
	cfg := &config.Config{JWTSecret: "cli-test-secret", TokenTTLHours: 1}
	return router.NewServices(db, cfg, nil), &bytes.Buffer{}
}

func TestRunAnnounce(t *testing.T) {
	svc, out := testServices(t)
	ctx := context.Background()

	require.NoError(t, runAnnounce(ctx, svc, "maintenance tonight", nil, out))
	assert.Contains(t, out.String(), "delivered to 2 users")

	out.Reset()
	require.NoError(t, runAnnounce(ctx, svc, "just bob", []uint{2}, out))
	assert.Contains(t, out.String(), "delivered to 1 users")

	count, err := svc.Notifications.UnreadCount(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	assert.Error(t, runAnnounce(ctx, svc, "", nil, out))
}

func TestRunWarn(t *testing.T) {
	svc, out := testServices(t)
	ctx := context.Background()

	require.NoError(t, runWarn(ctx, svc, 1, "spam", out))
	assert.Contains(t, out.String(), "warning sent to user 1")

	err := runWarn(ctx, svc, 42, "spam", out)
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
}

func TestRunRole(t *testing.T) {
	svc, out := testServices(t)
	ctx := context.Background()

	require.NoError(t, runRole(ctx, svc, 1, models.RoleAdmin, out))
	assert.Contains(t, out.String(), "user alice is now ADMIN")

	err := runRole(ctx, svc, 1, models.Role("OWNER"), out)
	assert.True(t, errors.Is(err, errors.ErrCodeValidation))
}

func TestRunMigrate(t *testing.T) {
	db := testutil.NewTestDB(t)
	out := &bytes.Buffer{}
	require.NoError(t, runMigrate(db, out))
	assert.Equal(t, "migration complete\n", out.String())
}
