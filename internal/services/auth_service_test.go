package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	firebaseauth "firebase.google.com/go/v4/auth"

	"github.com/anonto42/nano-social/backend/internal/auth"
	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVerifier map[string]*firebaseauth.Token

func (f fakeVerifier) VerifyIDToken(_ context.Context, idToken string) (*firebaseauth.Token, error) {
	if tok, ok := f[idToken]; ok {
		return tok, nil
	}
	return nil, fmt.Errorf("token rejected")
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	resp, err := e.auth.Register(ctx, models.RegisterRequest{
		Username: "alice", FullName: "Alice", Email: "Alice@Example.com", Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "alice@example.com", resp.User.Email)

	settings, err := e.settings.GetSettings(ctx, resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PrivacyPublic, settings.PostsPrivacy)

	_, err = e.auth.Register(ctx, models.RegisterRequest{
		Username: "alice", FullName: "Alice", Email: "other@example.com", Password: "password123",
	})
	assert.True(t, errors.Is(err, errors.ErrCodeConflict))

	for _, login := range []string{"alice", "alice@example.com"} {
		resp, err = e.auth.Login(ctx, models.LoginRequest{Login: login, Password: "password123"})
		require.NoError(t, err)
		assert.Equal(t, "alice", resp.User.Username)
	}

	_, err = e.auth.Login(ctx, models.LoginRequest{Login: "alice", Password: "wrong"})
	assert.True(t, errors.Is(err, errors.ErrCodeUnauthorized))
	_, err = e.auth.Login(ctx, models.LoginRequest{Login: "nobody", Password: "password123"})
	assert.True(t, errors.Is(err, errors.ErrCodeUnauthorized))
}

func TestAuthService_FirebaseLogin(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	_, err := e.auth.FirebaseLogin(ctx, "anything")
	assert.True(t, errors.Is(err, errors.ErrCodeUnauthorized))

	verifier := fakeVerifier{
		"good": {UID: "uid-ABC123xyz", Claims: map[string]interface{}{"email": "fb.user@example.com", "name": "FB User"}},
	}
	svc := NewAuthService(e.users, e.settings, auth.NewTokenIssuer("test-secret-value-123", time.Hour), verifier)

	resp, err := svc.FirebaseLogin(ctx, "good")
	require.NoError(t, err)
	assert.Equal(t, "fbuseruidabc", resp.User.Username)
	assert.Equal(t, "FB User", resp.User.FullName)

	again, err := svc.FirebaseLogin(ctx, "good")
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, again.User.ID)

	_, err = svc.FirebaseLogin(ctx, "bad")
	assert.True(t, errors.Is(err, errors.ErrCodeUnauthorized))
}

func TestAuthService_FirebaseLinksExistingEmail(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	local, err := e.auth.Register(ctx, models.RegisterRequest{
		Username: "alice", FullName: "Alice", Email: "alice@example.com", Password: "password123",
	})
	require.NoError(t, err)

	verifier := fakeVerifier{
		"tok": {UID: "fb-alice", Claims: map[string]interface{}{"email": "alice@example.com"}},
	}
	svc := NewAuthService(e.users, e.settings, auth.NewTokenIssuer("test-secret-value-123", time.Hour), verifier)

	resp, err := svc.FirebaseLogin(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, local.User.ID, resp.User.ID)
	require.NotNil(t, resp.User.FirebaseUID)
	assert.Equal(t, "fb-alice", *resp.User.FirebaseUID)
}
