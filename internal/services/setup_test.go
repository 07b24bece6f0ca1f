package services

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/nano-social/backend/internal/auth"
	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/anonto42/nano-social/backend/internal/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingPusher struct {
	pushed []models.Notification
}

func (p *recordingPusher) Push(_ context.Context, n *models.Notification) error {
	p.pushed = append(p.pushed, *n)
	return nil
}

type testEnv struct {
	db            *gorm.DB
	users         *repositories.PostgresUserRepository
	settings      *repositories.PostgresSettingsRepository
	connections   *repositories.PostgresConnectionRepository
	notifications repositories.NotificationRepository
	pusher        *recordingPusher

	fanout      *NotificationFanout
	graph       *ConnectionGraph
	privacy     *PrivacyFilter
	suggestions *SuggestionEngine
	posts       *PostService
	comments    *CommentService
	likes       *LikeService
	reports     *ReportService
	inbox       *NotificationService
	admin       *AdminService
	directory   *UserDirectory
	auth        *AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWith(t, nil)
}

// newTestEnvWith lets a test swap the notification store used by the fanout.
func newTestEnvWith(t *testing.T, wrap func(repositories.NotificationRepository) repositories.NotificationRepository) *testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)

	e := &testEnv{
		db:          db,
		users:       repositories.NewPostgresUserRepository(db),
		settings:    repositories.NewPostgresSettingsRepository(db),
		connections: repositories.NewPostgresConnectionRepository(db),
		pusher:      &recordingPusher{},
	}
	e.notifications = repositories.NewPostgresNotificationRepository(db)
	fanoutStore := e.notifications
	if wrap != nil {
		fanoutStore = wrap(fanoutStore)
	}

	postRepo := repositories.NewPostgresPostRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	reportRepo := repositories.NewPostgresReportRepository(db)

	e.fanout = NewNotificationFanout(fanoutStore, e.users, e.pusher)
	e.graph = NewConnectionGraph(e.connections, e.users, e.fanout)
	e.privacy = NewPrivacyFilter(e.settings, e.connections)
	e.suggestions = NewSuggestionEngine(e.users, e.connections)
	e.posts = NewPostService(postRepo, e.connections, e.privacy)
	e.comments = NewCommentService(commentRepo, e.users, e.posts, e.fanout)
	e.likes = NewLikeService(repositories.NewPostgresLikeRepository(db), e.users, e.posts, e.fanout)
	e.reports = NewReportService(reportRepo, commentRepo, e.posts, e.fanout)
	e.inbox = NewNotificationService(e.notifications)
	e.admin = NewAdminService(e.users, postRepo, commentRepo, reportRepo, repositories.NewPostgresStatsRepository(db), e.fanout)
	e.directory = NewUserDirectory(e.users, e.settings, e.graph, e.privacy, e.posts)
	e.auth = NewAuthService(e.users, e.settings, auth.NewTokenIssuer("test-secret-value-123", time.Hour), nil)
	return e
}

func (e *testEnv) notificationsFor(t *testing.T, userID uint) []models.Notification {
	t.Helper()
	var out []models.Notification
	require.NoError(t, e.db.Where("user_id = ?", userID).Order("id").Find(&out).Error)
	return out
}

func (e *testEnv) notificationTypes(t *testing.T, userID uint) []models.NotificationType {
	t.Helper()
	var types []models.NotificationType
	for _, n := range e.notificationsFor(t, userID) {
		types = append(types, n.Type)
	}
	return types
}

func asUser(id uint) Actor {
	return Actor{ID: id, Role: models.RoleUser}
}

func asAdmin(id uint) Actor {
	return Actor{ID: id, Role: models.RoleAdmin}
}
