package router

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/anonto42/nano-social/backend/internal/auth"
	"github.com/anonto42/nano-social/backend/internal/handlers"
	"github.com/anonto42/nano-social/backend/internal/middleware"
	"github.com/anonto42/nano-social/backend/internal/push"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/anonto42/nano-social/backend/pkg/config"
	"github.com/anonto42/nano-social/backend/pkg/firebase"
	"github.com/anonto42/nano-social/backend/pkg/logger"
)

// Services is the fully wired service layer shared by the HTTP API and the
// admin CLI.
type Services struct {
	Auth          *services.AuthService
	Directory     *services.UserDirectory
	Graph         *services.ConnectionGraph
	Suggestions   *services.SuggestionEngine
	Posts         *services.PostService
	Comments      *services.CommentService
	Likes         *services.LikeService
	Reports       *services.ReportService
	Notifications *services.NotificationService
	Admin         *services.AdminService
}

// NewServices builds repositories and services over pgdb. fb may be nil, in
// which case push delivery and Firebase login are disabled.
func NewServices(pgdb *gorm.DB, cfg *config.Config, fb *firebase.App) *Services {
	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	settingsRepo := repositories.NewPostgresSettingsRepository(pgdb)
	connectionRepo := repositories.NewPostgresConnectionRepository(pgdb)
	postRepo := repositories.NewPostgresPostRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	likeRepo := repositories.NewPostgresLikeRepository(pgdb)
	reportRepo := repositories.NewPostgresReportRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)
	statsRepo := repositories.NewPostgresStatsRepository(pgdb)

	var pusher push.Pusher = push.NoopPusher{}
	var verifier services.IDTokenVerifier
	if fb != nil {
		pusher = push.NewFCMPusher(fb.MessagingClient)
		verifier = fb.AuthClient
	}

	fanout := services.NewNotificationFanout(notificationRepo, userRepo, pusher)
	graph := services.NewConnectionGraph(connectionRepo, userRepo, fanout)
	privacy := services.NewPrivacyFilter(settingsRepo, connectionRepo)
	posts := services.NewPostService(postRepo, connectionRepo, privacy)

	return &Services{
		Auth:          services.NewAuthService(userRepo, settingsRepo, auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL()), verifier),
		Directory:     services.NewUserDirectory(userRepo, settingsRepo, graph, privacy, posts),
		Graph:         graph,
		Suggestions:   services.NewSuggestionEngine(userRepo, connectionRepo),
		Posts:         posts,
		Comments:      services.NewCommentService(commentRepo, userRepo, posts, fanout),
		Likes:         services.NewLikeService(likeRepo, userRepo, posts, fanout),
		Reports:       services.NewReportService(reportRepo, commentRepo, posts, fanout),
		Notifications: services.NewNotificationService(notificationRepo),
		Admin:         services.NewAdminService(userRepo, postRepo, commentRepo, reportRepo, statsRepo, fanout),
	}
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, cfg *config.Config, fb *firebase.App) {
	svc := NewServices(pgdb, cfg, fb)

	// Health check - always accessible
	health := handlers.NewHealthHandler(pgdb)
	e.GET("/health", health.HealthCheck)

	// --- Unprotected routes for authentication ---
	api := e.Group("/api/v1")
	api.GET("/health", health.HealthCheck)
	handlers.NewAuthHandler(svc.Auth).RegisterAuthRoutes(api.Group("/auth"))

	// --- Protected routes ---
	var authMiddleware echo.MiddlewareFunc
	if cfg.AuthProvider == config.AuthProviderFirebase && fb != nil {
		authMiddleware = middleware.FirebaseAuthMiddleware(fb.AuthClient, svc.Auth.UserForFirebaseToken)
	} else {
		authMiddleware = middleware.JWTAuthMiddleware(auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL()))
	}
	protected := api.Group("", authMiddleware)
	logger.Info("Authentication middleware applied", "provider", cfg.AuthProvider)

	handlers.NewUserHandler(svc.Directory).RegisterProfileRoutes(protected)
	handlers.NewConnectionHandler(svc.Directory, svc.Graph, svc.Suggestions).RegisterConnectionRoutes(protected)
	handlers.NewPostHandler(svc.Posts).RegisterPostRoutes(protected)
	handlers.NewCommentHandler(svc.Comments).RegisterCommentRoutes(protected)
	handlers.NewLikeHandler(svc.Likes).RegisterLikeRoutes(protected)
	handlers.NewReportHandler(svc.Reports).RegisterReportRoutes(protected)
	handlers.NewNotificationHandler(svc.Notifications).RegisterNotificationRoutes(protected)

	admin := api.Group("/admin", authMiddleware, middleware.RequireAdmin())
	handlers.NewAdminHandler(svc.Admin).RegisterAdminRoutes(admin)

	logger.Info("All routes configured")
}
