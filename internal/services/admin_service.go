package services

import (
	"context"
	"math"
	"time"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/anonto42/nano-social/backend/pkg/errors"
	"github.com/anonto42/nano-social/backend/pkg/logger"
)

const (
	growthMonths  = 5
	growthAverage = 3
	recentLimit   = 5
)

// GrowthRate is the month-over-month change in percent. A zero baseline
// counts as 100% growth when anything was added and 0% otherwise.
func GrowthRate(prev, curr int64) float64 {
	switch {
	case prev > 0:
		return float64(curr-prev) / float64(prev) * 100
	case curr > 0:
		return 100
	default:
		return 0
	}
}

// AverageGrowth averages the last n month-over-month rates of counts.
func AverageGrowth(counts []int64, n int) float64 {
	var rates []float64
	for i := 1; i < len(counts); i++ {
		rates = append(rates, GrowthRate(counts[i-1], counts[i]))
	}
	if len(rates) > n {
		rates = rates[len(rates)-n:]
	}
	if len(rates) == 0 {
		return 0
	}
	var sum float64
	for _, r := range rates {
		sum += r
	}
	return math.Round(sum/float64(len(rates))*100) / 100
}

type AdminService struct {
	users    repositories.UserRepository
	posts    repositories.PostRepository
	comments repositories.CommentRepository
	reports  repositories.ReportRepository
	stats    repositories.StatsRepository
	fanout   *NotificationFanout
	now      func() time.Time
}

func NewAdminService(
	users repositories.UserRepository,
	posts repositories.PostRepository,
	comments repositories.CommentRepository,
	reports repositories.ReportRepository,
	stats repositories.StatsRepository,
	fanout *NotificationFanout,
) *AdminService {
	return &AdminService{
		users:    users,
		posts:    posts,
		comments: comments,
		reports:  reports,
		stats:    stats,
		fanout:   fanout,
		now:      time.Now,
	}
}

func (s *AdminService) UpdatePostStatus(ctx context.Context, id uint, req models.UpdateStatusRequest) (*models.Post, error) {
	if !req.Status.Valid() {
		return nil, errors.Validation("invalid status")
	}
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.posts.UpdateStatus(ctx, id, req.Status); err != nil {
		return nil, err
	}
	post.Status = req.Status
	logger.Info("Post status changed", "post_id", id, "status", req.Status)

	s.fanout.NotifyPostStatusChange(ctx, post, req.Status, req.Reason)
	return post, nil
}

func (s *AdminService) UpdateCommentStatus(ctx context.Context, id uint, req models.UpdateStatusRequest) (*models.Comment, error) {
	if !req.Status.Valid() {
		return nil, errors.Validation("invalid status")
	}
	comment, err := s.comments.GetCommentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.comments.UpdateStatus(ctx, id, req.Status); err != nil {
		return nil, err
	}
	comment.Status = req.Status
	logger.Info("Comment status changed", "comment_id", id, "status", req.Status)

	s.fanout.NotifyCommentStatusChange(ctx, comment, req.Status, req.Reason)
	return comment, nil
}

// UpdateUserRole changes another user's role. Admins cannot change their own.
func (s *AdminService) UpdateUserRole(ctx context.Context, actor Actor, userID uint, role models.Role) (*models.User, error) {
	if role != models.RoleUser && role != models.RoleAdmin {
		return nil, errors.Validation("invalid role")
	}
	if actor.ID == userID {
		return nil, errors.Forbidden("you cannot change your own role")
	}
	if err := s.users.UpdateRole(ctx, userID, role); err != nil {
		return nil, err
	}
	logger.Info("User role changed", "user_id", userID, "role", role, "by", actor.ID)
	return s.users.GetUserByID(ctx, userID)
}

// SendAnnouncement returns how many users were notified.
func (s *AdminService) SendAnnouncement(ctx context.Context, req models.AnnouncementRequest) int {
	return s.fanout.NotifySystemAnnouncement(ctx, req.Message, req.UserIDs)
}

func (s *AdminService) WarnUser(ctx context.Context, userID uint, reason string) error {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return err
	}
	if !s.fanout.NotifyAccountWarning(ctx, userID, reason) {
		return errors.Internal(nil, "failed to send warning")
	}
	return nil
}

func (s *AdminService) GetPostsByStatus(ctx context.Context, status models.ContentStatus, page, limit int) ([]models.Post, int64, error) {
	if !status.Valid() {
		return nil, 0, errors.Validation("invalid status")
	}
	return s.posts.GetPostsByStatus(ctx, status, (page-1)*limit, limit)
}

func (s *AdminService) GetCommentsByStatus(ctx context.Context, status models.ContentStatus, page, limit int) ([]models.Comment, int64, error) {
	if !status.Valid() {
		return nil, 0, errors.Validation("invalid status")
	}
	return s.comments.GetCommentsByStatus(ctx, status, (page-1)*limit, limit)
}

func (s *AdminService) GetReports(ctx context.Context, page, limit int) ([]models.Report, int64, error) {
	return s.reports.GetReports(ctx, (page-1)*limit, limit)
}

func (s *AdminService) GetDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	totals, err := s.stats.GetTotals(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.stats.GetRecentUsers(ctx, recentLimit)
	if err != nil {
		return nil, err
	}
	posts, err := s.stats.GetRecentPosts(ctx, recentLimit)
	if err != nil {
		return nil, err
	}

	stats := &models.DashboardStats{
		TotalUsers:       totals.Users,
		TotalPosts:       totals.Posts,
		TotalConnections: totals.Connections,
		TotalComments:    totals.Comments,
		TotalLikes:       totals.Likes,
		TotalReports:     totals.Reports,
		RecentUsers:      make([]models.UserCompact, 0, len(users)),
		RecentPosts:      make([]models.RecentPost, 0, len(posts)),
	}
	for i := range users {
		stats.RecentUsers = append(stats.RecentUsers, users[i].ToCompact())
	}
	for i := range posts {
		stats.RecentPosts = append(stats.RecentPosts, models.RecentPost{
			ID:        posts[i].ID,
			Title:     posts[i].Title,
			Status:    posts[i].Status,
			CreatedAt: posts[i].CreatedAt,
			Author:    posts[i].User.ToCompact(),
		})
	}

	now := s.now().UTC()
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	counts := make([]int64, 0, growthMonths)
	for i := growthMonths - 1; i >= 0; i-- {
		start := current.AddDate(0, -i, 0)
		count, err := s.stats.CountUsersCreatedBetween(ctx, start, start.AddDate(0, 1, 0))
		if err != nil {
			return nil, err
		}
		counts = append(counts, count)
		stats.UserGrowth = append(stats.UserGrowth, models.GrowthStat{Name: start.Format("Jan"), Count: count})
	}
	stats.AvgPopularityGrowthRate = AverageGrowth(counts, growthAverage)
	return stats, nil
}
