package services

import (
	"context"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/anonto42/nano-social/backend/internal/security"
	"github.com/anonto42/nano-social/backend/pkg/errors"
)

type ReportService struct {
	reports  repositories.ReportRepository
	comments repositories.CommentRepository
	posts    *PostService
	fanout   *NotificationFanout
}

func NewReportService(reports repositories.ReportRepository, comments repositories.CommentRepository, posts *PostService, fanout *NotificationFanout) *ReportService {
	return &ReportService{
		reports:  reports,
		comments: comments,
		posts:    posts,
		fanout:   fanout,
	}
}

func (s *ReportService) ReportPost(ctx context.Context, actor Actor, postID uint, req models.CreateReportRequest) (*models.Report, error) {
	post, err := s.posts.loadVisible(ctx, actor, postID)
	if err != nil {
		return nil, err
	}
	reported, err := s.reports.HasReportedPost(ctx, actor.ID, post.ID)
	if err != nil {
		return nil, err
	}
	if reported {
		return nil, errors.Conflict("you have already reported this post")
	}

	report := &models.Report{
		UserID: actor.ID,
		PostID: &post.ID,
		Reason: security.SanitizeText(req.Reason),
	}
	if err := s.reports.CreateReport(ctx, report); err != nil {
		return nil, err
	}

	s.fanout.NotifyPostReported(ctx, post, report.ID)
	return report, nil
}

func (s *ReportService) ReportComment(ctx context.Context, actor Actor, commentID uint, req models.CreateReportRequest) (*models.Report, error) {
	comment, err := s.comments.GetCommentByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.Status == models.ContentStatusArchived {
		return nil, errors.NotFound("comment not found")
	}
	if _, err := s.posts.loadVisible(ctx, actor, comment.PostID); err != nil {
		return nil, err
	}
	reported, err := s.reports.HasReportedComment(ctx, actor.ID, comment.ID)
	if err != nil {
		return nil, err
	}
	if reported {
		return nil, errors.Conflict("you have already reported this comment")
	}

	report := &models.Report{
		UserID:    actor.ID,
		PostID:    &comment.PostID,
		CommentID: &comment.ID,
		Reason:    security.SanitizeText(req.Reason),
	}
	if err := s.reports.CreateReport(ctx, report); err != nil {
		return nil, err
	}

	s.fanout.NotifyCommentReported(ctx, comment, report.ID)
	return report, nil
}
