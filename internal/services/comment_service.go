package services

import (
	"context"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/anonto42/nano-social/backend/internal/security"
	"github.com/anonto42/nano-social/backend/pkg/errors"
)

type CommentService struct {
	comments repositories.CommentRepository
	users    repositories.UserRepository
	posts    *PostService
	fanout   *NotificationFanout
}

func NewCommentService(comments repositories.CommentRepository, users repositories.UserRepository, posts *PostService, fanout *NotificationFanout) *CommentService {
	return &CommentService{
		comments: comments,
		users:    users,
		posts:    posts,
		fanout:   fanout,
	}
}

// AddComment stores the comment, then notifies the post owner and any
// mentioned users.
func (s *CommentService) AddComment(ctx context.Context, actor Actor, postID uint, req models.CreateCommentRequest) (*models.Comment, error) {
	post, err := s.posts.loadVisible(ctx, actor, postID)
	if err != nil {
		return nil, err
	}
	if post.Status == models.ContentStatusArchived {
		return nil, errors.InvalidState("cannot comment on an archived post")
	}
	commenter, err := s.users.GetUserByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	text := security.SanitizeText(req.Text)
	if text == "" {
		return nil, errors.Validation("comment text must not be empty")
	}
	comment := &models.Comment{
		PostID: post.ID,
		UserID: commenter.ID,
		Author: commenter.Username,
		Text:   text,
		Status: models.ContentStatusActive,
	}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	s.fanout.NotifyNewComment(ctx, post, comment, commenter)
	return comment, nil
}

func (s *CommentService) GetComments(ctx context.Context, actor Actor, postID uint) ([]models.Comment, error) {
	if _, err := s.posts.loadVisible(ctx, actor, postID); err != nil {
		return nil, err
	}
	return s.comments.GetCommentsByPostID(ctx, postID)
}

func (s *CommentService) UpdateComment(ctx context.Context, actor Actor, id uint, req models.UpdateCommentRequest) (*models.Comment, error) {
	comment, err := s.comments.GetCommentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment.UserID != actor.ID {
		return nil, errors.Forbidden("you can only edit your own comments")
	}
	text := security.SanitizeText(req.Text)
	if text == "" {
		return nil, errors.Validation("comment text must not be empty")
	}
	comment.Text = text
	comment.IsEdited = true
	if err := s.comments.UpdateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, actor Actor, id uint) error {
	comment, err := s.comments.GetCommentByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanModify(comment.UserID) {
		return errors.Forbidden("you can only delete your own comments")
	}
	return s.comments.DeleteComment(ctx, id)
}
