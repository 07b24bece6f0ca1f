package services

import (
	"context"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
)

type LikeService struct {
	likes  repositories.LikeRepository
	users  repositories.UserRepository
	posts  *PostService
	fanout *NotificationFanout
}

func NewLikeService(likes repositories.LikeRepository, users repositories.UserRepository, posts *PostService, fanout *NotificationFanout) *LikeService {
	return &LikeService{
		likes:  likes,
		users:  users,
		posts:  posts,
		fanout: fanout,
	}
}

// LikePost returns CONFLICT when the actor already liked the post.
func (s *LikeService) LikePost(ctx context.Context, actor Actor, postID uint) (*models.Like, error) {
	post, err := s.posts.loadVisible(ctx, actor, postID)
	if err != nil {
		return nil, err
	}
	liker, err := s.users.GetUserByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	like := &models.Like{PostID: post.ID, UserID: liker.ID}
	if err := s.likes.CreateLike(ctx, like); err != nil {
		return nil, err
	}

	s.fanout.NotifyPostLiked(ctx, post, liker)
	return like, nil
}

func (s *LikeService) UnlikePost(ctx context.Context, actor Actor, postID uint) error {
	return s.likes.DeleteLike(ctx, postID, actor.ID)
}

func (s *LikeService) GetLikes(ctx context.Context, actor Actor, postID uint) ([]models.UserCompact, error) {
	if _, err := s.posts.loadVisible(ctx, actor, postID); err != nil {
		return nil, err
	}
	likes, err := s.likes.GetLikesByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}
	out := make([]models.UserCompact, 0, len(likes))
	for i := range likes {
		out = append(out, likes[i].User.ToCompact())
	}
	return out, nil
}
