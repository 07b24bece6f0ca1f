package services

import (
	"context"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/anonto42/nano-social/backend/internal/security"
	"github.com/anonto42/nano-social/backend/pkg/errors"
)

type PostService struct {
	posts       repositories.PostRepository
	connections repositories.ConnectionRepository
	privacy     *PrivacyFilter
}

func NewPostService(posts repositories.PostRepository, connections repositories.ConnectionRepository, privacy *PrivacyFilter) *PostService {
	return &PostService{
		posts:       posts,
		connections: connections,
		privacy:     privacy,
	}
}

func (s *PostService) CreatePost(ctx context.Context, actor Actor, req models.CreatePostRequest) (*models.PostView, error) {
	post := &models.Post{
		UserID:  actor.ID,
		Title:   security.SanitizeText(req.Title),
		Content: security.SanitizeText(req.Content),
		Image:   req.Image,
		Status:  models.ContentStatusActive,
	}
	if post.Title == "" || post.Content == "" {
		return nil, errors.Validation("title and content must contain text")
	}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return s.GetPost(ctx, actor, post.ID)
}

// GetPost returns NOT_FOUND both for missing posts and for posts the actor
// may not see. Owners and admins see archived and private posts.
func (s *PostService) GetPost(ctx context.Context, actor Actor, id uint) (*models.PostView, error) {
	post, err := s.loadVisible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	views, err := s.views(ctx, []models.Post{*post}, actor.ID)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *PostService) loadVisible(ctx context.Context, actor Actor, id uint) (*models.Post, error) {
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.CanModify(post.UserID) {
		return post, nil
	}
	if post.Status == models.ContentStatusArchived {
		return nil, errors.NotFound("post not found")
	}
	ok, err := s.privacy.CanView(ctx, post.UserID, actor.ID, ContentPosts)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.NotFound("post not found")
	}
	return post, nil
}

// GetUserPosts lists ownerID's posts as viewerID may see them. Archived posts
// are only included for the owner.
func (s *PostService) GetUserPosts(ctx context.Context, ownerID, viewerID uint) ([]models.PostView, error) {
	ok, err := s.privacy.CanView(ctx, ownerID, viewerID, ContentPosts)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Forbidden("this user's posts are not visible to you")
	}
	posts, err := s.posts.GetPostsByUserID(ctx, ownerID, ownerID == viewerID)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, posts, viewerID)
}

// GetFeed pages through the viewer's own posts and the visible posts of
// accepted connections, newest first. page is 1-based.
func (s *PostService) GetFeed(ctx context.Context, viewerID uint, page, limit int) ([]models.PostView, int64, error) {
	connected, err := s.connections.GetConnectedUserIDs(ctx, viewerID)
	if err != nil {
		return nil, 0, err
	}
	authors, err := s.privacy.VisibleAuthors(ctx, viewerID, connected)
	if err != nil {
		return nil, 0, err
	}
	authors = append(authors, viewerID)

	posts, total, err := s.posts.GetFeed(ctx, authors, (page-1)*limit, limit)
	if err != nil {
		return nil, 0, err
	}
	views, err := s.views(ctx, posts, viewerID)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

func (s *PostService) UpdatePost(ctx context.Context, actor Actor, id uint, req models.UpdatePostRequest) (*models.PostView, error) {
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.UserID != actor.ID {
		return nil, errors.Forbidden("you can only edit your own posts")
	}
	if title := security.SanitizeText(req.Title); title != "" {
		post.Title = title
	}
	if content := security.SanitizeText(req.Content); content != "" {
		post.Content = content
	}
	if req.Image != "" {
		post.Image = req.Image
	}
	if err := s.posts.UpdatePost(ctx, post); err != nil {
		return nil, err
	}
	return s.GetPost(ctx, actor, post.ID)
}

func (s *PostService) DeletePost(ctx context.Context, actor Actor, id uint) error {
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanModify(post.UserID) {
		return errors.Forbidden("you can only delete your own posts")
	}
	return s.posts.DeletePost(ctx, id)
}

func (s *PostService) views(ctx context.Context, posts []models.Post, viewerID uint) ([]models.PostView, error) {
	ids := make([]uint, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	engagement, err := s.posts.GetEngagement(ctx, ids, viewerID)
	if err != nil {
		return nil, err
	}
	out := make([]models.PostView, 0, len(posts))
	for _, p := range posts {
		e := engagement[p.ID]
		out = append(out, models.PostView{
			Post:          p,
			Author:        p.User.ToCompact(),
			LikesCount:    e.LikesCount,
			CommentsCount: e.CommentsCount,
			IsLiked:       e.IsLiked,
		})
	}
	return out, nil
}
