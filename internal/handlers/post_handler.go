package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/services"
)

// PostHandler handles HTTP requests related to posts and the feed
type PostHandler struct {
	posts *services.PostService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(posts *services.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/:id", h.GetPost)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
	g.GET("/users/:id/posts", h.GetUserPosts)
	g.GET("/feed", h.GetFeed)
}

// CreatePost creates a new post
func (h *PostHandler) CreatePost(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	var req models.CreatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.posts.CreatePost(c.Request().Context(), actor, req)
	if err != nil {
		return handleError(c, err)
	}
	return success(c, http.StatusCreated, post)
}

// GetPost retrieves a post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	postID, err := parseID(c, "id", "post")
	if err != nil {
		return err
	}

	post, err := h.posts.GetPost(c.Request().Context(), actor, postID)
	if err != nil {
		return handleError(c, err)
	}
	return success(c, http.StatusOK, post)
}

// GetUserPosts lists a user's posts, subject to their privacy settings
func (h *PostHandler) GetUserPosts(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	ownerID, err := parseID(c, "id", "user")
	if err != nil {
		return err
	}

	posts, err := h.posts.GetUserPosts(c.Request().Context(), ownerID, actor.ID)
	if err != nil {
		return handleError(c, err)
	}
	return success(c, http.StatusOK, posts)
}

// GetFeed returns the caller's posts and their connections' visible posts, newest first
func (h *PostHandler) GetFeed(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	page, limit := pagination(c, 10, 50)

	posts, total, err := h.posts.GetFeed(c.Request().Context(), actor.ID, page, limit)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"posts": posts},
		"meta":    paginationMeta(page, limit, total),
	})
}

// UpdatePost updates an existing post
func (h *PostHandler) UpdatePost(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	postID, err := parseID(c, "id", "post")
	if err != nil {
		return err
	}

	var req models.UpdatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.posts.UpdatePost(c.Request().Context(), actor, postID, req)
	if err != nil {
		return handleError(c, err)
	}
	return success(c, http.StatusOK, post)
}

// DeletePost deletes a post
func (h *PostHandler) DeletePost(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	postID, err := parseID(c, "id", "post")
	if err != nil {
		return err
	}

	if err := h.posts.DeletePost(c.Request().Context(), actor, postID); err != nil {
		return handleError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
