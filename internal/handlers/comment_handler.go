package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/services"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	comments *services.CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(comments *services.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:id/comments", h.CreateComment)
	g.GET("/posts/:id/comments", h.GetCommentsByPostID)
	g.PUT("/comments/:id", h.UpdateComment)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// CreateComment adds a comment to a post and notifies the owner and mentioned users
func (h *CommentHandler) CreateComment(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	postID, err := parseID(c, "id", "post")
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.comments.AddComment(c.Request().Context(), actor, postID, req)
	if err != nil {
		return handleError(c, err)
	}
	return success(c, http.StatusCreated, comment)
}

// GetCommentsByPostID retrieves the non-archived comments of a post
func (h *CommentHandler) GetCommentsByPostID(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	postID, err := parseID(c, "id", "post")
	if err != nil {
		return err
	}

	comments, err := h.comments.GetComments(c.Request().Context(), actor, postID)
	if err != nil {
		return handleError(c, err)
	}
	return success(c, http.StatusOK, comments)
}

// UpdateComment edits the caller's own comment
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	commentID, err := parseID(c, "id", "comment")
	if err != nil {
		return err
	}

	var req models.UpdateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.comments.UpdateComment(c.Request().Context(), actor, commentID, req)
	if err != nil {
		return handleError(c, err)
	}
	return success(c, http.StatusOK, comment)
}

// DeleteComment deletes a comment (owner or admin)
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	commentID, err := parseID(c, "id", "comment")
	if err != nil {
		return err
	}

	if err := h.comments.DeleteComment(c.Request().Context(), actor, commentID); err != nil {
		return handleError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
