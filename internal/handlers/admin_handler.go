package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/services"
)

// AdminHandler serves moderation and dashboard endpoints. Routes must be
// mounted behind middleware.RequireAdmin.
type AdminHandler struct {
	admin *services.AdminService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(admin *services.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// RegisterAdminRoutes registers admin routes on an admin-only group
func (h *AdminHandler) RegisterAdminRoutes(g *echo.Group) {
	g.GET("/dashboard/stats", h.GetDashboardStats)
	g.PATCH("/users/:id/role", h.UpdateUserRole)
	g.POST("/users/:id/warn", h.WarnUser)
	g.PATCH("/posts/:id/status", h.UpdatePostStatus)
	g.PATCH("/comments/:id/status", h.UpdateCommentStatus)
	g.POST("/announcements", h.SendAnnouncement)
	g.GET("/posts", h.GetPostsByStatus)
	g.GET("/comments", h.GetCommentsByStatus)
	g.GET("/reports", h.GetReports)
}

func (h *AdminHandler) GetDashboardStats(c echo.Context) error {
	stats, err := h.admin.GetDashboardStats(c.Request().Context())
	if err != nil {
		return handleError(c, err)
	}
	return success(c, http.StatusOK, stats)
}

func (h *AdminHandler) UpdateUserRole(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	userID, err := parseID(c, "id", "user")
	if err != nil {
		return err
	}

	var req models.UpdateRoleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.admin.UpdateUserRole(c.Request().Context(), actor, userID, req.Role)
	if err != nil {
		return handleError(c, err)
	}
	return success(c, http.StatusOK, user)
}

func (h *AdminHandler) WarnUser(c echo.Context) error {
	userID, err := parseID(c, "id", "user")
	if err != nil {
		return err
	}

	var req models.WarningRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.admin.WarnUser(c.Request().Context(), userID, req.Reason); err != nil {
		return handleError(c, err)
	}
	return success(c, http.StatusOK, echo.Map{"warned": true})
}

// UpdatePostStatus moderates a post and notifies its owner
func (h *AdminHandler) UpdatePostStatus(c echo.Context) error {
	postID, err := parseID(c, "id", "post")
	if err != nil {
		return err
	}

	var req models.UpdateStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.admin.UpdatePostStatus(c.Request().Context(), postID, req)
	if err != nil {
		return handleError(c, err)
	}
	return success(c, http.StatusOK, post)
}

// UpdateCommentStatus moderates a comment and notifies its owner
func (h *AdminHandler) UpdateCommentStatus(c echo.Context) error {
	commentID, err := parseID(c, "id", "comment")
	if err != nil {
		return err
	}

	var req models.UpdateStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.admin.UpdateCommentStatus(c.Request().Context(), commentID, req)
	if err != nil {
		return handleError(c, err)
	}
	return success(c, http.StatusOK, comment)
}

// SendAnnouncement notifies every user, or only userIds when given
func (h *AdminHandler) SendAnnouncement(c echo.Context) error {
	var req models.AnnouncementRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	sent := h.admin.SendAnnouncement(c.Request().Context(), req)
	return success(c, http.StatusOK, echo.Map{"recipients": sent})
}

func (h *AdminHandler) GetPostsByStatus(c echo.Context) error {
	page, limit := pagination(c, 20, 100)
	status := models.ContentStatus(c.QueryParam("status"))
	if status == "" {
		status = models.ContentStatusReported
	}

	posts, total, err := h.admin.GetPostsByStatus(c.Request().Context(), status, page, limit)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"posts": posts},
		"meta":    paginationMeta(page, limit, total),
	})
}

func (h *AdminHandler) GetCommentsByStatus(c echo.Context) error {
	page, limit := pagination(c, 20, 100)
	status := models.ContentStatus(c.QueryParam("status"))
	if status == "" {
		status = models.ContentStatusReported
	}

	comments, total, err := h.admin.GetCommentsByStatus(c.Request().Context(), status, page, limit)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"comments": comments},
		"meta":    paginationMeta(page, limit, total),
	})
}

func (h *AdminHandler) GetReports(c echo.Context) error {
	page, limit := pagination(c, 20, 100)

	reports, total, err := h.admin.GetReports(c.Request().Context(), page, limit)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"reports": reports},
		"meta":    paginationMeta(page, limit, total),
	})
}
