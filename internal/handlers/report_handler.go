package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/services"
)

type ReportHandler struct {
	reports *services.ReportService
}

func NewReportHandler(reports *services.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func (h *ReportHandler) RegisterReportRoutes(g *echo.Group) {
	g.POST("/posts/:id/reports", h.ReportPost)
	g.POST("/comments/:id/reports", h.ReportComment)
}

func (h *ReportHandler) ReportPost(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	postID, err := parseID(c, "id", "post")
	if err != nil {
		return err
	}

	var req models.CreateReportRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	report, err := h.reports.ReportPost(c.Request().Context(), actor, postID, req)
	if err != nil {
		return handleError(c, err)
	}
	return success(c, http.StatusCreated, report)
}

func (h *ReportHandler) ReportComment(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	commentID, err := parseID(c, "id", "comment")
	if err != nil {
		return err
	}

	var req models.CreateReportRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	report, err := h.reports.ReportComment(c.Request().Context(), actor, commentID, req)
	if err != nil {
		return handleError(c, err)
	}
	return success(c, http.StatusCreated, report)
}
