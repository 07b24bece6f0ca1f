package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/security"
	"github.com/anonto42/nano-social/backend/internal/services"
)

// UserHandler handles HTTP requests related to users and their settings
type UserHandler struct {
	directory *services.UserDirectory
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(directory *services.UserDirectory) *UserHandler {
	return &UserHandler{directory: directory}
}

// RegisterProfileRoutes registers user profile-related routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile", h.GetProfile)    // Get own profile
	g.PUT("/profile", h.UpdateProfile) // Update own profile
	g.GET("/users/search", h.SearchUsers)
	g.GET("/users/:username", h.GetUser)
	g.GET("/settings", h.GetSettings)
	g.PUT("/settings", h.UpdateSettings)
}

// GetUser returns another user's profile as the caller may see it
func (h *UserHandler) GetUser(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	profile, err := h.directory.GetProfile(c.Request().Context(), c.Param("username"), actor.ID)
	if err != nil {
		return handleError(c, err)
	}
	return success(c, http.StatusOK, profile)
}

// GetProfile retrieves the authenticated user's profile
func (h *UserHandler) GetProfile(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	user, err := h.directory.GetUser(c.Request().Context(), actor.ID)
	if err != nil {
		return handleError(c, err)
	}
	return success(c, http.StatusOK, user)
}

// UpdateProfile updates the authenticated user's profile
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	var req models.UpdateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.directory.UpdateProfile(c.Request().Context(), actor.ID, req)
	if err != nil {
		return handleError(c, err)
	}
	return success(c, http.StatusOK, user)
}

// SearchUsers matches users by full name or username; an empty query lists everyone
func (h *UserHandler) SearchUsers(c echo.Context) error {
	if _, err := currentActor(c); err != nil {
		return err
	}

	users, err := h.directory.SearchUsers(c.Request().Context(), security.SanitizeSearch(c.QueryParam("q")))
	if err != nil {
		return handleError(c, err)
	}
	return success(c, http.StatusOK, users)
}

func (h *UserHandler) GetSettings(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	settings, err := h.directory.GetSettings(c.Request().Context(), actor.ID)
	if err != nil {
		return handleError(c, err)
	}
	return success(c, http.StatusOK, settings)
}

func (h *UserHandler) UpdateSettings(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	var req models.UpdateSettingsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	settings, err := h.directory.UpdateSettings(c.Request().Context(), actor.ID, req)
	if err != nil {
		return handleError(c, err)
	}
	return success(c, http.StatusOK, settings)
}
