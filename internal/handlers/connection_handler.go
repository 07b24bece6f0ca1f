package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/nano-social/backend/internal/security"
	"github.com/anonto42/nano-social/backend/internal/services"
)

// ConnectionHandler handles follow requests, connection lists and suggestions
type ConnectionHandler struct {
	directory   *services.UserDirectory
	graph       *services.ConnectionGraph
	suggestions *services.SuggestionEngine
}

// NewConnectionHandler creates a new ConnectionHandler
func NewConnectionHandler(directory *services.UserDirectory, graph *services.ConnectionGraph, suggestions *services.SuggestionEngine) *ConnectionHandler {
	return &ConnectionHandler{
		directory:   directory,
		graph:       graph,
		suggestions: suggestions,
	}
}

// RegisterConnectionRoutes registers connection-related routes
func (h *ConnectionHandler) RegisterConnectionRoutes(g *echo.Group) {
	g.GET("/users/:id/connections", h.GetConnections)
	g.GET("/connections/requests", h.GetConnectionRequests)
	g.GET("/connections/:id/state", h.GetConnectionState)
	g.POST("/connections/:id", h.RequestConnection)
	g.PUT("/connections/:id/accept", h.AcceptConnection)
	g.DELETE("/connections/:id", h.RemoveConnection) // unfollow, cancel or reject
	g.GET("/suggestions", h.GetSuggestions)
}

// GetConnections lists a user's accepted connections, subject to their privacy settings
func (h *ConnectionHandler) GetConnections(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	ownerID, err := parseID(c, "id", "user")
	if err != nil {
		return err
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	conns, err := h.directory.GetUserConnections(c.Request().Context(), ownerID, actor.ID,
		security.SanitizeSearch(c.QueryParam("search")), limit)
	if err != nil {
		return handleError(c, err)
	}
	return success(c, http.StatusOK, conns)
}

// GetConnectionRequests lists pending requests addressed to the caller
func (h *ConnectionHandler) GetConnectionRequests(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	requests, err := h.graph.GetConnectionRequests(c.Request().Context(), actor.ID)
	if err != nil {
		return handleError(c, err)
	}
	return success(c, http.StatusOK, requests)
}

func (h *ConnectionHandler) GetConnectionState(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	otherID, err := parseID(c, "id", "user")
	if err != nil {
		return err
	}

	state, err := h.graph.GetConnectionState(c.Request().Context(), actor.ID, otherID)
	if err != nil {
		return handleError(c, err)
	}
	return success(c, http.StatusOK, state)
}

// RequestConnection sends a follow request from the caller to :id
func (h *ConnectionHandler) RequestConnection(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	targetID, err := parseID(c, "id", "user")
	if err != nil {
		return err
	}

	conn, err := h.graph.RequestConnection(c.Request().Context(), actor.ID, targetID)
	if err != nil {
		return handleError(c, err)
	}
	return success(c, http.StatusCreated, conn)
}

// AcceptConnection accepts the pending request that :id sent to the caller
func (h *ConnectionHandler) AcceptConnection(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	requesterID, err := parseID(c, "id", "user")
	if err != nil {
		return err
	}

	conn, err := h.graph.AcceptConnection(c.Request().Context(), requesterID, actor.ID)
	if err != nil {
		return handleError(c, err)
	}
	return success(c, http.StatusOK, conn)
}

func (h *ConnectionHandler) RemoveConnection(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	otherID, err := parseID(c, "id", "user")
	if err != nil {
		return err
	}

	if err := h.graph.RemoveConnection(c.Request().Context(), actor.ID, otherID); err != nil {
		return handleError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetSuggestions lists users the caller has no connection row with
func (h *ConnectionHandler) GetSuggestions(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	suggestions, err := h.suggestions.GetSuggestions(c.Request().Context(), actor.ID,
		security.SanitizeSearch(c.QueryParam("search")))
	if err != nil {
		return handleError(c, err)
	}
	return success(c, http.StatusOK, suggestions)
}
