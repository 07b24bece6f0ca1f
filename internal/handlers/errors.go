package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/nano-social/backend/pkg/errors"
	"github.com/anonto42/nano-social/backend/pkg/logger"
)

var statusByCode = map[string]int{
	errors.ErrCodeNotFound:     http.StatusNotFound,
	errors.ErrCodeConflict:     http.StatusConflict,
	errors.ErrCodeInvalidState: http.StatusBadRequest,
	errors.ErrCodeUnauthorized: http.StatusUnauthorized,
	errors.ErrCodeForbidden:    http.StatusForbidden,
	errors.ErrCodeValidation:   http.StatusBadRequest,
}

// handleError converts a service error into an echo HTTP error. Internal
// errors are logged and replaced by a generic message.
func handleError(c echo.Context, err error) error {
	if he, ok := err.(*echo.HTTPError); ok {
		return he
	}
	code := errors.CodeOf(err)
	if status, ok := statusByCode[code]; ok {
		return echo.NewHTTPError(status, errors.MessageOf(err))
	}

	logger.Error("request failed",
		"method", c.Request().Method, "path", c.Path(), "error", err)
	return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
}
