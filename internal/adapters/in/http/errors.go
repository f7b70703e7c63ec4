package http

import (
	"errors"
	"net/http"

	"sellerconsole/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Reasons let clients tell "refresh and retry" apart from "not allowed now".
const (
	ReasonValidation           = "validation_failed"
	ReasonNotFound             = "not_found"
	ReasonTransitionNotAllowed = "transition_not_allowed"
	ReasonStaleVersion         = "stale_version"
	ReasonInternal             = "internal_error"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

func (s *Server) writeError(c echo.Context, err error) error {
	status, reason, message := classify(err)
	if status == http.StatusInternalServerError {
		s.logger.WithError(err).WithField("path", c.Path()).Error("request failed")
	}
	return c.JSON(status, Error{Code: status, Reason: reason, Message: message})
}

func classify(err error) (int, string, string) {
	switch {
	case errs.IsValidation(err):
		return http.StatusBadRequest, ReasonValidation, err.Error()
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, ReasonNotFound, err.Error()
	case errors.Is(err, errs.ErrInvalidTransition):
		return http.StatusUnprocessableEntity, ReasonTransitionNotAllowed, err.Error()
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict, ReasonStaleVersion, "the record changed since it was read; refresh and retry"
	default:
		return http.StatusInternalServerError, ReasonInternal, "internal server error"
	}
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Reason:  ReasonValidation,
		Message: message,
	})
}
