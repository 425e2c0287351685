package http

import (
	"errors"
	"log/slog"
	"net/http"

	"storefront/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrOrderLocked),
		errors.Is(err, errs.ErrConcurrentModification),
		errors.Is(err, errs.ErrObjectAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, errs.ErrUnsupportedOperation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrInvalidOrder),
		errors.Is(err, errs.ErrInvalidReview),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as an Error body. Internal errors are logged and
// their text is not sent to the client.
func (s *Server) writeError(ctx echo.Context, err error) error {
	code := statusFor(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			slog.String("method", ctx.Request().Method),
			slog.String("path", ctx.Path()),
			slog.Any("error", err),
		)
		message = http.StatusText(code)
	}
	return ctx.JSON(code, Error{Code: code, Message: message})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}
