package middleware

import (
	"errors"
	"net/http"

	"myFoodMarket/domain"
	"myFoodMarket/pkg/logger"

	jsonres "myFoodMarket/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler is the echo HTTPErrorHandler fallback for errors that escape
// the handlers. Domain sentinels map onto their HTTP statuses; anything else
// is a 500.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		msg, ok := httpErr.Message.(string)
		if !ok {
			msg = http.StatusText(httpErr.Code)
		}
		_ = c.JSON(httpErr.Code, jsonres.Error(http.StatusText(httpErr.Code), msg, nil))
		return
	}

	status, code := StatusForError(err)
	if status == http.StatusInternalServerError {
		logger.Error("Unhandled error", err)
	}

	_ = c.JSON(status, jsonres.Error(code, err.Error(), nil))
}

// StatusForError maps the domain error taxonomy to HTTP statuses.
func StatusForError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "VALIDATION_FAILED"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, "CONFLICT"
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}
