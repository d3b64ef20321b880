package rest

import (
	"errors"
	"net/http"
	"strconv"

	"myFoodMarket/domain"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

// statusFor maps domain sentinel errors to HTTP status codes. Anything
// unrecognized is a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func parseIDParam(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errors.New("invalid id, expected a UUID")
	}
	return id, nil
}

// pageFromQuery reads limit/offset query params; normalization (defaults and
// the hard cap) happens in the repositories.
func pageFromQuery(c echo.Context) domain.Page {
	var page domain.Page
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil {
		page.Limit = v
	}
	if v, err := strconv.Atoi(c.QueryParam("offset")); err == nil {
		page.Offset = v
	}
	return page
}

func queryString(c echo.Context, name string) *string {
	if v := c.QueryParam(name); v != "" {
		return &v
	}
	return nil
}

func queryFloat(c echo.Context, name string) *float64 {
	if v := c.QueryParam(name); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return &f
		}
	}
	return nil
}

func queryInt(c echo.Context, name string) *int {
	if v := c.QueryParam(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return &n
		}
	}
	return nil
}

func queryBool(c echo.Context, name string) *bool {
	if v := c.QueryParam(name); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return &b
		}
	}
	return nil
}
