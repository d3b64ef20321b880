package middleware

import (
	"context"
	"net/http"
	"strings"

	"myFoodMarket/domain"
	"myFoodMarket/pkg/utils"

	jsonres "myFoodMarket/pkg/response"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// UserFinder resolves a token subject to a live user record.
type UserFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (domain.User, error)
}

const userContextKey = "auth_user"

// Authenticate is soft: a missing or invalid bearer token never rejects the
// request. It resolves the token to a user when possible and attaches the
// identity to the echo context; handlers that need identity use the Require*
// guards. A deleted user holding a still-valid token also passes as anonymous.
func Authenticate(users UserFinder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return next(c)
			}

			userID, err := utils.ParseJWT(tokenParts[1])
			if err != nil {
				return next(c)
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				return next(c)
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// RequireUser rejects anonymous requests with 401.
func RequireUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := CurrentUser(c); !ok {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Authentication required", nil,
				))
			}

			return next(c)
		}
	}
}

// RequirePlatinum rejects anonymous requests with 401 and authenticated users
// below the platinum tier with 403.
func RequirePlatinum() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Authentication required", nil,
				))
			}

			if !user.MembershipLevel.AtLeast(domain.MembershipPlatinum) {
				return c.JSON(http.StatusForbidden, jsonres.Error(
					"FORBIDDEN", "Platinum membership required", nil,
				))
			}

			return next(c)
		}
	}
}

// CurrentUser returns the identity attached by Authenticate, if any.
func CurrentUser(c echo.Context) (domain.User, bool) {
	user, ok := c.Get(userContextKey).(domain.User)
	return user, ok
}
