package auth

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"workboard/internal/errors"
	"workboard/internal/model"
)

// ClaimsFrom extracts the verified claims placed in the context by the JWT
// middleware. Returns nil when the request is unauthenticated.
func ClaimsFrom(c echo.Context) *Claims {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil
	}
	return claims
}

// CheckRevoked rejects credentials whose token ID has been revoked via logout.
func CheckRevoked(store TokenStoreInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := ClaimsFrom(c)
			if claims == nil {
				return echo.NewHTTPError(http.StatusUnauthorized,
					errors.ErrorResponse{Error: "invalid token", Code: "INVALID_TOKEN"})
			}
			revoked, _ := store.IsRevoked(c.Request().Context(), claims.ID)
			if revoked {
				return echo.NewHTTPError(http.StatusUnauthorized,
					errors.ErrorResponse{Error: "token revoked", Code: "TOKEN_REVOKED"})
			}
			return next(c)
		}
	}
}

// RequireAdmin guards admin-only routes.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := ClaimsFrom(c)
		if claims == nil {
			return echo.NewHTTPError(http.StatusUnauthorized,
				errors.ErrorResponse{Error: "invalid token", Code: "INVALID_TOKEN"})
		}
		if claims.Role != model.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden,
				errors.ErrorResponse{Error: "admin access required", Code: "ADMIN_ONLY"})
		}
		return next(c)
	}
}
