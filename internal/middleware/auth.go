package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"digitalstore/internal/dto"
	"digitalstore/internal/service"
)

// RequireAdmin guards the catalog-mutation routes. The session token
// comes from the X-Session-Token header and must belong to an admin
// account.
func RequireAdmin(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.Request().Header.Get("X-Session-Token")
			if token == "" {
				return c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
					Error:   "missing X-Session-Token header",
					Success: false,
				})
			}

			user, err := authService.ResolveUser(c.Request().Context(), token)
			if err != nil || !user.IsAdmin {
				return c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
					Error:   "unauthorized",
					Success: false,
				})
			}

			c.Set("user_email", user.Email)
			return next(c)
		}
	}
}
