package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ZhangDT-sky/PrivateClinic/internal/platform/response"
)

const (
	RoleAdmin  = "ADMIN"
	RoleDoctor = "DOCTOR"
)

// RequireRole returns middleware that checks if the caller has one of the
// given roles. Role strings compare case-insensitively.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			has := RoleFromContext(c.Request().Context())
			for _, required := range roles {
				if strings.EqualFold(has, required) {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, response.Forbidden(""))
		}
	}
}
