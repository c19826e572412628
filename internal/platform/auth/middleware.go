// Package auth holds the authorization guard sitting between the HTTP
// boundary and the entity services: bearer extraction, identity
// resolution, and role checks.
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ZhangDT-sky/PrivateClinic/internal/platform/response"
	"github.com/ZhangDT-sky/PrivateClinic/internal/platform/token"
)

type contextKey string

const (
	UserIDKey      contextKey = "user_id"
	UserRoleKey    contextKey = "user_role"
	DisplayNameKey contextKey = "display_name"
)

// ResolveIdentity verifies the bearer token and returns its claims, or nil
// when the token is invalid or expired. This is the single identity entry
// point for the HTTP boundary.
func ResolveIdentity(tokens *token.Service, tokenStr string) *token.Claims {
	claims := tokens.Validate(tokenStr)
	if claims == nil || tokens.IsExpired(claims) {
		return nil
	}
	return claims
}

// Middleware extracts the Authorization bearer token, resolves the caller's
// identity, and stashes it on the request context. Requests matched by
// skipper pass through unauthenticated.
func Middleware(tokens *token.Service, skipper func(echo.Context) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skipper != nil && skipper(c) {
				return next(c)
			}

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, response.Unauthorized(""))
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return c.JSON(http.StatusUnauthorized, response.Unauthorized(""))
			}

			claims := ResolveIdentity(tokens, parts[1])
			if claims == nil {
				return c.JSON(http.StatusUnauthorized, response.Unauthorized(""))
			}

			ctx := c.Request().Context()
			ctx = context.WithValue(ctx, UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, UserRoleKey, claims.Role)
			ctx = context.WithValue(ctx, DisplayNameKey, claims.DisplayName)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

func UserIDFromContext(ctx context.Context) string {
	uid, _ := ctx.Value(UserIDKey).(string)
	return uid
}

func RoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(UserRoleKey).(string)
	return role
}

func DisplayNameFromContext(ctx context.Context) string {
	name, _ := ctx.Value(DisplayNameKey).(string)
	return name
}
