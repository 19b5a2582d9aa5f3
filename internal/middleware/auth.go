// Package middleware provides HTTP middleware components for the application.
// It covers bearer-token authentication and role gating for the fiber router.
package middleware

import (
	"strings"

	"estates/internal/models"
	"estates/internal/services/auth"
	"estates/internal/utils"

	"github.com/gofiber/fiber/v2"
)

const userContextKey = "user"

// AuthMiddleware resolves bearer tokens to users via the auth service and
// stores the user in the request context.
type AuthMiddleware struct {
	authService auth.Service
}

func NewAuthMiddleware(authService auth.Service) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Handler rejects requests without a valid bearer token for an active user.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	user, err := m.authService.Authenticate(bearerToken(c))
	if err != nil {
		return utils.DomainError(c, err)
	}

	c.Locals(userContextKey, user)
	return c.Next()
}

// OptionalHandler resolves the user when a valid token is present and lets
// anonymous requests through. Endpoints behind this decide per-user scoping
// from a possibly nil user.
func (m *AuthMiddleware) OptionalHandler(c *fiber.Ctx) error {
	if user := m.authService.AuthenticateOptional(bearerToken(c)); user != nil {
		c.Locals(userContextKey, user)
	}
	return c.Next()
}

// RequireRoles gates a route to the listed roles. It must run after Handler.
func (m *AuthMiddleware) RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := UserFromContext(c)
		if user == nil {
			return utils.Unauthorized(c, "not authenticated")
		}
		if err := m.authService.Authorize(user, roles...); err != nil {
			return utils.DomainError(c, err)
		}
		return c.Next()
	}
}

// UserFromContext returns the authenticated user, or nil on anonymous
// requests behind OptionalHandler.
func UserFromContext(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userContextKey).(*models.User)
	return user
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}
