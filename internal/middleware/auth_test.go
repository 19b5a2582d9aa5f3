package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	apperrors "estates/internal/errors"
	"estates/internal/models"
	"estates/internal/services/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuthService resolves tokens from a fixed map. Only the authentication
// methods are exercised by the middleware.
type fakeAuthService struct {
	users map[string]*models.User
}

func (s *fakeAuthService) Signup(email, password, role string) (*auth.SignupResult, error) {
	return nil, nil
}

func (s *fakeAuthService) Login(email, password string) (*models.User, string, error) {
	return nil, "", nil
}

func (s *fakeAuthService) VerifyEmail(token string) (*models.User, time.Time, error) {
	return nil, time.Time{}, nil
}

func (s *fakeAuthService) ResendVerification(email string) (*auth.SignupResult, error) {
	return nil, nil
}

func (s *fakeAuthService) Authenticate(tokenStr string) (*models.User, error) {
	if user, ok := s.users[tokenStr]; ok {
		return user, nil
	}
	return nil, apperrors.New(apperrors.ErrUnauthenticated.Code, "invalid token")
}

func (s *fakeAuthService) AuthenticateOptional(tokenStr string) *models.User {
	return s.users[tokenStr]
}

func (s *fakeAuthService) Authorize(user *models.User, allowedRoles ...string) error {
	for _, role := range allowedRoles {
		if user.Role == role {
			return nil
		}
	}
	return apperrors.New(apperrors.ErrForbidden.Code, "insufficient role")
}

func tokenUser(id uint, role string) *models.User {
	u := &models.User{Role: role, Active: true}
	u.ID = id
	return u
}

func newGatedApp() *fiber.App {
	m := NewAuthMiddleware(&fakeAuthService{users: map[string]*models.User{
		"owner-token":     tokenUser(1, models.RoleOwner),
		"manager-token":   tokenUser(2, models.RoleManager),
		"caretaker-token": tokenUser(3, models.RoleCaretaker),
		"viewer-token":    tokenUser(4, models.RoleViewer),
	}})

	ok := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }

	app := fiber.New()
	app.Get("/properties/1", m.Handler, ok)
	app.Patch("/properties/1", m.Handler, m.RequireRoles(models.RoleOwner, models.RoleManager), ok)
	app.Post("/leases", m.Handler, m.RequireRoles(models.RoleOwner, models.RoleManager), ok)
	app.Post("/maintenance", m.Handler, m.RequireRoles(models.RoleOwner, models.RoleManager, models.RoleCaretaker), ok)
	app.Patch("/open/properties/1", m.OptionalHandler, m.RequireRoles(models.RoleOwner, models.RoleManager), ok)
	app.Get("/open/properties", m.OptionalHandler, ok)
	return app
}

func request(t *testing.T, app *fiber.App, method, path, token string) int {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestHandler(t *testing.T) {
	app := newGatedApp()

	assert.Equal(t, fiber.StatusUnauthorized, request(t, app, "GET", "/properties/1", ""))
	assert.Equal(t, fiber.StatusUnauthorized, request(t, app, "GET", "/properties/1", "garbage"))
	assert.Equal(t, fiber.StatusOK, request(t, app, "GET", "/properties/1", "viewer-token"))
}

func TestRequireRoles(t *testing.T) {
	app := newGatedApp()

	t.Run("viewer cannot patch a property", func(t *testing.T) {
		assert.Equal(t, fiber.StatusForbidden, request(t, app, "PATCH", "/properties/1", "viewer-token"))
		assert.Equal(t, fiber.StatusOK, request(t, app, "PATCH", "/properties/1", "manager-token"))
	})

	t.Run("caretaker cannot create a lease", func(t *testing.T) {
		assert.Equal(t, fiber.StatusForbidden, request(t, app, "POST", "/leases", "caretaker-token"))
		assert.Equal(t, fiber.StatusForbidden, request(t, app, "POST", "/leases", "viewer-token"))
		assert.Equal(t, fiber.StatusOK, request(t, app, "POST", "/leases", "owner-token"))
	})

	t.Run("caretaker can file maintenance, viewer cannot", func(t *testing.T) {
		assert.Equal(t, fiber.StatusOK, request(t, app, "POST", "/maintenance", "caretaker-token"))
		assert.Equal(t, fiber.StatusForbidden, request(t, app, "POST", "/maintenance", "viewer-token"))
	})
}

func TestOptionalHandler(t *testing.T) {
	app := newGatedApp()

	t.Run("anonymous reads pass through", func(t *testing.T) {
		assert.Equal(t, fiber.StatusOK, request(t, app, "GET", "/open/properties", ""))
	})

	t.Run("role gate still rejects anonymous writes", func(t *testing.T) {
		assert.Equal(t, fiber.StatusUnauthorized, request(t, app, "PATCH", "/open/properties/1", ""))
		assert.Equal(t, fiber.StatusForbidden, request(t, app, "PATCH", "/open/properties/1", "viewer-token"))
		assert.Equal(t, fiber.StatusOK, request(t, app, "PATCH", "/open/properties/1", "owner-token"))
	})
}

func TestUserFromContext(t *testing.T) {
	app := fiber.New()
	m := NewAuthMiddleware(&fakeAuthService{users: map[string]*models.User{
		"owner-token": tokenUser(1, models.RoleOwner),
	}})

	var seen *models.User
	app.Get("/", m.OptionalHandler, func(c *fiber.Ctx) error {
		seen = UserFromContext(c)
		return c.SendStatus(fiber.StatusOK)
	})

	request(t, app, "GET", "/", "")
	assert.Nil(t, seen)

	request(t, app, "GET", "/", "owner-token")
	require.NotNil(t, seen)
	assert.Equal(t, uint(1), seen.ID)
}
