package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/willowgate/school-api/model"
	"github.com/willowgate/school-api/services"
	"github.com/willowgate/school-api/utils/auth"
	"github.com/willowgate/school-api/utils/response"
)

// AuthMiddleware verifies bearer tokens and resolves the admin account
type AuthMiddleware struct {
	tokenManager *auth.TokenManager
	authService  *services.AuthService
}

// NewAuthMiddleware creates an auth middleware
func NewAuthMiddleware(tokenManager *auth.TokenManager, authService *services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		tokenManager: tokenManager,
		authService:  authService,
	}
}

// Required rejects requests without a valid token backed by a live,
// active account. Lockout is not re-checked here; that is a login-time
// policy only.
func (m *AuthMiddleware) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ok := bearerToken(c)
		if !ok {
			return response.Unauthorized(c, response.CodeNoToken, "Missing authorization token")
		}

		claims, err := m.tokenManager.Verify(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				return response.Unauthorized(c, response.CodeTokenExpired, "Token has expired")
			}
			return response.Unauthorized(c, response.CodeTokenInvalid, "Invalid token")
		}

		admin, err := m.authService.ResolveAccount(claims.AdminID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrAccountNotFound):
				return response.Unauthorized(c, response.CodeAccountNotFound, "Account no longer exists")
			case errors.Is(err, services.ErrAccountDeactivated):
				return response.Unauthorized(c, response.CodeAccountDeactivated, "Account is deactivated")
			}
			return response.InternalServerError(c, "")
		}

		c.Locals("admin_id", admin.ID)
		c.Locals("admin_role", admin.Role)
		c.Locals("admin", admin)

		return c.Next()
	}
}

// Optional resolves the identity when a valid token is present and
// treats a missing or invalid token as an anonymous caller. No error is
// ever raised from here.
func (m *AuthMiddleware) Optional() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ok := bearerToken(c)
		if !ok {
			return c.Next()
		}

		claims, err := m.tokenManager.Verify(tokenString)
		if err != nil {
			return c.Next()
		}

		admin, err := m.authService.ResolveAccount(claims.AdminID)
		if err != nil {
			return c.Next()
		}

		c.Locals("admin_id", admin.ID)
		c.Locals("admin_role", admin.Role)
		c.Locals("admin", admin)

		return c.Next()
	}
}

// RequireRole authorizes the resolved account. super_admin satisfies
// every role check; any other role must match exactly.
func (m *AuthMiddleware) RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		admin, ok := GetAdmin(c)
		if !ok {
			return response.Unauthorized(c, response.CodeNoToken, "Authentication required")
		}

		if !admin.HasRole(role) {
			return response.Forbidden(c, "")
		}

		return c.Next()
	}
}

// bearerToken extracts the token from the Authorization header
func bearerToken(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}

	return parts[1], true
}

// GetAdmin extracts the resolved admin account from context
func GetAdmin(c *fiber.Ctx) (*model.Admin, bool) {
	admin := c.Locals("admin")
	if admin == nil {
		return nil, false
	}
	a, ok := admin.(*model.Admin)
	return a, ok
}

// GetAdminID extracts the admin id from context
func GetAdminID(c *fiber.Ctx) (uint, bool) {
	id := c.Locals("admin_id")
	if id == nil {
		return 0, false
	}
	v, ok := id.(uint)
	return v, ok
}

// IsAdminRequest reports whether the request carries a resolved admin
// identity (used by optional-auth routes to unlock admin filters).
func IsAdminRequest(c *fiber.Ctx) bool {
	_, ok := GetAdmin(c)
	return ok
}
