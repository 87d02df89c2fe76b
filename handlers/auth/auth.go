package auth

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/willowgate/school-api/model"
	"github.com/willowgate/school-api/services"
	authutil "github.com/willowgate/school-api/utils/auth"
	"github.com/willowgate/school-api/utils/middleware"
	"github.com/willowgate/school-api/utils/response"
	"github.com/willowgate/school-api/utils/validation"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService  *services.AuthService
	tokenManager *authutil.TokenManager
	validator    *validation.Validator
}

// NewAuthHandler creates an auth handler
func NewAuthHandler(authService *services.AuthService, tokenManager *authutil.TokenManager, v *validation.Validator) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		tokenManager: tokenManager,
		validator:    v,
	}
}

// LoginRequest accepts a username or email plus password
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AdminResponse is the admin identity shape returned by auth endpoints
type AdminResponse struct {
	ID        uint       `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

func adminResponse(admin *model.Admin) AdminResponse {
	return AdminResponse{
		ID:        admin.ID,
		Username:  admin.Username,
		Email:     admin.Email,
		Role:      admin.Role,
		LastLogin: admin.LastLogin,
	}
}

// Login authenticates an admin and issues a session token
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if fieldErrors := h.validator.Check(req); fieldErrors != nil {
		return response.ValidationFailed(c, fieldErrors)
	}

	admin, err := h.authService.Authenticate(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAccountLocked):
			return response.Locked(c, "Account is locked due to repeated failed logins")
		case errors.Is(err, services.ErrAccountDeactivated):
			return response.Unauthorized(c, response.CodeAccountDeactivated, "Account is deactivated")
		case errors.Is(err, services.ErrInvalidCredentials):
			return response.Unauthorized(c, response.CodeInvalidCredentials, "Invalid username or password")
		}
		return response.InternalServerError(c, "")
	}

	token, err := h.tokenManager.Issue(admin.ID, admin.Role)
	if err != nil {
		return response.InternalServerError(c, "Failed to issue token")
	}

	return response.Success(c, "Login successful", fiber.Map{
		"admin":     adminResponse(admin),
		"token":     token,
		"expiresIn": h.tokenManager.ExpirySeconds(),
	})
}

// VerifyToken confirms the caller's token resolves to a live account.
// The auth middleware already did the verification; this just reflects
// the identity back.
func (h *AuthHandler) VerifyToken(c *fiber.Ctx) error {
	admin, ok := middleware.GetAdmin(c)
	if !ok {
		return response.Unauthorized(c, response.CodeNoToken, "Authentication required")
	}
	return response.Success(c, "Token is valid", fiber.Map{"admin": adminResponse(admin)})
}

// Logout acknowledges the logout. Tokens are stateless and simply
// expire; the client discards its copy.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return response.Success(c, "Logged out successfully", nil)
}

// GetProfile returns the authenticated admin's account
func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	admin, ok := middleware.GetAdmin(c)
	if !ok {
		return response.Unauthorized(c, response.CodeNoToken, "Authentication required")
	}
	return response.Success(c, "Profile retrieved", fiber.Map{"admin": adminResponse(admin)})
}

// ChangePasswordRequest carries the current and replacement passwords
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=128"`
}

// ChangePassword verifies the current password and replaces the hash
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	admin, ok := middleware.GetAdmin(c)
	if !ok {
		return response.Unauthorized(c, response.CodeNoToken, "Authentication required")
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if fieldErrors := h.validator.Check(req); fieldErrors != nil {
		return response.ValidationFailed(c, fieldErrors)
	}

	if err := h.authService.ChangePassword(admin.ID, req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return response.Unauthorized(c, response.CodeInvalidCredentials, "Current password is incorrect")
		}
		return response.InternalServerError(c, "")
	}

	return response.Success(c, "Password changed successfully", nil)
}
