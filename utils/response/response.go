package response

import (
	"github.com/gofiber/fiber/v2"
)

// Error codes shared across the API
const (
	CodeValidation           = "VALIDATION_ERROR"
	CodeNoToken              = "NO_TOKEN"
	CodeTokenInvalid         = "TOKEN_INVALID"
	CodeTokenExpired         = "TOKEN_EXPIRED"
	CodeAccountNotFound      = "ACCOUNT_NOT_FOUND"
	CodeAccountDeactivated   = "ACCOUNT_DEACTIVATED"
	CodeAccountLocked        = "ACCOUNT_LOCKED"
	CodeInvalidCredentials   = "INVALID_CREDENTIALS"
	CodeInsufficientRole     = "INSUFFICIENT_PERMISSIONS"
	CodeDuplicateApplication = "DUPLICATE_APPLICATION"
	CodeDuplicateEmail       = "DUPLICATE_EMAIL"
	CodeAlreadySubscribed    = "ALREADY_SUBSCRIBED"
	CodeNotFound             = "NOT_FOUND"
	CodeRateLimitExceeded    = "RATE_LIMIT_EXCEEDED"
	CodeUpstreamError        = "UPSTREAM_ERROR"
	CodeBadRequest           = "BAD_REQUEST"
	CodeInternalError        = "INTERNAL_ERROR"
)

// Envelope is the uniform API response shape
type Envelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    interface{}  `json:"data,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
	Code    string       `json:"code,omitempty"`
}

// FieldError identifies one violated field in a validation failure
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Success returns a 200 response
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Created returns a 201 response
func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error returns an error response with a code
func Error(c *fiber.Ctx, statusCode int, code, message string) error {
	return c.Status(statusCode).JSON(Envelope{
		Success: false,
		Message: message,
		Code:    code,
	})
}

// ValidationFailed returns a 400 with every violated field enumerated
func ValidationFailed(c *fiber.Ctx, errors []FieldError) error {
	return c.Status(fiber.StatusBadRequest).JSON(Envelope{
		Success: false,
		Message: "Validation failed",
		Errors:  errors,
		Code:    CodeValidation,
	})
}

// BadRequest returns a 400 response
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, CodeBadRequest, message)
}

// Unauthorized returns a 401 response
func Unauthorized(c *fiber.Ctx, code, message string) error {
	if message == "" {
		message = "Unauthorized access"
	}
	return Error(c, fiber.StatusUnauthorized, code, message)
}

// Forbidden returns a 403 response
func Forbidden(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Insufficient permissions"
	}
	return Error(c, fiber.StatusForbidden, CodeInsufficientRole, message)
}

// NotFound returns a 404 response
func NotFound(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Resource not found"
	}
	return Error(c, fiber.StatusNotFound, CodeNotFound, message)
}

// Conflict returns a 409 response
func Conflict(c *fiber.Ctx, code, message string) error {
	return Error(c, fiber.StatusConflict, code, message)
}

// Locked returns a 423 response for locked accounts
func Locked(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Account is locked"
	}
	return Error(c, fiber.StatusLocked, CodeAccountLocked, message)
}

// TooManyRequests returns a 429 response
func TooManyRequests(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Too many requests. Please try again later."
	}
	return Error(c, fiber.StatusTooManyRequests, CodeRateLimitExceeded, message)
}

// InternalServerError returns a 500 response. Detail is included only
// outside production; pass "" to omit.
func InternalServerError(c *fiber.Ctx, detail string) error {
	message := "Internal server error"
	if detail != "" {
		message = detail
	}
	return Error(c, fiber.StatusInternalServerError, CodeInternalError, message)
}

// PaginationMeta describes one page of a list response
type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
}

// PaginatedData wraps list items with pagination metadata inside Data
type PaginatedData struct {
	Items      interface{}    `json:"items"`
	Pagination PaginationMeta `json:"pagination"`
}

// Paginated returns a 200 list response with pagination metadata
func Paginated(c *fiber.Ctx, message string, items interface{}, meta PaginationMeta) error {
	return Success(c, message, PaginatedData{Items: items, Pagination: meta})
}

// CalculatePagination normalizes page/limit and computes page counts
func CalculatePagination(page, limit int, total int64) PaginationMeta {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	totalPages := int(total) / limit
	if int(total)%limit > 0 {
		totalPages++
	}

	return PaginationMeta{
		CurrentPage: page,
		PerPage:     limit,
		Total:       total,
		TotalPages:  totalPages,
	}
}
