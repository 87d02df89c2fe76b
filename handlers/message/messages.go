package message

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/willowgate/school-api/model"
	"github.com/willowgate/school-api/services"
	"github.com/willowgate/school-api/utils/middleware"
	"github.com/willowgate/school-api/utils/response"
	"github.com/willowgate/school-api/utils/validation"
)

// MessageHandler handles message endpoints
type MessageHandler struct {
	messages  *services.MessageService
	email     *services.EmailService
	validator *validation.Validator
}

// NewMessageHandler creates a message handler
func NewMessageHandler(messages *services.MessageService, email *services.EmailService, v *validation.Validator) *MessageHandler {
	return &MessageHandler{
		messages:  messages,
		email:     email,
		validator: v,
	}
}

// CreateRequest is the public message form schema
type CreateRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"omitempty,phone"`
	Subject  string `json:"subject" validate:"required,min=2,max=200"`
	Body     string `json:"body" validate:"required,min=5,max=5000"`
	Category string `json:"category" validate:"omitempty,oneof=general admissions academics complaint other"`
	Priority string `json:"priority" validate:"omitempty,oneof=low normal high"`
}

// Create handles the public submission endpoint
func (h *MessageHandler) Create(c *fiber.Ctx) error {
	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if fieldErrors := h.validator.Check(req); fieldErrors != nil {
		return response.ValidationFailed(c, fieldErrors)
	}

	msg := model.Message{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Subject:  req.Subject,
		Body:     req.Body,
		Category: req.Category,
		Priority: req.Priority,
	}

	if err := h.messages.Create(&msg); err != nil {
		return response.InternalServerError(c, "")
	}

	return response.Created(c, "Message sent successfully", fiber.Map{"id": msg.ID})
}

// List returns messages for the admin panel
func (h *MessageHandler) List(c *fiber.Ctx) error {
	filter := services.MessageFilter{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Priority: c.Query("priority"),
		Page:     c.QueryInt("page", 1),
		Limit:    c.QueryInt("limit", 10),
	}

	msgs, total, err := h.messages.List(filter)
	if err != nil {
		return response.InternalServerError(c, "")
	}

	meta := response.CalculatePagination(filter.Page, filter.Limit, total)
	return response.Paginated(c, "Messages retrieved", msgs, meta)
}

// Stats returns the admin dashboard aggregates
func (h *MessageHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.messages.Stats()
	if err != nil {
		return response.InternalServerError(c, "")
	}
	return response.Success(c, "Message statistics retrieved", stats)
}

// Get returns one message; an unread message becomes read here
func (h *MessageHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid message id")
	}

	msg, err := h.messages.Get(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrMessageNotFound) {
			return response.NotFound(c, "Message not found")
		}
		return response.InternalServerError(c, "")
	}

	return response.Success(c, "Message retrieved", msg)
}

// UpdateStatusRequest carries an explicit status transition
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=read replied resolved"`
}

// UpdateStatus applies an explicit transition
func (h *MessageHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid message id")
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if fieldErrors := h.validator.Check(req); fieldErrors != nil {
		return response.ValidationFailed(c, fieldErrors)
	}

	msg, err := h.messages.UpdateStatus(uint(id), model.MessageStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMessageNotFound):
			return response.NotFound(c, "Message not found")
		case errors.Is(err, services.ErrInvalidTransition):
			return response.BadRequest(c, "Status transition not allowed")
		}
		return response.InternalServerError(c, "")
	}

	return response.Success(c, "Message status updated", msg)
}

// RespondRequest carries the admin's reply text
type RespondRequest struct {
	Response string `json:"response" validate:"required,min=2,max=5000"`
}

// Respond stores the reply, attributes it to the caller and emails the
// original sender
func (h *MessageHandler) Respond(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid message id")
	}

	admin, ok := middleware.GetAdmin(c)
	if !ok {
		return response.Unauthorized(c, response.CodeNoToken, "Authentication required")
	}

	var req RespondRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if fieldErrors := h.validator.Check(req); fieldErrors != nil {
		return response.ValidationFailed(c, fieldErrors)
	}

	msg, err := h.messages.Respond(uint(id), admin.ID, req.Response)
	if err != nil {
		if errors.Is(err, services.ErrMessageNotFound) {
			return response.NotFound(c, "Message not found")
		}
		return response.InternalServerError(c, "")
	}

	h.email.NotifyMessageReply(msg)

	return response.Success(c, "Response sent", msg)
}

// Delete removes a message; the route is super_admin only
func (h *MessageHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid message id")
	}

	if err := h.messages.Delete(uint(id)); err != nil {
		if errors.Is(err, services.ErrMessageNotFound) {
			return response.NotFound(c, "Message not found")
		}
		return response.InternalServerError(c, "")
	}

	return response.Success(c, "Message deleted", nil)
}
