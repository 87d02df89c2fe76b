package contact

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/willowgate/school-api/model"
	"github.com/willowgate/school-api/services"
	"github.com/willowgate/school-api/utils/response"
	"github.com/willowgate/school-api/utils/validation"
)

// ContactHandler handles contact and tour inquiry endpoints
type ContactHandler struct {
	contacts  *services.ContactService
	email     *services.EmailService
	validator *validation.Validator
}

// NewContactHandler creates a contact handler
func NewContactHandler(contacts *services.ContactService, email *services.EmailService, v *validation.Validator) *ContactHandler {
	return &ContactHandler{
		contacts:  contacts,
		email:     email,
		validator: v,
	}
}

// CreateRequest is the public contact form schema
type CreateRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=150"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"omitempty,phone"`
	Subject     string `json:"subject" validate:"omitempty,max=200"`
	Message     string `json:"message" validate:"required,min=5,max=5000"`
	InquiryType string `json:"inquiry_type" validate:"omitempty,oneof=general admission tour fees"`
}

// Create handles the public contact form
func (h *ContactHandler) Create(c *fiber.Ctx) error {
	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if fieldErrors := h.validator.Check(req); fieldErrors != nil {
		return response.ValidationFailed(c, fieldErrors)
	}

	contact := model.Contact{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Subject:     req.Subject,
		MessageBody: req.Message,
		InquiryType: req.InquiryType,
	}

	if err := h.contacts.Create(&contact); err != nil {
		return response.InternalServerError(c, "")
	}

	h.email.NotifyContactReceived(&contact)

	return response.Created(c, "Inquiry submitted successfully", fiber.Map{"id": contact.ID})
}

// TourRequest is the campus tour convenience schema
type TourRequest struct {
	Name          string `json:"name" validate:"required,min=2,max=150"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required,phone"`
	PreferredDate string `json:"preferred_date" validate:"required"`
	PreferredTime string `json:"preferred_time" validate:"omitempty,max=50"`
	GroupSize     int    `json:"group_size" validate:"omitempty,gte=1,lte=50"`
	Message       string `json:"message" validate:"omitempty,max=5000"`
}

// CreateTour handles tour requests; they are contacts with the tour
// inquiry type and scheduling fields
func (h *ContactHandler) CreateTour(c *fiber.Ctx) error {
	var req TourRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if fieldErrors := h.validator.Check(req); fieldErrors != nil {
		return response.ValidationFailed(c, fieldErrors)
	}

	date, err := time.Parse("2006-01-02", req.PreferredDate)
	if err != nil {
		return response.ValidationFailed(c, []response.FieldError{
			{Field: "preferred_date", Message: "preferred_date must use the YYYY-MM-DD format"},
		})
	}

	body := req.Message
	if body == "" {
		body = "Campus tour request"
	}

	contact := model.Contact{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Subject:       "Campus tour request",
		MessageBody:   body,
		InquiryType:   model.InquiryTour,
		PreferredDate: &date,
		PreferredTime: req.PreferredTime,
		GroupSize:     req.GroupSize,
	}

	if err := h.contacts.Create(&contact); err != nil {
		return response.InternalServerError(c, "")
	}

	h.email.NotifyContactReceived(&contact)

	return response.Created(c, "Tour request submitted successfully", fiber.Map{"id": contact.ID})
}

// List returns inquiries for the admin panel
func (h *ContactHandler) List(c *fiber.Ctx) error {
	filter := services.ContactFilter{
		Status:      c.Query("status"),
		InquiryType: c.Query("inquiry_type"),
		Page:        c.QueryInt("page", 1),
		Limit:       c.QueryInt("limit", 10),
	}

	contacts, total, err := h.contacts.List(filter)
	if err != nil {
		return response.InternalServerError(c, "")
	}

	meta := response.CalculatePagination(filter.Page, filter.Limit, total)
	return response.Paginated(c, "Inquiries retrieved", contacts, meta)
}

// Stats returns the admin dashboard aggregates
func (h *ContactHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.contacts.Stats()
	if err != nil {
		return response.InternalServerError(c, "")
	}
	return response.Success(c, "Inquiry statistics retrieved", stats)
}

// Get returns one inquiry
func (h *ContactHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid inquiry id")
	}

	contact, err := h.contacts.Get(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrContactNotFound) {
			return response.NotFound(c, "Inquiry not found")
		}
		return response.InternalServerError(c, "")
	}

	return response.Success(c, "Inquiry retrieved", contact)
}

// UpdateStatusRequest carries an explicit status transition
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=contacted follow-up resolved"`
}

// UpdateStatus applies an explicit transition
func (h *ContactHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid inquiry id")
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if fieldErrors := h.validator.Check(req); fieldErrors != nil {
		return response.ValidationFailed(c, fieldErrors)
	}

	contact, err := h.contacts.UpdateStatus(uint(id), model.ContactStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrContactNotFound):
			return response.NotFound(c, "Inquiry not found")
		case errors.Is(err, services.ErrInvalidTransition):
			return response.BadRequest(c, "Status transition not allowed")
		}
		return response.InternalServerError(c, "")
	}

	return response.Success(c, "Inquiry status updated", contact)
}

// Delete removes an inquiry; the route is super_admin only
func (h *ContactHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid inquiry id")
	}

	if err := h.contacts.Delete(uint(id)); err != nil {
		if errors.Is(err, services.ErrContactNotFound) {
			return response.NotFound(c, "Inquiry not found")
		}
		return response.InternalServerError(c, "")
	}

	return response.Success(c, "Inquiry deleted", nil)
}
