package newsletter

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/willowgate/school-api/services"
	"github.com/willowgate/school-api/utils/response"
	"github.com/willowgate/school-api/utils/validation"
)

// NewsletterHandler handles newsletter subscription endpoints
type NewsletterHandler struct {
	newsletter *services.NewsletterService
	email      *services.EmailService
	validator  *validation.Validator
}

// NewNewsletterHandler creates a newsletter handler
func NewNewsletterHandler(newsletter *services.NewsletterService, email *services.EmailService, v *validation.Validator) *NewsletterHandler {
	return &NewsletterHandler{
		newsletter: newsletter,
		email:      email,
		validator:  v,
	}
}

// SubscribeRequest is the public subscription schema
type SubscribeRequest struct {
	Email       string   `json:"email" validate:"required,email"`
	Name        string   `json:"name" validate:"omitempty,max=150"`
	Preferences []string `json:"preferences" validate:"omitempty,dive,max=50"`
}

// Subscribe activates a subscription, reactivating a previously
// unsubscribed record for the same email
func (h *NewsletterHandler) Subscribe(c *fiber.Ctx) error {
	var req SubscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if fieldErrors := h.validator.Check(req); fieldErrors != nil {
		return response.ValidationFailed(c, fieldErrors)
	}

	sub, err := h.newsletter.Subscribe(req.Email, req.Name, req.Preferences)
	if err != nil {
		if errors.Is(err, services.ErrAlreadySubscribed) {
			return response.Conflict(c, response.CodeAlreadySubscribed, "This email is already subscribed")
		}
		return response.InternalServerError(c, "")
	}

	h.email.NotifyNewsletterWelcome(sub)

	return response.Created(c, "Subscribed successfully", fiber.Map{
		"email":  sub.Email,
		"status": sub.Status,
	})
}

// UnsubscribeRequest identifies the subscription by email
type UnsubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Unsubscribe marks the subscription unsubscribed
func (h *NewsletterHandler) Unsubscribe(c *fiber.Ctx) error {
	var req UnsubscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if fieldErrors := h.validator.Check(req); fieldErrors != nil {
		return response.ValidationFailed(c, fieldErrors)
	}

	sub, err := h.newsletter.Unsubscribe(req.Email)
	if err != nil {
		if errors.Is(err, services.ErrSubscriberNotFound) {
			return response.NotFound(c, "Subscription not found")
		}
		return response.InternalServerError(c, "")
	}

	return response.Success(c, "Unsubscribed successfully", fiber.Map{
		"email":  sub.Email,
		"status": sub.Status,
	})
}

// PreferencesRequest replaces the topic preference tags for an email
type PreferencesRequest struct {
	Email       string   `json:"email" validate:"required,email"`
	Preferences []string `json:"preferences" validate:"required,dive,max=50"`
}

// UpdatePreferences replaces the subscriber's topic tags
func (h *NewsletterHandler) UpdatePreferences(c *fiber.Ctx) error {
	var req PreferencesRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if fieldErrors := h.validator.Check(req); fieldErrors != nil {
		return response.ValidationFailed(c, fieldErrors)
	}

	sub, err := h.newsletter.UpdatePreferences(req.Email, req.Preferences)
	if err != nil {
		if errors.Is(err, services.ErrSubscriberNotFound) {
			return response.NotFound(c, "Subscription not found")
		}
		return response.InternalServerError(c, "")
	}

	return response.Success(c, "Preferences updated", sub)
}

// List returns subscribers for the admin panel
func (h *NewsletterHandler) List(c *fiber.Ctx) error {
	filter := services.SubscriberFilter{
		Status: c.Query("status"),
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", 10),
	}

	subs, total, err := h.newsletter.List(filter)
	if err != nil {
		return response.InternalServerError(c, "")
	}

	meta := response.CalculatePagination(filter.Page, filter.Limit, total)
	return response.Paginated(c, "Subscribers retrieved", subs, meta)
}

// Stats returns the admin dashboard aggregates
func (h *NewsletterHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.newsletter.Stats()
	if err != nil {
		return response.InternalServerError(c, "")
	}
	return response.Success(c, "Newsletter statistics retrieved", stats)
}
