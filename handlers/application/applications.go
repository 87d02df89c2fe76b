package application

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/willowgate/school-api/model"
	"github.com/willowgate/school-api/services"
	"github.com/willowgate/school-api/utils/middleware"
	"github.com/willowgate/school-api/utils/response"
	"github.com/willowgate/school-api/utils/validation"
)

// ApplicationHandler handles admissions application endpoints
type ApplicationHandler struct {
	applications *services.ApplicationService
	email        *services.EmailService
	validator    *validation.Validator
}

// NewApplicationHandler creates an application handler
func NewApplicationHandler(applications *services.ApplicationService, email *services.EmailService, v *validation.Validator) *ApplicationHandler {
	return &ApplicationHandler{
		applications: applications,
		email:        email,
		validator:    v,
	}
}

// CreateRequest is the public submission schema. Unknown fields are
// dropped by decoding; a caller-supplied status is ignored entirely.
type CreateRequest struct {
	FirstName       string `json:"first_name" validate:"required,min=2,max=100"`
	LastName        string `json:"last_name" validate:"required,min=2,max=100"`
	DateOfBirth     string `json:"date_of_birth" validate:"omitempty"`
	Gender          string `json:"gender" validate:"omitempty,max=20"`
	Nationality     string `json:"nationality" validate:"omitempty,max=100"`
	GuardianName    string `json:"guardian_name" validate:"required,min=2,max=150"`
	GuardianEmail   string `json:"guardian_email" validate:"required,email"`
	GuardianPhone   string `json:"guardian_phone" validate:"required,phone"`
	Address         string `json:"address" validate:"omitempty,max=500"`
	Program         string `json:"program" validate:"required,oneof=primary secondary sixth_form"`
	PreviousSchool  string `json:"previous_school" validate:"omitempty,max=200"`
	SchoolHistory   string `json:"school_history" validate:"omitempty,max=5000"`
	AdditionalNotes string `json:"additional_notes" validate:"omitempty,max=5000"`
}

// Create handles the public submission endpoint
func (h *ApplicationHandler) Create(c *fiber.Ctx) error {
	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if fieldErrors := h.validator.Check(req); fieldErrors != nil {
		return response.ValidationFailed(c, fieldErrors)
	}

	app := model.Application{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Gender:          req.Gender,
		Nationality:     req.Nationality,
		GuardianName:    req.GuardianName,
		GuardianEmail:   req.GuardianEmail,
		GuardianPhone:   req.GuardianPhone,
		Address:         req.Address,
		Program:         req.Program,
		PreviousSchool:  req.PreviousSchool,
		SchoolHistory:   req.SchoolHistory,
		AdditionalNotes: req.AdditionalNotes,
	}

	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return response.ValidationFailed(c, []response.FieldError{
				{Field: "date_of_birth", Message: "date_of_birth must use the YYYY-MM-DD format"},
			})
		}
		app.DateOfBirth = &dob
	}

	if err := h.applications.Create(&app); err != nil {
		if errors.Is(err, services.ErrDuplicateApplication) {
			return response.Conflict(c, response.CodeDuplicateApplication,
				"An application with this email was already submitted in the last 30 days")
		}
		return response.InternalServerError(c, "")
	}

	h.email.NotifyApplicationReceived(&app)

	return response.Created(c, "Application submitted successfully", fiber.Map{
		"application_number": app.ApplicationNumber,
		"status":             app.Status,
	})
}

// List returns applications for the admin panel
func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	filter := services.ApplicationFilter{
		Status:  c.Query("status"),
		Program: c.Query("program"),
		Search:  c.Query("search"),
		Page:    c.QueryInt("page", 1),
		Limit:   c.QueryInt("limit", 10),
	}

	apps, total, err := h.applications.List(filter)
	if err != nil {
		return response.InternalServerError(c, "")
	}

	meta := response.CalculatePagination(filter.Page, filter.Limit, total)
	return response.Paginated(c, "Applications retrieved", apps, meta)
}

// Stats returns the admin dashboard aggregates
func (h *ApplicationHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.applications.Stats()
	if err != nil {
		return response.InternalServerError(c, "")
	}
	return response.Success(c, "Application statistics retrieved", stats)
}

// Get returns one application
func (h *ApplicationHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid application id")
	}

	app, err := h.applications.Get(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrApplicationNotFound) {
			return response.NotFound(c, "Application not found")
		}
		return response.InternalServerError(c, "")
	}

	return response.Success(c, "Application retrieved", app)
}

// UpdateStatusRequest carries the reviewer's decision
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending review approved rejected"`
	Notes  string `json:"notes" validate:"omitempty,max=5000"`
}

// UpdateStatus records a reviewer-attributed status change and notifies
// the guardian
func (h *ApplicationHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid application id")
	}

	admin, ok := middleware.GetAdmin(c)
	if !ok {
		return response.Unauthorized(c, response.CodeNoToken, "Authentication required")
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if fieldErrors := h.validator.Check(req); fieldErrors != nil {
		return response.ValidationFailed(c, fieldErrors)
	}

	app, err := h.applications.UpdateStatus(uint(id), model.ApplicationStatus(req.Status), admin.ID, req.Notes)
	if err != nil {
		if errors.Is(err, services.ErrApplicationNotFound) {
			return response.NotFound(c, "Application not found")
		}
		return response.InternalServerError(c, "")
	}

	h.email.NotifyApplicationStatus(app)

	return response.Success(c, "Application status updated", app)
}

// Delete removes an application; the route is super_admin only
func (h *ApplicationHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid application id")
	}

	if err := h.applications.Delete(uint(id)); err != nil {
		if errors.Is(err, services.ErrApplicationNotFound) {
			return response.NotFound(c, "Application not found")
		}
		return response.InternalServerError(c, "")
	}

	return response.Success(c, "Application deleted", nil)
}
