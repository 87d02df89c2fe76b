package gallery

import (
	"errors"
	"io"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/willowgate/school-api/services"
	"github.com/willowgate/school-api/utils/middleware"
	"github.com/willowgate/school-api/utils/response"
	"github.com/willowgate/school-api/utils/validation"
)

// MaxUploadBytes caps gallery image uploads at 10 MB
const MaxUploadBytes = 10 << 20

// GalleryHandler handles gallery endpoints
type GalleryHandler struct {
	gallery   *services.GalleryService
	validator *validation.Validator
}

// NewGalleryHandler creates a gallery handler
func NewGalleryHandler(gallery *services.GalleryService, v *validation.Validator) *GalleryHandler {
	return &GalleryHandler{gallery: gallery, validator: v}
}

// List returns gallery items. Anonymous callers only see active items;
// a valid admin token unlocks inactive items via include_inactive.
func (h *GalleryHandler) List(c *fiber.Ctx) error {
	filter := services.GalleryFilter{
		Category:     c.Query("category"),
		FeaturedOnly: c.QueryBool("featured", false),
		Page:         c.QueryInt("page", 1),
		Limit:        c.QueryInt("limit", 10),
	}

	if middleware.IsAdminRequest(c) {
		filter.IncludeInactive = c.QueryBool("include_inactive", false)
	}

	items, total, err := h.gallery.List(filter)
	if err != nil {
		return response.InternalServerError(c, "")
	}

	meta := response.CalculatePagination(filter.Page, filter.Limit, total)
	return response.Paginated(c, "Gallery retrieved", items, meta)
}

// Get returns one item and counts the view
func (h *GalleryHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid gallery item id")
	}

	item, err := h.gallery.Get(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrGalleryItemNotFound) {
			return response.NotFound(c, "Gallery item not found")
		}
		return response.InternalServerError(c, "")
	}

	return response.Success(c, "Gallery item retrieved", item)
}

// Download counts a download and returns the delivery URL
func (h *GalleryHandler) Download(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid gallery item id")
	}

	item, err := h.gallery.RecordDownload(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrGalleryItemNotFound) {
			return response.NotFound(c, "Gallery item not found")
		}
		return response.InternalServerError(c, "")
	}

	return response.Success(c, "Download recorded", fiber.Map{
		"url":            item.SecureURL,
		"download_count": item.DownloadCount,
	})
}

// uploadMeta validates the multipart form fields accompanying an upload
type uploadMeta struct {
	Title         string `validate:"required,min=2,max=200"`
	Description   string `validate:"omitempty,max=2000"`
	AltText       string `validate:"omitempty,max=300"`
	Category      string `validate:"required,oneof=campus events sports arts classes"`
	EventLocation string `validate:"omitempty,max=200"`
}

// Upload stores a new image: remote asset first, record second
func (h *GalleryHandler) Upload(c *fiber.Ctx) error {
	admin, ok := middleware.GetAdmin(c)
	if !ok {
		return response.Unauthorized(c, response.CodeNoToken, "Authentication required")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return response.ValidationFailed(c, []response.FieldError{
			{Field: "image", Message: "image file is required"},
		})
	}
	if fileHeader.Size > MaxUploadBytes {
		return response.ValidationFailed(c, []response.FieldError{
			{Field: "image", Message: "image must be at most 10 MB"},
		})
	}

	meta := uploadMeta{
		Title:         c.FormValue("title"),
		Description:   c.FormValue("description"),
		AltText:       c.FormValue("alt_text"),
		Category:      c.FormValue("category"),
		EventLocation: c.FormValue("event_location"),
	}
	if fieldErrors := h.validator.Check(meta); fieldErrors != nil {
		return response.ValidationFailed(c, fieldErrors)
	}

	upload := services.GalleryUpload{
		Title:         validation.Sanitize(meta.Title),
		Description:   validation.Sanitize(meta.Description),
		AltText:       validation.Sanitize(meta.AltText),
		Category:      meta.Category,
		EventLocation: validation.Sanitize(meta.EventLocation),
		IsFeatured:    c.FormValue("featured") == "true",
	}

	if tags := c.FormValue("tags"); tags != "" {
		upload.Tags = splitTags(tags)
	}
	if order := c.FormValue("display_order"); order != "" {
		if n, err := strconv.Atoi(order); err == nil {
			upload.DisplayOrder = n
		}
	}
	if dateStr := c.FormValue("event_date"); dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return response.ValidationFailed(c, []response.FieldError{
				{Field: "event_date", Message: "event_date must use the YYYY-MM-DD format"},
			})
		}
		upload.EventDate = &date
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.InternalServerError(c, "Failed to read upload")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return response.InternalServerError(c, "Failed to read upload")
	}

	contentType := fileHeader.Header.Get("Content-Type")

	item, err := h.gallery.Upload(c.Context(), data, contentType, upload, admin.ID)
	if err != nil {
		if errors.Is(err, services.ErrMediaUnavailable) {
			return response.Error(c, fiber.StatusServiceUnavailable, response.CodeUpstreamError, "Media storage is not configured")
		}
		return response.Error(c, fiber.StatusBadGateway, response.CodeUpstreamError, "Failed to store image")
	}

	return response.Created(c, "Gallery item created", item)
}

// UpdateRequest carries admin-editable metadata; absent fields are left
// untouched
type UpdateRequest struct {
	Title         *string  `json:"title" validate:"omitempty,min=2,max=200"`
	Description   *string  `json:"description" validate:"omitempty,max=2000"`
	AltText       *string  `json:"alt_text" validate:"omitempty,max=300"`
	Category      *string  `json:"category" validate:"omitempty,oneof=campus events sports arts classes"`
	Tags          []string `json:"tags" validate:"omitempty,dive,max=50"`
	EventDate     *string  `json:"event_date" validate:"omitempty"`
	EventLocation *string  `json:"event_location" validate:"omitempty,max=200"`
	IsActive      *bool    `json:"is_active"`
	IsFeatured    *bool    `json:"is_featured"`
	DisplayOrder  *int     `json:"display_order" validate:"omitempty,gte=0"`
}

// Update applies admin edits to a gallery item
func (h *GalleryHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid gallery item id")
	}

	var req UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if fieldErrors := h.validator.Check(req); fieldErrors != nil {
		return response.ValidationFailed(c, fieldErrors)
	}

	update := services.GalleryUpdate{
		Title:         req.Title,
		Description:   req.Description,
		AltText:       req.AltText,
		Category:      req.Category,
		Tags:          req.Tags,
		EventLocation: req.EventLocation,
		IsActive:      req.IsActive,
		IsFeatured:    req.IsFeatured,
		DisplayOrder:  req.DisplayOrder,
	}

	if req.EventDate != nil {
		date, err := time.Parse("2006-01-02", *req.EventDate)
		if err != nil {
			return response.ValidationFailed(c, []response.FieldError{
				{Field: "event_date", Message: "event_date must use the YYYY-MM-DD format"},
			})
		}
		update.EventDate = &date
	}

	item, err := h.gallery.Update(uint(id), update)
	if err != nil {
		if errors.Is(err, services.ErrGalleryItemNotFound) {
			return response.NotFound(c, "Gallery item not found")
		}
		return response.InternalServerError(c, "")
	}

	return response.Success(c, "Gallery item updated", item)
}

// Delete removes the record and best-effort deletes the remote asset
func (h *GalleryHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid gallery item id")
	}

	if err := h.gallery.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrGalleryItemNotFound) {
			return response.NotFound(c, "Gallery item not found")
		}
		return response.InternalServerError(c, "")
	}

	return response.Success(c, "Gallery item deleted", nil)
}

func splitTags(raw string) []string {
	var tags []string
	start := 0
	for i := 0; i <= len(raw); i++ {
		if i == len(raw) || raw[i] == ',' {
			tag := validation.Sanitize(raw[start:i])
			if tag != "" {
				tags = append(tags, tag)
			}
			start = i + 1
		}
	}
	return tags
}
