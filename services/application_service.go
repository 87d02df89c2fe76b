package services

import (
	"errors"
	"time"

	"github.com/willowgate/school-api/config"
	"github.com/willowgate/school-api/model"
	"gorm.io/gorm"
)

var (
	ErrDuplicateApplication = errors.New("an application with this email was submitted recently")
	ErrApplicationNotFound  = errors.New("application not found")
)

// ApplicationService manages admissions applications
type ApplicationService struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewApplicationService creates an application service
func NewApplicationService(db *gorm.DB, cfg *config.Config) *ApplicationService {
	return &ApplicationService{db: db, cfg: cfg}
}

// Create stores a public submission. The guardian email is checked
// against the trailing duplicate window first; the application number is
// assigned from the per-year counter inside the same transaction. The
// status always starts at pending regardless of the request payload.
func (s *ApplicationService) Create(app *model.Application) error {
	var count int64
	since := time.Now().Add(-s.cfg.DuplicateWindow)
	err := s.db.Model(&model.Application{}).
		Where("guardian_email = ? AND created_at > ?", app.GuardianEmail, since).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateApplication
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		seq, err := nextApplicationSeq(tx, time.Now().Year())
		if err != nil {
			return err
		}

		app.ApplicationNumber = model.FormatApplicationNumber(time.Now().Year(), seq)
		app.Status = model.ApplicationPending
		return tx.Create(app).Error
	})
}

// nextApplicationSeq atomically increments and returns the sequence for
// the given year. A single upsert keeps concurrent submissions from ever
// sharing a number.
func nextApplicationSeq(tx *gorm.DB, year int) (int, error) {
	var seq int
	err := tx.Raw(`
		INSERT INTO application_counters (year, seq) VALUES (?, 1)
		ON CONFLICT (year) DO UPDATE SET seq = application_counters.seq + 1
		RETURNING seq`, year).Scan(&seq).Error
	return seq, err
}

// ApplicationFilter narrows the admin list view
type ApplicationFilter struct {
	Status  string
	Program string
	Search  string
	Page    int
	Limit   int
}

// List returns applications matching the filter, newest first
func (s *ApplicationService) List(filter ApplicationFilter) ([]model.Application, int64, error) {
	query := s.db.Model(&model.Application{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Program != "" {
		query = query.Where("program = ?", filter.Program)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where(
			"first_name ILIKE ? OR last_name ILIKE ? OR guardian_email ILIKE ? OR application_number ILIKE ?",
			like, like, like, like,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit := normalizePage(filter.Page, filter.Limit)

	var apps []model.Application
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&apps).Error
	return apps, total, err
}

// Get returns one application by id
func (s *ApplicationService) Get(id uint) (*model.Application, error) {
	var app model.Application
	if err := s.db.First(&app, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

// UpdateStatus records a reviewer-attributed status change. Any of the
// four statuses is accepted from any source state; the reviewer id,
// notes and server timestamp land in the same update as the status.
func (s *ApplicationService) UpdateStatus(id uint, status model.ApplicationStatus, reviewerID uint, notes string) (*model.Application, error) {
	app, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":         status,
		"reviewed_by_id": reviewerID,
		"review_notes":   notes,
		"reviewed_at":    now,
	}
	if err := s.db.Model(app).Updates(updates).Error; err != nil {
		return nil, err
	}

	app.Status = status
	app.ReviewedByID = &reviewerID
	app.ReviewNotes = notes
	app.ReviewedAt = &now
	return app, nil
}

// Delete removes an application (route restricted to super_admin)
func (s *ApplicationService) Delete(id uint) error {
	result := s.db.Delete(&model.Application{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

// ApplicationStats aggregates counts for the admin dashboard
type ApplicationStats struct {
	Total     int64            `json:"total"`
	ByStatus  map[string]int64 `json:"by_status"`
	ByProgram map[string]int64 `json:"by_program"`
	ThisMonth int64            `json:"this_month"`
}

// Stats computes dashboard counts with grouped aggregate queries
func (s *ApplicationService) Stats() (*ApplicationStats, error) {
	stats := &ApplicationStats{
		ByStatus:  map[string]int64{},
		ByProgram: map[string]int64{},
	}

	if err := s.db.Model(&model.Application{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	type row struct {
		Key   string
		Count int64
	}

	var statusRows []row
	err := s.db.Model(&model.Application{}).
		Select("status AS key, COUNT(*) AS count").
		Group("status").
		Scan(&statusRows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range statusRows {
		stats.ByStatus[r.Key] = r.Count
	}

	var programRows []row
	err = s.db.Model(&model.Application{}).
		Select("program AS key, COUNT(*) AS count").
		Group("program").
		Scan(&programRows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range programRows {
		stats.ByProgram[r.Key] = r.Count
	}

	monthStart := time.Date(time.Now().Year(), time.Now().Month(), 1, 0, 0, 0, 0, time.UTC)
	err = s.db.Model(&model.Application{}).
		Where("created_at >= ?", monthStart).
		Count(&stats.ThisMonth).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
