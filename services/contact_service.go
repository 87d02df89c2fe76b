package services

import (
	"errors"
	"time"

	"github.com/willowgate/school-api/model"
	"gorm.io/gorm"
)

var ErrContactNotFound = errors.New("contact inquiry not found")

// ContactService manages contact and tour inquiries
type ContactService struct {
	db *gorm.DB
}

// NewContactService creates a contact service
func NewContactService(db *gorm.DB) *ContactService {
	return &ContactService{db: db}
}

// Create stores a public inquiry; status always starts new
func (s *ContactService) Create(contact *model.Contact) error {
	contact.Status = model.ContactNew
	if contact.InquiryType == "" {
		contact.InquiryType = model.InquiryGeneral
	}
	return s.db.Create(contact).Error
}

// ContactFilter narrows the admin list view
type ContactFilter struct {
	Status      string
	InquiryType string
	Page        int
	Limit       int
}

// List returns inquiries matching the filter, newest first
func (s *ContactService) List(filter ContactFilter) ([]model.Contact, int64, error) {
	query := s.db.Model(&model.Contact{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.InquiryType != "" {
		query = query.Where("inquiry_type = ?", filter.InquiryType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit := normalizePage(filter.Page, filter.Limit)

	var contacts []model.Contact
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&contacts).Error
	return contacts, total, err
}

// Get returns one inquiry by id. Unlike messages there is no fetch-time
// status transition.
func (s *ContactService) Get(id uint) (*model.Contact, error) {
	var contact model.Contact
	if err := s.db.First(&contact, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return &contact, nil
}

// UpdateStatus applies an explicit transition. Moving to contacted
// stamps the response date in the same update.
func (s *ContactService) UpdateStatus(id uint, status model.ContactStatus) (*model.Contact, error) {
	contact, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if !contact.Status.CanTransitionTo(status) {
		return nil, ErrInvalidTransition
	}

	updates := map[string]interface{}{"status": status}
	if status == model.ContactContacted && contact.RespondedAt == nil {
		now := time.Now()
		updates["responded_at"] = now
		contact.RespondedAt = &now
	}

	if err := s.db.Model(contact).Updates(updates).Error; err != nil {
		return nil, err
	}
	contact.Status = status
	return contact, nil
}

// Delete removes an inquiry (route restricted to super_admin)
func (s *ContactService) Delete(id uint) error {
	result := s.db.Delete(&model.Contact{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrContactNotFound
	}
	return nil
}

// ContactStats aggregates counts for the admin dashboard
type ContactStats struct {
	Total        int64            `json:"total"`
	ByStatus     map[string]int64 `json:"by_status"`
	ByInquiry    map[string]int64 `json:"by_inquiry_type"`
	TourRequests int64            `json:"tour_requests"`
}

// Stats computes dashboard counts
func (s *ContactService) Stats() (*ContactStats, error) {
	stats := &ContactStats{
		ByStatus:  map[string]int64{},
		ByInquiry: map[string]int64{},
	}

	if err := s.db.Model(&model.Contact{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	type row struct {
		Key   string
		Count int64
	}

	var statusRows []row
	err := s.db.Model(&model.Contact{}).
		Select("status AS key, COUNT(*) AS count").
		Group("status").
		Scan(&statusRows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range statusRows {
		stats.ByStatus[r.Key] = r.Count
	}

	var inquiryRows []row
	err = s.db.Model(&model.Contact{}).
		Select("inquiry_type AS key, COUNT(*) AS count").
		Group("inquiry_type").
		Scan(&inquiryRows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range inquiryRows {
		stats.ByInquiry[r.Key] = r.Count
	}
	stats.TourRequests = stats.ByInquiry[model.InquiryTour]

	return stats, nil
}
