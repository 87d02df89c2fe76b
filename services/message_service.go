package services

import (
	"errors"
	"time"

	"github.com/willowgate/school-api/model"
	"gorm.io/gorm"
)

var (
	ErrMessageNotFound   = errors.New("message not found")
	ErrInvalidTransition = errors.New("status transition not allowed")
)

// MessageService manages messages from the site's message form
type MessageService struct {
	db *gorm.DB
}

// NewMessageService creates a message service
func NewMessageService(db *gorm.DB) *MessageService {
	return &MessageService{db: db}
}

// Create stores a public submission; status always starts unread
func (s *MessageService) Create(msg *model.Message) error {
	msg.Status = model.MessageUnread
	if msg.Category == "" {
		msg.Category = model.MessageCategoryGeneral
	}
	if msg.Priority == "" {
		msg.Priority = model.PriorityNormal
	}
	return s.db.Create(msg).Error
}

// MessageFilter narrows the admin list view
type MessageFilter struct {
	Status   string
	Category string
	Priority string
	Page     int
	Limit    int
}

// List returns messages matching the filter, newest first
func (s *MessageService) List(filter MessageFilter) ([]model.Message, int64, error) {
	query := s.db.Model(&model.Message{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit := normalizePage(filter.Page, filter.Limit)

	var msgs []model.Message
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&msgs).Error
	return msgs, total, err
}

// Get returns one message and marks it read on its first admin fetch
func (s *MessageService) Get(id uint) (*model.Message, error) {
	var msg model.Message
	if err := s.db.First(&msg, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}

	if msg.Status == model.MessageUnread {
		if err := s.db.Model(&msg).Update("status", model.MessageRead).Error; err != nil {
			return nil, err
		}
		msg.Status = model.MessageRead
	}

	return &msg, nil
}

// UpdateStatus applies an explicit transition. replied is reachable only
// through Respond.
func (s *MessageService) UpdateStatus(id uint, status model.MessageStatus) (*model.Message, error) {
	var msg model.Message
	if err := s.db.First(&msg, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}

	if status == model.MessageReplied || !msg.Status.CanTransitionTo(status) {
		return nil, ErrInvalidTransition
	}

	if err := s.db.Model(&msg).Update("status", status).Error; err != nil {
		return nil, err
	}
	msg.Status = status
	return &msg, nil
}

// Respond stores the response text, the responding admin and a server
// timestamp, and forces the status to replied, all in one update.
// Calling it again overwrites the previous response; there is no
// already-responded guard.
func (s *MessageService) Respond(id uint, responderID uint, responseText string) (*model.Message, error) {
	var msg model.Message
	if err := s.db.First(&msg, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"response":        responseText,
		"responded_by_id": responderID,
		"responded_at":    now,
		"status":          model.MessageReplied,
	}
	if err := s.db.Model(&msg).Updates(updates).Error; err != nil {
		return nil, err
	}

	msg.Response = responseText
	msg.RespondedByID = &responderID
	msg.RespondedAt = &now
	msg.Status = model.MessageReplied
	return &msg, nil
}

// Delete removes a message (route restricted to super_admin)
func (s *MessageService) Delete(id uint) error {
	result := s.db.Delete(&model.Message{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

// MessageStats aggregates counts for the admin dashboard
type MessageStats struct {
	Total      int64            `json:"total"`
	ByStatus   map[string]int64 `json:"by_status"`
	ByCategory map[string]int64 `json:"by_category"`
	Unread     int64            `json:"unread"`
}

// Stats computes dashboard counts
func (s *MessageService) Stats() (*MessageStats, error) {
	stats := &MessageStats{
		ByStatus:   map[string]int64{},
		ByCategory: map[string]int64{},
	}

	if err := s.db.Model(&model.Message{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	type row struct {
		Key   string
		Count int64
	}

	var statusRows []row
	err := s.db.Model(&model.Message{}).
		Select("status AS key, COUNT(*) AS count").
		Group("status").
		Scan(&statusRows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range statusRows {
		stats.ByStatus[r.Key] = r.Count
	}
	stats.Unread = stats.ByStatus[string(model.MessageUnread)]

	var categoryRows []row
	err = s.db.Model(&model.Message{}).
		Select("category AS key, COUNT(*) AS count").
		Group("category").
		Scan(&categoryRows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range categoryRows {
		stats.ByCategory[r.Key] = r.Count
	}

	return stats, nil
}
