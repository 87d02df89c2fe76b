package services

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/willowgate/school-api/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrAlreadySubscribed  = errors.New("email is already subscribed")
	ErrSubscriberNotFound = errors.New("subscriber not found")
)

// NewsletterService manages newsletter subscriptions
type NewsletterService struct {
	db *gorm.DB
}

// NewNewsletterService creates a newsletter service
func NewNewsletterService(db *gorm.DB) *NewsletterService {
	return &NewsletterService{db: db}
}

// Subscribe activates a subscription for the email. A previously
// unsubscribed or bounced address reactivates its original record,
// keeping the historical send/open/click counters. An already active
// address is a conflict.
func (s *NewsletterService) Subscribe(email, name string, preferences []string) (*model.NewsletterSubscriber, error) {
	prefs, err := marshalPreferences(preferences)
	if err != nil {
		return nil, err
	}

	var existing model.NewsletterSubscriber
	err = s.db.Where("LOWER(email) = LOWER(?)", email).First(&existing).Error
	if err == nil {
		if existing.Status == model.SubscriberActive {
			return nil, ErrAlreadySubscribed
		}

		updates := map[string]interface{}{
			"status":          model.SubscriberActive,
			"subscribed_at":   time.Now(),
			"unsubscribed_at": nil,
		}
		if name != "" {
			updates["name"] = name
		}
		if preferences != nil {
			updates["preferences"] = prefs
		}
		if err := s.db.Model(&existing).Updates(updates).Error; err != nil {
			return nil, err
		}
		existing.Status = model.SubscriberActive
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	sub := model.NewsletterSubscriber{
		Email:        email,
		Name:         name,
		Preferences:  prefs,
		Status:       model.SubscriberActive,
		SubscribedAt: time.Now(),
	}
	if err := s.db.Create(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// Unsubscribe marks the subscription unsubscribed. The record is never
// deleted by the public API.
func (s *NewsletterService) Unsubscribe(email string) (*model.NewsletterSubscriber, error) {
	var sub model.NewsletterSubscriber
	if err := s.db.Where("LOWER(email) = LOWER(?)", email).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriberNotFound
		}
		return nil, err
	}

	now := time.Now()
	err := s.db.Model(&sub).Updates(map[string]interface{}{
		"status":          model.SubscriberUnsubscribed,
		"unsubscribed_at": now,
	}).Error
	if err != nil {
		return nil, err
	}

	sub.Status = model.SubscriberUnsubscribed
	sub.UnsubscribedAt = &now
	return &sub, nil
}

// UpdatePreferences replaces the topic preference tags for an email
func (s *NewsletterService) UpdatePreferences(email string, preferences []string) (*model.NewsletterSubscriber, error) {
	var sub model.NewsletterSubscriber
	if err := s.db.Where("LOWER(email) = LOWER(?)", email).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriberNotFound
		}
		return nil, err
	}

	prefs, err := marshalPreferences(preferences)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(&sub).Update("preferences", prefs).Error; err != nil {
		return nil, err
	}
	sub.Preferences = prefs
	return &sub, nil
}

// SubscriberFilter narrows the admin list view
type SubscriberFilter struct {
	Status string
	Page   int
	Limit  int
}

// List returns subscribers matching the filter, newest first
func (s *NewsletterService) List(filter SubscriberFilter) ([]model.NewsletterSubscriber, int64, error) {
	query := s.db.Model(&model.NewsletterSubscriber{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit := normalizePage(filter.Page, filter.Limit)

	var subs []model.NewsletterSubscriber
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&subs).Error
	return subs, total, err
}

// NewsletterStats aggregates counts for the admin dashboard
type NewsletterStats struct {
	Total        int64 `json:"total"`
	Active       int64 `json:"active"`
	Unsubscribed int64 `json:"unsubscribed"`
	Bounced      int64 `json:"bounced"`
	ThisMonth    int64 `json:"subscribed_this_month"`
}

// Stats computes dashboard counts
func (s *NewsletterService) Stats() (*NewsletterStats, error) {
	stats := &NewsletterStats{}

	if err := s.db.Model(&model.NewsletterSubscriber{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	counts := map[model.SubscriberStatus]*int64{
		model.SubscriberActive:       &stats.Active,
		model.SubscriberUnsubscribed: &stats.Unsubscribed,
		model.SubscriberBounced:      &stats.Bounced,
	}
	for status, dest := range counts {
		err := s.db.Model(&model.NewsletterSubscriber{}).
			Where("status = ?", status).
			Count(dest).Error
		if err != nil {
			return nil, err
		}
	}

	monthStart := time.Date(time.Now().Year(), time.Now().Month(), 1, 0, 0, 0, 0, time.UTC)
	err := s.db.Model(&model.NewsletterSubscriber{}).
		Where("subscribed_at >= ?", monthStart).
		Count(&stats.ThisMonth).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func marshalPreferences(preferences []string) (datatypes.JSON, error) {
	if preferences == nil {
		return nil, nil
	}
	data, err := json.Marshal(preferences)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}
