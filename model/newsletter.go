package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SubscriberStatus is the newsletter subscription lifecycle state
type SubscriberStatus string

const (
	SubscriberActive       SubscriberStatus = "active"
	SubscriberUnsubscribed SubscriberStatus = "unsubscribed"
	SubscriberBounced      SubscriberStatus = "bounced"
)

// Valid reports whether s is a known subscriber status
func (s SubscriberStatus) Valid() bool {
	switch s {
	case SubscriberActive, SubscriberUnsubscribed, SubscriberBounced:
		return true
	}
	return false
}

// NewsletterSubscriber is a newsletter subscription. Email is globally
// unique: re-subscribing an unsubscribed address reactivates the same
// record and preserves its counters.
type NewsletterSubscriber struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Email       string         `gorm:"uniqueIndex;not null" json:"email"`
	Name        string         `json:"name,omitempty"`
	Preferences datatypes.JSON `gorm:"type:jsonb" json:"preferences,omitempty"`

	Status SubscriberStatus `gorm:"type:varchar(20);default:'active'" json:"status"`

	SubscribedAt   time.Time  `json:"subscribed_at"`
	UnsubscribedAt *time.Time `json:"unsubscribed_at,omitempty"`

	SendCount  int `gorm:"default:0" json:"send_count"`
	OpenCount  int `gorm:"default:0" json:"open_count"`
	ClickCount int `gorm:"default:0" json:"click_count"`
}
