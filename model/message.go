package model

import (
	"time"

	"gorm.io/gorm"
)

// MessageStatus is the contact message lifecycle state
type MessageStatus string

const (
	MessageUnread   MessageStatus = "unread"
	MessageRead     MessageStatus = "read"
	MessageReplied  MessageStatus = "replied"
	MessageResolved MessageStatus = "resolved"
)

// Valid reports whether s is a known message status
func (s MessageStatus) Valid() bool {
	switch s {
	case MessageUnread, MessageRead, MessageReplied, MessageResolved:
		return true
	}
	return false
}

// CanTransitionTo reports whether a status update may move from s to
// target. unread -> read happens automatically on first admin fetch;
// replied is reachable only through the respond operation; any state may
// be resolved explicitly.
func (s MessageStatus) CanTransitionTo(target MessageStatus) bool {
	if target == MessageResolved {
		return true
	}
	switch s {
	case MessageUnread:
		return target == MessageRead
	case MessageRead, MessageReplied:
		return target == MessageRead
	}
	return false
}

// Message categories
const (
	MessageCategoryGeneral    = "general"
	MessageCategoryAdmissions = "admissions"
	MessageCategoryAcademics  = "academics"
	MessageCategoryComplaint  = "complaint"
	MessageCategoryOther      = "other"
)

// IsValidMessageCategory reports whether c is a known message category
func IsValidMessageCategory(c string) bool {
	switch c {
	case MessageCategoryGeneral, MessageCategoryAdmissions, MessageCategoryAcademics,
		MessageCategoryComplaint, MessageCategoryOther:
		return true
	}
	return false
}

// Message priorities
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

// IsValidPriority reports whether p is a known message priority
func IsValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityNormal || p == PriorityHigh
}

// Message is a message submitted through the site's message form
type Message struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"index;not null" json:"email"`
	Phone    string `json:"phone,omitempty"`
	Subject  string `gorm:"not null" json:"subject"`
	Body     string `gorm:"type:text;not null" json:"body"`
	Category string `gorm:"type:varchar(20);default:'general'" json:"category"`
	Priority string `gorm:"type:varchar(10);default:'normal'" json:"priority"`

	Status MessageStatus `gorm:"type:varchar(20);default:'unread'" json:"status"`

	// Respond operation sets these three and the status in one update
	Response      string     `gorm:"type:text" json:"response,omitempty"`
	RespondedByID *uint      `json:"responded_by,omitempty"`
	RespondedAt   *time.Time `json:"responded_at,omitempty"`
}
