package model

import (
	"time"

	"gorm.io/gorm"
)

// ContactStatus is the contact inquiry lifecycle state
type ContactStatus string

const (
	ContactNew       ContactStatus = "new"
	ContactContacted ContactStatus = "contacted"
	ContactFollowUp  ContactStatus = "follow-up"
	ContactResolved  ContactStatus = "resolved"
)

// Valid reports whether s is a known contact status
func (s ContactStatus) Valid() bool {
	switch s {
	case ContactNew, ContactContacted, ContactFollowUp, ContactResolved:
		return true
	}
	return false
}

// CanTransitionTo reports whether a status update may move from s to
// target: new -> contacted, contacted -> follow-up/resolved,
// follow-up -> contacted/resolved.
func (s ContactStatus) CanTransitionTo(target ContactStatus) bool {
	switch s {
	case ContactNew:
		return target == ContactContacted
	case ContactContacted:
		return target == ContactFollowUp || target == ContactResolved
	case ContactFollowUp:
		return target == ContactContacted || target == ContactResolved
	}
	return false
}

// Contact inquiry types
const (
	InquiryGeneral   = "general"
	InquiryAdmission = "admission"
	InquiryTour      = "tour"
	InquiryFees      = "fees"
)

// IsValidInquiryType reports whether t is a known inquiry type
func IsValidInquiryType(t string) bool {
	return t == InquiryGeneral || t == InquiryAdmission || t == InquiryTour || t == InquiryFees
}

// Contact is a contact form or campus tour inquiry
type Contact struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name        string `gorm:"not null" json:"name"`
	Email       string `gorm:"index;not null" json:"email"`
	Phone       string `json:"phone,omitempty"`
	Subject     string `json:"subject,omitempty"`
	MessageBody string `gorm:"type:text;not null" json:"message"`
	InquiryType string `gorm:"type:varchar(20);default:'general'" json:"inquiry_type"`

	// Tour requests only
	PreferredDate *time.Time `json:"preferred_date,omitempty"`
	PreferredTime string     `json:"preferred_time,omitempty"`
	GroupSize     int        `json:"group_size,omitempty"`

	Status ContactStatus `gorm:"type:varchar(20);default:'new'" json:"status"`

	// Stamped when the inquiry moves to contacted
	RespondedAt *time.Time `json:"responded_at,omitempty"`
}
