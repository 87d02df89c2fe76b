package model

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ApplicationStatus is the admissions application lifecycle state
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationReview   ApplicationStatus = "review"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// Valid reports whether s is a known application status
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationPending, ApplicationReview, ApplicationApproved, ApplicationRejected:
		return true
	}
	return false
}

// CanTransitionTo reports whether the strict state machine allows moving
// from s to target (pending -> review/approved/rejected, review ->
// approved/rejected). The status update operation does NOT enforce this:
// it accepts any valid target from any source, matching the site's
// current behavior. Kept here so the looseness is visible and tested.
func (s ApplicationStatus) CanTransitionTo(target ApplicationStatus) bool {
	switch s {
	case ApplicationPending:
		return target == ApplicationReview || target == ApplicationApproved || target == ApplicationRejected
	case ApplicationReview:
		return target == ApplicationApproved || target == ApplicationRejected
	}
	return false
}

// Admission programs
const (
	ProgramPrimary   = "primary"
	ProgramSecondary = "secondary"
	ProgramSixthForm = "sixth_form"
)

// IsValidProgram reports whether p is a known admission program
func IsValidProgram(p string) bool {
	return p == ProgramPrimary || p == ProgramSecondary || p == ProgramSixthForm
}

// Application is an admissions application submitted through the site
type Application struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Assigned exactly once at creation, never recomputed
	ApplicationNumber string `gorm:"uniqueIndex;not null" json:"application_number"`

	// Student identity and demographics
	FirstName   string     `gorm:"not null" json:"first_name"`
	LastName    string     `gorm:"not null" json:"last_name"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Gender      string     `json:"gender,omitempty"`
	Nationality string     `json:"nationality,omitempty"`

	// Guardian contact
	GuardianName  string `gorm:"not null" json:"guardian_name"`
	GuardianEmail string `gorm:"index;not null" json:"guardian_email"`
	GuardianPhone string `gorm:"not null" json:"guardian_phone"`
	Address       string `json:"address,omitempty"`

	Program         string `gorm:"type:varchar(20);not null" json:"program"`
	PreviousSchool  string `json:"previous_school,omitempty"`
	SchoolHistory   string `gorm:"type:text" json:"school_history,omitempty"`
	AdditionalNotes string `gorm:"type:text" json:"additional_notes,omitempty"`

	Status ApplicationStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`

	// Review attribution, set together in one update
	ReviewedByID *uint      `json:"reviewed_by,omitempty"`
	ReviewNotes  string     `gorm:"type:text" json:"review_notes,omitempty"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty"`
}

// ApplicationCounter holds the per-year application number sequence
type ApplicationCounter struct {
	Year int `gorm:"primaryKey"`
	Seq  int `gorm:"not null"`
}

// FormatApplicationNumber builds the public application number from the
// creation year and the per-year sequence, e.g. WG20250001.
func FormatApplicationNumber(year, seq int) string {
	return fmt.Sprintf("WG%d%04d", year, seq)
}
