package model

import (
	"time"

	"gorm.io/gorm"
)

// Admin roles
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// Admin represents an admin panel account
type Admin struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"` // Never expose password in JSON
	Role         string `gorm:"type:varchar(20);default:'admin'" json:"role"`

	IsActive            bool       `gorm:"default:true" json:"is_active"`
	IsLocked            bool       `gorm:"default:false" json:"is_locked"`
	FailedLoginAttempts int        `gorm:"default:0" json:"-"`
	LockedAt            *time.Time `json:"-"`
	LastLogin           *time.Time `json:"last_login,omitempty"`
}

// IsValidRole reports whether role is one of the known admin roles
func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleSuperAdmin
}

// HasRole reports whether the account satisfies the required role.
// super_admin satisfies every role check; any other role must match exactly.
func (a *Admin) HasRole(required string) bool {
	if a.Role == RoleSuperAdmin {
		return true
	}
	return a.Role == required
}

// RegisterFailedLogin increments the failure counter and returns true if
// the account crossed the lockout threshold with this attempt.
func (a *Admin) RegisterFailedLogin(threshold int, now time.Time) bool {
	a.FailedLoginAttempts++
	if !a.IsLocked && a.FailedLoginAttempts >= threshold {
		a.IsLocked = true
		a.LockedAt = &now
		return true
	}
	return false
}

// RegisterSuccessfulLogin resets the failure counter and stamps last login
func (a *Admin) RegisterSuccessfulLogin(now time.Time) {
	a.FailedLoginAttempts = 0
	a.IsLocked = false
	a.LockedAt = nil
	a.LastLogin = &now
}
