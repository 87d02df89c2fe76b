package services

import (
	"errors"
	"time"

	"github.com/willowgate/school-api/config"
	"github.com/willowgate/school-api/model"
	"github.com/willowgate/school-api/utils/auth"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountLocked      = errors.New("account is locked")
	ErrAccountDeactivated = errors.New("account is deactivated")
	ErrAccountNotFound    = errors.New("account not found")
)

// AuthService implements login, account resolution and password changes
type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewAuthService creates an auth service
func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

// Authenticate verifies a username-or-email plus password pair.
//
// The lockout check runs before the password comparison so a locked
// account fails the same way with or without the correct password. Every
// failed attempt durably increments the failure counter; crossing the
// configured threshold sets the lockout flag. A successful login resets
// the counter and stamps last login before returning.
func (s *AuthService) Authenticate(usernameOrEmail, password string) (*model.Admin, error) {
	var admin model.Admin
	err := s.db.
		Where("LOWER(username) = LOWER(?) OR LOWER(email) = LOWER(?)", usernameOrEmail, usernameOrEmail).
		First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if admin.IsLocked {
		return nil, ErrAccountLocked
	}
	if !admin.IsActive {
		return nil, ErrAccountDeactivated
	}

	if err := auth.VerifyPassword(admin.PasswordHash, password); err != nil {
		admin.RegisterFailedLogin(s.cfg.MaxLoginAttempts, time.Now())
		if err := s.db.Model(&admin).Updates(map[string]interface{}{
			"failed_login_attempts": admin.FailedLoginAttempts,
			"is_locked":             admin.IsLocked,
			"locked_at":             admin.LockedAt,
		}).Error; err != nil {
			return nil, err
		}
		return nil, ErrInvalidCredentials
	}

	admin.RegisterSuccessfulLogin(time.Now())
	if err := s.db.Model(&admin).Updates(map[string]interface{}{
		"failed_login_attempts": 0,
		"is_locked":             false,
		"locked_at":             nil,
		"last_login":            admin.LastLogin,
	}).Error; err != nil {
		return nil, err
	}

	return &admin, nil
}

// ResolveAccount loads the account behind a verified token. Lockout is
// deliberately not re-checked here: it is a login-time policy only, so a
// session already in use is not cut off mid-flight.
func (s *AuthService) ResolveAccount(adminID uint) (*model.Admin, error) {
	var admin model.Admin
	if err := s.db.First(&admin, adminID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	if !admin.IsActive {
		return nil, ErrAccountDeactivated
	}

	return &admin, nil
}

// ChangePassword verifies the current password and stores a new hash
func (s *AuthService) ChangePassword(adminID uint, currentPassword, newPassword string) error {
	var admin model.Admin
	if err := s.db.First(&admin, adminID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotFound
		}
		return err
	}

	if err := auth.VerifyPassword(admin.PasswordHash, currentPassword); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.db.Model(&admin).Update("password_hash", hash).Error
}

// ReleaseExpiredLockouts unlocks accounts whose lockout has outlived the
// configured duration. Called from the maintenance cron job.
func (s *AuthService) ReleaseExpiredLockouts() (int64, error) {
	cutoff := time.Now().Add(-s.cfg.LockoutDuration)
	result := s.db.Model(&model.Admin{}).
		Where("is_locked = ? AND locked_at < ?", true, cutoff).
		Updates(map[string]interface{}{
			"is_locked":             false,
			"locked_at":             nil,
			"failed_login_attempts": 0,
		})
	return result.RowsAffected, result.Error
}
