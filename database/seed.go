package database

import (
	"errors"
	"log"

	"github.com/willowgate/school-api/config"
	"github.com/willowgate/school-api/model"
	"github.com/willowgate/school-api/utils/auth"
	"gorm.io/gorm"
)

// SeedDefaultAdmin creates the bootstrap super admin account if no admin
// exists yet. Skipped when BOOTSTRAP_ADMIN_PASSWORD is not set.
func SeedDefaultAdmin(db *gorm.DB, cfg *config.Config) error {
	var existing model.Admin
	err := db.First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if cfg.BootstrapPassword == "" {
		log.Println("No admin accounts exist and BOOTSTRAP_ADMIN_PASSWORD is not set; skipping seed")
		return nil
	}

	hash, err := auth.HashPassword(cfg.BootstrapPassword)
	if err != nil {
		return err
	}

	admin := model.Admin{
		Username:     cfg.BootstrapUsername,
		Email:        cfg.BootstrapEmail,
		PasswordHash: hash,
		Role:         model.RoleSuperAdmin,
		IsActive:     true,
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("Seeded default super admin account %q", admin.Username)
	return nil
}
