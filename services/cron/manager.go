package cron

import (
	"log"

	"github.com/robfig/cron/v3"
	"github.com/willowgate/school-api/config"
	"github.com/willowgate/school-api/services"
	"gorm.io/gorm"
)

// CronManager manages the scheduled maintenance jobs
type CronManager struct {
	cron        *cron.Cron
	db          *gorm.DB
	cfg         *config.Config
	authService *services.AuthService
}

// NewCronManager creates a new cron manager
func NewCronManager(db *gorm.DB, cfg *config.Config, authService *services.AuthService) *CronManager {
	return &CronManager{
		cron:        cron.New(),
		db:          db,
		cfg:         cfg,
		authService: authService,
	}
}

// Start registers and starts all jobs
func (m *CronManager) Start() error {
	log.Println("Starting cron jobs...")

	// Every 10 minutes: release account lockouts that outlived the
	// configured lockout duration
	_, err := m.cron.AddFunc("*/10 * * * *", func() {
		m.logJobStart("release_expired_lockouts")
		m.ReleaseExpiredLockouts()
	})
	if err != nil {
		return err
	}

	// Daily at 02:00: log yesterday's public submission counts
	_, err = m.cron.AddFunc("0 2 * * *", func() {
		m.logJobStart("daily_submission_report")
		m.LogDailySubmissionCounts()
	})
	if err != nil {
		return err
	}

	m.cron.Start()
	log.Println("Cron jobs started successfully")
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (m *CronManager) Stop() {
	log.Println("Stopping cron jobs...")
	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Println("Cron jobs stopped")
}

func (m *CronManager) logJobStart(name string) {
	log.Printf("[CRON] Starting job: %s", name)
}

func (m *CronManager) logJobError(name string, err error) {
	log.Printf("[CRON] Job %s failed: %v", name, err)
}
