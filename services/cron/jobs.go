package cron

import (
	"log"
	"time"

	"github.com/willowgate/school-api/model"
)

// ReleaseExpiredLockouts clears lockouts older than the configured
// duration so locked admins regain access without manual intervention.
func (m *CronManager) ReleaseExpiredLockouts() {
	released, err := m.authService.ReleaseExpiredLockouts()
	if err != nil {
		m.logJobError("release_expired_lockouts", err)
		return
	}
	if released > 0 {
		log.Printf("[CRON] Released %d expired account lockouts", released)
	}
}

// LogDailySubmissionCounts logs yesterday's public submission volume per
// entity for lightweight operational visibility.
func (m *CronManager) LogDailySubmissionCounts() {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -1)
	dayEnd := dayStart.AddDate(0, 0, 1)

	counts := map[string]interface{}{
		"applications": &model.Application{},
		"messages":     &model.Message{},
		"contacts":     &model.Contact{},
		"subscribers":  &model.NewsletterSubscriber{},
	}

	for name, entity := range counts {
		var count int64
		err := m.db.Model(entity).
			Where("created_at >= ? AND created_at < ?", dayStart, dayEnd).
			Count(&count).Error
		if err != nil {
			m.logJobError("daily_submission_report", err)
			continue
		}
		log.Printf("[CRON] %s submitted on %s: %d", name, dayStart.Format("2006-01-02"), count)
	}
}
