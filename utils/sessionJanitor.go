package utils

import (
	"fmt"
	"goldloan/config"
	"goldloan/database"
	"goldloan/models"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// logJanitor logs janitor events with timestamp
func logJanitor(message string) {
	log.Printf("[SESSION-JANITOR %s] %s", time.Now().Format(time.RFC3339), message)
}

// purgeStaleSessions deletes in-progress sessions that were abandoned before
// any appraiser confirmed them. Completed sessions are kept for audit.
func purgeStaleSessions() {
	db := database.Database.Db
	cutoff := time.Now().Add(-time.Duration(config.AppConfig.SessionTTLHours) * time.Hour)

	result := db.Where("status = ? AND updated_at < ?", models.SessionStatusInProgress, cutoff).
		Delete(&models.AppraisalSession{})
	if result.Error != nil {
		logJanitor("Error purging stale sessions: " + result.Error.Error())
		return
	}
	if result.RowsAffected > 0 {
		logJanitor(fmt.Sprintf("Purged %d stale sessions", result.RowsAffected))
	}
}

// StartSessionJanitor schedules the hourly stale-session purge
func StartSessionJanitor() *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("@hourly", purgeStaleSessions); err != nil {
		log.Fatalf("Failed to schedule session janitor: %v", err)
	}

	c.Start()
	logJanitor("Session janitor started (hourly)")
	return c
}
