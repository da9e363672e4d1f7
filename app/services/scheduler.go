package services

import (
	"database/sql"
	"log"
	"time"
)

// StartScheduler runs background maintenance tasks.
func StartScheduler(db *sql.DB) {
	go func() {
		log.Println("Scheduler started...")
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			now := time.Now()

			// Refresh the summary table nightly at 00:30.
			if now.Hour() == 0 && now.Minute() == 30 {
				log.Println("Triggering scheduled tasks [00:30]...")

				if err := RefreshLatestExamSummaries(db); err != nil {
					log.Printf("Error refreshing exam summaries: %v", err)
				}
			}
		}
	}()
}
