package main

import (
	"log"

	"github.com/yahamanand-svg/School/app/config"
	"github.com/yahamanand-svg/School/app/database"
	"github.com/yahamanand-svg/School/app/services"
)

// Runs migrations without starting the server, then backfills the
// summary table so the aggregator's second source is warm.
func main() {
	config.Load()
	db := config.GetDB()
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	if err := services.RefreshLatestExamSummaries(db); err != nil {
		log.Fatal("Failed to refresh exam summaries:", err)
	}

	log.Println("Migration completed successfully")
}
