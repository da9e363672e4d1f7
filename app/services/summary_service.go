package services

import (
	"database/sql"
	"fmt"
	"log"
)

// RefreshLatestExamSummaries recomputes the denormalized per-student
// summary rows from the live mark data. The summary table is the
// second source the performance aggregator consults, so a stale row
// only costs a fallback, never a wrong figure.
func RefreshLatestExamSummaries(db *sql.DB) error {
	query := `
		INSERT INTO student_latest_exam_summary (student_id, exam_type, percentage, updated_at)
		SELECT
			s.id,
			(SELECT exam_type FROM marks WHERE student_id = s.id ORDER BY updated_at DESC LIMIT 1),
			get_latest_exam_percentage(s.id),
			NOW()
		FROM students s
		WHERE EXISTS (SELECT 1 FROM marks m WHERE m.student_id = s.id)
		ON CONFLICT (student_id) DO UPDATE
		SET exam_type = EXCLUDED.exam_type,
			percentage = EXCLUDED.percentage,
			updated_at = NOW()
	`

	result, err := db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to refresh exam summaries: %w", err)
	}

	if rows, err := result.RowsAffected(); err == nil {
		log.Printf("Refreshed latest exam summaries for %d students", rows)
	}
	return nil
}
