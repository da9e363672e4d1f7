package database

import (
	"database/sql"
	"fmt"
)

// LatestExamPercentage invokes the stored get_latest_exam_percentage
// function. The raw result is normalized here, at the store boundary:
// a NULL or unscannable value comes back as nil rather than leaking a
// driver-specific shape into the aggregator's fallback chain.
func (s *PostgresStore) LatestExamPercentage(studentID string) (*float64, error) {
	query := `SELECT get_latest_exam_percentage($1)`

	var pct sql.NullFloat64
	err := s.db.QueryRow(query, studentID).Scan(&pct)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to call get_latest_exam_percentage: %w", err)
	}
	if !pct.Valid {
		return nil, nil
	}
	return &pct.Float64, nil
}

// LatestExamSummary reads the denormalized per-student summary row.
// Missing row or NULL percentage comes back as nil, not an error.
func (s *PostgresStore) LatestExamSummary(studentID string) (*float64, error) {
	query := `SELECT percentage FROM student_latest_exam_summary WHERE student_id = $1`

	var pct sql.NullFloat64
	err := s.db.QueryRow(query, studentID).Scan(&pct)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest exam summary: %w", err)
	}
	if !pct.Valid {
		return nil, nil
	}
	return &pct.Float64, nil
}
