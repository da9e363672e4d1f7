package database

import (
	"database/sql"
	"fmt"
	"log"
)

// RunMigrations creates the schema the academic-records core needs.
// Statements are idempotent so the app can run them on every start.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto`,

		`CREATE TABLE IF NOT EXISTS class_sections (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(10) NOT NULL,
			section VARCHAR(5) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (name, section)
		)`,

		`CREATE TABLE IF NOT EXISTS subjects (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(100) UNIQUE NOT NULL,
			code VARCHAR(20) NOT NULL,
			applicable_from_class INT NOT NULL,
			applicable_to_class INT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS students (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			admission_id VARCHAR(50) UNIQUE NOT NULL,
			name VARCHAR(200) NOT NULL,
			email VARCHAR(200),
			phone VARCHAR(20),
			class_name VARCHAR(10) NOT NULL,
			section VARCHAR(5) NOT NULL,
			class_section_id UUID REFERENCES class_sections(id),
			father_name VARCHAR(200),
			password VARCHAR(200) NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'active',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS teachers (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			teacher_id VARCHAR(50) UNIQUE NOT NULL,
			name VARCHAR(200) NOT NULL,
			email VARCHAR(200) UNIQUE NOT NULL,
			phone VARCHAR(20),
			password VARCHAR(200) NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS admins (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email VARCHAR(200) UNIQUE NOT NULL,
			name VARCHAR(200) NOT NULL,
			password VARCHAR(200) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS teacher_class_sections (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			teacher_id UUID NOT NULL REFERENCES teachers(id) ON DELETE CASCADE,
			class_section_id UUID NOT NULL REFERENCES class_sections(id),
			subject_id UUID NOT NULL REFERENCES subjects(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (teacher_id, class_section_id, subject_id)
		)`,

		// Students are never hard-deleted while marks reference them:
		// the FK has no cascade, so deletes are blocked by the store.
		`CREATE TABLE IF NOT EXISTS marks (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL REFERENCES students(id),
			class_section_id UUID REFERENCES class_sections(id),
			subject_id UUID NOT NULL REFERENCES subjects(id),
			exam_type VARCHAR(20) NOT NULL,
			marks_obtained DECIMAL(5,2) NOT NULL DEFAULT 0,
			total_marks DECIMAL(5,2) NOT NULL,
			remarks TEXT,
			created_by VARCHAR(100),
			updated_by VARCHAR(100),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (student_id, subject_id, exam_type),
			CHECK (marks_obtained >= 0 AND marks_obtained <= total_marks)
		)`,

		`CREATE TABLE IF NOT EXISTS marks_history (
			id UUID PRIMARY KEY,
			mark_id UUID NOT NULL REFERENCES marks(id),
			student_id UUID NOT NULL REFERENCES students(id),
			subject_id UUID NOT NULL REFERENCES subjects(id),
			exam_type VARCHAR(20) NOT NULL,
			old_marks DECIMAL(5,2) NOT NULL,
			new_marks DECIMAL(5,2) NOT NULL,
			updated_by VARCHAR(100) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_marks_student_exam ON marks(student_id, exam_type)`,
		`CREATE INDEX IF NOT EXISTS idx_marks_history_student ON marks_history(student_id, created_at DESC)`,

		`CREATE TABLE IF NOT EXISTS student_latest_exam_summary (
			student_id UUID PRIMARY KEY REFERENCES students(id),
			exam_type VARCHAR(20),
			percentage DECIMAL(5,2),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		// Aggregate function: percentage across all marks sharing the
		// student's most recently updated exam type, two decimals.
		`CREATE OR REPLACE FUNCTION get_latest_exam_percentage(p_student_id UUID)
		RETURNS DECIMAL AS $$
		DECLARE
			latest_exam VARCHAR(20);
			total DECIMAL;
			obtained DECIMAL;
		BEGIN
			SELECT exam_type INTO latest_exam
			FROM marks WHERE student_id = p_student_id
			ORDER BY updated_at DESC LIMIT 1;

			IF latest_exam IS NULL THEN
				RETURN NULL;
			END IF;

			SELECT COALESCE(SUM(total_marks), 0), COALESCE(SUM(marks_obtained), 0)
			INTO total, obtained
			FROM marks
			WHERE student_id = p_student_id AND exam_type = latest_exam;

			IF total <= 0 THEN
				RETURN NULL;
			END IF;

			RETURN ROUND(obtained / total * 100, 2);
		END;
		$$ LANGUAGE plpgsql`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}
