package database

import (
	"database/sql"
	"fmt"

	"github.com/yahamanand-svg/School/app/models"
)

// AssignmentsByTeacher fetches a teacher's assignment rows with the
// class-section and subject joined in for display.
func (s *PostgresStore) AssignmentsByTeacher(teacherID string) ([]*models.Assignment, error) {
	query := `
		SELECT
			a.id, a.teacher_id, a.class_section_id, a.subject_id, a.created_at,
			cs.id, cs.name, cs.section,
			sub.id, sub.name, sub.code
		FROM teacher_class_sections a
		LEFT JOIN class_sections cs ON a.class_section_id = cs.id
		LEFT JOIN subjects sub ON a.subject_id = sub.id
		WHERE a.teacher_id = $1
		ORDER BY cs.name, cs.section, sub.name
	`

	rows, err := s.db.Query(query, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch teacher assignments: %w", err)
	}
	defer rows.Close()

	var assignments []*models.Assignment
	for rows.Next() {
		var a models.Assignment
		var cs models.ClassSection
		var sub models.Subject

		err := rows.Scan(
			&a.ID, &a.TeacherID, &a.ClassSectionID, &a.SubjectID, &a.CreatedAt,
			&cs.ID, &cs.Name, &cs.Section,
			&sub.ID, &sub.Name, &sub.Code,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}

		a.ClassSection = &cs
		a.Subject = &sub
		assignments = append(assignments, &a)
	}
	return assignments, nil
}

// ReplaceTeacherAssignments swaps a teacher's entire assignment set in
// one transaction: delete all rows for the teacher, then reinsert the
// new set. No partial patching, so a removed grant can never linger.
func (s *PostgresStore) ReplaceTeacherAssignments(teacherID string, assignments []*models.Assignment) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM teacher_class_sections WHERE teacher_id = $1`, teacherID); err != nil {
		return fmt.Errorf("failed to clear assignments: %w", err)
	}

	insertStmt, err := tx.Prepare(`
		INSERT INTO teacher_class_sections (teacher_id, class_section_id, subject_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (teacher_id, class_section_id, subject_id) DO NOTHING
		RETURNING id, created_at
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer insertStmt.Close()

	for _, a := range assignments {
		a.TeacherID = teacherID
		err := insertStmt.QueryRow(teacherID, a.ClassSectionID, a.SubjectID).Scan(&a.ID, &a.CreatedAt)
		if err == sql.ErrNoRows {
			// Duplicate (class-section, subject) pair in the request;
			// the triple is already present so nothing to insert.
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to insert assignment for subject %s: %w", a.SubjectID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
