package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/yahamanand-svg/School/app/models"
	"github.com/yahamanand-svg/School/app/store"
)

// MarkByID fetches a single mark row by primary key.
func (s *PostgresStore) MarkByID(id string) (*models.Mark, error) {
	query := `SELECT id, student_id, class_section_id, subject_id, exam_type, marks_obtained,
			  total_marks, remarks, created_by, updated_by, created_at, updated_at
			  FROM marks WHERE id = $1`

	m, err := scanMark(s.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch mark: %w", err)
	}
	return m, nil
}

// MarksForExam fetches a student's mark rows for one exam type with the
// subject joined in, ordered by subject name.
func (s *PostgresStore) MarksForExam(studentID string, examType models.ExamType) ([]*models.Mark, error) {
	query := `
		SELECT
			m.id, m.student_id, m.class_section_id, m.subject_id, m.exam_type,
			m.marks_obtained, m.total_marks, m.remarks, m.created_by, m.updated_by,
			m.created_at, m.updated_at,
			sub.id, sub.name, sub.code
		FROM marks m
		LEFT JOIN subjects sub ON m.subject_id = sub.id
		WHERE m.student_id = $1 AND m.exam_type = $2
		ORDER BY sub.name
	`
	return s.queryMarksWithSubject(query, studentID, string(examType))
}

// MarksByStudent fetches every mark row for a student across all exam
// types, newest first.
func (s *PostgresStore) MarksByStudent(studentID string) ([]*models.Mark, error) {
	query := `
		SELECT
			m.id, m.student_id, m.class_section_id, m.subject_id, m.exam_type,
			m.marks_obtained, m.total_marks, m.remarks, m.created_by, m.updated_by,
			m.created_at, m.updated_at,
			sub.id, sub.name, sub.code
		FROM marks m
		LEFT JOIN subjects sub ON m.subject_id = sub.id
		WHERE m.student_id = $1
		ORDER BY m.updated_at DESC
	`
	return s.queryMarksWithSubject(query, studentID)
}

func (s *PostgresStore) queryMarksWithSubject(query string, args ...interface{}) ([]*models.Mark, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch marks: %w", err)
	}
	defer rows.Close()

	var marks []*models.Mark
	for rows.Next() {
		var m models.Mark
		var sub models.Subject
		var classSectionID, remarks, createdBy, updatedBy sql.NullString
		var subID, subName, subCode sql.NullString

		err := rows.Scan(
			&m.ID, &m.StudentID, &classSectionID, &m.SubjectID, &m.ExamType,
			&m.MarksObtained, &m.TotalMarks, &remarks, &createdBy, &updatedBy,
			&m.CreatedAt, &m.UpdatedAt,
			&subID, &subName, &subCode,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mark: %w", err)
		}

		if classSectionID.Valid {
			m.ClassSectionID = &classSectionID.String
		}
		if remarks.Valid {
			m.Remarks = remarks.String
		}
		if createdBy.Valid {
			m.CreatedBy = createdBy.String
		}
		if updatedBy.Valid {
			m.UpdatedBy = updatedBy.String
		}
		if subID.Valid {
			sub.ID = subID.String
			sub.Name = subName.String
			sub.Code = subCode.String
			m.Subject = &sub
		}
		marks = append(marks, &m)
	}
	return marks, nil
}

func scanMark(row *sql.Row) (*models.Mark, error) {
	var m models.Mark
	var classSectionID, remarks, createdBy, updatedBy sql.NullString

	err := row.Scan(
		&m.ID, &m.StudentID, &classSectionID, &m.SubjectID, &m.ExamType,
		&m.MarksObtained, &m.TotalMarks, &remarks, &createdBy, &updatedBy,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if classSectionID.Valid {
		m.ClassSectionID = &classSectionID.String
	}
	if remarks.Valid {
		m.Remarks = remarks.String
	}
	if createdBy.Valid {
		m.CreatedBy = createdBy.String
	}
	if updatedBy.Valid {
		m.UpdatedBy = updatedBy.String
	}
	return &m, nil
}

// LatestExamType returns the exam type of the student's most recently
// updated mark row.
func (s *PostgresStore) LatestExamType(studentID string) (models.ExamType, error) {
	query := `SELECT exam_type FROM marks WHERE student_id = $1 ORDER BY updated_at DESC LIMIT 1`

	var examType models.ExamType
	err := s.db.QueryRow(query, studentID).Scan(&examType)
	if err == sql.ErrNoRows {
		return "", store.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to fetch latest exam type: %w", err)
	}
	return examType, nil
}

// DistinctExamTypes returns the exam types the student has any mark
// rows for, in cycle order.
func (s *PostgresStore) DistinctExamTypes(studentID string) ([]models.ExamType, error) {
	query := `SELECT DISTINCT exam_type FROM marks WHERE student_id = $1`

	rows, err := s.db.Query(query, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch exam types: %w", err)
	}
	defer rows.Close()

	seen := make(map[models.ExamType]bool)
	for rows.Next() {
		var et models.ExamType
		if err := rows.Scan(&et); err != nil {
			return nil, fmt.Errorf("failed to scan exam type: %w", err)
		}
		seen[et] = true
	}

	var types []models.ExamType
	for _, et := range models.ExamTypes() {
		if seen[et] {
			types = append(types, et)
		}
	}
	return types, nil
}

// InsertMark creates a new mark row.
func (s *PostgresStore) InsertMark(m *models.Mark) error {
	query := `INSERT INTO marks (student_id, class_section_id, subject_id, exam_type,
			  marks_obtained, total_marks, remarks, created_by, updated_by)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING id, created_at, updated_at`

	err := s.db.QueryRow(
		query,
		m.StudentID, m.ClassSectionID, m.SubjectID, m.ExamType,
		m.MarksObtained, m.TotalMarks, m.Remarks, m.CreatedBy, m.UpdatedBy,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create mark: %w", err)
	}
	return nil
}

// UpdateMark updates an existing mark row by primary key.
func (s *PostgresStore) UpdateMark(m *models.Mark) error {
	query := `UPDATE marks
			  SET marks_obtained = $1, total_marks = $2, remarks = $3, updated_by = $4, updated_at = NOW()
			  WHERE id = $5
			  RETURNING updated_at`

	err := s.db.QueryRow(query, m.MarksObtained, m.TotalMarks, m.Remarks, m.UpdatedBy, m.ID).Scan(&m.UpdatedAt)
	if err == sql.ErrNoRows {
		return store.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update mark: %w", err)
	}
	return nil
}

// InsertMarksHistory appends an audit row. History rows are never
// updated or deleted.
func (s *PostgresStore) InsertMarksHistory(h *models.MarksHistory) error {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	query := `INSERT INTO marks_history (id, mark_id, student_id, subject_id, exam_type,
			  old_marks, new_marks, updated_by)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING created_at`

	err := s.db.QueryRow(
		query,
		h.ID, h.MarkID, h.StudentID, h.SubjectID, h.ExamType,
		h.OldMarks, h.NewMarks, h.UpdatedBy,
	).Scan(&h.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create marks history: %w", err)
	}
	return nil
}

// MarksHistoryByStudent fetches the student's most recent audit rows,
// newest first, with the subject joined in.
func (s *PostgresStore) MarksHistoryByStudent(studentID string, limit int) ([]*models.MarksHistory, error) {
	query := `
		SELECT
			h.id, h.mark_id, h.student_id, h.subject_id, h.exam_type,
			h.old_marks, h.new_marks, h.updated_by, h.created_at,
			sub.id, sub.name, sub.code
		FROM marks_history h
		LEFT JOIN subjects sub ON h.subject_id = sub.id
		WHERE h.student_id = $1
		ORDER BY h.created_at DESC
		LIMIT $2
	`

	rows, err := s.db.Query(query, studentID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch marks history: %w", err)
	}
	defer rows.Close()

	var history []*models.MarksHistory
	for rows.Next() {
		var h models.MarksHistory
		var sub models.Subject
		var subID, subName, subCode sql.NullString

		err := rows.Scan(
			&h.ID, &h.MarkID, &h.StudentID, &h.SubjectID, &h.ExamType,
			&h.OldMarks, &h.NewMarks, &h.UpdatedBy, &h.CreatedAt,
			&subID, &subName, &subCode,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan marks history: %w", err)
		}

		if subID.Valid {
			sub.ID = subID.String
			sub.Name = subName.String
			sub.Code = subCode.String
			h.Subject = &sub
		}
		history = append(history, &h)
	}
	return history, nil
}
