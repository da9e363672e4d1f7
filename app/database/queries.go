package database

import (
	"database/sql"
	"fmt"

	"github.com/yahamanand-svg/School/app/models"
	"github.com/yahamanand-svg/School/app/store"
)

// StudentByAdmissionID resolves a student by their unique admission
// identifier (exact match).
func (s *PostgresStore) StudentByAdmissionID(admissionID string) (*models.Student, error) {
	query := `SELECT id, admission_id, name, email, phone, class_name, section, class_section_id,
			  father_name, password, status, created_at, updated_at
			  FROM students WHERE admission_id = $1`
	return s.scanStudent(s.db.QueryRow(query, admissionID))
}

func (s *PostgresStore) StudentByID(id string) (*models.Student, error) {
	query := `SELECT id, admission_id, name, email, phone, class_name, section, class_section_id,
			  father_name, password, status, created_at, updated_at
			  FROM students WHERE id = $1`
	return s.scanStudent(s.db.QueryRow(query, id))
}

func (s *PostgresStore) scanStudent(row *sql.Row) (*models.Student, error) {
	student := &models.Student{}
	var email, phone, classSectionID, fatherName sql.NullString

	err := row.Scan(
		&student.ID, &student.AdmissionID, &student.Name, &email, &phone,
		&student.ClassName, &student.Section, &classSectionID,
		&fatherName, &student.Password, &student.Status,
		&student.CreatedAt, &student.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch student: %w", err)
	}

	if email.Valid {
		student.Email = &email.String
	}
	if phone.Valid {
		student.Phone = &phone.String
	}
	if classSectionID.Valid {
		student.ClassSectionID = &classSectionID.String
	}
	if fatherName.Valid {
		student.FatherName = &fatherName.String
	}
	return student, nil
}

// SetStudentClassSection backfills the class-section link on a student
// row that predates the class_sections table.
func (s *PostgresStore) SetStudentClassSection(studentID, classSectionID string) error {
	query := `UPDATE students SET class_section_id = $1, updated_at = NOW() WHERE id = $2`
	_, err := s.db.Exec(query, classSectionID, studentID)
	if err != nil {
		return fmt.Errorf("failed to link student to class section: %w", err)
	}
	return nil
}

func (s *PostgresStore) TeacherByID(id string) (*models.Teacher, error) {
	return s.teacherWhere("id = $1", id)
}

func (s *PostgresStore) TeacherByTeacherID(teacherID string) (*models.Teacher, error) {
	return s.teacherWhere("teacher_id = $1", teacherID)
}

func (s *PostgresStore) TeacherByEmail(email string) (*models.Teacher, error) {
	return s.teacherWhere("email = $1", email)
}

func (s *PostgresStore) teacherWhere(cond string, arg interface{}) (*models.Teacher, error) {
	query := `SELECT id, teacher_id, name, email, phone, password, is_active, created_at, updated_at
			  FROM teachers WHERE ` + cond + ` AND is_active = true`

	teacher := &models.Teacher{}
	var phone sql.NullString
	err := s.db.QueryRow(query, arg).Scan(
		&teacher.ID, &teacher.TeacherID, &teacher.Name, &teacher.Email,
		&phone, &teacher.Password, &teacher.IsActive,
		&teacher.CreatedAt, &teacher.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch teacher: %w", err)
	}
	if phone.Valid {
		teacher.Phone = &phone.String
	}
	return teacher, nil
}

func (s *PostgresStore) AdminByEmail(email string) (*models.Admin, error) {
	query := `SELECT id, email, name, password, created_at, updated_at FROM admins WHERE email = $1`

	admin := &models.Admin{}
	err := s.db.QueryRow(query, email).Scan(
		&admin.ID, &admin.Email, &admin.Name, &admin.Password,
		&admin.CreatedAt, &admin.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch admin: %w", err)
	}
	return admin, nil
}

// CreateTeacher inserts a new teacher account. The password must
// already be hashed by the caller.
func (s *PostgresStore) CreateTeacher(t *models.Teacher) error {
	query := `INSERT INTO teachers (teacher_id, name, email, phone, password, is_active)
			  VALUES ($1, $2, $3, $4, $5, true)
			  RETURNING id, created_at, updated_at`

	err := s.db.QueryRow(query, t.TeacherID, t.Name, t.Email, t.Phone, t.Password).Scan(
		&t.ID, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create teacher: %w", err)
	}
	t.IsActive = true
	return nil
}

func (s *PostgresStore) ClassSectionByID(id string) (*models.ClassSection, error) {
	query := `SELECT id, name, section, created_at, updated_at FROM class_sections WHERE id = $1`
	return s.scanClassSection(s.db.QueryRow(query, id))
}

func (s *PostgresStore) ClassSectionByLabel(className, section string) (*models.ClassSection, error) {
	query := `SELECT id, name, section, created_at, updated_at FROM class_sections
			  WHERE name = $1 AND section = $2`
	return s.scanClassSection(s.db.QueryRow(query, className, section))
}

func (s *PostgresStore) scanClassSection(row *sql.Row) (*models.ClassSection, error) {
	cs := &models.ClassSection{}
	err := row.Scan(&cs.ID, &cs.Name, &cs.Section, &cs.CreatedAt, &cs.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch class section: %w", err)
	}
	return cs, nil
}

func (s *PostgresStore) ListClassSections() ([]*models.ClassSection, error) {
	query := `SELECT id, name, section, created_at, updated_at FROM class_sections ORDER BY name, section`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch class sections: %w", err)
	}
	defer rows.Close()

	var sections []*models.ClassSection
	for rows.Next() {
		cs := &models.ClassSection{}
		if err := rows.Scan(&cs.ID, &cs.Name, &cs.Section, &cs.CreatedAt, &cs.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan class section: %w", err)
		}
		sections = append(sections, cs)
	}
	return sections, nil
}

func (s *PostgresStore) SubjectByID(id string) (*models.Subject, error) {
	query := `SELECT id, name, code, applicable_from_class, applicable_to_class, created_at, updated_at
			  FROM subjects WHERE id = $1`

	sub := &models.Subject{}
	err := s.db.QueryRow(query, id).Scan(
		&sub.ID, &sub.Name, &sub.Code, &sub.ApplicableFromClass, &sub.ApplicableToClass,
		&sub.CreatedAt, &sub.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch subject: %w", err)
	}
	return sub, nil
}

// SubjectsForClassNumber lists subjects whose applicability range covers
// the class number, ordered by name.
func (s *PostgresStore) SubjectsForClassNumber(classNumber int) ([]*models.Subject, error) {
	query := `SELECT id, name, code, applicable_from_class, applicable_to_class, created_at, updated_at
			  FROM subjects
			  WHERE applicable_from_class <= $1 AND applicable_to_class >= $1
			  ORDER BY name`

	rows, err := s.db.Query(query, classNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch subjects: %w", err)
	}
	defer rows.Close()

	var subjects []*models.Subject
	for rows.Next() {
		sub := &models.Subject{}
		err := rows.Scan(
			&sub.ID, &sub.Name, &sub.Code, &sub.ApplicableFromClass, &sub.ApplicableToClass,
			&sub.CreatedAt, &sub.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subject: %w", err)
		}
		subjects = append(subjects, sub)
	}
	return subjects, nil
}

// UpsertSubject inserts a subject or refreshes its applicability range
// if the name already exists. Used by the curriculum sync.
func (s *PostgresStore) UpsertSubject(sub *models.Subject) error {
	query := `INSERT INTO subjects (name, code, applicable_from_class, applicable_to_class)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (name) DO UPDATE
			  SET code = EXCLUDED.code,
				  applicable_from_class = EXCLUDED.applicable_from_class,
				  applicable_to_class = EXCLUDED.applicable_to_class,
				  updated_at = NOW()
			  RETURNING id, created_at, updated_at`

	err := s.db.QueryRow(query, sub.Name, sub.Code, sub.ApplicableFromClass, sub.ApplicableToClass).Scan(
		&sub.ID, &sub.CreatedAt, &sub.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert subject: %w", err)
	}
	return nil
}
