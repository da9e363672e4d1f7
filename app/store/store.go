// Package store defines the contract the academic-records core requires
// of the entity store. The store is consumed, not implemented, by the
// core: app/database provides the Postgres implementation and
// app/store/memory provides an in-memory one used in tests.
package store

import (
	"errors"

	"github.com/yahamanand-svg/School/app/models"
)

var (
	// ErrNotFound is returned by point lookups that match no row.
	ErrNotFound = errors.New("record not found")
	// ErrNotAuthorized marks an access denied by assignment rules. It is
	// distinct from ErrNotFound so callers can tell "no such student"
	// apart from "student exists but you may not see their marks".
	ErrNotAuthorized = errors.New("not authorized")
)

// StudentStore provides point lookups and the class-section backfill
// for students.
type StudentStore interface {
	StudentByAdmissionID(admissionID string) (*models.Student, error)
	StudentByID(id string) (*models.Student, error)
	SetStudentClassSection(studentID, classSectionID string) error
}

// TeacherStore provides lookups for teachers and admins.
type TeacherStore interface {
	TeacherByID(id string) (*models.Teacher, error)
	TeacherByTeacherID(teacherID string) (*models.Teacher, error)
	TeacherByEmail(email string) (*models.Teacher, error)
	AdminByEmail(email string) (*models.Admin, error)
	CreateTeacher(t *models.Teacher) error
}

// ClassSectionStore resolves class-section entities.
type ClassSectionStore interface {
	ClassSectionByID(id string) (*models.ClassSection, error)
	ClassSectionByLabel(className, section string) (*models.ClassSection, error)
	ListClassSections() ([]*models.ClassSection, error)
}

// SubjectStore lists subjects by class applicability and seeds the
// subject table from the curriculum mapping.
type SubjectStore interface {
	SubjectByID(id string) (*models.Subject, error)
	SubjectsForClassNumber(classNumber int) ([]*models.Subject, error)
	UpsertSubject(s *models.Subject) error
}

// AssignmentStore loads and replaces a teacher's assignment rows.
// ReplaceTeacherAssignments is deliberately non-incremental: it deletes
// every existing row for the teacher and reinserts the new set, so no
// stale grant can survive an administrator edit.
type AssignmentStore interface {
	AssignmentsByTeacher(teacherID string) ([]*models.Assignment, error)
	ReplaceTeacherAssignments(teacherID string, assignments []*models.Assignment) error
}

// MarkStore reads and writes mark rows and their append-only history.
type MarkStore interface {
	MarkByID(id string) (*models.Mark, error)
	MarksForExam(studentID string, examType models.ExamType) ([]*models.Mark, error)
	MarksByStudent(studentID string) ([]*models.Mark, error)
	LatestExamType(studentID string) (models.ExamType, error)
	DistinctExamTypes(studentID string) ([]models.ExamType, error)
	InsertMark(m *models.Mark) error
	UpdateMark(m *models.Mark) error
	InsertMarksHistory(h *models.MarksHistory) error
	MarksHistoryByStudent(studentID string, limit int) ([]*models.MarksHistory, error)
}

// AggregateStore exposes the server-side percentage sources. Both
// methods normalize whatever shape the backend returns into a plain
// *float64: nil means "no usable figure", so the aggregator's fallback
// chain always operates on a stable type.
type AggregateStore interface {
	LatestExamPercentage(studentID string) (*float64, error)
	LatestExamSummary(studentID string) (*float64, error)
}

// Store is the full entity-store contract.
type Store interface {
	StudentStore
	TeacherStore
	ClassSectionStore
	SubjectStore
	AssignmentStore
	MarkStore
	AggregateStore
}
