package marks

import (
	"errors"
	"fmt"

	"github.com/yahamanand-svg/School/app/curriculum"
	"github.com/yahamanand-svg/School/app/models"
	"github.com/yahamanand-svg/School/app/store"
)

// SheetEntry is one editable subject row in a marks sheet. MarkID is
// empty until the row has been persisted. Total comes from the stored
// row when one exists; only brand-new rows take the curriculum default.
type SheetEntry struct {
	SubjectID   string          `json:"subject_id"`
	SubjectName string          `json:"subject_name"`
	SubjectCode string          `json:"subject_code"`
	MarkID      string          `json:"mark_id,omitempty"`
	ExamType    models.ExamType `json:"exam_type"`
	Obtained    float64         `json:"marks_obtained"`
	Total       float64         `json:"total_marks"`
	Remarks     string          `json:"remarks,omitempty"`
}

// Sheet is the editable marks sheet for one student and one exam type.
type Sheet struct {
	Student  *models.Student `json:"student"`
	ExamType models.ExamType `json:"exam_type"`
	Entries  []*SheetEntry   `json:"entries"`
}

// SetObtained records an obtained value for the subject, clamped to
// [0, Total]. Reports false when the subject is not on the sheet.
func (sh *Sheet) SetObtained(subjectID string, value float64) bool {
	e := sh.entry(subjectID)
	if e == nil {
		return false
	}
	if value < 0 {
		value = 0
	}
	if value > e.Total {
		value = e.Total
	}
	e.Obtained = value
	return true
}

// SetRemarks records free-text remarks for the subject.
func (sh *Sheet) SetRemarks(subjectID, remarks string) bool {
	e := sh.entry(subjectID)
	if e == nil {
		return false
	}
	e.Remarks = remarks
	return true
}

func (sh *Sheet) entry(subjectID string) *SheetEntry {
	for _, e := range sh.Entries {
		if e.SubjectID == subjectID {
			return e
		}
	}
	return nil
}

// SaveOutcome reports what happened to one subject row during a save.
// Error is a message rather than an error value so the whole result
// serializes cleanly.
type SaveOutcome struct {
	SubjectID   string `json:"subject_id"`
	SubjectName string `json:"subject_name"`
	Created     bool   `json:"created"`
	Changed     bool   `json:"changed"`
	Error       string `json:"error,omitempty"`
}

// SaveResult collects per-subject outcomes. One failing row never
// rolls back the others.
type SaveResult struct {
	Outcomes []SaveOutcome `json:"outcomes"`
	Failed   int           `json:"failed"`
}

// Service is the mark entry workflow. All operations take the caller's
// identity explicitly and enforce assignment rules through the resolver.
type Service struct {
	store    store.Store
	resolver *Resolver
}

func NewService(st store.Store, r *Resolver) *Service {
	return &Service{store: st, resolver: r}
}

// SearchStudent finds a student by admission ID for mark entry. A
// missing student yields store.ErrNotFound; a student outside the
// caller's assigned class-sections yields store.ErrNotAuthorized. The
// two must stay distinguishable so the caller can say which happened.
//
// Older student rows carry only the textual class and section; the
// class-section link is backfilled here on first lookup so assignment
// checks can run against it.
func (s *Service) SearchStudent(caller models.Identity, admissionID string) (*models.Student, error) {
	student, err := s.store.StudentByAdmissionID(admissionID)
	if err != nil {
		return nil, err
	}

	if student.ClassSectionID == nil {
		if cs, err := s.store.ClassSectionByLabel(student.ClassName, student.Section); err == nil {
			if err := s.store.SetStudentClassSection(student.ID, cs.ID); err != nil {
				return nil, err
			}
			student.ClassSectionID = &cs.ID
			student.ClassSection = cs
		}
	}

	if err := s.resolver.AuthorizeStudent(caller, student); err != nil {
		return nil, err
	}
	return student, nil
}

// PermittedSubjects returns the subjects the caller may grade for the
// student: the curriculum's subjects for the student's class, narrowed
// to the teacher's subject grants. Admins see the full curriculum set.
// An empty result is a real state, not an error; it means the teacher
// may open the student but grade nothing.
func (s *Service) PermittedSubjects(caller models.Identity, student *models.Student) ([]*models.Subject, error) {
	classNum, ok := curriculum.ParseClassNumber(student.ClassName)
	if !ok {
		return nil, fmt.Errorf("unrecognized class %q", student.ClassName)
	}

	subjects, err := s.store.SubjectsForClassNumber(classNum)
	if err != nil {
		return nil, err
	}
	if caller.IsAdmin() {
		return subjects, nil
	}

	access, err := s.resolver.Access(caller.TeacherID)
	if err != nil {
		return nil, err
	}
	var permitted []*models.Subject
	for _, sub := range subjects {
		if access.CanGradeSubject(sub.ID) {
			permitted = append(permitted, sub)
		}
	}
	return permitted, nil
}

// LoadSheet builds the editable sheet for one student and exam type.
// Rows that already exist in the store keep their stored total; new
// rows take the curriculum maximum for the student's class and the
// exam type.
func (s *Service) LoadSheet(caller models.Identity, studentID string, examType models.ExamType) (*Sheet, error) {
	student, err := s.store.StudentByID(studentID)
	if err != nil {
		return nil, err
	}
	if err := s.resolver.AuthorizeStudent(caller, student); err != nil {
		return nil, err
	}

	subjects, err := s.PermittedSubjects(caller, student)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.MarksForExam(studentID, examType)
	if err != nil {
		return nil, err
	}
	bySubject := make(map[string]*models.Mark, len(existing))
	for _, m := range existing {
		bySubject[m.SubjectID] = m
	}

	sheet := &Sheet{Student: student, ExamType: examType}
	for _, sub := range subjects {
		entry := &SheetEntry{
			SubjectID:   sub.ID,
			SubjectName: sub.Name,
			SubjectCode: sub.Code,
			ExamType:    examType,
		}
		if m, ok := bySubject[sub.ID]; ok {
			entry.MarkID = m.ID
			entry.Obtained = m.MarksObtained
			entry.Total = m.TotalMarks
			entry.Remarks = m.Remarks
		} else {
			entry.Total = float64(curriculum.MaxMarks(student.ClassName, examType))
		}
		sheet.Entries = append(sheet.Entries, entry)
	}
	return sheet, nil
}

// Save persists a sheet row by row. Existing rows are re-read first so
// the history delta reflects the stored value, not the value the sheet
// was loaded with; a history row is written only when the obtained
// value actually changed, and the mark row itself is always updated so
// remarks-only edits still land. New rows are inserted without history.
// Failures are attributed per subject and do not stop the loop.
func (s *Service) Save(caller models.Identity, sheet *Sheet) (*SaveResult, error) {
	student := sheet.Student
	if err := s.resolver.AuthorizeStudent(caller, student); err != nil {
		return nil, err
	}

	var access *TeacherAccess
	if caller.IsTeacher() {
		var err error
		access, err = s.resolver.Access(caller.TeacherID)
		if err != nil {
			return nil, err
		}
	}

	result := &SaveResult{}
	for _, entry := range sheet.Entries {
		outcome := SaveOutcome{SubjectID: entry.SubjectID, SubjectName: entry.SubjectName}

		if access != nil && !access.CanGradeSubject(entry.SubjectID) {
			outcome.Error = store.ErrNotAuthorized.Error()
			result.Failed++
			result.Outcomes = append(result.Outcomes, outcome)
			continue
		}

		var err error
		if entry.MarkID == "" {
			outcome.Created = true
			err = s.insertEntry(caller, student, entry)
		} else {
			outcome.Changed, err = s.updateEntry(caller, entry)
		}
		if err != nil {
			outcome.Error = err.Error()
			outcome.Created = false
			outcome.Changed = false
			result.Failed++
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}
	return result, nil
}

func (s *Service) insertEntry(caller models.Identity, student *models.Student, entry *SheetEntry) error {
	m := &models.Mark{
		StudentID:      student.ID,
		ClassSectionID: student.ClassSectionID,
		SubjectID:      entry.SubjectID,
		ExamType:       entry.ExamType,
		MarksObtained:  entry.Obtained,
		TotalMarks:     entry.Total,
		Remarks:        entry.Remarks,
		CreatedBy:      caller.Name,
		UpdatedBy:      caller.Name,
	}
	if err := s.store.InsertMark(m); err != nil {
		return err
	}
	entry.MarkID = m.ID
	return nil
}

func (s *Service) updateEntry(caller models.Identity, entry *SheetEntry) (changed bool, err error) {
	current, err := s.store.MarkByID(entry.MarkID)
	if err != nil {
		return false, err
	}

	// The stored total stays authoritative; the sheet cannot rescale
	// an existing row.
	obtained := entry.Obtained
	if obtained < 0 {
		obtained = 0
	}
	if obtained > current.TotalMarks {
		obtained = current.TotalMarks
	}

	changed = current.MarksObtained != obtained
	if changed {
		h := &models.MarksHistory{
			MarkID:    current.ID,
			StudentID: current.StudentID,
			SubjectID: current.SubjectID,
			ExamType:  current.ExamType,
			OldMarks:  current.MarksObtained,
			NewMarks:  obtained,
			UpdatedBy: caller.Name,
		}
		if err := s.store.InsertMarksHistory(h); err != nil {
			return false, err
		}
	}

	current.MarksObtained = obtained
	current.Remarks = entry.Remarks
	current.UpdatedBy = caller.Name
	if err := s.store.UpdateMark(current); err != nil {
		return false, err
	}
	entry.Obtained = obtained
	entry.Total = current.TotalMarks
	return changed, nil
}

// IsNotFound reports whether the error is the store's missing-record
// sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}

// IsNotAuthorized reports whether the error is the assignment-rule
// denial sentinel.
func IsNotAuthorized(err error) bool {
	return errors.Is(err, store.ErrNotAuthorized)
}
