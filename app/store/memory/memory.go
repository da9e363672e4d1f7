// Package memory implements the store contract on plain maps. It backs
// the service tests and can stand in for Postgres during local runs.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yahamanand-svg/School/app/models"
	"github.com/yahamanand-svg/School/app/store"
)

// Store is a mutex-guarded in-memory implementation of store.Store.
type Store struct {
	mu sync.RWMutex

	students      map[string]*models.Student
	teachers      map[string]*models.Teacher
	admins        map[string]*models.Admin
	classSections map[string]*models.ClassSection
	subjects      map[string]*models.Subject
	assignments   map[string]*models.Assignment
	marks         map[string]*models.Mark
	history       []*models.MarksHistory

	// Optional aggregate sources. Nil means the source yields nothing,
	// which is how tests exercise the aggregator's fallback chain.
	Percentages map[string]*float64
	Summaries   map[string]*float64
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		students:      make(map[string]*models.Student),
		teachers:      make(map[string]*models.Teacher),
		admins:        make(map[string]*models.Admin),
		classSections: make(map[string]*models.ClassSection),
		subjects:      make(map[string]*models.Subject),
		assignments:   make(map[string]*models.Assignment),
		marks:         make(map[string]*models.Mark),
		Percentages:   make(map[string]*float64),
		Summaries:     make(map[string]*float64),
	}
}

// AddStudent seeds a student, assigning an ID if missing.
func (s *Store) AddStudent(st *models.Student) *models.Student {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st.ID == "" {
		st.ID = uuid.New().String()
	}
	s.students[st.ID] = st
	return st
}

func (s *Store) AddTeacher(t *models.Teacher) *models.Teacher {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	s.teachers[t.ID] = t
	return t
}

func (s *Store) AddAdmin(a *models.Admin) *models.Admin {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	s.admins[a.ID] = a
	return a
}

func (s *Store) AddClassSection(cs *models.ClassSection) *models.ClassSection {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cs.ID == "" {
		cs.ID = uuid.New().String()
	}
	s.classSections[cs.ID] = cs
	return cs
}

func (s *Store) AddSubject(sub *models.Subject) *models.Subject {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	s.subjects[sub.ID] = sub
	return sub
}

func (s *Store) AddAssignment(a *models.Assignment) *models.Assignment {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	s.assignments[a.ID] = a
	return a
}

// AddMark seeds a mark row directly, bypassing InsertMark's timestamping.
func (s *Store) AddMark(m *models.Mark) *models.Mark {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = m.CreatedAt
	}
	s.marks[m.ID] = m
	return m
}

// History returns a copy of every audit row written so far.
func (s *Store) History() []*models.MarksHistory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.MarksHistory, len(s.history))
	copy(out, s.history)
	return out
}

func (s *Store) StudentByAdmissionID(admissionID string) (*models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, st := range s.students {
		if st.AdmissionID == admissionID {
			return st, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) StudentByID(id string) (*models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if st, ok := s.students[id]; ok {
		return st, nil
	}
	return nil, store.ErrNotFound
}

func (s *Store) SetStudentClassSection(studentID, classSectionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.students[studentID]
	if !ok {
		return store.ErrNotFound
	}
	id := classSectionID
	st.ClassSectionID = &id
	st.UpdatedAt = time.Now()
	return nil
}

func (s *Store) TeacherByID(id string) (*models.Teacher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if t, ok := s.teachers[id]; ok && t.IsActive {
		return t, nil
	}
	return nil, store.ErrNotFound
}

func (s *Store) TeacherByTeacherID(teacherID string) (*models.Teacher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.teachers {
		if t.TeacherID == teacherID && t.IsActive {
			return t, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) TeacherByEmail(email string) (*models.Teacher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.teachers {
		if t.Email == email && t.IsActive {
			return t, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) AdminByEmail(email string) (*models.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.admins {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) CreateTeacher(t *models.Teacher) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	t.IsActive = true
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	s.teachers[t.ID] = t
	return nil
}

func (s *Store) ClassSectionByID(id string) (*models.ClassSection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if cs, ok := s.classSections[id]; ok {
		return cs, nil
	}
	return nil, store.ErrNotFound
}

func (s *Store) ClassSectionByLabel(className, section string) (*models.ClassSection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, cs := range s.classSections {
		if cs.Name == className && cs.Section == section {
			return cs, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) ListClassSections() ([]*models.ClassSection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var sections []*models.ClassSection
	for _, cs := range s.classSections {
		sections = append(sections, cs)
	}
	sort.Slice(sections, func(i, j int) bool {
		if sections[i].Name != sections[j].Name {
			return sections[i].Name < sections[j].Name
		}
		return sections[i].Section < sections[j].Section
	})
	return sections, nil
}

func (s *Store) SubjectByID(id string) (*models.Subject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sub, ok := s.subjects[id]; ok {
		return sub, nil
	}
	return nil, store.ErrNotFound
}

func (s *Store) SubjectsForClassNumber(classNumber int) ([]*models.Subject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var subjects []*models.Subject
	for _, sub := range s.subjects {
		if sub.ApplicableFromClass <= classNumber && sub.ApplicableToClass >= classNumber {
			subjects = append(subjects, sub)
		}
	}
	sort.Slice(subjects, func(i, j int) bool { return subjects[i].Name < subjects[j].Name })
	return subjects, nil
}

func (s *Store) UpsertSubject(sub *models.Subject) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.subjects {
		if existing.Name == sub.Name {
			existing.Code = sub.Code
			existing.ApplicableFromClass = sub.ApplicableFromClass
			existing.ApplicableToClass = sub.ApplicableToClass
			existing.UpdatedAt = time.Now()
			*sub = *existing
			return nil
		}
	}
	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	sub.CreatedAt = time.Now()
	sub.UpdatedAt = sub.CreatedAt
	s.subjects[sub.ID] = sub
	return nil
}

func (s *Store) AssignmentsByTeacher(teacherID string) ([]*models.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Assignment
	for _, a := range s.assignments {
		if a.TeacherID != teacherID {
			continue
		}
		cp := *a
		if cs, ok := s.classSections[a.ClassSectionID]; ok {
			cp.ClassSection = cs
		}
		if sub, ok := s.subjects[a.SubjectID]; ok {
			cp.Subject = sub
		}
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) ReplaceTeacherAssignments(teacherID string, assignments []*models.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, a := range s.assignments {
		if a.TeacherID == teacherID {
			delete(s.assignments, id)
		}
	}
	seen := make(map[string]bool)
	for _, a := range assignments {
		key := a.ClassSectionID + "|" + a.SubjectID
		if seen[key] {
			continue
		}
		seen[key] = true
		a.TeacherID = teacherID
		if a.ID == "" {
			a.ID = uuid.New().String()
		}
		a.CreatedAt = time.Now()
		s.assignments[a.ID] = a
	}
	return nil
}

func (s *Store) MarkByID(id string) (*models.Mark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if m, ok := s.marks[id]; ok {
		return m, nil
	}
	return nil, store.ErrNotFound
}

func (s *Store) MarksForExam(studentID string, examType models.ExamType) ([]*models.Mark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Mark
	for _, m := range s.marks {
		if m.StudentID == studentID && m.ExamType == examType {
			out = append(out, s.withSubject(m))
		}
	}
	sort.Slice(out, func(i, j int) bool { return subjectName(out[i]) < subjectName(out[j]) })
	return out, nil
}

func (s *Store) MarksByStudent(studentID string) ([]*models.Mark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Mark
	for _, m := range s.marks {
		if m.StudentID == studentID {
			out = append(out, s.withSubject(m))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (s *Store) withSubject(m *models.Mark) *models.Mark {
	cp := *m
	if sub, ok := s.subjects[m.SubjectID]; ok {
		cp.Subject = sub
	}
	return &cp
}

func subjectName(m *models.Mark) string {
	if m.Subject != nil {
		return m.Subject.Name
	}
	return ""
}

func (s *Store) LatestExamType(studentID string) (models.ExamType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var latest *models.Mark
	for _, m := range s.marks {
		if m.StudentID != studentID {
			continue
		}
		if latest == nil || m.UpdatedAt.After(latest.UpdatedAt) {
			latest = m
		}
	}
	if latest == nil {
		return "", store.ErrNotFound
	}
	return latest.ExamType, nil
}

func (s *Store) DistinctExamTypes(studentID string) ([]models.ExamType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[models.ExamType]bool)
	for _, m := range s.marks {
		if m.StudentID == studentID {
			seen[m.ExamType] = true
		}
	}
	var types []models.ExamType
	for _, et := range models.ExamTypes() {
		if seen[et] {
			types = append(types, et)
		}
	}
	return types, nil
}

func (s *Store) InsertMark(m *models.Mark) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt
	s.marks[m.ID] = m
	return nil
}

func (s *Store) UpdateMark(m *models.Mark) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.marks[m.ID]
	if !ok {
		return store.ErrNotFound
	}
	existing.MarksObtained = m.MarksObtained
	existing.TotalMarks = m.TotalMarks
	existing.Remarks = m.Remarks
	existing.UpdatedBy = m.UpdatedBy
	existing.UpdatedAt = time.Now()
	m.UpdatedAt = existing.UpdatedAt
	return nil
}

func (s *Store) InsertMarksHistory(h *models.MarksHistory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	h.CreatedAt = time.Now()
	s.history = append(s.history, h)
	return nil
}

func (s *Store) MarksHistoryByStudent(studentID string, limit int) ([]*models.MarksHistory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.MarksHistory
	for _, h := range s.history {
		if h.StudentID != studentID {
			continue
		}
		cp := *h
		if sub, ok := s.subjects[h.SubjectID]; ok {
			cp.Subject = sub
		}
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) LatestExamPercentage(studentID string) (*float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Percentages[studentID], nil
}

func (s *Store) LatestExamSummary(studentID string) (*float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Summaries[studentID], nil
}
