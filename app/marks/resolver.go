// Package marks implements the teacher-facing mark entry workflow:
// resolving what a teacher may grade, loading an editable sheet for one
// student and exam, and saving it with audit history.
package marks

import (
	"fmt"
	"sync"

	"github.com/yahamanand-svg/School/app/models"
	"github.com/yahamanand-svg/School/app/store"
)

// TeacherAccess is the resolved grant set for one teacher: the
// class-sections they may open and the subjects they may grade. The two
// sets are checked independently, so a teacher assigned (7-A, Maths)
// and (8-B, Science) can also grade Science in 7-A. Administrators
// never go through this type.
type TeacherAccess struct {
	ClassSectionIDs map[string]bool
	SubjectIDs      map[string]bool
}

// CanAccessClassSection reports whether the class-section is in the
// teacher's grant set.
func (a *TeacherAccess) CanAccessClassSection(classSectionID string) bool {
	return a.ClassSectionIDs[classSectionID]
}

// CanGradeSubject reports whether the subject is in the teacher's
// grant set.
func (a *TeacherAccess) CanGradeSubject(subjectID string) bool {
	return a.SubjectIDs[subjectID]
}

// Empty reports whether the teacher has no assignments at all.
func (a *TeacherAccess) Empty() bool {
	return len(a.ClassSectionIDs) == 0 && len(a.SubjectIDs) == 0
}

// Resolver turns a teacher's assignment rows into a TeacherAccess and
// caches the result per teacher. The cache must be invalidated whenever
// an administrator replaces a teacher's assignments.
type Resolver struct {
	store store.AssignmentStore

	mu    sync.RWMutex
	cache map[string]*TeacherAccess
}

func NewResolver(s store.AssignmentStore) *Resolver {
	return &Resolver{
		store: s,
		cache: make(map[string]*TeacherAccess),
	}
}

// Access resolves the grant set for a teacher, serving from cache when
// possible.
func (r *Resolver) Access(teacherID string) (*TeacherAccess, error) {
	r.mu.RLock()
	cached, ok := r.cache[teacherID]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}

	assignments, err := r.store.AssignmentsByTeacher(teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve teacher access: %w", err)
	}

	access := &TeacherAccess{
		ClassSectionIDs: make(map[string]bool),
		SubjectIDs:      make(map[string]bool),
	}
	for _, a := range assignments {
		access.ClassSectionIDs[a.ClassSectionID] = true
		access.SubjectIDs[a.SubjectID] = true
	}

	r.mu.Lock()
	r.cache[teacherID] = access
	r.mu.Unlock()
	return access, nil
}

// Invalidate drops the cached grant set for one teacher.
func (r *Resolver) Invalidate(teacherID string) {
	r.mu.Lock()
	delete(r.cache, teacherID)
	r.mu.Unlock()
}

// AuthorizeStudent checks whether the caller may open the student's
// marks. Admins always may; teachers need the student's class-section
// in their grant set. Returns store.ErrNotAuthorized on denial, which
// callers must keep distinct from store.ErrNotFound.
func (r *Resolver) AuthorizeStudent(caller models.Identity, student *models.Student) error {
	if caller.IsAdmin() {
		return nil
	}
	if !caller.IsTeacher() {
		return store.ErrNotAuthorized
	}
	if student.ClassSectionID == nil {
		return store.ErrNotAuthorized
	}
	access, err := r.Access(caller.TeacherID)
	if err != nil {
		return err
	}
	if !access.CanAccessClassSection(*student.ClassSectionID) {
		return store.ErrNotAuthorized
	}
	return nil
}
