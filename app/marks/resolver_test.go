package marks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yahamanand-svg/School/app/models"
	"github.com/yahamanand-svg/School/app/store"
	"github.com/yahamanand-svg/School/app/store/memory"
)

func TestResolverAccess(t *testing.T) {
	f := newFixture(t)

	access, err := f.resolver.Access(f.teacher.ID)
	require.NoError(t, err)
	assert.True(t, access.CanAccessClassSection(f.sec7A.ID))
	assert.False(t, access.CanAccessClassSection(f.sec7B.ID))
	assert.True(t, access.CanGradeSubject(f.maths.ID))
	assert.False(t, access.CanGradeSubject(f.science.ID))
	assert.False(t, access.Empty())
}

func TestResolverEmptyAccess(t *testing.T) {
	st := memory.New()
	r := NewResolver(st)
	teacher := st.AddTeacher(&models.Teacher{TeacherID: "T-300", Name: "New Hire", Email: "new@school.test", IsActive: true})

	access, err := r.Access(teacher.ID)
	require.NoError(t, err)
	assert.True(t, access.Empty())
}

func TestResolverCachesUntilInvalidated(t *testing.T) {
	f := newFixture(t)

	access, err := f.resolver.Access(f.teacher.ID)
	require.NoError(t, err)
	require.False(t, access.CanGradeSubject(f.science.ID))

	err = f.store.ReplaceTeacherAssignments(f.teacher.ID, []*models.Assignment{
		{ClassSectionID: f.sec7B.ID, SubjectID: f.science.ID},
	})
	require.NoError(t, err)

	// Still the cached grant set.
	cached, err := f.resolver.Access(f.teacher.ID)
	require.NoError(t, err)
	assert.False(t, cached.CanGradeSubject(f.science.ID))

	f.resolver.Invalidate(f.teacher.ID)
	fresh, err := f.resolver.Access(f.teacher.ID)
	require.NoError(t, err)
	assert.True(t, fresh.CanGradeSubject(f.science.ID))
	assert.False(t, fresh.CanAccessClassSection(f.sec7A.ID))
	assert.True(t, fresh.CanAccessClassSection(f.sec7B.ID))
}

func TestAuthorizeStudent(t *testing.T) {
	f := newFixture(t)

	t.Run("admin bypasses assignments", func(t *testing.T) {
		assert.NoError(t, f.resolver.AuthorizeStudent(adminIdentity(), f.studentB))
	})

	t.Run("teacher needs the section grant", func(t *testing.T) {
		assert.NoError(t, f.resolver.AuthorizeStudent(f.teacherIdentity(), f.student))
		assert.ErrorIs(t, f.resolver.AuthorizeStudent(f.teacherIdentity(), f.studentB), store.ErrNotAuthorized)
	})

	t.Run("student role is denied", func(t *testing.T) {
		caller := models.Identity{Role: models.RoleStudent, StudentID: f.student.ID}
		assert.ErrorIs(t, f.resolver.AuthorizeStudent(caller, f.student), store.ErrNotAuthorized)
	})

	t.Run("unlinked student row is denied for teachers", func(t *testing.T) {
		orphan := &models.Student{ID: "x", ClassName: "7", Section: "A"}
		assert.ErrorIs(t, f.resolver.AuthorizeStudent(f.teacherIdentity(), orphan), store.ErrNotAuthorized)
	})
}
