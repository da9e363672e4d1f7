package marks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yahamanand-svg/School/app/models"
	"github.com/yahamanand-svg/School/app/store"
	"github.com/yahamanand-svg/School/app/store/memory"
)

type fixture struct {
	store    *memory.Store
	resolver *Resolver
	service  *Service

	sec7A    *models.ClassSection
	sec7B    *models.ClassSection
	maths    *models.Subject
	science  *models.Subject
	teacher  *models.Teacher
	student  *models.Student
	studentB *models.Student
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := memory.New()

	f := &fixture{store: st}
	f.sec7A = st.AddClassSection(&models.ClassSection{Name: "7", Section: "A"})
	f.sec7B = st.AddClassSection(&models.ClassSection{Name: "7", Section: "B"})
	f.maths = st.AddSubject(&models.Subject{Name: "Maths", Code: "MATH", ApplicableFromClass: 1, ApplicableToClass: 12})
	f.science = st.AddSubject(&models.Subject{Name: "Science", Code: "SCI", ApplicableFromClass: 6, ApplicableToClass: 10})

	f.teacher = st.AddTeacher(&models.Teacher{TeacherID: "T-100", Name: "Asha Verma", Email: "asha@school.test", IsActive: true})
	st.AddAssignment(&models.Assignment{TeacherID: f.teacher.ID, ClassSectionID: f.sec7A.ID, SubjectID: f.maths.ID})

	f.student = st.AddStudent(&models.Student{
		AdmissionID: "ADM-001", Name: "Ravi Kumar",
		ClassName: "7", Section: "A", ClassSectionID: &f.sec7A.ID,
	})
	f.studentB = st.AddStudent(&models.Student{
		AdmissionID: "ADM-002", Name: "Meena Joshi",
		ClassName: "7", Section: "B", ClassSectionID: &f.sec7B.ID,
	})

	f.resolver = NewResolver(st)
	f.service = NewService(st, f.resolver)
	return f
}

func (f *fixture) teacherIdentity() models.Identity {
	return models.Identity{Role: models.RoleTeacher, TeacherID: f.teacher.ID, Name: f.teacher.Name}
}

func adminIdentity() models.Identity {
	return models.Identity{Role: models.RoleAdmin, Name: "Principal"}
}

func TestSearchStudent(t *testing.T) {
	f := newFixture(t)

	t.Run("assigned section", func(t *testing.T) {
		student, err := f.service.SearchStudent(f.teacherIdentity(), "ADM-001")
		require.NoError(t, err)
		assert.Equal(t, "Ravi Kumar", student.Name)
	})

	t.Run("unknown admission id is not found", func(t *testing.T) {
		_, err := f.service.SearchStudent(f.teacherIdentity(), "ADM-999")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("other section is denied, not missing", func(t *testing.T) {
		_, err := f.service.SearchStudent(f.teacherIdentity(), "ADM-002")
		assert.ErrorIs(t, err, store.ErrNotAuthorized)
		assert.NotErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("admin sees any student", func(t *testing.T) {
		student, err := f.service.SearchStudent(adminIdentity(), "ADM-002")
		require.NoError(t, err)
		assert.Equal(t, "Meena Joshi", student.Name)
	})
}

func TestSearchStudentBackfillsClassSection(t *testing.T) {
	f := newFixture(t)
	legacy := f.store.AddStudent(&models.Student{
		AdmissionID: "ADM-010", Name: "Old Row",
		ClassName: "7", Section: "A",
	})
	require.Nil(t, legacy.ClassSectionID)

	student, err := f.service.SearchStudent(f.teacherIdentity(), "ADM-010")
	require.NoError(t, err)
	require.NotNil(t, student.ClassSectionID)
	assert.Equal(t, f.sec7A.ID, *student.ClassSectionID)

	reloaded, err := f.store.StudentByID(legacy.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.ClassSectionID)
	assert.Equal(t, f.sec7A.ID, *reloaded.ClassSectionID)
}

func TestPermittedSubjects(t *testing.T) {
	f := newFixture(t)

	t.Run("teacher narrowed to granted subjects", func(t *testing.T) {
		subjects, err := f.service.PermittedSubjects(f.teacherIdentity(), f.student)
		require.NoError(t, err)
		require.Len(t, subjects, 1)
		assert.Equal(t, "Maths", subjects[0].Name)
	})

	t.Run("admin sees full class set", func(t *testing.T) {
		subjects, err := f.service.PermittedSubjects(adminIdentity(), f.student)
		require.NoError(t, err)
		assert.Len(t, subjects, 2)
	})
}

// A teacher assigned (7-A, Maths) and (8-B, Science) holds the section
// and subject grants independently, so Science is gradable in 7-A too.
func TestPermittedSubjectsSetsAreIndependent(t *testing.T) {
	f := newFixture(t)
	sec8B := f.store.AddClassSection(&models.ClassSection{Name: "8", Section: "B"})
	f.store.AddAssignment(&models.Assignment{TeacherID: f.teacher.ID, ClassSectionID: sec8B.ID, SubjectID: f.science.ID})

	subjects, err := f.service.PermittedSubjects(f.teacherIdentity(), f.student)
	require.NoError(t, err)
	names := make([]string, 0, len(subjects))
	for _, s := range subjects {
		names = append(names, s.Name)
	}
	assert.ElementsMatch(t, []string{"Maths", "Science"}, names)
}

func TestPermittedSubjectsEmptyIsNotAnError(t *testing.T) {
	f := newFixture(t)
	other := f.store.AddTeacher(&models.Teacher{TeacherID: "T-200", Name: "No Grants", Email: "none@school.test", IsActive: true})
	f.store.AddAssignment(&models.Assignment{TeacherID: other.ID, ClassSectionID: f.sec7A.ID, SubjectID: f.science.ID})

	// Grant only Science, then ask about a class-5 student where only
	// broader subjects apply.
	young := f.store.AddStudent(&models.Student{
		AdmissionID: "ADM-020", Name: "Junior", ClassName: "5", Section: "A",
	})
	caller := models.Identity{Role: models.RoleTeacher, TeacherID: other.ID, Name: other.Name}
	subjects, err := f.service.PermittedSubjects(caller, young)
	require.NoError(t, err)
	assert.Empty(t, subjects)
}

func TestLoadSheet(t *testing.T) {
	f := newFixture(t)

	t.Run("new rows take curriculum totals", func(t *testing.T) {
		sheet, err := f.service.LoadSheet(f.teacherIdentity(), f.student.ID, models.ExamPA1)
		require.NoError(t, err)
		require.Len(t, sheet.Entries, 1)
		e := sheet.Entries[0]
		assert.Empty(t, e.MarkID)
		assert.Equal(t, 30.0, e.Total)
		assert.Zero(t, e.Obtained)
	})

	t.Run("term exams are out of 100", func(t *testing.T) {
		sheet, err := f.service.LoadSheet(f.teacherIdentity(), f.student.ID, models.ExamHalfYearly)
		require.NoError(t, err)
		assert.Equal(t, 100.0, sheet.Entries[0].Total)
	})

	t.Run("existing row total is authoritative", func(t *testing.T) {
		f.store.AddMark(&models.Mark{
			StudentID: f.student.ID, SubjectID: f.maths.ID,
			ExamType: models.ExamPA2, MarksObtained: 18, TotalMarks: 40,
		})
		sheet, err := f.service.LoadSheet(f.teacherIdentity(), f.student.ID, models.ExamPA2)
		require.NoError(t, err)
		e := sheet.Entries[0]
		assert.NotEmpty(t, e.MarkID)
		assert.Equal(t, 40.0, e.Total)
		assert.Equal(t, 18.0, e.Obtained)
	})
}

func TestSheetSetObtainedClamps(t *testing.T) {
	f := newFixture(t)
	sheet, err := f.service.LoadSheet(f.teacherIdentity(), f.student.ID, models.ExamPA1)
	require.NoError(t, err)

	require.True(t, sheet.SetObtained(f.maths.ID, 50))
	assert.Equal(t, 30.0, sheet.Entries[0].Obtained)

	require.True(t, sheet.SetObtained(f.maths.ID, -5))
	assert.Zero(t, sheet.Entries[0].Obtained)

	assert.False(t, sheet.SetObtained("no-such-subject", 10))
}

func TestSaveInsertsWithoutHistory(t *testing.T) {
	f := newFixture(t)
	caller := f.teacherIdentity()

	sheet, err := f.service.LoadSheet(caller, f.student.ID, models.ExamPA1)
	require.NoError(t, err)
	sheet.SetObtained(f.maths.ID, 24)

	result, err := f.service.Save(caller, sheet)
	require.NoError(t, err)
	require.Len(t, result.Outcomes, 1)
	assert.True(t, result.Outcomes[0].Created)
	assert.Zero(t, result.Failed)
	assert.Empty(t, f.store.History())
}

func TestSaveWritesHistoryExactlyOnceOnChange(t *testing.T) {
	f := newFixture(t)
	caller := f.teacherIdentity()

	sheet, err := f.service.LoadSheet(caller, f.student.ID, models.ExamPA1)
	require.NoError(t, err)
	sheet.SetObtained(f.maths.ID, 24)
	_, err = f.service.Save(caller, sheet)
	require.NoError(t, err)

	// Saving the same value again touches the row but not the history.
	sheet, err = f.service.LoadSheet(caller, f.student.ID, models.ExamPA1)
	require.NoError(t, err)
	sheet.SetObtained(f.maths.ID, 24)
	result, err := f.service.Save(caller, sheet)
	require.NoError(t, err)
	assert.False(t, result.Outcomes[0].Changed)
	assert.Empty(t, f.store.History())

	// A real change writes exactly one audit row with both values.
	sheet.SetObtained(f.maths.ID, 27)
	result, err = f.service.Save(caller, sheet)
	require.NoError(t, err)
	assert.True(t, result.Outcomes[0].Changed)

	history := f.store.History()
	require.Len(t, history, 1)
	assert.Equal(t, 24.0, history[0].OldMarks)
	assert.Equal(t, 27.0, history[0].NewMarks)
	assert.Equal(t, caller.Name, history[0].UpdatedBy)
}

func TestSaveRemarksOnlyEditSkipsHistory(t *testing.T) {
	f := newFixture(t)
	caller := f.teacherIdentity()

	sheet, err := f.service.LoadSheet(caller, f.student.ID, models.ExamPA1)
	require.NoError(t, err)
	sheet.SetObtained(f.maths.ID, 20)
	_, err = f.service.Save(caller, sheet)
	require.NoError(t, err)

	sheet, err = f.service.LoadSheet(caller, f.student.ID, models.ExamPA1)
	require.NoError(t, err)
	sheet.SetRemarks(f.maths.ID, "needs more practice")
	result, err := f.service.Save(caller, sheet)
	require.NoError(t, err)
	assert.False(t, result.Outcomes[0].Changed)
	assert.Empty(t, f.store.History())

	reloaded, err := f.service.LoadSheet(caller, f.student.ID, models.ExamPA1)
	require.NoError(t, err)
	assert.Equal(t, "needs more practice", reloaded.Entries[0].Remarks)
}

func TestSaveClampsAgainstStoredTotal(t *testing.T) {
	f := newFixture(t)
	caller := f.teacherIdentity()
	f.store.AddMark(&models.Mark{
		StudentID: f.student.ID, SubjectID: f.maths.ID,
		ExamType: models.ExamPA1, MarksObtained: 10, TotalMarks: 30,
	})

	sheet, err := f.service.LoadSheet(caller, f.student.ID, models.ExamPA1)
	require.NoError(t, err)
	// Bypass the sheet setter to simulate a raw out-of-range payload.
	sheet.Entries[0].Obtained = 50

	result, err := f.service.Save(caller, sheet)
	require.NoError(t, err)
	assert.Zero(t, result.Failed)

	reloaded, err := f.service.LoadSheet(caller, f.student.ID, models.ExamPA1)
	require.NoError(t, err)
	assert.Equal(t, 30.0, reloaded.Entries[0].Obtained)
}

func TestSaveDeniesUngrantedSubjectPerRow(t *testing.T) {
	f := newFixture(t)
	caller := f.teacherIdentity()

	sheet, err := f.service.LoadSheet(caller, f.student.ID, models.ExamPA1)
	require.NoError(t, err)
	sheet.SetObtained(f.maths.ID, 22)
	sheet.Entries = append(sheet.Entries, &SheetEntry{
		SubjectID: f.science.ID, SubjectName: "Science",
		ExamType: models.ExamPA1, Obtained: 15, Total: 30,
	})

	result, err := f.service.Save(caller, sheet)
	require.NoError(t, err)
	require.Len(t, result.Outcomes, 2)
	assert.Equal(t, 1, result.Failed)
	assert.Empty(t, result.Outcomes[0].Error)
	assert.Equal(t, store.ErrNotAuthorized.Error(), result.Outcomes[1].Error)

	// The denied row must not have landed.
	marks, err := f.store.MarksForExam(f.student.ID, models.ExamPA1)
	require.NoError(t, err)
	require.Len(t, marks, 1)
	assert.Equal(t, f.maths.ID, marks[0].SubjectID)
}
