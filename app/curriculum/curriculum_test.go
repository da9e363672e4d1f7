package curriculum

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yahamanand-svg/School/app/models"
)

func subjectNames(subjects []SubjectMapping) []string {
	names := make([]string, len(subjects))
	for i, s := range subjects {
		names[i] = s.Name
	}
	return names
}

func TestSubjectsForClass(t *testing.T) {
	tests := []struct {
		name        string
		classNumber int
		want        []string
	}{
		{"class 1", 1, []string{"Hindi", "English", "Maths", "EVS", "Computer"}},
		{"class 5", 5, []string{"Hindi", "English", "Maths", "EVS", "Computer"}},
		{"class 6", 6, []string{"Hindi", "English", "Maths", "Computer", "S.St", "Science"}},
		{"class 8", 8, []string{"Hindi", "English", "Maths", "Computer", "S.St", "Science"}},
		{"class 9", 9, []string{"Hindi", "English", "Maths", "S.St", "Science", "AI"}},
		{"class 10", 10, []string{"Hindi", "English", "Maths", "S.St", "Science", "AI"}},
		{"class 0 has no rule", 0, nil},
		{"class 13 has no rule", 13, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SubjectsForClass(tt.classNumber)
			assert.ElementsMatch(t, tt.want, subjectNames(got))
		})
	}
}

func TestMaxMarks(t *testing.T) {
	tests := []struct {
		name      string
		className string
		examType  models.ExamType
		want      int
	}{
		{"class 5 PA1", "5", models.ExamPA1, 30},
		{"class 8 PA4", "8", models.ExamPA4, 30},
		{"class 9 PA3", "9", models.ExamPA3, 40},
		{"class 10 PA2", "10", models.ExamPA2, 40},
		{"class 9 Annual", "9", models.ExamAnnual, 100},
		{"class 3 Half Yearly", "3", models.ExamHalfYearly, 100},
		{"roman class VII PA1", "VII", models.ExamPA1, 30},
		{"roman class X PA2", "X", models.ExamPA2, 40},
		{"unparseable class PA1", "Nursery", models.ExamPA1, 100},
		{"empty class PA2", "", models.ExamPA2, 100},
		{"class 0 PA1 falls back", "0", models.ExamPA1, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaxMarks(tt.className, tt.examType))
		})
	}
}

func TestMaxMarksTiersExhaustive(t *testing.T) {
	// Every class 1-10 against every exam type.
	for class := 1; class <= 10; class++ {
		for _, et := range models.ExamTypes() {
			want := 30
			if et.IsTermExam() {
				want = 100
			} else if class >= 9 {
				want = 40
			}
			assert.Equalf(t, want, MaxMarks(strconv.Itoa(class), et), "class %d %s", class, et)
		}
	}
}

func TestParseClassNumber(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"7", 7, true},
		{" 10 ", 10, true},
		{"VII", 7, true},
		{"xii", 12, true},
		{"Nursery", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseClassNumber(tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
		if ok {
			assert.Equal(t, tt.want, got, tt.in)
		}
	}
}

func TestIsSubjectApplicable(t *testing.T) {
	assert.True(t, IsSubjectApplicable("EVS", 4))
	assert.False(t, IsSubjectApplicable("EVS", 6))
	assert.True(t, IsSubjectApplicable("AI", 9))
	assert.False(t, IsSubjectApplicable("AI", 8))
	assert.False(t, IsSubjectApplicable("NOPE", 5))
}
