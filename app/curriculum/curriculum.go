package curriculum

import (
	"strconv"
	"strings"

	"github.com/yahamanand-svg/School/app/models"
)

// SubjectMapping declares which class numbers a subject applies to,
// inclusive on both ends.
type SubjectMapping struct {
	Name      string `json:"name"`
	Code      string `json:"code"`
	FromClass int    `json:"from_class"`
	ToClass   int    `json:"to_class"`
}

// SubjectMappings is the fixed curriculum table. Classes 1-5 end up with
// {Hindi, English, Maths, EVS, Computer}, 6-8 with {Hindi, English,
// Maths, Computer, S.St, Science}, 9-10 with {Hindi, English, Maths,
// S.St, Science, AI}. Classes 11-12 only carry the 1-12 subjects; no
// fuller rule is defined for them.
var SubjectMappings = []SubjectMapping{
	{Name: "Hindi", Code: "HINDI", FromClass: 1, ToClass: 12},
	{Name: "English", Code: "ENG", FromClass: 1, ToClass: 12},
	{Name: "Maths", Code: "MATH", FromClass: 1, ToClass: 12},
	{Name: "EVS", Code: "EVS", FromClass: 1, ToClass: 5},
	{Name: "Computer", Code: "COMP", FromClass: 1, ToClass: 8},
	{Name: "S.St", Code: "SST", FromClass: 6, ToClass: 10},
	{Name: "Science", Code: "SCI", FromClass: 6, ToClass: 10},
	{Name: "AI", Code: "AI", FromClass: 9, ToClass: 12},
}

// SubjectsForClass returns the subjects applicable to a class number.
// Class numbers outside every mapping range yield an empty slice.
func SubjectsForClass(classNumber int) []SubjectMapping {
	var subjects []SubjectMapping
	for _, s := range SubjectMappings {
		if classNumber >= s.FromClass && classNumber <= s.ToClass {
			subjects = append(subjects, s)
		}
	}
	return subjects
}

// IsSubjectApplicable reports whether the subject code applies to the
// given class number.
func IsSubjectApplicable(code string, classNumber int) bool {
	for _, s := range SubjectMappings {
		if s.Code == code {
			return classNumber >= s.FromClass && classNumber <= s.ToClass
		}
	}
	return false
}

var romanClasses = map[string]int{
	"I": 1, "II": 2, "III": 3, "IV": 4, "V": 5, "VI": 6,
	"VII": 7, "VIII": 8, "IX": 9, "X": 10, "XI": 11, "XII": 12,
}

// ParseClassNumber parses a class label into its number. Decimal labels
// ("7") and the Roman numerals common for classes ("VII") are accepted;
// anything else reports ok=false.
func ParseClassNumber(className string) (int, bool) {
	trimmed := strings.TrimSpace(className)
	if trimmed == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(trimmed); err == nil {
		return n, true
	}
	if n, ok := romanClasses[strings.ToUpper(trimmed)]; ok {
		return n, true
	}
	return 0, false
}

// MaxMarks returns the maximum marks a subject is worth for the given
// class label and exam type. Half Yearly and Annual are always out of
// 100. Periodic assessments (PA1-PA4) are out of 40 for classes 9 and
// above and 30 for classes 1-8. A class label that fails to parse, or a
// class number outside 1 and up, falls back to 100.
func MaxMarks(className string, examType models.ExamType) int {
	if examType.IsTermExam() {
		return 100
	}
	if classNum, ok := ParseClassNumber(className); ok {
		if classNum >= 9 {
			return 40
		}
		if classNum >= 1 && classNum <= 8 {
			return 30
		}
	}
	return 100
}
