package models

// ExamType defines the fixed grading cycles of an academic year.
// The set is closed; the order below is the order exams occur in.
type ExamType string

const (
	ExamPA1        ExamType = "PA1"
	ExamPA2        ExamType = "PA2"
	ExamHalfYearly ExamType = "Half Yearly"
	ExamPA3        ExamType = "PA3"
	ExamPA4        ExamType = "PA4"
	ExamAnnual     ExamType = "Annual"
)

// ExamTypes returns all exam types in cycle order.
func ExamTypes() []ExamType {
	return []ExamType{ExamPA1, ExamPA2, ExamHalfYearly, ExamPA3, ExamPA4, ExamAnnual}
}

// ParseExamType validates a raw exam type string against the closed set.
func ParseExamType(s string) (ExamType, bool) {
	for _, et := range ExamTypes() {
		if string(et) == s {
			return et, true
		}
	}
	return "", false
}

// IsTermExam reports whether the exam type is a full-length term exam
// (Half Yearly or Annual) rather than a periodic assessment.
func (et ExamType) IsTermExam() bool {
	return et == ExamHalfYearly || et == ExamAnnual
}

// Role defines the possible roles of an authenticated caller.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// StudentStatus defines the possible status values for a student record.
type StudentStatus string

const (
	StudentActive   StudentStatus = "active"
	StudentInactive StudentStatus = "inactive"
)
