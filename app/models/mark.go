package models

import "time"

// Mark stores one subject's score for one student in one exam type.
// (student, subject, exam type) is the natural key. TotalMarks is frozen
// at write time so historical rows keep the scale they were graded on
// even if the curriculum policy changes later.
type Mark struct {
	ID             string        `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	StudentID      string        `json:"student_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	ClassSectionID *string       `json:"class_section_id,omitempty" gorm:"index;type:uuid" validate:"omitempty,uuid"`
	SubjectID      string        `json:"subject_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	ExamType       ExamType      `json:"exam_type" gorm:"not null;index" validate:"required"`
	MarksObtained  float64       `json:"marks_obtained" gorm:"not null;type:decimal(5,2)" validate:"gte=0"`
	TotalMarks     float64       `json:"total_marks" gorm:"not null;type:decimal(5,2)" validate:"gt=0"`
	Remarks        string        `json:"remarks,omitempty"`
	CreatedBy      string        `json:"created_by,omitempty"`
	UpdatedBy      string        `json:"updated_by,omitempty"`
	CreatedAt      time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
	Student        *Student      `json:"student,omitempty" gorm:"foreignKey:StudentID;references:ID"`
	Subject        *Subject      `json:"subject,omitempty" gorm:"foreignKey:SubjectID;references:ID"`
	ClassSection   *ClassSection `json:"class_section,omitempty" gorm:"foreignKey:ClassSectionID;references:ID"`
}

// MarksHistory is an append-only audit row written whenever an existing
// Mark's obtained value changes. Rows are never updated or deleted, and
// no row is written for a first-time insert (there is no prior value).
type MarksHistory struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid" validate:"required,uuid"`
	MarkID    string    `json:"mark_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	StudentID string    `json:"student_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	SubjectID string    `json:"subject_id" gorm:"not null;type:uuid" validate:"required,uuid"`
	ExamType  ExamType  `json:"exam_type" gorm:"not null" validate:"required"`
	OldMarks  float64   `json:"old_marks" gorm:"not null;type:decimal(5,2)"`
	NewMarks  float64   `json:"new_marks" gorm:"not null;type:decimal(5,2)"`
	UpdatedBy string    `json:"updated_by" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	Subject   *Subject  `json:"subject,omitempty" gorm:"foreignKey:SubjectID;references:ID"`
}
