package models

import "time"

// Assignment ties one teacher to one class-section and one subject,
// granting marks access. (teacher, class-section, subject) triples are
// logically unique; an administrator edit replaces a teacher's rows
// wholesale rather than patching them.
type Assignment struct {
	ID             string        `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	TeacherID      string        `json:"teacher_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	ClassSectionID string        `json:"class_section_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	SubjectID      string        `json:"subject_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	CreatedAt      time.Time     `json:"created_at" gorm:"autoCreateTime"`
	Teacher        *Teacher      `json:"teacher,omitempty" gorm:"foreignKey:TeacherID;references:ID"`
	ClassSection   *ClassSection `json:"class_section,omitempty" gorm:"foreignKey:ClassSectionID;references:ID"`
	Subject        *Subject      `json:"subject,omitempty" gorm:"foreignKey:SubjectID;references:ID"`
}
