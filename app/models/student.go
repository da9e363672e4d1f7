package models

import "time"

// Student is an enrolled pupil. AdmissionID is the unique external
// identifier used for search and login; ClassSectionID links to the
// class-section entity and may be missing on older rows (the marks
// service backfills it from ClassName+Section on first lookup).
type Student struct {
	ID             string        `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	AdmissionID    string        `json:"admission_id" gorm:"uniqueIndex;not null" validate:"required"`
	Name           string        `json:"name" gorm:"not null" validate:"required"`
	Email          *string       `json:"email,omitempty" validate:"omitempty,email"`
	Phone          *string       `json:"phone,omitempty" gorm:"type:varchar(20)"`
	ClassName      string        `json:"class_name" gorm:"not null" validate:"required"`
	Section        string        `json:"section" gorm:"not null" validate:"required"`
	ClassSectionID *string       `json:"class_section_id,omitempty" gorm:"index;type:uuid" validate:"omitempty,uuid"`
	FatherName     *string       `json:"father_name,omitempty"`
	Password       string        `json:"-" gorm:"not null"`
	Status         StudentStatus `json:"status" gorm:"default:'active'"`
	CreatedAt      time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
	ClassSection   *ClassSection `json:"class_section,omitempty" gorm:"foreignKey:ClassSectionID;references:ID"`
}

// ClassSectionLabel formats the class and section for display, e.g. "7-B".
func (s *Student) ClassSectionLabel() string {
	return s.ClassName + "-" + s.Section
}
