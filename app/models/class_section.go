package models

import "time"

// ClassSection is one class number plus section letter, e.g. class "7"
// section "B". It is the unit of teacher assignment.
type ClassSection struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Name      string    `json:"name" gorm:"not null" validate:"required"`
	Section   string    `json:"section" gorm:"not null" validate:"required"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Label formats the class-section for display, e.g. "7-B".
func (cs *ClassSection) Label() string {
	return cs.Name + "-" + cs.Section
}
