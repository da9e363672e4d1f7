package models

import "time"

// Subject is a taught subject with its applicability range expressed as
// inclusive class numbers. The range is seeded from the curriculum
// mapping, not entered freely.
type Subject struct {
	ID                  string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Name                string    `json:"name" gorm:"uniqueIndex;not null" validate:"required"`
	Code                string    `json:"code" gorm:"uniqueIndex;not null" validate:"required"`
	ApplicableFromClass int       `json:"applicable_from_class" gorm:"not null" validate:"gte=1"`
	ApplicableToClass   int       `json:"applicable_to_class" gorm:"not null" validate:"gte=1"`
	CreatedAt           time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt           time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
