package models

import "time"

// Teacher is a member of the teaching staff. TeacherID is the unique
// external identifier used for login; marks access is governed by the
// teacher's Assignment rows, not by fields on this record.
type Teacher struct {
	ID          string        `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	TeacherID   string        `json:"teacher_id" gorm:"uniqueIndex;not null" validate:"required"`
	Name        string        `json:"name" gorm:"not null" validate:"required"`
	Email       string        `json:"email" gorm:"uniqueIndex;not null" validate:"required,email"`
	Phone       *string       `json:"phone,omitempty" gorm:"type:varchar(20)"`
	Password    string        `json:"-" gorm:"not null"`
	IsActive    bool          `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
	Assignments []*Assignment `json:"assignments,omitempty" gorm:"foreignKey:TeacherID;references:ID"`
}

// Admin is an administrative user with unrestricted access to the
// marks subsystem.
type Admin struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null" validate:"required,email"`
	Name      string    `json:"name" gorm:"not null" validate:"required"`
	Password  string    `json:"-" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
