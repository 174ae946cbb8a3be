package models

import "time"

// Enrollment joins a student to a class. One row per (class, student).
type Enrollment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ClassID   uint      `gorm:"index;uniqueIndex:idx_class_student" json:"class_id"`
	UserID    uint      `gorm:"index;uniqueIndex:idx_class_student" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
