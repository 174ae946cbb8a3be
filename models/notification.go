package models

import "time"

type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"-"`
	Title     string    `json:"title"`
	Body      string    `gorm:"type:text" json:"body"`
	Type      string    `gorm:"size:20" json:"type"` // "class" | "system"
	Source    string    `json:"source"`
	Read      bool      `gorm:"default:false" json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
