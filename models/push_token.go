package models

import "time"

// PushToken is a user's registered device address for push delivery.
// At most one per user: re-registering replaces the previous token.
type PushToken struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"uniqueIndex" json:"-"`
	Token       string    `gorm:"size:256" json:"-"`
	Platform    string    `gorm:"size:16" json:"platform"` // "android" | "ios"
	EndpointARN string    `gorm:"size:256" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
