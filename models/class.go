package models

import "time"

// Class statuses. Cancelled and completed are terminal: once a class
// reaches either, no further schedule changes are accepted.
const (
	ClassScheduled   = "scheduled"
	ClassRescheduled = "rescheduled"
	ClassCancelled   = "cancelled"
	ClassCompleted   = "completed"
)

type Class struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OwnerID     uint      `gorm:"index;not null" json:"owner_id"`
	Title       string    `gorm:"not null" json:"title"`
	Subject     string    `json:"subject"`
	Location    string    `json:"location"`
	StartsAt    time.Time `gorm:"index" json:"starts_at"`
	DurationMin int       `json:"duration_min"`
	Capacity    int       `json:"capacity"`
	Status      string    `gorm:"size:16;default:scheduled" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Terminal reports whether the class can no longer be mutated.
func (c *Class) Terminal() bool {
	return c.Status == ClassCancelled || c.Status == ClassCompleted
}
