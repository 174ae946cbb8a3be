package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email                string `gorm:"uniqueIndex;not null"`
	Password             string `gorm:"not null"`
	FullName             string
	Department           string
	AcademicYear         string
	AvatarURL            string
	IsHOC                bool `gorm:"default:false"`
	NotificationsEnabled bool `gorm:"default:true"`
	ResetCode            string
	ResetCodeExp         time.Time
}
