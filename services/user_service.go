package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/drexwrld/synapes-backend/models"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

type ProfileInput struct {
	FullName     string `json:"full_name"`
	Department   string `json:"department"`
	AcademicYear string `json:"academic_year"`
}

func profileResponse(user *models.User) map[string]any {
	return map[string]any{
		"id":                    user.ID,
		"email":                 user.Email,
		"full_name":             user.FullName,
		"department":            user.Department,
		"academic_year":         user.AcademicYear,
		"avatar_url":            user.AvatarURL,
		"is_hoc":                user.IsHOC,
		"notifications_enabled": user.NotificationsEnabled,
		"created_at":            user.CreatedAt,
	}
}

func (s *UserService) Profile(userID uint) (map[string]any, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, ErrNotFound
	}
	return profileResponse(&user), nil
}

func (s *UserService) UpdateProfile(userID uint, input ProfileInput) (map[string]any, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, ErrNotFound
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.Department != "" {
		user.Department = input.Department
	}
	if input.AcademicYear != "" {
		user.AcademicYear = input.AcademicYear
	}

	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}
	return profileResponse(&user), nil
}

func (s *UserService) SetAvatarURL(userID uint, url string) error {
	res := s.db.Model(&models.User{}).Where("id = ?", userID).Update("avatar_url", url)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *UserService) SetNotificationsEnabled(userID uint, enabled bool) error {
	res := s.db.Model(&models.User{}).Where("id = ?", userID).Update("notifications_enabled", enabled)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// EnableHOC is the escape hatch that grants the caller the head-of-class
// role. There is no admin console; class reps self-promote and the act
// is logged upstream.
func (s *UserService) EnableHOC(userID uint) error {
	res := s.db.Model(&models.User{}).Where("id = ?", userID).Update("is_hoc", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Dashboard aggregates what the app's home screen shows: the profile
// summary, the next enrolled classes, and the unread notification count.
func (s *UserService) Dashboard(userID uint) (map[string]any, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, ErrNotFound
	}

	var upcoming []models.Class
	err := s.db.
		Joins("JOIN enrollments ON enrollments.class_id = classes.id").
		Where("enrollments.user_id = ? AND classes.starts_at > ? AND classes.status IN ?",
			userID, time.Now(), []string{models.ClassScheduled, models.ClassRescheduled}).
		Order("classes.starts_at").
		Limit(5).
		Find(&upcoming).Error
	if err != nil {
		return nil, err
	}

	var unread int64
	if err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&unread).Error; err != nil {
		return nil, err
	}

	dashboard := map[string]any{
		"profile":              profileResponse(&user),
		"upcoming_classes":     upcoming,
		"unread_notifications": unread,
	}

	if user.IsHOC {
		var owned int64
		if err := s.db.Model(&models.Class{}).
			Where("owner_id = ?", userID).
			Count(&owned).Error; err != nil {
			return nil, err
		}
		dashboard["owned_classes"] = owned
	}

	return dashboard, nil
}
