package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/drexwrld/synapes-backend/models"
)

type ClassService struct {
	db *gorm.DB
}

func NewClassService(db *gorm.DB) *ClassService {
	return &ClassService{db: db}
}

type ClassInput struct {
	Title       string    `json:"title" binding:"required"`
	Subject     string    `json:"subject"`
	Location    string    `json:"location" binding:"required"`
	StartsAt    time.Time `json:"starts_at" binding:"required"`
	DurationMin int       `json:"duration_min" binding:"required,gt=0"`
	Capacity    int       `json:"capacity" binding:"gte=0"`
}

type RescheduleInput struct {
	StartsAt    time.Time `json:"starts_at" binding:"required"`
	Location    string    `json:"location"`
	DurationMin int       `json:"duration_min"`
}

// mutableStatuses are the non-terminal states. Every ownership-scoped
// UPDATE carries them in its WHERE clause so a terminal class can never
// transition again, whatever the request.
var mutableStatuses = []string{models.ClassScheduled, models.ClassRescheduled}

func (s *ClassService) Create(ownerID uint, input ClassInput) (*models.Class, error) {
	class := models.Class{
		OwnerID:     ownerID,
		Title:       input.Title,
		Subject:     input.Subject,
		Location:    input.Location,
		StartsAt:    input.StartsAt,
		DurationMin: input.DurationMin,
		Capacity:    input.Capacity,
		Status:      models.ClassScheduled,
	}
	if err := s.db.Create(&class).Error; err != nil {
		return nil, err
	}
	return &class, nil
}

func (s *ClassService) ListOwned(ownerID uint) ([]models.Class, error) {
	var classes []models.Class
	err := s.db.Where("owner_id = ?", ownerID).Order("starts_at").Find(&classes).Error
	return classes, err
}

// GetOwned answers ErrNotFound for both "no such class" and "not
// yours"; callers cannot tell the two apart.
func (s *ClassService) GetOwned(ownerID, classID uint) (*models.Class, error) {
	var class models.Class
	err := s.db.Where("id = ? AND owner_id = ?", classID, ownerID).First(&class).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &class, nil
}

// Update edits the non-schedule fields of a non-terminal owned class.
func (s *ClassService) Update(ownerID, classID uint, input ClassInput) (*models.Class, error) {
	class, err := s.GetOwned(ownerID, classID)
	if err != nil {
		return nil, err
	}
	if class.Terminal() {
		return nil, ErrInvalidTransition
	}

	class.Title = input.Title
	class.Subject = input.Subject
	class.Location = input.Location
	class.StartsAt = input.StartsAt
	class.DurationMin = input.DurationMin
	class.Capacity = input.Capacity
	if err := s.db.Save(class).Error; err != nil {
		return nil, err
	}
	return class, nil
}

// transition runs one conditional UPDATE: ownership and the allowed
// source states live in the WHERE clause, so the row mutates atomically
// or not at all.
func (s *ClassService) transition(ownerID, classID uint, updates map[string]any) (*models.Class, error) {
	res := s.db.Model(&models.Class{}).
		Where("id = ? AND owner_id = ? AND status IN ?", classID, ownerID, mutableStatuses).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Distinguish missing/unowned from terminal for the caller.
		if _, err := s.GetOwned(ownerID, classID); err != nil {
			return nil, err
		}
		return nil, ErrInvalidTransition
	}
	return s.GetOwned(ownerID, classID)
}

func (s *ClassService) Reschedule(ownerID, classID uint, input RescheduleInput) (*models.Class, error) {
	updates := map[string]any{
		"status":    models.ClassRescheduled,
		"starts_at": input.StartsAt,
	}
	if input.Location != "" {
		updates["location"] = input.Location
	}
	if input.DurationMin > 0 {
		updates["duration_min"] = input.DurationMin
	}
	return s.transition(ownerID, classID, updates)
}

func (s *ClassService) Cancel(ownerID, classID uint) (*models.Class, error) {
	return s.transition(ownerID, classID, map[string]any{"status": models.ClassCancelled})
}

func (s *ClassService) Complete(ownerID, classID uint) (*models.Class, error) {
	return s.transition(ownerID, classID, map[string]any{"status": models.ClassCompleted})
}

func (s *ClassService) ListEnrolled(userID uint) ([]models.Class, error) {
	var classes []models.Class
	err := s.db.
		Joins("JOIN enrollments ON enrollments.class_id = classes.id").
		Where("enrollments.user_id = ?", userID).
		Order("classes.starts_at").
		Find(&classes).Error
	return classes, err
}

func (s *ClassService) Enroll(userID, classID uint) error {
	var class models.Class
	if err := s.db.First(&class, classID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if class.Terminal() {
		return ErrClassNotOpen
	}

	var existing models.Enrollment
	if err := s.db.Where("class_id = ? AND user_id = ?", classID, userID).First(&existing).Error; err == nil {
		return ErrAlreadyEnrolled
	}

	if class.Capacity > 0 {
		var count int64
		if err := s.db.Model(&models.Enrollment{}).Where("class_id = ?", classID).Count(&count).Error; err != nil {
			return err
		}
		if count >= int64(class.Capacity) {
			return ErrClassFull
		}
	}

	return s.db.Create(&models.Enrollment{ClassID: classID, UserID: userID}).Error
}

func (s *ClassService) Unenroll(userID, classID uint) error {
	res := s.db.Where("class_id = ? AND user_id = ?", classID, userID).Delete(&models.Enrollment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotEnrolled
	}
	return nil
}

// EnrolledStudentIDs feeds broadcast fan-out.
func (s *ClassService) EnrolledStudentIDs(classID uint) ([]uint, error) {
	var ids []uint
	err := s.db.Model(&models.Enrollment{}).Where("class_id = ?", classID).Pluck("user_id", &ids).Error
	return ids, err
}
