package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/drexwrld/synapes-backend/models"
)

// NotificationService owns the in-app notification records and fans new
// ones out over the realtime hub and the push relay.
type NotificationService struct {
	db   *gorm.DB
	hub  *RealtimeHub
	push *PushService
}

// NewNotificationService accepts nil hub/push; fan-out is then skipped.
func NewNotificationService(db *gorm.DB, hub *RealtimeHub, push *PushService) *NotificationService {
	return &NotificationService{db: db, hub: hub, push: push}
}

func (s *NotificationService) Notify(ctx context.Context, userID uint, title, body, ntype, source string) (*models.Notification, error) {
	n := &models.Notification{
		UserID: userID,
		Title:  title,
		Body:   body,
		Type:   ntype,
		Source: source,
	}
	if err := s.db.Create(n).Error; err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.Broadcast(userID, map[string]any{
			"kind":         "notification.created",
			"notification": n,
		})
	}
	if s.push != nil {
		s.push.PushToUser(ctx, userID, title, body, map[string]string{"type": ntype})
	}
	return n, nil
}

// NotifyClassStudents delivers one notification per enrolled student,
// skipping the owner. Returns how many were created.
func (s *NotificationService) NotifyClassStudents(ctx context.Context, class *models.Class, title, body string) (int, error) {
	var ids []uint
	err := s.db.Model(&models.Enrollment{}).Where("class_id = ?", class.ID).Pluck("user_id", &ids).Error
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, id := range ids {
		if id == class.OwnerID {
			continue
		}
		if _, err := s.Notify(ctx, id, title, body, "class", class.Title); err != nil {
			return sent, err
		}
		sent++
	}
	return sent, nil
}

func (s *NotificationService) List(userID uint) ([]models.Notification, error) {
	var out []models.Notification
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (s *NotificationService) UnreadCount(userID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (s *NotificationService) MarkRead(userID, notificationID uint) error {
	res := s.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *NotificationService) MarkAllRead(userID uint) error {
	return s.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true).Error
}

func (s *NotificationService) Delete(userID, notificationID uint) error {
	res := s.db.Where("id = ? AND user_id = ?", notificationID, userID).Delete(&models.Notification{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
