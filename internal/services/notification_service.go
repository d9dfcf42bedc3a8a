package services

import (
	"gorm.io/gorm"

	"workbridge/internal/models"
	"workbridge/internal/repositories"
	"workbridge/pkg/apperrors"
)

type NotificationService struct {
	db               *gorm.DB
	notificationRepo repositories.NotificationRepository
}

func NewNotificationService(db *gorm.DB, notificationRepo repositories.NotificationRepository) *NotificationService {
	return &NotificationService{db: db, notificationRepo: notificationRepo}
}

func (s *NotificationService) ListForUser(userID string) ([]models.Notification, error) {
	notifications, err := s.notificationRepo.ListByUser(s.db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return notifications, nil
}

// MarkRead is scoped to the owner: marking someone else's
// notification is a silent no-op.
func (s *NotificationService) MarkRead(notificationID, userID string) error {
	if err := s.notificationRepo.MarkRead(s.db, notificationID, userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *NotificationService) CountUnread(userID string) (int64, error) {
	count, err := s.notificationRepo.CountUnread(s.db, userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}
