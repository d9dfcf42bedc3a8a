package repositories

import (
	"gorm.io/gorm"

	"workbridge/internal/models"
)

type NotificationRepository interface {
	Create(db *gorm.DB, n *models.Notification) error
	ListByUser(db *gorm.DB, userID string) ([]models.Notification, error)
	MarkRead(db *gorm.DB, id, userID string) error
	CountUnread(db *gorm.DB, userID string) (int64, error)
}

type notificationRepository struct{}

func NewNotificationRepository() NotificationRepository {
	return &notificationRepository{}
}

func (r *notificationRepository) Create(db *gorm.DB, n *models.Notification) error {
	return db.Create(n).Error
}

func (r *notificationRepository) ListByUser(db *gorm.DB, userID string) ([]models.Notification, error) {
	var notifications []models.Notification
	err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) MarkRead(db *gorm.DB, id, userID string) error {
	return db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true).Error
}

func (r *notificationRepository) CountUnread(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}
