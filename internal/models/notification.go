package models

type NotificationType string

const (
	NotificationBidPlaced      NotificationType = "bid_placed"
	NotificationJobAssigned    NotificationType = "job_assigned"
	NotificationJobDelivered   NotificationType = "job_delivered"
	NotificationDeliveryReject NotificationType = "delivery_rejected"
	NotificationJobCompleted   NotificationType = "job_completed"
	NotificationRatingReceived NotificationType = "rating_received"
	NotificationJobRequested   NotificationType = "job_requested"
)

// Notification is an in-app message shown on a user's dashboard.
type Notification struct {
	BaseModel
	UserID  string           `gorm:"not null;index" json:"user_id"`
	JobID   *string          `gorm:"index" json:"job_id"`
	Type    NotificationType `gorm:"not null" json:"type"`
	Message string           `gorm:"not null" json:"message"`
	IsRead  bool             `gorm:"not null;default:false" json:"is_read"`
}
