package handlers

import (
	"workbridge/internal/services"
	"workbridge/internal/validator"
)

// AppHandlers groups every HTTP handler for route registration.
type AppHandlers struct {
	Auth         *AuthHandler
	Job          *JobHandler
	Bid          *BidHandler
	Rating       *RatingHandler
	Notification *NotificationHandler
}

func NewAppHandlers(sc *services.ServiceContainer) *AppHandlers {
	base := NewBaseHandler(validator.New())
	return &AppHandlers{
		Auth:         NewAuthHandler(base, sc.Auth),
		Job:          NewJobHandler(base, sc.Job),
		Bid:          NewBidHandler(base, sc.Bid),
		Rating:       NewRatingHandler(base, sc.Rating),
		Notification: NewNotificationHandler(base, sc.Notification),
	}
}
