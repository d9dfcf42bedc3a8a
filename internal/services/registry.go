package services

import (
	"time"

	"gorm.io/gorm"

	"workbridge/internal/config"
	"workbridge/internal/repositories"
)

// ServiceContainer wires every service over one shared *gorm.DB and a
// stateless repository set.
type ServiceContainer struct {
	Auth         *AuthService
	Job          *JobService
	Bid          *BidService
	Rating       *RatingService
	Notification *NotificationService
}

func NewServiceContainer(db *gorm.DB, cfg *config.Config) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	jobRepo := repositories.NewJobRepository()
	bidRepo := repositories.NewBidRepository()
	deliverableRepo := repositories.NewDeliverableRepository()
	ratingRepo := repositories.NewRatingRepository()
	notificationRepo := repositories.NewNotificationRepository()

	ratingWindow := time.Duration(cfg.Rating.WindowHours) * time.Hour

	return &ServiceContainer{
		Auth:         NewAuthService(db, userRepo),
		Job:          NewJobService(db, jobRepo, bidRepo, deliverableRepo, ratingRepo, notificationRepo, userRepo, ratingWindow),
		Bid:          NewBidService(db, jobRepo, bidRepo, notificationRepo, userRepo),
		Rating:       NewRatingService(db, jobRepo, ratingRepo, notificationRepo, userRepo),
		Notification: NewNotificationService(db, notificationRepo),
	}
}
