package repositories

import (
	"errors"

	"gorm.io/gorm"

	"workbridge/internal/models"
)

var ErrDeliverableNotFound = errors.New("deliverable not found")

type DeliverableRepository interface {
	Create(db *gorm.DB, d *models.Deliverable) error
	ListByJob(db *gorm.DB, jobID string) ([]models.Deliverable, error)
	// FindCurrent returns the most recent deliverable for the job.
	FindCurrent(db *gorm.DB, jobID string) (*models.Deliverable, error)
	// StampRejectReason sets the reject reason on every deliverable of
	// the job, not just the latest.
	StampRejectReason(db *gorm.DB, jobID, reason string) error
	DeleteByJob(db *gorm.DB, jobID string) error
}

type deliverableRepository struct{}

func NewDeliverableRepository() DeliverableRepository {
	return &deliverableRepository{}
}

func (r *deliverableRepository) Create(db *gorm.DB, d *models.Deliverable) error {
	return db.Create(d).Error
}

func (r *deliverableRepository) ListByJob(db *gorm.DB, jobID string) ([]models.Deliverable, error) {
	var deliverables []models.Deliverable
	err := db.Preload("Uploader").
		Where("job_id = ?", jobID).
		Order("created_at ASC").
		Find(&deliverables).Error
	return deliverables, err
}

func (r *deliverableRepository) FindCurrent(db *gorm.DB, jobID string) (*models.Deliverable, error) {
	var d models.Deliverable
	err := db.Where("job_id = ?", jobID).
		Order("created_at DESC").
		First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeliverableNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *deliverableRepository) StampRejectReason(db *gorm.DB, jobID, reason string) error {
	return db.Model(&models.Deliverable{}).
		Where("job_id = ?", jobID).
		Update("reject_reason", reason).Error
}

func (r *deliverableRepository) DeleteByJob(db *gorm.DB, jobID string) error {
	return db.Where("job_id = ?", jobID).Delete(&models.Deliverable{}).Error
}
