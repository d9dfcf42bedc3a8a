package repositories

import (
	"errors"

	"gorm.io/gorm"

	"workbridge/internal/models"
)

var ErrBidNotFound = errors.New("bid not found")

type BidRepository interface {
	// ReplaceBid deletes the bidder's prior bid for the job (if any)
	// and inserts the new one. Resubmission is idempotent, not an error.
	ReplaceBid(db *gorm.DB, bid *models.Bid) error
	FindBid(db *gorm.DB, jobID, bidderID string) (*models.Bid, error)
	FindBidsByJob(db *gorm.DB, jobID string) ([]models.Bid, error)
	DeleteBidsByJob(db *gorm.DB, jobID string) error
	CountBidsByJob(db *gorm.DB, jobID string) (int64, error)
}

type bidRepository struct{}

func NewBidRepository() BidRepository {
	return &bidRepository{}
}

func (r *bidRepository) ReplaceBid(db *gorm.DB, bid *models.Bid) error {
	err := db.Where("job_id = ? AND bidder_id = ?", bid.JobID, bid.BidderID).
		Delete(&models.Bid{}).Error
	if err != nil {
		return err
	}
	return db.Create(bid).Error
}

func (r *bidRepository) FindBid(db *gorm.DB, jobID, bidderID string) (*models.Bid, error) {
	var bid models.Bid
	err := db.Where("job_id = ? AND bidder_id = ?", jobID, bidderID).First(&bid).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBidNotFound
		}
		return nil, err
	}
	return &bid, nil
}

// FindBidsByJob returns all bids ordered highest offer first, the
// presentation order for the client's selection.
func (r *bidRepository) FindBidsByJob(db *gorm.DB, jobID string) ([]models.Bid, error) {
	var bids []models.Bid
	err := db.Preload("Bidder").
		Where("job_id = ?", jobID).
		Order("amount DESC").
		Find(&bids).Error
	return bids, err
}

func (r *bidRepository) DeleteBidsByJob(db *gorm.DB, jobID string) error {
	return db.Where("job_id = ?", jobID).Delete(&models.Bid{}).Error
}

func (r *bidRepository) CountBidsByJob(db *gorm.DB, jobID string) (int64, error) {
	var count int64
	err := db.Model(&models.Bid{}).Where("job_id = ?", jobID).Count(&count).Error
	return count, err
}
