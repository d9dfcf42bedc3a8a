package services

import (
	"fmt"

	"gorm.io/gorm"

	"workbridge/internal/models"
	"workbridge/internal/repositories"
	"workbridge/internal/services/dto"
	"workbridge/pkg/apperrors"
)

// BidService implements open bidding on unassigned jobs. A freelancer
// holds at most one live bid per job; re-bidding replaces the previous
// amount.
type BidService struct {
	db               *gorm.DB
	jobRepo          repositories.JobRepository
	bidRepo          repositories.BidRepository
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository
}

func NewBidService(
	db *gorm.DB,
	jobRepo repositories.JobRepository,
	bidRepo repositories.BidRepository,
	notificationRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
) *BidService {
	return &BidService{
		db:               db,
		jobRepo:          jobRepo,
		bidRepo:          bidRepo,
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
	}
}

// PlaceBid records a freelancer's offer on an open job. The amount
// must exceed the job's budget. The first accepted bid moves the job
// from new to bidding.
func (s *BidService) PlaceBid(jobID, bidderID string, amount float64) (*dto.BidResponse, error) {
	bidder, err := s.userRepo.FindByID(s.db, bidderID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if bidder.Role != models.UserRoleFreelancer {
		return nil, apperrors.ErrInvalidUserRole
	}

	var bid *models.Bid
	err = s.db.Transaction(func(tx *gorm.DB) error {
		job, err := s.jobRepo.FindJobByID(tx, jobID)
		if err != nil {
			if err == repositories.ErrJobNotFound {
				return apperrors.ErrJobNotFound
			}
			return apperrors.InternalError(err)
		}
		if !job.Status.In(models.UnassignedJobStatuses...) {
			return apperrors.ErrInvalidStatus("bidding",
				fmt.Sprintf("cannot bid on a job in status %q", job.Status))
		}
		if amount <= job.Budget {
			return apperrors.ErrBidTooLow
		}

		bid = &models.Bid{
			JobID:    jobID,
			BidderID: bidderID,
			Amount:   amount,
		}
		if err := s.bidRepo.ReplaceBid(tx, bid); err != nil {
			return apperrors.InternalError(err)
		}

		// No-op when the job is already in bidding.
		if _, err := s.jobRepo.TransitionStatus(tx, jobID,
			[]models.JobStatus{models.JobStatusNew}, models.JobStatusBidding); err != nil {
			return apperrors.InternalError(err)
		}

		n := &models.Notification{
			UserID:  job.ClientID,
			JobID:   &jobID,
			Type:    models.NotificationBidPlaced,
			Message: fmt.Sprintf("%s bid %.2f on %q", bidder.Username, amount, job.Title),
		}
		if err := s.notificationRepo.Create(tx, n); err != nil {
			return apperrors.InternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	bid.Bidder = *bidder
	return buildBidResponse(bid), nil
}

// GetBids lists the live bids on a job, highest amount first.
func (s *BidService) GetBids(jobID string) ([]*dto.BidResponse, error) {
	if _, err := s.jobRepo.FindJobByID(s.db, jobID); err != nil {
		if err == repositories.ErrJobNotFound {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	bids, err := s.bidRepo.FindBidsByJob(s.db, jobID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]*dto.BidResponse, 0, len(bids))
	for i := range bids {
		responses = append(responses, buildBidResponse(&bids[i]))
	}
	return responses, nil
}

// ChooseBid accepts one freelancer's bid: the job is assigned at the
// bid amount and every live bid on the job is discarded, the winner's
// included.
func (s *BidService) ChooseBid(jobID, clientID, freelancerID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		job, err := s.jobRepo.FindJobByID(tx, jobID)
		if err != nil {
			if err == repositories.ErrJobNotFound {
				return apperrors.ErrJobNotFound
			}
			return apperrors.InternalError(err)
		}
		if job.ClientID != clientID {
			return apperrors.ErrNotJobOwner
		}

		bid, err := s.bidRepo.FindBid(tx, jobID, freelancerID)
		if err != nil {
			if err == repositories.ErrBidNotFound {
				return apperrors.ErrNotFound(err)
			}
			return apperrors.InternalError(err)
		}

		ok, err := s.jobRepo.AssignFreelancer(tx, jobID, freelancerID, bid.Amount,
			[]models.JobStatus{models.JobStatusNew, models.JobStatusBidding})
		if err != nil {
			return apperrors.InternalError(err)
		}
		if !ok {
			return apperrors.ErrInvalidStatus("bidding",
				fmt.Sprintf("cannot accept a bid on a job in status %q", job.Status))
		}

		if err := s.bidRepo.DeleteBidsByJob(tx, jobID); err != nil {
			return apperrors.InternalError(err)
		}

		n := &models.Notification{
			UserID:  freelancerID,
			JobID:   &jobID,
			Type:    models.NotificationJobAssigned,
			Message: fmt.Sprintf("Your bid of %.2f on %q was accepted", bid.Amount, job.Title),
		}
		if err := s.notificationRepo.Create(tx, n); err != nil {
			return apperrors.InternalError(err)
		}
		return nil
	})
}

func buildBidResponse(bid *models.Bid) *dto.BidResponse {
	return &dto.BidResponse{
		ID:         bid.ID,
		JobID:      bid.JobID,
		BidderID:   bid.BidderID,
		BidderName: bid.Bidder.Username,
		Amount:     bid.Amount,
		CreatedAt:  bid.CreatedAt,
	}
}
