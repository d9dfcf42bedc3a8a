package services

import (
	"math"
	"time"

	"gorm.io/gorm"

	"workbridge/internal/models"
	"workbridge/internal/repositories"
	"workbridge/internal/services/dto"
	"workbridge/pkg/apperrors"
)

// RatingService handles mutual post-completion ratings. Submissions
// are accepted only while the job's rating window is open; the ratee's
// persisted stats are fully recomputed inside the same transaction.
type RatingService struct {
	db               *gorm.DB
	jobRepo          repositories.JobRepository
	ratingRepo       repositories.RatingRepository
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository
}

func NewRatingService(
	db *gorm.DB,
	jobRepo repositories.JobRepository,
	ratingRepo repositories.RatingRepository,
	notificationRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
) *RatingService {
	return &RatingService{
		db:               db,
		jobRepo:          jobRepo,
		ratingRepo:       ratingRepo,
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
	}
}

// SubmitRating records the rater's scores for the other party of a
// completed job. Resubmission before the deadline overwrites the
// previous scores and triggers a fresh stats recompute.
func (s *RatingService) SubmitRating(raterID string, req *dto.SubmitRatingRequest) (*dto.RatingResponse, error) {
	var rating *models.Rating
	err := s.db.Transaction(func(tx *gorm.DB) error {
		job, err := s.jobRepo.FindJobByID(tx, req.JobID)
		if err != nil {
			if err == repositories.ErrJobNotFound {
				return apperrors.ErrJobNotFound
			}
			return apperrors.InternalError(err)
		}

		raterRole, err := participantRole(job, raterID)
		if err != nil {
			return err
		}
		if err := verifyRatee(job, raterRole, req.RateeID); err != nil {
			return err
		}

		deadline, err := s.ratingRepo.FindDeadlineByJob(tx, req.JobID)
		if err != nil {
			if err == repositories.ErrDeadlineNotFound {
				return apperrors.ErrNoRatingDeadline
			}
			return apperrors.InternalError(err)
		}
		if time.Now().After(deadline.RatingDeadline) {
			return apperrors.ErrRatingExpired
		}

		rating = &models.Rating{
			JobID:           req.JobID,
			RaterID:         raterID,
			RateeID:         req.RateeID,
			RaterRole:       raterRole,
			Dimension1Score: clampScore(req.Dimension1Score),
			Dimension2Score: clampScore(req.Dimension2Score),
			Dimension3Score: clampScore(req.Dimension3Score),
			Comment:         req.Comment,
		}
		if err := s.ratingRepo.UpsertRating(tx, rating); err != nil {
			return apperrors.InternalError(err)
		}

		if err := s.recomputeStats(tx, req.RateeID, raterRole); err != nil {
			return err
		}

		if err := s.ratingRepo.MarkRated(tx, req.JobID, raterRole); err != nil {
			return apperrors.InternalError(err)
		}

		n := &models.Notification{
			UserID:  req.RateeID,
			JobID:   &req.JobID,
			Type:    models.NotificationRatingReceived,
			Message: "You received a new rating for job " + job.Title,
		}
		if err := s.notificationRepo.Create(tx, n); err != nil {
			return apperrors.InternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	rater, err := s.userRepo.FindByID(s.db, raterID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	ratee, err := s.userRepo.FindByID(s.db, req.RateeID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	rating.Rater = *rater
	rating.Ratee = *ratee
	return buildRatingResponse(rating), nil
}

// GetRatingDeadline exposes the job's rating window state.
func (s *RatingService) GetRatingDeadline(jobID string) (*dto.RatingDeadlineResponse, error) {
	deadline, err := s.ratingRepo.FindDeadlineByJob(s.db, jobID)
	if err != nil {
		if err == repositories.ErrDeadlineNotFound {
			return nil, apperrors.ErrNoRatingDeadline
		}
		return nil, apperrors.InternalError(err)
	}
	return &dto.RatingDeadlineResponse{
		JobID:           deadline.JobID,
		RatingDeadline:  deadline.RatingDeadline,
		ClientRated:     deadline.ClientRated,
		FreelancerRated: deadline.FreelancerRated,
		Expired:         time.Now().After(deadline.RatingDeadline),
	}, nil
}

func (s *RatingService) GetJobRatings(jobID string) ([]*dto.RatingResponse, error) {
	ratings, err := s.ratingRepo.FindRatingsByJob(s.db, jobID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	responses := make([]*dto.RatingResponse, 0, len(ratings))
	for i := range ratings {
		responses = append(responses, buildRatingResponse(&ratings[i]))
	}
	return responses, nil
}

// GetUserRatingStats recomputes the user's aggregate from the ratings
// table on every read, so the answer never drifts from the source rows.
func (s *RatingService) GetUserRatingStats(userID string) (*dto.UserRatingStatsResponse, error) {
	user, err := s.userRepo.FindByID(s.db, userID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	raterRole := user.Role.Opposite()
	if err := s.recomputeStats(s.db, userID, raterRole); err != nil {
		return nil, err
	}
	stats, err := s.ratingRepo.FindStatsByUser(s.db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	labels := models.DimensionLabelsFor(user.Role)
	resp := &dto.UserRatingStatsResponse{
		UserID:               stats.UserID,
		Role:                 user.Role,
		TotalRatings:         stats.TotalRatings,
		AverageOverallRating: stats.AverageOverallRating,
	}
	averages := [3]float64{stats.AvgDimension1, stats.AvgDimension2, stats.AvgDimension3}
	for i := range labels {
		resp.DimensionAverages[i] = dto.DimensionAverage{Label: labels[i], Average: averages[i]}
	}
	return resp, nil
}

// recomputeStats rebuilds the ratee's persisted aggregate from scratch.
// Only ratings from the opposite-role counterpart count, so a user who
// acts as both client and freelancer keeps separate reputations per
// stats row role.
func (s *RatingService) recomputeStats(db *gorm.DB, rateeID string, raterRole models.UserRole) error {
	agg, err := s.ratingRepo.AggregateForRatee(db, rateeID, raterRole)
	if err != nil {
		return apperrors.InternalError(err)
	}

	avg1 := round2(agg.AvgDim1)
	avg2 := round2(agg.AvgDim2)
	avg3 := round2(agg.AvgDim3)
	stats := &models.UserRatingStats{
		UserID:        rateeID,
		Role:          raterRole.Opposite(),
		AvgDimension1: avg1,
		AvgDimension2: avg2,
		AvgDimension3: avg3,
		TotalRatings:  agg.TotalRatings,
	}
	if agg.TotalRatings > 0 {
		stats.AverageOverallRating = round2((avg1 + avg2 + avg3) / 3)
	}
	if err := s.ratingRepo.SaveStats(db, stats); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// participantRole resolves the rater's side of the job, rejecting
// users who are neither the client nor the assigned freelancer.
func participantRole(job *models.Job, raterID string) (models.UserRole, error) {
	switch {
	case job.ClientID == raterID:
		return models.UserRoleClient, nil
	case job.FreelancerID != nil && *job.FreelancerID == raterID:
		return models.UserRoleFreelancer, nil
	default:
		return "", apperrors.NewForbiddenError("Only the job's client or freelancer may rate")
	}
}

// verifyRatee checks that the rating targets the job's other party.
func verifyRatee(job *models.Job, raterRole models.UserRole, rateeID string) error {
	var expected string
	if raterRole == models.UserRoleClient {
		if job.FreelancerID == nil {
			return apperrors.ErrInvalidOperation("rating", "Job has no assigned freelancer to rate")
		}
		expected = *job.FreelancerID
	} else {
		expected = job.ClientID
	}
	if rateeID != expected {
		return apperrors.ErrInvalidOperation("rating", "Ratee must be the job's other party")
	}
	return nil
}

// clampScore coerces any out-of-range submission to 1 instead of
// rejecting it.
func clampScore(score int) int {
	if score < 1 || score > 5 {
		return 1
	}
	return score
}

// round2 rounds half away from zero to two decimals, matching
// PostgreSQL's ROUND(numeric, 2).
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func buildRatingResponse(r *models.Rating) *dto.RatingResponse {
	return &dto.RatingResponse{
		ID:              r.ID,
		JobID:           r.JobID,
		RaterID:         r.RaterID,
		RaterName:       r.Rater.Username,
		RateeID:         r.RateeID,
		RateeName:       r.Ratee.Username,
		RaterRole:       r.RaterRole,
		Dimension1Score: r.Dimension1Score,
		Dimension2Score: r.Dimension2Score,
		Dimension3Score: r.Dimension3Score,
		Comment:         r.Comment,
		CreatedAt:       r.CreatedAt,
	}
}
