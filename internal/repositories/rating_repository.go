package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"workbridge/internal/models"
)

var ErrDeadlineNotFound = errors.New("rating deadline not found")

// RatingAggregate is the raw SQL aggregate over one user's received
// ratings, before rounding.
type RatingAggregate struct {
	TotalRatings int64   `json:"total_ratings"`
	AvgDim1      float64 `json:"avg_dim1"`
	AvgDim2      float64 `json:"avg_dim2"`
	AvgDim3      float64 `json:"avg_dim3"`
}

type RatingRepository interface {
	// UpsertDeadline creates the rating window for a job, or resets the
	// deadline when completion is re-triggered.
	UpsertDeadline(db *gorm.DB, jobID string, deadline time.Time) error
	FindDeadlineByJob(db *gorm.DB, jobID string) (*models.RatingDeadline, error)
	MarkRated(db *gorm.DB, jobID string, raterRole models.UserRole) error

	// UpsertRating inserts the rating, or overwrites scores and comment
	// on resubmission by the same (job, rater) pair.
	UpsertRating(db *gorm.DB, rating *models.Rating) error
	FindRatingsByJob(db *gorm.DB, jobID string) ([]models.Rating, error)
	DeleteRatingsByJob(db *gorm.DB, jobID string) error

	// AggregateForRatee averages the three dimension scores over all
	// ratings the user received from raters of the given role.
	AggregateForRatee(db *gorm.DB, rateeID string, raterRole models.UserRole) (*RatingAggregate, error)

	SaveStats(db *gorm.DB, stats *models.UserRatingStats) error
	FindStatsByUser(db *gorm.DB, userID string) (*models.UserRatingStats, error)
}

type ratingRepository struct{}

func NewRatingRepository() RatingRepository {
	return &ratingRepository{}
}

func (r *ratingRepository) UpsertDeadline(db *gorm.DB, jobID string, deadline time.Time) error {
	record := &models.RatingDeadline{
		JobID:          jobID,
		RatingDeadline: deadline,
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "job_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"rating_deadline": deadline}),
	}).Create(record).Error
}

func (r *ratingRepository) FindDeadlineByJob(db *gorm.DB, jobID string) (*models.RatingDeadline, error) {
	var deadline models.RatingDeadline
	err := db.Where("job_id = ?", jobID).First(&deadline).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeadlineNotFound
		}
		return nil, err
	}
	return &deadline, nil
}

func (r *ratingRepository) MarkRated(db *gorm.DB, jobID string, raterRole models.UserRole) error {
	column := "freelancer_rated"
	if raterRole == models.UserRoleClient {
		column = "client_rated"
	}
	return db.Model(&models.RatingDeadline{}).
		Where("job_id = ?", jobID).
		Update(column, true).Error
}

func (r *ratingRepository) UpsertRating(db *gorm.DB, rating *models.Rating) error {
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "job_id"}, {Name: "rater_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"dimension1_score": rating.Dimension1Score,
			"dimension2_score": rating.Dimension2Score,
			"dimension3_score": rating.Dimension3Score,
			"comment":          rating.Comment,
			"updated_at":       time.Now(),
		}),
	}).Create(rating).Error
}

func (r *ratingRepository) FindRatingsByJob(db *gorm.DB, jobID string) ([]models.Rating, error) {
	var ratings []models.Rating
	err := db.Preload("Rater").Preload("Ratee").
		Where("job_id = ?", jobID).
		Order("created_at DESC").
		Find(&ratings).Error
	return ratings, err
}

func (r *ratingRepository) DeleteRatingsByJob(db *gorm.DB, jobID string) error {
	if err := db.Where("job_id = ?", jobID).Delete(&models.Rating{}).Error; err != nil {
		return err
	}
	return db.Where("job_id = ?", jobID).Delete(&models.RatingDeadline{}).Error
}

func (r *ratingRepository) AggregateForRatee(db *gorm.DB, rateeID string, raterRole models.UserRole) (*RatingAggregate, error) {
	var agg RatingAggregate
	err := db.Model(&models.Rating{}).
		Where("ratee_id = ? AND rater_role = ?", rateeID, raterRole).
		Select("COUNT(*) as total_ratings, " +
			"COALESCE(AVG(dimension1_score), 0) as avg_dim1, " +
			"COALESCE(AVG(dimension2_score), 0) as avg_dim2, " +
			"COALESCE(AVG(dimension3_score), 0) as avg_dim3").
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}
	return &agg, nil
}

func (r *ratingRepository) SaveStats(db *gorm.DB, stats *models.UserRatingStats) error {
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"avg_dimension1":         stats.AvgDimension1,
			"avg_dimension2":         stats.AvgDimension2,
			"avg_dimension3":         stats.AvgDimension3,
			"average_overall_rating": stats.AverageOverallRating,
			"total_ratings":          stats.TotalRatings,
			"updated_at":             time.Now(),
		}),
	}).Create(stats).Error
}

func (r *ratingRepository) FindStatsByUser(db *gorm.DB, userID string) (*models.UserRatingStats, error) {
	var stats models.UserRatingStats
	err := db.Where("user_id = ?", userID).First(&stats).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &stats, nil
}
