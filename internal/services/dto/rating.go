package dto

import (
	"time"

	"workbridge/internal/models"
)

type SubmitRatingRequest struct {
	JobID   string `json:"job_id" validate:"required"`
	RateeID string `json:"ratee_id" validate:"required"`
	// Raw score inputs; out-of-range values coerce to 1 rather than
	// being rejected, so no range validation here.
	Dimension1Score int    `json:"dimension1_score"`
	Dimension2Score int    `json:"dimension2_score"`
	Dimension3Score int    `json:"dimension3_score"`
	Comment         string `json:"comment" validate:"max=2000"`
}

type RatingResponse struct {
	ID              string          `json:"id"`
	JobID           string          `json:"job_id"`
	RaterID         string          `json:"rater_id"`
	RaterName       string          `json:"rater_name"`
	RateeID         string          `json:"ratee_id"`
	RateeName       string          `json:"ratee_name"`
	RaterRole       models.UserRole `json:"rater_role"`
	Dimension1Score int             `json:"dimension1_score"`
	Dimension2Score int             `json:"dimension2_score"`
	Dimension3Score int             `json:"dimension3_score"`
	Comment         string          `json:"comment"`
	CreatedAt       time.Time       `json:"created_at"`
}

type RatingDeadlineResponse struct {
	JobID           string    `json:"job_id"`
	RatingDeadline  time.Time `json:"rating_deadline"`
	ClientRated     bool      `json:"client_rated"`
	FreelancerRated bool      `json:"freelancer_rated"`
	Expired         bool      `json:"expired"`
}

// DimensionAverage pairs a role-specific dimension label with its
// rounded average.
type DimensionAverage struct {
	Label   string  `json:"label"`
	Average float64 `json:"average"`
}

type UserRatingStatsResponse struct {
	UserID               string              `json:"user_id"`
	Role                 models.UserRole     `json:"role"`
	TotalRatings         int64               `json:"total_ratings"`
	DimensionAverages    [3]DimensionAverage `json:"dimension_averages"`
	AverageOverallRating float64             `json:"average_overall_rating"`
}
