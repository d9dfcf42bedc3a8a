package models

import "time"

// RatingDeadline bounds the post-completion rating window for a job.
// Created (or reset) when the job completes; one row per job.
type RatingDeadline struct {
	BaseModel
	JobID           string    `gorm:"not null;uniqueIndex" json:"job_id"`
	RatingDeadline  time.Time `gorm:"not null" json:"rating_deadline"`
	ClientRated     bool      `gorm:"not null;default:false" json:"client_rated"`
	FreelancerRated bool      `gorm:"not null;default:false" json:"freelancer_rated"`
}

// Rating is one party's evaluation of the other for a completed job.
// Unique per (job, rater); resubmission before the deadline overwrites.
// RaterRole records which dimension label set applies: a client rates
// output quality / execution efficiency / freelancer cooperation, a
// freelancer rates requirement rationality / verification difficulty /
// client cooperation. Scores share the same 1-5 encoding either way.
type Rating struct {
	BaseModel
	JobID           string   `gorm:"not null;index;uniqueIndex:idx_ratings_job_rater" json:"job_id"`
	RaterID         string   `gorm:"not null;uniqueIndex:idx_ratings_job_rater" json:"rater_id"`
	RateeID         string   `gorm:"not null;index" json:"ratee_id"`
	RaterRole       UserRole `gorm:"not null" json:"rater_role"`
	Dimension1Score int      `gorm:"not null" json:"dimension1_score"`
	Dimension2Score int      `gorm:"not null" json:"dimension2_score"`
	Dimension3Score int      `gorm:"not null" json:"dimension3_score"`
	Comment         string   `json:"comment"`

	Rater User `gorm:"foreignKey:RaterID" json:"-"`
	Ratee User `gorm:"foreignKey:RateeID" json:"-"`
}

// UserRatingStats is the persisted aggregate for a user, fully
// recomputed from all ratings received each time a new rating lands.
type UserRatingStats struct {
	BaseModel
	UserID               string   `gorm:"not null;uniqueIndex" json:"user_id"`
	Role                 UserRole `gorm:"not null" json:"role"`
	AvgDimension1        float64  `gorm:"not null;default:0" json:"avg_dimension1"`
	AvgDimension2        float64  `gorm:"not null;default:0" json:"avg_dimension2"`
	AvgDimension3        float64  `gorm:"not null;default:0" json:"avg_dimension3"`
	AverageOverallRating float64  `gorm:"not null;default:0" json:"average_overall_rating"`
	TotalRatings         int64    `gorm:"not null;default:0" json:"total_ratings"`
}

// Dimension labels per rater role, in dimension order.
var (
	ClientRatedDimensions     = [3]string{"requirement_rationality", "verification_difficulty", "client_cooperation"}
	FreelancerRatedDimensions = [3]string{"output_quality", "execution_efficiency", "freelancer_cooperation"}
)

// DimensionLabelsFor returns the label set used when rating a user of
// the given role.
func DimensionLabelsFor(rateeRole UserRole) [3]string {
	if rateeRole == UserRoleClient {
		return ClientRatedDimensions
	}
	return FreelancerRatedDimensions
}
