package dto

import "time"

type PlaceBidRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

type ChooseBidRequest struct {
	FreelancerID string `json:"freelancer_id" validate:"required"`
}

type BidResponse struct {
	ID         string    `json:"id"`
	JobID      string    `json:"job_id"`
	BidderID   string    `json:"bidder_id"`
	BidderName string    `json:"bidder_name"`
	Amount     float64   `json:"amount"`
	CreatedAt  time.Time `json:"created_at"`
}
