package dto

import (
	"time"

	"workbridge/internal/models"
)

type CreateJobRequest struct {
	Title           string  `json:"title" validate:"required,max=200"`
	Content         string  `json:"content" validate:"required"`
	Budget          float64 `json:"budget" validate:"required,gt=0"`
	RequirementFile *string `json:"requirement_file"`
}

type UpdateJobRequest struct {
	Title           string  `json:"title" validate:"required,max=200"`
	Content         string  `json:"content" validate:"required"`
	Budget          float64 `json:"budget" validate:"required,gt=0"`
	RequirementFile *string `json:"requirement_file"`
}

type AssignFreelancerRequest struct {
	FreelancerID string  `json:"freelancer_id" validate:"required"`
	Price        float64 `json:"price" validate:"required,gt=0"`
}

type UploadDeliverableRequest struct {
	// Opaque blob-store reference produced by the upload layer.
	FilePath string `json:"file_path" validate:"required"`
}

type RejectJobRequest struct {
	Reason string `json:"reason" validate:"required,max=2000"`
}

type JobResponse struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Content         string           `json:"content"`
	Budget          float64          `json:"budget"`
	Price           *float64         `json:"price"`
	Status          models.JobStatus `json:"status"`
	ClientID        string           `json:"client_id"`
	ClientName      string           `json:"client_name"`
	FreelancerID    *string          `json:"freelancer_id"`
	FreelancerName  *string          `json:"freelancer_name"`
	RequirementFile *string          `json:"requirement_file"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

type DeliverableResponse struct {
	ID           string    `json:"id"`
	JobID        string    `json:"job_id"`
	FilePath     string    `json:"file_path"`
	UploadedBy   string    `json:"uploaded_by"`
	UploaderName string    `json:"uploader_name"`
	RejectReason *string   `json:"reject_reason"`
	UploadedAt   time.Time `json:"uploaded_at"`
}
