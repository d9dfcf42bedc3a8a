package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"workbridge/internal/models"
	"workbridge/internal/repositories"
	"workbridge/internal/services/dto"
	"workbridge/pkg/apperrors"
)

// JobService owns the job status field and every legal transition.
// Each transition states its allowed source statuses explicitly and
// fails with INVALID_STATUS when invoked from anywhere else.
type JobService struct {
	db               *gorm.DB
	jobRepo          repositories.JobRepository
	bidRepo          repositories.BidRepository
	deliverableRepo  repositories.DeliverableRepository
	ratingRepo       repositories.RatingRepository
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository

	// Length of the rating window opened on completion.
	ratingWindow time.Duration
}

func NewJobService(
	db *gorm.DB,
	jobRepo repositories.JobRepository,
	bidRepo repositories.BidRepository,
	deliverableRepo repositories.DeliverableRepository,
	ratingRepo repositories.RatingRepository,
	notificationRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	ratingWindow time.Duration,
) *JobService {
	return &JobService{
		db:               db,
		jobRepo:          jobRepo,
		bidRepo:          bidRepo,
		deliverableRepo:  deliverableRepo,
		ratingRepo:       ratingRepo,
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		ratingWindow:     ratingWindow,
	}
}

// ---------------- Job CRUD ----------------

func (s *JobService) CreateJob(clientID string, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	client, err := s.findUser(clientID)
	if err != nil {
		return nil, err
	}
	if client.Role != models.UserRoleClient {
		return nil, apperrors.ErrInvalidUserRole
	}

	job := &models.Job{
		Title:           req.Title,
		Content:         req.Content,
		Budget:          req.Budget,
		Status:          models.JobStatusNew,
		ClientID:        clientID,
		RequirementFile: req.RequirementFile,
	}
	if err := s.jobRepo.CreateJob(s.db, job); err != nil {
		return nil, apperrors.InternalError(err)
	}

	job.Client = *client
	return buildJobResponse(job), nil
}

func (s *JobService) GetJob(jobID string) (*dto.JobResponse, error) {
	job, err := s.findJob(s.db, jobID)
	if err != nil {
		return nil, err
	}
	return buildJobResponse(job), nil
}

func (s *JobService) ListJobs(status *models.JobStatus) ([]*dto.JobResponse, error) {
	var (
		jobs []models.Job
		err  error
	)
	if status != nil {
		if !status.Valid() {
			return nil, apperrors.NewBadRequestError(fmt.Sprintf("unknown job status %q", *status))
		}
		jobs, err = s.jobRepo.ListJobsByStatus(s.db, *status)
	} else {
		jobs, err = s.jobRepo.ListJobs(s.db)
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildJobResponses(jobs), nil
}

func (s *JobService) ListJobsByClient(clientID string) ([]*dto.JobResponse, error) {
	jobs, err := s.jobRepo.ListJobsByClient(s.db, clientID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildJobResponses(jobs), nil
}

func (s *JobService) ListJobsByFreelancer(freelancerID string) ([]*dto.JobResponse, error) {
	jobs, err := s.jobRepo.ListJobsByFreelancer(s.db, freelancerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildJobResponses(jobs), nil
}

// ListAvailableJobs returns jobs still open for bids or claim requests.
func (s *JobService) ListAvailableJobs() ([]*dto.JobResponse, error) {
	jobs, err := s.jobRepo.ListAvailableJobs(s.db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildJobResponses(jobs), nil
}

// UpdateJob edits job metadata. Permitted for the owning client at any
// status; never changes the status itself.
func (s *JobService) UpdateJob(jobID, clientID string, req *dto.UpdateJobRequest) error {
	job, err := s.findJob(s.db, jobID)
	if err != nil {
		return err
	}
	if job.ClientID != clientID {
		return apperrors.ErrNotJobOwner
	}

	job.Title = req.Title
	job.Content = req.Content
	job.Budget = req.Budget
	if req.RequirementFile != nil {
		job.RequirementFile = req.RequirementFile
	}
	if err := s.jobRepo.UpdateJob(s.db, job); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// DeleteJob hard-deletes the job with its bids, deliverables and
// rating rows in one transaction. No status guard: the owning client
// may delete mid-assignment.
func (s *JobService) DeleteJob(jobID, clientID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		job, err := s.findJob(tx, jobID)
		if err != nil {
			return err
		}
		if job.ClientID != clientID {
			return apperrors.ErrNotJobOwner
		}

		if err := s.bidRepo.DeleteBidsByJob(tx, jobID); err != nil {
			return apperrors.InternalError(err)
		}
		if err := s.deliverableRepo.DeleteByJob(tx, jobID); err != nil {
			return apperrors.InternalError(err)
		}
		if err := s.ratingRepo.DeleteRatingsByJob(tx, jobID); err != nil {
			return apperrors.InternalError(err)
		}
		if err := s.jobRepo.DeleteJob(tx, jobID); err != nil {
			return apperrors.InternalError(err)
		}
		return nil
	})
}

// ---------------- Lifecycle transitions ----------------

// RequestJob lets a freelancer claim an unassigned job, moving it to
// pending_confirmation. The claim is a single conditional update:
// when two freelancers race, exactly one wins and the other's call is
// a silent no-op (claimed=false, no error).
func (s *JobService) RequestJob(jobID, freelancerID string) (bool, error) {
	freelancer, err := s.findUser(freelancerID)
	if err != nil {
		return false, err
	}
	if freelancer.Role != models.UserRoleFreelancer {
		return false, apperrors.ErrInvalidUserRole
	}

	var claimed bool
	err = s.db.Transaction(func(tx *gorm.DB) error {
		job, err := s.findJob(tx, jobID)
		if err != nil {
			return err
		}

		claimed, err = s.jobRepo.ClaimJob(tx, jobID, freelancerID)
		if err != nil {
			return apperrors.InternalError(err)
		}
		if !claimed {
			return nil
		}

		return s.notify(tx, job.ClientID, jobID, models.NotificationJobRequested,
			fmt.Sprintf("%s requested to take the job %q", freelancer.Username, job.Title))
	})
	return claimed, err
}

// ConfirmJob moves a claimed job into in_progress. Only the owning
// client may confirm, and only from pending_confirmation.
func (s *JobService) ConfirmJob(jobID, clientID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		job, err := s.findJob(tx, jobID)
		if err != nil {
			return err
		}
		if job.ClientID != clientID {
			return apperrors.ErrNotJobOwner
		}

		ok, err := s.jobRepo.TransitionStatus(tx, jobID,
			[]models.JobStatus{models.JobStatusPendingConfirmation}, models.JobStatusInProgress)
		if err != nil {
			return apperrors.InternalError(err)
		}
		if !ok {
			return apperrors.ErrInvalidStatus("job",
				fmt.Sprintf("cannot confirm a job in status %q", job.Status))
		}

		if job.FreelancerID != nil {
			return s.notify(tx, *job.FreelancerID, jobID, models.NotificationJobAssigned,
				fmt.Sprintf("Your request for %q was confirmed", job.Title))
		}
		return nil
	})
}

// AssignFreelancer is the direct-assignment path used when the client
// accepts a bid: it sets the freelancer and agreed price and skips the
// confirm step. Any open bids are discarded.
func (s *JobService) AssignFreelancer(jobID, clientID, freelancerID string, price float64) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		job, err := s.findJob(tx, jobID)
		if err != nil {
			return err
		}
		if job.ClientID != clientID {
			return apperrors.ErrNotJobOwner
		}

		ok, err := s.jobRepo.AssignFreelancer(tx, jobID, freelancerID, price,
			[]models.JobStatus{models.JobStatusNew, models.JobStatusBidding, models.JobStatusPendingConfirmation})
		if err != nil {
			return apperrors.InternalError(err)
		}
		if !ok {
			return apperrors.ErrInvalidStatus("job",
				fmt.Sprintf("cannot assign a freelancer to a job in status %q", job.Status))
		}

		if err := s.bidRepo.DeleteBidsByJob(tx, jobID); err != nil {
			return apperrors.InternalError(err)
		}

		return s.notify(tx, freelancerID, jobID, models.NotificationJobAssigned,
			fmt.Sprintf("You were assigned the job %q", job.Title))
	})
}

// UploadDeliverable records a new output artifact and marks the job
// delivered. Only the assigned freelancer may upload, and only while
// the job is in_progress or already delivered (re-upload).
func (s *JobService) UploadDeliverable(jobID, uploaderID, filePath string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		job, err := s.findJob(tx, jobID)
		if err != nil {
			return err
		}
		if job.FreelancerID == nil || *job.FreelancerID != uploaderID {
			return apperrors.ErrNotAssigned
		}

		ok, err := s.jobRepo.TransitionStatus(tx, jobID,
			[]models.JobStatus{models.JobStatusInProgress, models.JobStatusDelivered}, models.JobStatusDelivered)
		if err != nil {
			return apperrors.InternalError(err)
		}
		if !ok {
			return apperrors.ErrInvalidStatus("job",
				fmt.Sprintf("cannot upload a deliverable for a job in status %q", job.Status))
		}

		deliverable := &models.Deliverable{
			JobID:      jobID,
			FilePath:   filePath,
			UploadedBy: uploaderID,
		}
		if err := s.deliverableRepo.Create(tx, deliverable); err != nil {
			return apperrors.InternalError(err)
		}

		return s.notify(tx, job.ClientID, jobID, models.NotificationJobDelivered,
			fmt.Sprintf("A deliverable was uploaded for %q", job.Title))
	})
}

// RejectJob sends a delivered job back to in_progress and stamps the
// reason onto every deliverable of the job.
func (s *JobService) RejectJob(jobID, clientID, reason string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		job, err := s.findJob(tx, jobID)
		if err != nil {
			return err
		}
		if job.ClientID != clientID {
			return apperrors.ErrNotJobOwner
		}

		ok, err := s.jobRepo.TransitionStatus(tx, jobID,
			[]models.JobStatus{models.JobStatusDelivered}, models.JobStatusInProgress)
		if err != nil {
			return apperrors.InternalError(err)
		}
		if !ok {
			return apperrors.ErrInvalidStatus("job",
				fmt.Sprintf("cannot reject a job in status %q", job.Status))
		}

		if err := s.deliverableRepo.StampRejectReason(tx, jobID, reason); err != nil {
			return apperrors.InternalError(err)
		}

		if job.FreelancerID != nil {
			return s.notify(tx, *job.FreelancerID, jobID, models.NotificationDeliveryReject,
				fmt.Sprintf("Your delivery for %q was rejected: %s", job.Title, reason))
		}
		return nil
	})
}

// CompleteJob closes a delivered job and opens the rating window in
// the same transaction.
func (s *JobService) CompleteJob(jobID, clientID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		job, err := s.findJob(tx, jobID)
		if err != nil {
			return err
		}
		if job.ClientID != clientID {
			return apperrors.ErrNotJobOwner
		}

		ok, err := s.jobRepo.TransitionStatus(tx, jobID,
			[]models.JobStatus{models.JobStatusDelivered}, models.JobStatusCompleted)
		if err != nil {
			return apperrors.InternalError(err)
		}
		if !ok {
			return apperrors.ErrInvalidStatus("job",
				fmt.Sprintf("cannot complete a job in status %q", job.Status))
		}

		deadline := time.Now().Add(s.ratingWindow)
		if err := s.ratingRepo.UpsertDeadline(tx, jobID, deadline); err != nil {
			return apperrors.InternalError(err)
		}

		if job.FreelancerID != nil {
			return s.notify(tx, *job.FreelancerID, jobID, models.NotificationJobCompleted,
				fmt.Sprintf("The job %q was completed; you can rate the client until %s",
					job.Title, deadline.Format(time.RFC3339)))
		}
		return nil
	})
}

// ---------------- Deliverable queries ----------------

func (s *JobService) GetDeliverables(jobID string) ([]*dto.DeliverableResponse, error) {
	if _, err := s.findJob(s.db, jobID); err != nil {
		return nil, err
	}
	deliverables, err := s.deliverableRepo.ListByJob(s.db, jobID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]*dto.DeliverableResponse, 0, len(deliverables))
	for i := range deliverables {
		responses = append(responses, buildDeliverableResponse(&deliverables[i]))
	}
	return responses, nil
}

// GetCurrentDeliverable returns the most recent upload, carrying the
// reject reason if the client sent the work back.
func (s *JobService) GetCurrentDeliverable(jobID string) (*dto.DeliverableResponse, error) {
	d, err := s.deliverableRepo.FindCurrent(s.db, jobID)
	if err != nil {
		if err == repositories.ErrDeliverableNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return buildDeliverableResponse(d), nil
}

// ---------------- Helpers ----------------

func (s *JobService) findUser(userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(s.db, userID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

func (s *JobService) findJob(db *gorm.DB, jobID string) (*models.Job, error) {
	job, err := s.jobRepo.FindJobByID(db, jobID)
	if err != nil {
		if err == repositories.ErrJobNotFound {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return job, nil
}

func (s *JobService) notify(db *gorm.DB, userID, jobID string, typ models.NotificationType, message string) error {
	n := &models.Notification{
		UserID:  userID,
		JobID:   &jobID,
		Type:    typ,
		Message: message,
	}
	if err := s.notificationRepo.Create(db, n); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func buildJobResponse(job *models.Job) *dto.JobResponse {
	resp := &dto.JobResponse{
		ID:              job.ID,
		Title:           job.Title,
		Content:         job.Content,
		Budget:          job.Budget,
		Price:           job.Price,
		Status:          job.Status,
		ClientID:        job.ClientID,
		ClientName:      job.Client.Username,
		FreelancerID:    job.FreelancerID,
		RequirementFile: job.RequirementFile,
		CreatedAt:       job.CreatedAt,
		UpdatedAt:       job.UpdatedAt,
	}
	if job.Freelancer != nil {
		resp.FreelancerName = &job.Freelancer.Username
	}
	return resp
}

func buildJobResponses(jobs []models.Job) []*dto.JobResponse {
	responses := make([]*dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		responses = append(responses, buildJobResponse(&jobs[i]))
	}
	return responses
}

func buildDeliverableResponse(d *models.Deliverable) *dto.DeliverableResponse {
	return &dto.DeliverableResponse{
		ID:           d.ID,
		JobID:        d.JobID,
		FilePath:     d.FilePath,
		UploadedBy:   d.UploadedBy,
		UploaderName: d.Uploader.Username,
		RejectReason: d.RejectReason,
		UploadedAt:   d.CreatedAt,
	}
}
