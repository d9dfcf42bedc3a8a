package repositories

import (
	"errors"

	"gorm.io/gorm"

	"workbridge/internal/models"
)

var ErrJobNotFound = errors.New("job not found")

type JobRepository interface {
	CreateJob(db *gorm.DB, job *models.Job) error
	FindJobByID(db *gorm.DB, id string) (*models.Job, error)
	UpdateJob(db *gorm.DB, job *models.Job) error
	DeleteJob(db *gorm.DB, id string) error

	ListJobs(db *gorm.DB) ([]models.Job, error)
	ListJobsByStatus(db *gorm.DB, status models.JobStatus) ([]models.Job, error)
	ListJobsByClient(db *gorm.DB, clientID string) ([]models.Job, error)
	ListJobsByFreelancer(db *gorm.DB, freelancerID string) ([]models.Job, error)
	ListAvailableJobs(db *gorm.DB) ([]models.Job, error)

	// ClaimJob atomically assigns an unassigned job to the freelancer
	// and moves it to pending_confirmation. Returns false when the job
	// was already claimed or not claimable, the race loser's no-op.
	ClaimJob(db *gorm.DB, jobID, freelancerID string) (bool, error)

	// TransitionStatus moves a job to the target status only if its
	// current status is in the allowed source set. Returns false when
	// the job was in none of the allowed states.
	TransitionStatus(db *gorm.DB, jobID string, from []models.JobStatus, to models.JobStatus) (bool, error)

	// AssignFreelancer sets the freelancer, agreed price and
	// in_progress status in one guarded update.
	AssignFreelancer(db *gorm.DB, jobID, freelancerID string, price float64, from []models.JobStatus) (bool, error)
}

type jobRepository struct{}

func NewJobRepository() JobRepository {
	return &jobRepository{}
}

func (r *jobRepository) CreateJob(db *gorm.DB, job *models.Job) error {
	return db.Create(job).Error
}

func (r *jobRepository) FindJobByID(db *gorm.DB, id string) (*models.Job, error) {
	var job models.Job
	err := db.Preload("Client").Preload("Freelancer").
		First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) UpdateJob(db *gorm.DB, job *models.Job) error {
	result := db.Model(&models.Job{}).Where("id = ?", job.ID).Updates(map[string]interface{}{
		"title":            job.Title,
		"content":          job.Content,
		"budget":           job.Budget,
		"requirement_file": job.RequirementFile,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *jobRepository) DeleteJob(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Job{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *jobRepository) ListJobs(db *gorm.DB) ([]models.Job, error) {
	var jobs []models.Job
	err := db.Preload("Client").Preload("Freelancer").
		Order("created_at ASC").
		Find(&jobs).Error
	return jobs, err
}

func (r *jobRepository) ListJobsByStatus(db *gorm.DB, status models.JobStatus) ([]models.Job, error) {
	var jobs []models.Job
	err := db.Preload("Client").Preload("Freelancer").
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

func (r *jobRepository) ListJobsByClient(db *gorm.DB, clientID string) ([]models.Job, error) {
	var jobs []models.Job
	err := db.Preload("Freelancer").
		Where("client_id = ?", clientID).
		Order("created_at ASC").
		Find(&jobs).Error
	return jobs, err
}

func (r *jobRepository) ListJobsByFreelancer(db *gorm.DB, freelancerID string) ([]models.Job, error) {
	var jobs []models.Job
	err := db.Preload("Client").
		Where("freelancer_id = ?", freelancerID).
		Order("created_at ASC").
		Find(&jobs).Error
	return jobs, err
}

func (r *jobRepository) ListAvailableJobs(db *gorm.DB) ([]models.Job, error) {
	var jobs []models.Job
	err := db.Preload("Client").
		Where("status IN ?", models.UnassignedJobStatuses).
		Order("created_at ASC").
		Find(&jobs).Error
	return jobs, err
}

func (r *jobRepository) ClaimJob(db *gorm.DB, jobID, freelancerID string) (bool, error) {
	// Single conditional UPDATE so two concurrent claims cannot both
	// win; the WHERE clause is the whole guard.
	result := db.Model(&models.Job{}).
		Where("id = ? AND freelancer_id IS NULL AND status IN ?", jobID, models.UnassignedJobStatuses).
		Updates(map[string]interface{}{
			"freelancer_id": freelancerID,
			"status":        models.JobStatusPendingConfirmation,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *jobRepository) TransitionStatus(db *gorm.DB, jobID string, from []models.JobStatus, to models.JobStatus) (bool, error) {
	result := db.Model(&models.Job{}).
		Where("id = ? AND status IN ?", jobID, from).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *jobRepository) AssignFreelancer(db *gorm.DB, jobID, freelancerID string, price float64, from []models.JobStatus) (bool, error) {
	result := db.Model(&models.Job{}).
		Where("id = ? AND status IN ?", jobID, from).
		Updates(map[string]interface{}{
			"freelancer_id": freelancerID,
			"price":         price,
			"status":        models.JobStatusInProgress,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
