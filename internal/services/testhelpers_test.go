package services

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"workbridge/internal/config"
	"workbridge/internal/database"
	"workbridge/internal/models"
	"workbridge/internal/repositories"
	"workbridge/internal/services/dto"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 60
	cfg.Rating.WindowHours = 24
	return cfg
}

// setupTestDB opens a private in-memory database per test and applies
// the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps the shared-cache memory DB alive for
	// the whole test.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

type testEnv struct {
	db           *gorm.DB
	auth         *AuthService
	jobs         *JobService
	bids         *BidService
	ratings      *RatingService
	notification *NotificationService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := testConfig()
	config.AppConfig = cfg

	db := setupTestDB(t)
	sc := NewServiceContainer(db, cfg)
	return &testEnv{
		db:           db,
		auth:         sc.Auth,
		jobs:         sc.Job,
		bids:         sc.Bid,
		ratings:      sc.Rating,
		notification: sc.Notification,
	}
}

var testUserSeq int

func createTestUser(t *testing.T, db *gorm.DB, role models.UserRole) *models.User {
	t.Helper()

	testUserSeq++
	user := &models.User{
		Username:     fmt.Sprintf("%s%d", role, testUserSeq),
		Email:        fmt.Sprintf("%s%d@example.com", role, testUserSeq),
		PasswordHash: "x",
		Role:         role,
	}
	require.NoError(t, repositories.NewUserRepository().Create(db, user))
	return user
}

func createTestJob(t *testing.T, env *testEnv, clientID string, budget float64) *dto.JobResponse {
	t.Helper()

	job, err := env.jobs.CreateJob(clientID, &dto.CreateJobRequest{
		Title:   "Build a landing page",
		Content: "Responsive, two sections, contact form",
		Budget:  budget,
	})
	require.NoError(t, err)
	return job
}

// advanceJobToCompleted walks a job through the whole happy path and
// returns the assigned freelancer.
func advanceJobToCompleted(t *testing.T, env *testEnv, jobID, clientID string) *models.User {
	t.Helper()

	freelancer := createTestUser(t, env.db, models.UserRoleFreelancer)

	claimed, err := env.jobs.RequestJob(jobID, freelancer.ID)
	require.NoError(t, err)
	require.True(t, claimed)

	require.NoError(t, env.jobs.ConfirmJob(jobID, clientID))
	require.NoError(t, env.jobs.UploadDeliverable(jobID, freelancer.ID, "s3://bucket/final.zip"))
	require.NoError(t, env.jobs.CompleteJob(jobID, clientID))
	return freelancer
}

func jobStatus(t *testing.T, db *gorm.DB, jobID string) models.JobStatus {
	t.Helper()

	var job models.Job
	require.NoError(t, db.First(&job, "id = ?", jobID).Error)
	return job.Status
}
