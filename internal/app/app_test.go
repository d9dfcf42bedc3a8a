package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"workbridge/internal/config"
	"workbridge/internal/database"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	return setupTestRouterWithWindow(t, 24)
}

func setupTestRouterWithWindow(t *testing.T, ratingWindowHours int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 60
	cfg.Rating.WindowHours = ratingWindowHours
	config.AppConfig = cfg

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.Migrate(db))

	return SetupRouter(db, cfg)
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, router *gin.Engine, username, role string) (userID, token string) {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": "s3cret-pass",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
		UserID      string `json:"user_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.UserID, resp.AccessToken
}

func TestHealthEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJobEndpointsRequireAuth(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/jobs", "", gin.H{
		"title": "x", "content": "y", "budget": 100,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJobCreationRoleEnforced(t *testing.T) {
	router := setupTestRouter(t)
	_, freelancerToken := registerUser(t, router, "worker", "freelancer")

	w := doJSON(t, router, http.MethodPost, "/api/v1/jobs", freelancerToken, gin.H{
		"title": "Design a logo", "content": "Vector, two revisions", "budget": 300,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestJobLifecycleOverHTTP(t *testing.T) {
	router := setupTestRouter(t)
	_, clientToken := registerUser(t, router, "owner", "client")
	freelancerID, freelancerToken := registerUser(t, router, "maker", "freelancer")

	w := doJSON(t, router, http.MethodPost, "/api/v1/jobs", clientToken, gin.H{
		"title": "Design a logo", "content": "Vector, two revisions", "budget": 300,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var job struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &job))
	assert.Equal(t, "new", job.Status)

	// Bid below the budget is rejected.
	w = doJSON(t, router, http.MethodPost, "/api/v1/jobs/"+job.ID+"/bids", freelancerToken, gin.H{
		"amount": 250,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/jobs/"+job.ID+"/bids", freelancerToken, gin.H{
		"amount": 350,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodPost, "/api/v1/jobs/"+job.ID+"/bids/choose", clientToken, gin.H{
		"freelancer_id": freelancerID,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodPost, "/api/v1/jobs/"+job.ID+"/deliverables", freelancerToken, gin.H{
		"file_path": "s3://bucket/logo.svg",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodPost, "/api/v1/jobs/"+job.ID+"/complete", clientToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodGet, "/api/v1/jobs/"+job.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &job))
	assert.Equal(t, "completed", job.Status)

	// Both parties rate within the window.
	w = doJSON(t, router, http.MethodPost, "/api/v1/ratings", clientToken, gin.H{
		"job_id":           job.ID,
		"ratee_id":         freelancerID,
		"dimension1_score": 5,
		"dimension2_score": 4,
		"dimension3_score": 5,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodGet, "/api/v1/users/"+freelancerID+"/rating-stats", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats struct {
		TotalRatings         int64   `json:"total_ratings"`
		AverageOverallRating float64 `json:"average_overall_rating"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, int64(1), stats.TotalRatings)
	assert.Equal(t, 4.67, stats.AverageOverallRating)
}

func TestRatingAfterWindowClosedOverHTTP(t *testing.T) {
	// Negative window: the deadline is already past at completion.
	router := setupTestRouterWithWindow(t, -1)

	_, clientToken := registerUser(t, router, "zowner", "client")
	freelancerID, freelancerToken := registerUser(t, router, "zmaker", "freelancer")

	w := doJSON(t, router, http.MethodPost, "/api/v1/jobs", clientToken, gin.H{
		"title": "Quick fix", "content": "One-line patch", "budget": 50,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var job struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &job))

	w = doJSON(t, router, http.MethodPost, "/api/v1/jobs/"+job.ID+"/request", freelancerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, router, http.MethodPost, "/api/v1/jobs/"+job.ID+"/confirm", clientToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, router, http.MethodPost, "/api/v1/jobs/"+job.ID+"/deliverables", freelancerToken, gin.H{
		"file_path": "s3://bucket/patch.diff",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, router, http.MethodPost, "/api/v1/jobs/"+job.ID+"/complete", clientToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/ratings", clientToken, gin.H{
		"job_id":           job.ID,
		"ratee_id":         freelancerID,
		"dimension1_score": 5,
		"dimension2_score": 5,
		"dimension3_score": 5,
	})
	assert.Equal(t, http.StatusGone, w.Code)
}
