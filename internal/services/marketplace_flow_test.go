package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workbridge/internal/models"
)

// Walks the full marketplace loop through the bidding path: post,
// bid, accept, deliver, reject, redeliver, complete, rate both ways.
func TestMarketplaceFullCycle(t *testing.T) {
	env := setupTestEnv(t)
	client := createTestUser(t, env.db, models.UserRoleClient)
	winner := createTestUser(t, env.db, models.UserRoleFreelancer)
	rival := createTestUser(t, env.db, models.UserRoleFreelancer)

	job := createTestJob(t, env, client.ID, 1000)
	require.Equal(t, models.JobStatusNew, job.Status)

	_, err := env.bids.PlaceBid(job.ID, winner.ID, 1200)
	require.NoError(t, err)
	_, err = env.bids.PlaceBid(job.ID, rival.ID, 1500)
	require.NoError(t, err)
	require.Equal(t, models.JobStatusBidding, jobStatus(t, env.db, job.ID))

	require.NoError(t, env.bids.ChooseBid(job.ID, client.ID, winner.ID))
	require.Equal(t, models.JobStatusInProgress, jobStatus(t, env.db, job.ID))

	require.NoError(t, env.jobs.UploadDeliverable(job.ID, winner.ID, "s3://bucket/draft.zip"))
	require.Equal(t, models.JobStatusDelivered, jobStatus(t, env.db, job.ID))

	require.NoError(t, env.jobs.RejectJob(job.ID, client.ID, "header is broken on mobile"))
	require.Equal(t, models.JobStatusInProgress, jobStatus(t, env.db, job.ID))

	require.NoError(t, env.jobs.UploadDeliverable(job.ID, winner.ID, "s3://bucket/final.zip"))
	require.NoError(t, env.jobs.CompleteJob(job.ID, client.ID))
	require.Equal(t, models.JobStatusCompleted, jobStatus(t, env.db, job.ID))

	submitRating(t, env, job.ID, client.ID, winner.ID, 5, 4, 5)
	submitRating(t, env, job.ID, winner.ID, client.ID, 4, 5, 5)

	winnerStats, err := env.ratings.GetUserRatingStats(winner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), winnerStats.TotalRatings)
	// (5 + 4 + 5) / 3 rounds to 4.67.
	assert.Equal(t, 4.67, winnerStats.AverageOverallRating)

	clientStats, err := env.ratings.GetUserRatingStats(client.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.67, clientStats.AverageOverallRating)

	// The losing bidder keeps no trace on the job.
	bids, err := env.bids.GetBids(job.ID)
	require.NoError(t, err)
	assert.Empty(t, bids)
}
