package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobStatusValid(t *testing.T) {
	for _, s := range AllJobStatuses {
		assert.True(t, s.Valid(), "status %q should be valid", s)
	}
	assert.False(t, JobStatus("archived").Valid())
	assert.False(t, JobStatus("").Valid())
}

func TestJobStatusIn(t *testing.T) {
	assert.True(t, JobStatusNew.In(UnassignedJobStatuses...))
	assert.True(t, JobStatusBidding.In(UnassignedJobStatuses...))
	assert.False(t, JobStatusInProgress.In(UnassignedJobStatuses...))
	assert.False(t, JobStatusCompleted.In())
}

func TestUserRoleOpposite(t *testing.T) {
	assert.Equal(t, UserRoleFreelancer, UserRoleClient.Opposite())
	assert.Equal(t, UserRoleClient, UserRoleFreelancer.Opposite())
}

func TestDimensionLabels(t *testing.T) {
	assert.Equal(t, FreelancerRatedDimensions, DimensionLabelsFor(UserRoleFreelancer))
	assert.Equal(t, ClientRatedDimensions, DimensionLabelsFor(UserRoleClient))
}
