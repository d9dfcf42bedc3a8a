package models

type UserRole string
type JobStatus string

const (
	UserRoleClient     UserRole = "client"
	UserRoleFreelancer UserRole = "freelancer"
)

// Job lifecycle statuses. The persisted values are the strings below;
// JobStatus is a closed enum so transition logic can be checked
// exhaustively.
const (
	JobStatusNew                 JobStatus = "new"
	JobStatusBidding             JobStatus = "bidding"
	JobStatusPendingConfirmation JobStatus = "pending_confirmation"
	JobStatusInProgress          JobStatus = "in_progress"
	JobStatusDelivered           JobStatus = "delivered"
	JobStatusCompleted           JobStatus = "completed"
)

// AllJobStatuses lists every valid status, in lifecycle order.
var AllJobStatuses = []JobStatus{
	JobStatusNew,
	JobStatusBidding,
	JobStatusPendingConfirmation,
	JobStatusInProgress,
	JobStatusDelivered,
	JobStatusCompleted,
}

// UnassignedJobStatuses are the statuses in which a job has no
// freelancer yet and is open for bids or claim requests.
var UnassignedJobStatuses = []JobStatus{JobStatusNew, JobStatusBidding}

func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusNew, JobStatusBidding, JobStatusPendingConfirmation,
		JobStatusInProgress, JobStatusDelivered, JobStatusCompleted:
		return true
	}
	return false
}

// In reports whether s is one of the given statuses. Transition
// functions use it to enforce their allowed source-state sets.
func (s JobStatus) In(set ...JobStatus) bool {
	for _, v := range set {
		if s == v {
			return true
		}
	}
	return false
}

func (r UserRole) Valid() bool {
	return r == UserRoleClient || r == UserRoleFreelancer
}

// Opposite returns the counterparty role. A user's rating stats
// aggregate only ratings submitted by the opposite role.
func (r UserRole) Opposite() UserRole {
	if r == UserRoleClient {
		return UserRoleFreelancer
	}
	return UserRoleClient
}
