package apperrors

import "net/http"

// Factories for wrapping repository errors.

// ErrNotFound converts a repository miss (gorm.ErrRecordNotFound and
// friends) into a 404 AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus reports a lifecycle transition attempted from a
// disallowed source status.
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusConflict)
}

// Predefined marketplace errors. Kept as variables so services and
// tests can match them with errors.Is.
var (
	// Job lifecycle
	ErrJobNotFound = New(CodeNotFound, "job", "Job not found", http.StatusNotFound)
	ErrNotJobOwner = New(CodeForbidden, "job", "Only the job's client may perform this action", http.StatusForbidden)
	ErrNotAssigned = New(CodeForbidden, "job", "Only the assigned freelancer may perform this action", http.StatusForbidden)

	// Bidding
	ErrBidTooLow = New(CodeValidationFailed, "bidding", "Bid amount must exceed the job budget", http.StatusBadRequest)

	// Ratings
	ErrNoRatingDeadline = New(CodeNotFound, "rating", "No rating window exists for this job", http.StatusNotFound)
	ErrRatingExpired    = New(CodeDeadlineExceeded, "rating", "The rating window for this job has closed", http.StatusGone)

	// Users
	ErrUserNotFound       = New(CodeNotFound, "user", "User not found", http.StatusNotFound)
	ErrInvalidCredentials = New(CodeInvalidCredentials, "auth", "Invalid email or password", http.StatusUnauthorized)
	ErrEmailTaken         = New(CodeAlreadyExists, "user", "Email is already registered", http.StatusConflict)
	ErrInvalidUserRole    = New(CodeInvalidOperation, "user", "Operation is not available for this role", http.StatusForbidden)
)
