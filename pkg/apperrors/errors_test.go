package apperrors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorIs(t *testing.T) {
	err := ErrJobNotFound.WithError(errors.New("record not found"))

	assert.ErrorIs(t, err, ErrJobNotFound)
	assert.NotErrorIs(t, err, ErrUserNotFound)
	assert.NotErrorIs(t, err, ErrNotJobOwner)
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := InternalError(cause)

	assert.ErrorIs(t, err, cause)

	var appErr *AppError
	require.ErrorAs(t, error(err), &appErr)
	assert.Equal(t, CodeInternalError, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPCode)
}

func TestWithDetailsCopies(t *testing.T) {
	base := ErrBidTooLow
	detailed := base.WithDetails(map[string]any{"amount": 100})

	assert.Nil(t, base.Details)
	assert.NotNil(t, detailed.Details)
	assert.ErrorIs(t, detailed, base)
}

func TestErrInvalidStatusFactory(t *testing.T) {
	err := ErrInvalidStatus("job", "cannot complete a job in status \"new\"")

	assert.Equal(t, CodeInvalidStatus, err.Code)
	assert.Equal(t, "job", err.Domain)
	assert.Equal(t, http.StatusConflict, err.HTTPCode)
}
