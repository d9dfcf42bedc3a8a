package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email  string  `json:"email" validate:"required,email"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Role   string  `json:"role" validate:"required,oneof=client freelancer"`
}

func TestValidateOK(t *testing.T) {
	v := New()
	err := v.Validate(&sampleRequest{
		Email:  "user@example.com",
		Amount: 10,
		Role:   "client",
	})
	assert.NoError(t, err)
}

func TestValidateReportsJSONFieldNames(t *testing.T) {
	v := New()
	err := v.Validate(&sampleRequest{
		Email:  "not-an-email",
		Amount: 0,
		Role:   "admin",
	})
	require.Error(t, err)

	ve, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, ve.Errors, "email")
	assert.Contains(t, ve.Errors, "amount")
	assert.Contains(t, ve.Errors, "role")
}
