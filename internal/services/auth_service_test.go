package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workbridge/internal/auth"
	"workbridge/internal/models"
	"workbridge/internal/services/dto"
	"workbridge/pkg/apperrors"
)

func TestRegisterAndLogin(t *testing.T) {
	env := setupTestEnv(t)

	resp, err := env.auth.Register(&dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret-pass",
		Role:     "client",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, models.UserRoleClient, resp.Role)
	assert.NotEmpty(t, resp.AccessToken)

	claims, err := auth.ParseToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.UserID, claims.UserID)
	assert.Equal(t, models.UserRoleClient, claims.Role)

	login, err := env.auth.Login(&dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, resp.UserID, login.UserID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := setupTestEnv(t)

	req := &dto.RegisterRequest{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "s3cret-pass",
		Role:     "freelancer",
	}
	_, err := env.auth.Register(req)
	require.NoError(t, err)

	req.Username = "bob2"
	_, err = env.auth.Register(req)
	assert.ErrorIs(t, err, apperrors.ErrEmailTaken)
}

func TestLoginWrongPassword(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.auth.Register(&dto.RegisterRequest{
		Username: "carol",
		Email:    "carol@example.com",
		Password: "s3cret-pass",
		Role:     "client",
	})
	require.NoError(t, err)

	_, err = env.auth.Login(&dto.LoginRequest{
		Email:    "carol@example.com",
		Password: "wrong-pass",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	// Unknown email reports the same error as a bad password.
	_, err = env.auth.Login(&dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "s3cret-pass",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}
