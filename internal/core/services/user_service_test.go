package services_test

import (
	"testing"
	"time"

	"github.com/SscSPs/survey_workspace_app/internal/apperrors"
	"github.com/SscSPs/survey_workspace_app/internal/core/domain"
	"github.com/SscSPs/survey_workspace_app/internal/core/services"
	"github.com/SscSPs/survey_workspace_app/internal/dto"
	"github.com/SscSPs/survey_workspace_app/internal/platform/config"
	"github.com/SscSPs/survey_workspace_app/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_RegisterAndAuthenticate(t *testing.T) {
	f := newFixture(t)
	users := services.NewUserService(f.repos.UserRepo)

	user, err := users.CreateUser(f.ctx, dto.RegisterRequest{
		Username: "dana",
		Email:    " Dana@Example.com ",
		Name:     "Dana",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "dana@example.com", user.Email)
	assert.Equal(t, domain.PlatformRoleUser, user.PlatformRole)
	assert.NotEqual(t, "correct horse", user.PasswordHash)

	_, err = users.CreateUser(f.ctx, dto.RegisterRequest{Username: "dana2", Email: "dana@example.com", Password: "correct horse"})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	_, err = users.CreateUser(f.ctx, dto.RegisterRequest{Username: "dana", Email: "other@example.com", Password: "correct horse"})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	_, err = users.CreateUser(f.ctx, dto.RegisterRequest{Username: "x", Email: "x@example.com", Password: "short"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	authed, err := users.AuthenticateUser(f.ctx, "DANA@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, user.UserID, authed.UserID)

	_, err = users.AuthenticateUser(f.ctx, "dana@example.com", "wrong password")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	_, err = users.AuthenticateUser(f.ctx, "nobody@example.com", "correct horse")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	got, err := users.GetUserByID(f.ctx, user.UserID)
	require.NoError(t, err)
	assert.Equal(t, "dana", got.Username)

	_, err = users.GetUserByID(f.ctx, strangeID)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestTokenService_GenerateAccessToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiryDuration: time.Hour, JWTIssuer: "survey-test"}
	tokens := services.NewTokenService(cfg)

	token, expiresAt, err := tokens.GenerateAccessToken(t.Context(), &domain.User{UserID: bobID})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	userID, err := utils.ParseAndValidateJWT(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, bobID, userID)
}
