package dto

import (
	"time"

	"github.com/SscSPs/survey_workspace_app/internal/core/domain"
)

// RegisterRequest defines data for creating an account.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50,alphanum"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Name     string `json:"name" validate:"max=100"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines credentials for logging in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	UserID       FlexibleID          `json:"userID"`
	Username     string              `json:"username"`
	Email        string              `json:"email"`
	Name         string              `json:"name"`
	PlatformRole domain.PlatformRole `json:"platformRole"`
}

// ToUserResponse converts domain.User to DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:       FlexibleID(u.UserID),
		Username:     u.Username,
		Email:        u.Email,
		Name:         u.Name,
		PlatformRole: u.PlatformRole,
	}
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	OK        bool         `json:"ok"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}
