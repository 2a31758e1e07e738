package dto

import "talento_backend/internal/models"

type RegisterRequest struct {
	Email    string `json:"email" binding:"required" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required,min=8"`
	Name     string `json:"name" validate:"max=120"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	User         *UserResponse `json:"user"`
}

type OnboardingRequest struct {
	Name      string `json:"name" validate:"required,max=120"`
	AvatarURL string `json:"avatar_url" validate:"omitempty,url"`
	Role      string `json:"target_role" validate:"max=120"`
}

type UserResponse struct {
	ID        string          `json:"id"`
	Email     string          `json:"email"`
	Role      models.UserRole `json:"role"`
	Name      string          `json:"name,omitempty"`
	AvatarURL string          `json:"avatar_url,omitempty"`
	Onboarded bool            `json:"onboarded"`
}

// NewUserResponse maps a user model onto the wire shape.
func NewUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Role:      user.Role,
		Name:      user.MetaString(models.MetaName),
		AvatarURL: user.MetaString(models.MetaAvatarURL),
		Onboarded: user.Onboarded(),
	}
}
