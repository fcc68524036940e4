package accounts

import (
	"time"

	"github.com/google/uuid"

	"github.com/soundrift/soundrift-backend/pkg/db/models"
	"github.com/soundrift/soundrift-backend/pkg/enums"
)

// RegisterRequest captures the payload for a new artist account.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginRequest captures the credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserDTO is the public view of an account. The password hash never leaves
// the service layer.
type UserDTO struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Role          enums.Role `json:"role"`
	EmailVerified bool       `json:"emailVerified"`
	SpotifyURL    *string    `json:"spotifyUrl,omitempty"`
	AppleMusicURL *string    `json:"appleMusicUrl,omitempty"`
	YouTubeURL    *string    `json:"youtubeUrl,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// AuthResponse pairs a fresh access token with the account it identifies.
type AuthResponse struct {
	AccessToken string   `json:"accessToken"`
	User        *UserDTO `json:"userInfo"`
}

// FromModel maps the stored user onto the public DTO.
func FromModel(user *models.User) *UserDTO {
	if user == nil {
		return nil
	}
	return &UserDTO{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		Role:          user.Role,
		EmailVerified: user.EmailVerified,
		SpotifyURL:    user.SpotifyURL,
		AppleMusicURL: user.AppleMusicURL,
		YouTubeURL:    user.YouTubeURL,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}
