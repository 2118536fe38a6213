package response

import (
	"time"

	"github.com/google/uuid"

	"github.com/photospot-app/photospot-backend/internal/domain/entity"
	"github.com/photospot-app/photospot-backend/internal/usecase/auth"
)

type ProfileResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	AvatarURL   *string   `json:"avatar_url"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

func ProfileFromEntity(p *entity.Profile) ProfileResponse {
	return ProfileResponse{
		ID:          p.ID,
		Email:       p.Email,
		DisplayName: p.DisplayName,
		AvatarURL:   p.AvatarURL,
		Role:        string(p.Role),
		CreatedAt:   p.CreatedAt,
	}
}

type TokenResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

func TokensFromPair(pair *auth.TokenPair) TokenResponse {
	return TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt,
	}
}

type LoginResponse struct {
	Tokens  TokenResponse   `json:"tokens"`
	Profile ProfileResponse `json:"profile"`
}
