package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/photospot-app/photospot-backend/internal/adapter/repository"
	"github.com/photospot-app/photospot-backend/internal/domain"
	"github.com/photospot-app/photospot-backend/internal/domain/entity"
	"github.com/photospot-app/photospot-backend/internal/infrastructure/auth"

	"github.com/google/uuid"
)

type Service struct {
	profileRepo      repository.ProfileRepository
	refreshTokenRepo repository.RefreshTokenRepository
	jwtSvc           *auth.JWTService
	passwordHasher   *auth.PasswordHasher
	refreshTokenTTL  time.Duration
}

func NewService(
	profileRepo repository.ProfileRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
	jwtSvc *auth.JWTService,
	passwordHasher *auth.PasswordHasher,
	refreshTokenTTL time.Duration,
) *Service {
	return &Service{
		profileRepo:      profileRepo,
		refreshTokenRepo: refreshTokenRepo,
		jwtSvc:           jwtSvc,
		passwordHasher:   passwordHasher,
		refreshTokenTTL:  refreshTokenTTL,
	}
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
	Role        entity.Role
}

func (s *Service) Register(ctx context.Context, input RegisterInput) (*entity.Profile, error) {
	exists, err := s.profileRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("checking email: %w", err)
	}
	if exists {
		return nil, domain.ErrProfileExists
	}

	role := input.Role
	if role == "" {
		role = entity.RoleEnthusiast
	}
	// Moderators are provisioned out of band, never self-registered.
	if role == entity.RoleModerator {
		return nil, domain.ErrForbidden
	}

	hash, err := s.passwordHasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	profile := entity.NewProfile(input.Email, hash, input.DisplayName, role)
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("creating profile: %w", err)
	}

	return profile, nil
}

type LoginInput struct {
	Email    string
	Password string
}

func (s *Service) Login(ctx context.Context, input LoginInput) (*TokenPair, *entity.Profile, error) {
	profile, err := s.profileRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	if err := s.passwordHasher.Compare(profile.PasswordHash, input.Password); err != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	pair, err := s.issueTokens(ctx, profile)
	if err != nil {
		return nil, nil, err
	}

	return pair, profile, nil
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	stored, err := s.refreshTokenRepo.GetByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrTokenInvalid) {
			return nil, err
		}
		return nil, fmt.Errorf("loading refresh token: %w", err)
	}

	if stored.IsRevoked() {
		return nil, domain.ErrTokenRevoked
	}
	if stored.IsExpired() {
		return nil, domain.ErrTokenExpired
	}

	profile, err := s.profileRepo.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}

	// Rotate: the presented token is single-use.
	if err := s.refreshTokenRepo.Revoke(ctx, stored.ID); err != nil {
		return nil, fmt.Errorf("revoking refresh token: %w", err)
	}

	return s.issueTokens(ctx, profile)
}

func (s *Service) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := s.refreshTokenRepo.RevokeByUserID(ctx, userID); err != nil {
		return fmt.Errorf("revoking refresh tokens: %w", err)
	}
	return nil
}

func (s *Service) issueTokens(ctx context.Context, profile *entity.Profile) (*TokenPair, error) {
	accessToken, expiresAt, err := s.jwtSvc.GenerateAccessToken(profile.ID, profile.Role)
	if err != nil {
		return nil, fmt.Errorf("generating access token: %w", err)
	}

	refreshToken, err := s.jwtSvc.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("generating refresh token: %w", err)
	}

	rt := entity.NewRefreshToken(profile.ID, refreshToken, s.refreshTokenTTL)
	if err := s.refreshTokenRepo.Create(ctx, rt); err != nil {
		return nil, fmt.Errorf("storing refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
	}, nil
}
