package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/photospot-app/photospot-backend/internal/domain"
	"github.com/photospot-app/photospot-backend/internal/domain/entity"
	"github.com/photospot-app/photospot-backend/internal/pkg/pagination"
	"github.com/photospot-app/photospot-backend/internal/usecase/auth"
	"github.com/photospot-app/photospot-backend/internal/usecase/photo"
	"github.com/photospot-app/photospot-backend/internal/usecase/upload"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/handler_mocks.go -package=mocks

type PhotoService interface {
	ListPublic(ctx context.Context, input photo.ListInput) (*photo.ListResult, error)
	GetDetail(ctx context.Context, photoID uuid.UUID, viewer domain.Viewer) (*photo.Detail, error)
}

type AuthService interface {
	Register(ctx context.Context, input auth.RegisterInput) (*entity.Profile, error)
	Login(ctx context.Context, input auth.LoginInput) (*auth.TokenPair, *entity.Profile, error)
	Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error)
	Logout(ctx context.Context, userID uuid.UUID) error
}

type UploadService interface {
	Upload(ctx context.Context, input upload.UploadInput) (*entity.Photo, error)
	Delete(ctx context.Context, userID, photoID uuid.UUID) error
}

type ModerationService interface {
	ListPending(ctx context.Context, page pagination.Params) ([]entity.Photo, pagination.Meta, error)
	Approve(ctx context.Context, photoID uuid.UUID) error
	Reject(ctx context.Context, photoID uuid.UUID) error
}

type FavoriteService interface {
	Add(ctx context.Context, photoID, userID uuid.UUID) error
	Remove(ctx context.Context, photoID, userID uuid.UUID) error
}
