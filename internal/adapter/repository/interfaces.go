package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/photospot-app/photospot-backend/internal/domain/entity"
	"github.com/photospot-app/photospot-backend/internal/domain/valueobject"
	"github.com/photospot-app/photospot-backend/internal/pkg/pagination"
)

// ListFilter holds the validated attribute filters for the public listing.
// Absent fields mean "no constraint". The approved/not-deleted predicate is
// not part of the filter: the repository applies it unconditionally.
type ListFilter struct {
	BoundingBox      *valueobject.BoundingBox
	Category         *entity.Category
	Season           *entity.Season
	TimeOfDay        *entity.TimeOfDay
	PhotographerOnly bool
}

// PhotoListRow is one public listing row with its author fields already
// joined in and tags flattened.
type PhotoListRow struct {
	Photo        entity.Photo
	AuthorName   string
	AuthorAvatar *string
}

type PhotoRepository interface {
	Create(ctx context.Context, photo *entity.Photo) error
	// GetByID returns ErrPhotoNotFound for both missing and soft-deleted
	// records; callers cannot distinguish the two.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Photo, error)
	ListPublic(ctx context.Context, filter ListFilter, page pagination.Params) ([]PhotoListRow, error)
	CountPublic(ctx context.Context, filter ListFilter) (int, error)
	ListByStatus(ctx context.Context, status entity.PhotoStatus, page pagination.Params) ([]entity.Photo, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.PhotoStatus) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	// ClusterHints maps photo ids inside the box to a database-computed grid
	// cluster. Purely an annotation, never a filter.
	ClusterHints(ctx context.Context, bbox *valueobject.BoundingBox) (map[uuid.UUID]int, error)
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *entity.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error)
	GetByEmail(ctx context.Context, email string) (*entity.Profile, error)
	Update(ctx context.Context, profile *entity.Profile) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type FavoriteRepository interface {
	Add(ctx context.Context, fav *entity.Favorite) error
	Remove(ctx context.Context, photoID, userID uuid.UUID) error
	CountByPhoto(ctx context.Context, photoID uuid.UUID) (int, error)
	Exists(ctx context.Context, photoID, userID uuid.UUID) (bool, error)
}

type RefreshTokenRepository interface {
	Create(ctx context.Context, token *entity.RefreshToken) error
	GetByToken(ctx context.Context, token string) (*entity.RefreshToken, error)
	Revoke(ctx context.Context, id uuid.UUID) error
	RevokeByUserID(ctx context.Context, userID uuid.UUID) error
	DeleteExpired(ctx context.Context) error
}
