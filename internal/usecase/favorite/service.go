package favorite

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/photospot-app/photospot-backend/internal/adapter/repository"
	"github.com/photospot-app/photospot-backend/internal/domain"
	"github.com/photospot-app/photospot-backend/internal/domain/entity"
)

type Service struct {
	photoRepo    repository.PhotoRepository
	favoriteRepo repository.FavoriteRepository
}

func NewService(photoRepo repository.PhotoRepository, favoriteRepo repository.FavoriteRepository) *Service {
	return &Service{
		photoRepo:    photoRepo,
		favoriteRepo: favoriteRepo,
	}
}

// Add favorites a photo for the user. The photo must be visible to the
// user under the same rules as the detail view: owners may favorite their
// own unapproved photos, everyone else only approved ones.
func (s *Service) Add(ctx context.Context, photoID, userID uuid.UUID) error {
	photo, err := s.photoRepo.GetByID(ctx, photoID)
	if err != nil {
		return err
	}

	if photo.OwnerID != userID && photo.Status != entity.StatusApproved {
		return domain.ErrForbidden
	}

	if err := s.favoriteRepo.Add(ctx, entity.NewFavorite(photoID, userID)); err != nil {
		return fmt.Errorf("adding favorite: %w", err)
	}
	return nil
}

func (s *Service) Remove(ctx context.Context, photoID, userID uuid.UUID) error {
	if _, err := s.photoRepo.GetByID(ctx, photoID); err != nil {
		return err
	}

	if err := s.favoriteRepo.Remove(ctx, photoID, userID); err != nil {
		return fmt.Errorf("removing favorite: %w", err)
	}
	return nil
}
