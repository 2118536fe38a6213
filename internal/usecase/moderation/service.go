package moderation

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/photospot-app/photospot-backend/internal/adapter/repository"
	"github.com/photospot-app/photospot-backend/internal/domain"
	"github.com/photospot-app/photospot-backend/internal/domain/entity"
	"github.com/photospot-app/photospot-backend/internal/pkg/pagination"
)

// Service handles the moderation queue. Role checks happen in middleware;
// status transition rules live here.
type Service struct {
	photoRepo repository.PhotoRepository
}

func NewService(photoRepo repository.PhotoRepository) *Service {
	return &Service{photoRepo: photoRepo}
}

func (s *Service) ListPending(ctx context.Context, page pagination.Params) ([]entity.Photo, pagination.Meta, error) {
	photos, total, err := s.photoRepo.ListByStatus(ctx, entity.StatusPending, page)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("listing pending photos: %w", err)
	}
	return photos, pagination.NewMeta(page, total), nil
}

func (s *Service) Approve(ctx context.Context, photoID uuid.UUID) error {
	return s.transition(ctx, photoID, entity.StatusApproved)
}

func (s *Service) Reject(ctx context.Context, photoID uuid.UUID) error {
	return s.transition(ctx, photoID, entity.StatusRejected)
}

func (s *Service) transition(ctx context.Context, photoID uuid.UUID, status entity.PhotoStatus) error {
	photo, err := s.photoRepo.GetByID(ctx, photoID)
	if err != nil {
		return err
	}

	// Only pending photos move; re-moderating a decided photo is a no-op
	// conflict rather than a silent overwrite.
	if photo.Status != entity.StatusPending {
		return domain.ErrInvalidStatus
	}

	if err := s.photoRepo.UpdateStatus(ctx, photoID, status); err != nil {
		return fmt.Errorf("updating photo status: %w", err)
	}
	return nil
}
