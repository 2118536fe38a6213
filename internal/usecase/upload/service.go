package upload

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand"

	"github.com/google/uuid"

	"github.com/photospot-app/photospot-backend/internal/adapter/repository"
	"github.com/photospot-app/photospot-backend/internal/adapter/storage"
	"github.com/photospot-app/photospot-backend/internal/domain"
	"github.com/photospot-app/photospot-backend/internal/domain/entity"
	"github.com/photospot-app/photospot-backend/internal/domain/valueobject"
)

const (
	// Blur offset range in meters. Large enough that the public pin does
	// not identify the spot, small enough to keep map browsing useful.
	minBlurOffset = 100.0
	maxBlurOffset = 300.0

	metersPerDegreeLat = 111_320.0
)

type Service struct {
	photoRepo      repository.PhotoRepository
	imageStorage   storage.ImageStorage
	imageProcessor storage.ImageProcessor
}

func NewService(
	photoRepo repository.PhotoRepository,
	imageStorage storage.ImageStorage,
	imageProcessor storage.ImageProcessor,
) *Service {
	return &Service{
		photoRepo:      photoRepo,
		imageStorage:   imageStorage,
		imageProcessor: imageProcessor,
	}
}

type UploadInput struct {
	OwnerID      uuid.UUID
	Title        string
	Description  string
	Location     valueobject.Location
	BlurLocation bool
	Category     entity.Category
	Season       *entity.Season
	TimeOfDay    *entity.TimeOfDay
	Tags         []string
	Gear         *entity.Gear
	EXIF         *entity.EXIF
	File         io.Reader
	ContentType  string
}

func (s *Service) Upload(ctx context.Context, input UploadInput) (*entity.Photo, error) {
	if !input.Location.IsValid() {
		return nil, domain.ErrInvalidLocation
	}
	if len(input.Tags) > entity.MaxTags {
		return nil, domain.ErrTooManyTags
	}

	processed, err := s.imageProcessor.Process(input.File)
	if err != nil {
		return nil, fmt.Errorf("processing image: %w", err)
	}

	public := input.Location
	var exact *valueobject.Location
	if input.BlurLocation {
		loc := input.Location
		exact = &loc
		public = blurLocation(input.Location)
	}

	photo := entity.NewPhoto(input.OwnerID, input.Title, input.Description, public, exact, input.Category)
	photo.Season = input.Season
	photo.TimeOfDay = input.TimeOfDay
	photo.Tags = input.Tags
	photo.Gear = input.Gear
	photo.EXIF = input.EXIF

	key := fmt.Sprintf("photos/%s/%s.jpg", photo.OwnerID, photo.ID)
	thumbKey := fmt.Sprintf("photos/%s/%s_thumb.jpg", photo.OwnerID, photo.ID)

	if err := s.imageStorage.Upload(ctx, key, processed.Data, "image/jpeg", processed.Size); err != nil {
		return nil, fmt.Errorf("uploading to storage: %w", err)
	}
	if err := s.imageStorage.Upload(ctx, thumbKey, processed.Thumbnail, "image/jpeg", processed.ThumbnailSize); err != nil {
		_ = s.imageStorage.Delete(ctx, key)
		return nil, fmt.Errorf("uploading thumbnail: %w", err)
	}

	photo.URL = s.imageStorage.GetURL(key)
	photo.ThumbnailURL = s.imageStorage.GetURL(thumbKey)
	photo.StorageKey = key

	if err := s.photoRepo.Create(ctx, photo); err != nil {
		_ = s.imageStorage.Delete(ctx, key)
		_ = s.imageStorage.Delete(ctx, thumbKey)
		return nil, fmt.Errorf("creating photo record: %w", err)
	}

	return photo, nil
}

func (s *Service) Delete(ctx context.Context, userID, photoID uuid.UUID) error {
	photo, err := s.photoRepo.GetByID(ctx, photoID)
	if err != nil {
		return err
	}

	if photo.OwnerID != userID {
		return domain.ErrForbidden
	}

	if err := s.photoRepo.SoftDelete(ctx, photoID); err != nil {
		return fmt.Errorf("deleting photo: %w", err)
	}
	return nil
}

// blurLocation shifts the point by a random 100-300 m offset in a random
// direction. The true coordinates stay on the record as ExactLocation.
func blurLocation(loc valueobject.Location) valueobject.Location {
	distance := minBlurOffset + rand.Float64()*(maxBlurOffset-minBlurOffset)
	bearing := rand.Float64() * 2 * math.Pi

	dLat := distance * math.Cos(bearing) / metersPerDegreeLat
	dLng := distance * math.Sin(bearing) / (metersPerDegreeLat * math.Cos(loc.Latitude*math.Pi/180))

	blurred := valueobject.NewLocation(loc.Latitude+dLat, loc.Longitude+dLng)
	if !blurred.IsValid() {
		return loc
	}
	return blurred
}
