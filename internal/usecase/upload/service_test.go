package upload_test

import (
	"bytes"
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/photospot-app/photospot-backend/internal/adapter/storage"
	"github.com/photospot-app/photospot-backend/internal/domain"
	"github.com/photospot-app/photospot-backend/internal/domain/entity"
	"github.com/photospot-app/photospot-backend/internal/domain/valueobject"
	"github.com/photospot-app/photospot-backend/internal/mocks"
	"github.com/photospot-app/photospot-backend/internal/usecase/upload"
)

func processedFixture() *storage.ProcessedImage {
	return &storage.ProcessedImage{
		Data:          bytes.NewReader([]byte("full")),
		Size:          4,
		Width:         2048,
		Height:        1365,
		Thumbnail:     bytes.NewReader([]byte("thumb")),
		ThumbnailSize: 5,
	}
}

func uploadInput(ownerID uuid.UUID) upload.UploadInput {
	return upload.UploadInput{
		OwnerID:     ownerID,
		Title:       "Foggy pier",
		Location:    valueobject.NewLocation(54.18, 7.89),
		Category:    entity.CategoryLandscape,
		File:        bytes.NewReader([]byte("jpeg bytes")),
		ContentType: "image/jpeg",
	}
}

func TestService_Upload(t *testing.T) {
	t.Run("uploads photo and thumbnail and stores a pending record", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		photoRepo := mocks.NewMockPhotoRepository(ctrl)
		imageStorage := mocks.NewMockImageStorage(ctrl)
		imageProcessor := mocks.NewMockImageProcessor(ctrl)
		svc := upload.NewService(photoRepo, imageStorage, imageProcessor)

		ctx := context.Background()
		ownerID := uuid.New()

		imageProcessor.EXPECT().Process(gomock.Any()).Return(processedFixture(), nil)
		imageStorage.EXPECT().Upload(ctx, gomock.Any(), gomock.Any(), "image/jpeg", int64(4)).Return(nil)
		imageStorage.EXPECT().Upload(ctx, gomock.Any(), gomock.Any(), "image/jpeg", int64(5)).Return(nil)
		imageStorage.EXPECT().GetURL(gomock.Any()).Return("https://cdn.example.com/full.jpg")
		imageStorage.EXPECT().GetURL(gomock.Any()).Return("https://cdn.example.com/thumb.jpg")
		photoRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)

		photo, err := svc.Upload(ctx, uploadInput(ownerID))

		require.NoError(t, err)
		assert.Equal(t, entity.StatusPending, photo.Status)
		assert.Equal(t, ownerID, photo.OwnerID)
		assert.Nil(t, photo.ExactLocation)
		assert.False(t, photo.IsLocationBlurred())
	})

	t.Run("blur keeps exact location and shifts the public one", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		photoRepo := mocks.NewMockPhotoRepository(ctrl)
		imageStorage := mocks.NewMockImageStorage(ctrl)
		imageProcessor := mocks.NewMockImageProcessor(ctrl)
		svc := upload.NewService(photoRepo, imageStorage, imageProcessor)

		ctx := context.Background()
		input := uploadInput(uuid.New())
		input.BlurLocation = true

		imageProcessor.EXPECT().Process(gomock.Any()).Return(processedFixture(), nil)
		imageStorage.EXPECT().Upload(ctx, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
		imageStorage.EXPECT().GetURL(gomock.Any()).Return("u").Times(2)
		photoRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)

		photo, err := svc.Upload(ctx, input)

		require.NoError(t, err)
		require.NotNil(t, photo.ExactLocation)
		assert.Equal(t, input.Location, *photo.ExactLocation)
		assert.True(t, photo.IsLocationBlurred())

		// The offset is 100-300 m; a degree of latitude is ~111 km, so the
		// public pin lands within ~0.01 degrees of the true point but not
		// exactly on it.
		dLat := photo.PublicLocation.Latitude - input.Location.Latitude
		dLng := photo.PublicLocation.Longitude - input.Location.Longitude
		assert.False(t, dLat == 0 && dLng == 0)
		assert.Less(t, math.Abs(dLat), 0.01)
		assert.Less(t, math.Abs(dLng), 0.01)
	})

	t.Run("rejects invalid coordinates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := upload.NewService(
			mocks.NewMockPhotoRepository(ctrl),
			mocks.NewMockImageStorage(ctrl),
			mocks.NewMockImageProcessor(ctrl),
		)

		input := uploadInput(uuid.New())
		input.Location = valueobject.NewLocation(91.0, 0.0)

		_, err := svc.Upload(context.Background(), input)

		assert.ErrorIs(t, err, domain.ErrInvalidLocation)
	})

	t.Run("rejects too many tags", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := upload.NewService(
			mocks.NewMockPhotoRepository(ctrl),
			mocks.NewMockImageStorage(ctrl),
			mocks.NewMockImageProcessor(ctrl),
		)

		input := uploadInput(uuid.New())
		for i := 0; i <= entity.MaxTags; i++ {
			input.Tags = append(input.Tags, "tag")
		}

		_, err := svc.Upload(context.Background(), input)

		assert.ErrorIs(t, err, domain.ErrTooManyTags)
	})

	t.Run("cleans up storage when the record insert fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		photoRepo := mocks.NewMockPhotoRepository(ctrl)
		imageStorage := mocks.NewMockImageStorage(ctrl)
		imageProcessor := mocks.NewMockImageProcessor(ctrl)
		svc := upload.NewService(photoRepo, imageStorage, imageProcessor)

		ctx := context.Background()

		imageProcessor.EXPECT().Process(gomock.Any()).Return(processedFixture(), nil)
		imageStorage.EXPECT().Upload(ctx, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
		imageStorage.EXPECT().GetURL(gomock.Any()).Return("u").Times(2)
		photoRepo.EXPECT().Create(ctx, gomock.Any()).Return(errors.New("unique violation"))
		imageStorage.EXPECT().Delete(ctx, gomock.Any()).Return(nil).Times(2)

		_, err := svc.Upload(ctx, uploadInput(uuid.New()))

		assert.Error(t, err)
	})

	t.Run("removes the full image when the thumbnail upload fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		photoRepo := mocks.NewMockPhotoRepository(ctrl)
		imageStorage := mocks.NewMockImageStorage(ctrl)
		imageProcessor := mocks.NewMockImageProcessor(ctrl)
		svc := upload.NewService(photoRepo, imageStorage, imageProcessor)

		ctx := context.Background()

		imageProcessor.EXPECT().Process(gomock.Any()).Return(processedFixture(), nil)
		gomock.InOrder(
			imageStorage.EXPECT().Upload(ctx, gomock.Any(), gomock.Any(), gomock.Any(), int64(4)).Return(nil),
			imageStorage.EXPECT().Upload(ctx, gomock.Any(), gomock.Any(), gomock.Any(), int64(5)).Return(errors.New("timeout")),
			imageStorage.EXPECT().Delete(ctx, gomock.Any()).Return(nil),
		)

		_, err := svc.Upload(ctx, uploadInput(uuid.New()))

		assert.Error(t, err)
	})
}

func TestService_Delete(t *testing.T) {
	t.Run("owner soft-deletes own photo", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		photoRepo := mocks.NewMockPhotoRepository(ctrl)
		svc := upload.NewService(photoRepo, mocks.NewMockImageStorage(ctrl), mocks.NewMockImageProcessor(ctrl))

		ctx := context.Background()
		ownerID := uuid.New()
		photoID := uuid.New()

		photoRepo.EXPECT().GetByID(ctx, photoID).Return(&entity.Photo{ID: photoID, OwnerID: ownerID}, nil)
		photoRepo.EXPECT().SoftDelete(ctx, photoID).Return(nil)

		assert.NoError(t, svc.Delete(ctx, ownerID, photoID))
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		photoRepo := mocks.NewMockPhotoRepository(ctrl)
		svc := upload.NewService(photoRepo, mocks.NewMockImageStorage(ctrl), mocks.NewMockImageProcessor(ctrl))

		ctx := context.Background()
		photoID := uuid.New()

		photoRepo.EXPECT().GetByID(ctx, photoID).Return(&entity.Photo{ID: photoID, OwnerID: uuid.New()}, nil)

		err := svc.Delete(ctx, uuid.New(), photoID)

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("missing photo passes through not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		photoRepo := mocks.NewMockPhotoRepository(ctrl)
		svc := upload.NewService(photoRepo, mocks.NewMockImageStorage(ctrl), mocks.NewMockImageProcessor(ctrl))

		ctx := context.Background()
		photoID := uuid.New()

		photoRepo.EXPECT().GetByID(ctx, photoID).Return(nil, domain.ErrPhotoNotFound)

		err := svc.Delete(ctx, uuid.New(), photoID)

		assert.ErrorIs(t, err, domain.ErrPhotoNotFound)
	})
}
