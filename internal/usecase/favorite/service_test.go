package favorite_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/photospot-app/photospot-backend/internal/domain"
	"github.com/photospot-app/photospot-backend/internal/domain/entity"
	"github.com/photospot-app/photospot-backend/internal/mocks"
	"github.com/photospot-app/photospot-backend/internal/usecase/favorite"
)

func TestService_Add(t *testing.T) {
	t.Run("favorites an approved photo", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		photoRepo := mocks.NewMockPhotoRepository(ctrl)
		favoriteRepo := mocks.NewMockFavoriteRepository(ctrl)
		svc := favorite.NewService(photoRepo, favoriteRepo)

		ctx := context.Background()
		photoID := uuid.New()
		userID := uuid.New()

		photoRepo.EXPECT().GetByID(ctx, photoID).
			Return(&entity.Photo{ID: photoID, OwnerID: uuid.New(), Status: entity.StatusApproved}, nil)
		favoriteRepo.EXPECT().Add(ctx, gomock.Any()).Return(nil)

		assert.NoError(t, svc.Add(ctx, photoID, userID))
	})

	t.Run("owner may favorite own pending photo", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		photoRepo := mocks.NewMockPhotoRepository(ctrl)
		favoriteRepo := mocks.NewMockFavoriteRepository(ctrl)
		svc := favorite.NewService(photoRepo, favoriteRepo)

		ctx := context.Background()
		photoID := uuid.New()
		ownerID := uuid.New()

		photoRepo.EXPECT().GetByID(ctx, photoID).
			Return(&entity.Photo{ID: photoID, OwnerID: ownerID, Status: entity.StatusPending}, nil)
		favoriteRepo.EXPECT().Add(ctx, gomock.Any()).Return(nil)

		assert.NoError(t, svc.Add(ctx, photoID, ownerID))
	})

	t.Run("non-owner may not favorite an unapproved photo", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		photoRepo := mocks.NewMockPhotoRepository(ctrl)
		favoriteRepo := mocks.NewMockFavoriteRepository(ctrl)
		svc := favorite.NewService(photoRepo, favoriteRepo)

		ctx := context.Background()
		photoID := uuid.New()

		photoRepo.EXPECT().GetByID(ctx, photoID).
			Return(&entity.Photo{ID: photoID, OwnerID: uuid.New(), Status: entity.StatusPending}, nil)

		err := svc.Add(ctx, photoID, uuid.New())

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("missing photo passes through not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		photoRepo := mocks.NewMockPhotoRepository(ctrl)
		favoriteRepo := mocks.NewMockFavoriteRepository(ctrl)
		svc := favorite.NewService(photoRepo, favoriteRepo)

		ctx := context.Background()
		photoID := uuid.New()

		photoRepo.EXPECT().GetByID(ctx, photoID).Return(nil, domain.ErrPhotoNotFound)

		err := svc.Add(ctx, photoID, uuid.New())

		assert.ErrorIs(t, err, domain.ErrPhotoNotFound)
	})
}

func TestService_Remove(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	photoRepo := mocks.NewMockPhotoRepository(ctrl)
	favoriteRepo := mocks.NewMockFavoriteRepository(ctrl)
	svc := favorite.NewService(photoRepo, favoriteRepo)

	ctx := context.Background()
	photoID := uuid.New()
	userID := uuid.New()

	photoRepo.EXPECT().GetByID(ctx, photoID).
		Return(&entity.Photo{ID: photoID, OwnerID: uuid.New(), Status: entity.StatusApproved}, nil)
	favoriteRepo.EXPECT().Remove(ctx, photoID, userID).Return(nil)

	assert.NoError(t, svc.Remove(ctx, photoID, userID))
}
