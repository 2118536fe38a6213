package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/photospot-app/photospot-backend/internal/domain"
	"github.com/photospot-app/photospot-backend/internal/pkg/httputil"
)

type FavoriteHandler struct {
	favoriteSvc FavoriteService
}

func NewFavoriteHandler(favoriteSvc FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteSvc: favoriteSvc}
}

func (h *FavoriteHandler) Add(c *gin.Context) {
	h.apply(c, h.favoriteSvc.Add)
}

func (h *FavoriteHandler) Remove(c *gin.Context) {
	h.apply(c, h.favoriteSvc.Remove)
}

func (h *FavoriteHandler) apply(c *gin.Context, fn func(ctx context.Context, photoID, userID uuid.UUID) error) {
	photoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.ErrorWithCode(c, http.StatusBadRequest, "INVALID_INPUT", "invalid photo id")
		return
	}

	userID := httputil.GetUserID(c)

	if err := fn(c.Request.Context(), photoID, userID); err != nil {
		switch {
		case errors.Is(err, domain.ErrPhotoNotFound):
			httputil.ErrorWithCode(c, http.StatusNotFound, "NOT_FOUND", "photo not found")
		case errors.Is(err, domain.ErrForbidden):
			httputil.ErrorWithCode(c, http.StatusForbidden, "FORBIDDEN", "access denied")
		default:
			httputil.HandleError(c, err)
		}
		return
	}

	httputil.NoContent(c)
}
