package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/photospot-app/photospot-backend/internal/adapter/handler/dto/request"
	"github.com/photospot-app/photospot-backend/internal/adapter/handler/dto/response"
	"github.com/photospot-app/photospot-backend/internal/domain"
	"github.com/photospot-app/photospot-backend/internal/pkg/httputil"
	"github.com/photospot-app/photospot-backend/internal/pkg/pagination"
)

type ModerationHandler struct {
	moderationSvc ModerationService
}

func NewModerationHandler(moderationSvc ModerationService) *ModerationHandler {
	return &ModerationHandler{moderationSvc: moderationSvc}
}

func (h *ModerationHandler) ListPending(c *gin.Context) {
	var req request.ModerationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httputil.ValidationError(c, err)
		return
	}

	page := pagination.Default()
	if req.Limit != nil {
		page.Limit = *req.Limit
	}
	page.Offset = req.Offset

	photos, meta, err := h.moderationSvc.ListPending(c.Request.Context(), page)
	if err != nil {
		httputil.HandleError(c, err)
		return
	}

	httputil.OK(c, response.ModerationListFrom(photos, meta))
}

func (h *ModerationHandler) Approve(c *gin.Context) {
	h.transition(c, h.moderationSvc.Approve)
}

func (h *ModerationHandler) Reject(c *gin.Context) {
	h.transition(c, h.moderationSvc.Reject)
}

func (h *ModerationHandler) transition(c *gin.Context, apply func(ctx context.Context, photoID uuid.UUID) error) {
	photoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.ErrorWithCode(c, http.StatusBadRequest, "INVALID_INPUT", "invalid photo id")
		return
	}

	if err := apply(c.Request.Context(), photoID); err != nil {
		switch {
		case errors.Is(err, domain.ErrPhotoNotFound):
			httputil.ErrorWithCode(c, http.StatusNotFound, "NOT_FOUND", "photo not found")
		case errors.Is(err, domain.ErrInvalidStatus):
			httputil.ErrorWithCode(c, http.StatusConflict, "CONFLICT", "photo is not pending review")
		default:
			httputil.HandleError(c, err)
		}
		return
	}

	httputil.NoContent(c)
}
