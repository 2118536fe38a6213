package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/photospot-app/photospot-backend/internal/adapter/handler/dto/request"
	"github.com/photospot-app/photospot-backend/internal/adapter/handler/dto/response"
	"github.com/photospot-app/photospot-backend/internal/adapter/repository"
	"github.com/photospot-app/photospot-backend/internal/domain"
	"github.com/photospot-app/photospot-backend/internal/domain/entity"
	"github.com/photospot-app/photospot-backend/internal/domain/valueobject"
	"github.com/photospot-app/photospot-backend/internal/pkg/httputil"
	"github.com/photospot-app/photospot-backend/internal/pkg/pagination"
	"github.com/photospot-app/photospot-backend/internal/usecase/photo"
)

type PhotoHandler struct {
	photoSvc PhotoService
}

func NewPhotoHandler(photoSvc PhotoService) *PhotoHandler {
	return &PhotoHandler{photoSvc: photoSvc}
}

// List serves the public map listing. Filters arrive validated for shape;
// the service and repository still enforce the approved/not-deleted
// boundary on their own.
func (h *PhotoHandler) List(c *gin.Context) {
	var req request.ListPhotosRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httputil.ValidationError(c, err)
		return
	}

	filter, ok := buildListFilter(c, req)
	if !ok {
		return
	}

	page := pagination.Default()
	if req.Limit != nil {
		page.Limit = *req.Limit
	}
	page.Offset = req.Offset

	result, err := h.photoSvc.ListPublic(c.Request.Context(), photo.ListInput{
		Filter:           filter,
		Page:             page,
		WithClusterHints: req.Cluster,
	})
	if err != nil {
		httputil.HandleError(c, err)
		return
	}

	httputil.OK(c, response.PhotoListFromResult(result))
}

func buildListFilter(c *gin.Context, req request.ListPhotosRequest) (repository.ListFilter, bool) {
	var filter repository.ListFilter

	boundsGiven := 0
	for _, v := range []*float64{req.MinLng, req.MinLat, req.MaxLng, req.MaxLat} {
		if v != nil {
			boundsGiven++
		}
	}
	switch boundsGiven {
	case 0:
	case 4:
		bbox := valueobject.NewBoundingBox(*req.MinLng, *req.MinLat, *req.MaxLng, *req.MaxLat)
		if !bbox.IsValid() {
			httputil.ErrorWithCode(c, http.StatusBadRequest, "INVALID_INPUT", "invalid bounding box")
			return filter, false
		}
		filter.BoundingBox = bbox
	default:
		httputil.ErrorWithCode(c, http.StatusBadRequest, "INVALID_INPUT", "bounding box requires all four bounds")
		return filter, false
	}

	if req.Category != nil {
		category := entity.Category(*req.Category)
		if !category.IsValid() {
			httputil.ErrorWithCode(c, http.StatusBadRequest, "INVALID_INPUT", "unknown category")
			return filter, false
		}
		filter.Category = &category
	}
	if req.Season != nil {
		season := entity.Season(*req.Season)
		if !season.IsValid() {
			httputil.ErrorWithCode(c, http.StatusBadRequest, "INVALID_INPUT", "unknown season")
			return filter, false
		}
		filter.Season = &season
	}
	if req.TimeOfDay != nil {
		timeOfDay := entity.TimeOfDay(*req.TimeOfDay)
		if !timeOfDay.IsValid() {
			httputil.ErrorWithCode(c, http.StatusBadRequest, "INVALID_INPUT", "unknown time of day")
			return filter, false
		}
		filter.TimeOfDay = &timeOfDay
	}

	filter.PhotographerOnly = req.PhotographerOnly
	return filter, true
}

// Get serves the single-photo view under the viewer's projection. Public
// responses carry no per-viewer fields beyond is_favorited, which is a
// definite "false" for intermediaries serving anonymous traffic; owner
// responses must never be shared.
func (h *PhotoHandler) Get(c *gin.Context) {
	photoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.ErrorWithCode(c, http.StatusBadRequest, "INVALID_INPUT", "invalid photo id")
		return
	}

	viewer := httputil.GetViewer(c)

	detail, err := h.photoSvc.GetDetail(c.Request.Context(), photoID, viewer)
	if err != nil {
		c.Header("Cache-Control", "no-store")
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

	if detail.Visibility.Cacheable() && viewer.IsAnonymous() {
		c.Header("Cache-Control", "public, max-age=60")
	} else {
		c.Header("Cache-Control", "private, no-store")
	}

	httputil.OK(c, response.PhotoDetailFromResult(detail))
}
