package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/photospot-app/photospot-backend/internal/adapter/handler/dto/request"
	"github.com/photospot-app/photospot-backend/internal/adapter/handler/dto/response"
	"github.com/photospot-app/photospot-backend/internal/domain"
	"github.com/photospot-app/photospot-backend/internal/domain/entity"
	"github.com/photospot-app/photospot-backend/internal/domain/valueobject"
	"github.com/photospot-app/photospot-backend/internal/pkg/httputil"
	"github.com/photospot-app/photospot-backend/internal/usecase/upload"
)

const maxUploadSize = 25 << 20 // 25 MiB

type UploadHandler struct {
	uploadSvc UploadService
}

func NewUploadHandler(uploadSvc UploadService) *UploadHandler {
	return &UploadHandler{uploadSvc: uploadSvc}
}

func (h *UploadHandler) Upload(c *gin.Context) {
	var req request.UploadPhotoRequest
	if err := c.ShouldBind(&req); err != nil {
		httputil.ValidationError(c, err)
		return
	}

	category := entity.Category(req.Category)
	if !category.IsValid() {
		httputil.ErrorWithCode(c, http.StatusBadRequest, "INVALID_INPUT", "unknown category")
		return
	}

	var season *entity.Season
	if req.Season != nil {
		s := entity.Season(*req.Season)
		if !s.IsValid() {
			httputil.ErrorWithCode(c, http.StatusBadRequest, "INVALID_INPUT", "unknown season")
			return
		}
		season = &s
	}
	var timeOfDay *entity.TimeOfDay
	if req.TimeOfDay != nil {
		t := entity.TimeOfDay(*req.TimeOfDay)
		if !t.IsValid() {
			httputil.ErrorWithCode(c, http.StatusBadRequest, "INVALID_INPUT", "unknown time of day")
			return
		}
		timeOfDay = &t
	}

	var gear *entity.Gear
	if req.Gear != nil {
		gear = &entity.Gear{}
		if err := json.Unmarshal([]byte(*req.Gear), gear); err != nil {
			httputil.ErrorWithCode(c, http.StatusBadRequest, "INVALID_INPUT", "malformed gear metadata")
			return
		}
	}
	var exif *entity.EXIF
	if req.EXIF != nil {
		exif = &entity.EXIF{}
		if err := json.Unmarshal([]byte(*req.EXIF), exif); err != nil {
			httputil.ErrorWithCode(c, http.StatusBadRequest, "INVALID_INPUT", "malformed exif metadata")
			return
		}
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		httputil.ErrorWithCode(c, http.StatusBadRequest, "INVALID_INPUT", "photo file required")
		return
	}
	if fileHeader.Size > maxUploadSize {
		httputil.ErrorWithCode(c, http.StatusBadRequest, "INVALID_INPUT", "file too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httputil.InternalError(c)
		return
	}
	defer file.Close()

	userID := httputil.GetUserID(c)

	photo, err := h.uploadSvc.Upload(c.Request.Context(), upload.UploadInput{
		OwnerID:      userID,
		Title:        req.Title,
		Description:  req.Description,
		Location:     valueobject.NewLocation(*req.Latitude, *req.Longitude),
		BlurLocation: req.BlurLocation,
		Category:     category,
		Season:       season,
		TimeOfDay:    timeOfDay,
		Tags:         req.Tags,
		Gear:         gear,
		EXIF:         exif,
		File:         file,
		ContentType:  fileHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidLocation):
			httputil.ErrorWithCode(c, http.StatusBadRequest, "INVALID_INPUT", "invalid coordinates")
		case errors.Is(err, domain.ErrTooManyTags):
			httputil.ErrorWithCode(c, http.StatusBadRequest, "INVALID_INPUT", "too many tags")
		default:
			httputil.InternalError(c)
		}
		return
	}

	httputil.Created(c, response.ModerationPhotoResponse{
		ID:           photo.ID,
		OwnerID:      photo.OwnerID,
		Status:       string(photo.Status),
		Title:        photo.Title,
		Description:  photo.Description,
		Location:     response.LocationResponse{Latitude: photo.PublicLocation.Latitude, Longitude: photo.PublicLocation.Longitude},
		Category:     string(photo.Category),
		URL:          photo.URL,
		ThumbnailURL: photo.ThumbnailURL,
		CreatedAt:    photo.CreatedAt,
	})
}

func (h *UploadHandler) Delete(c *gin.Context) {
	photoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.ErrorWithCode(c, http.StatusBadRequest, "INVALID_INPUT", "invalid photo id")
		return
	}

	userID := httputil.GetUserID(c)

	if err := h.uploadSvc.Delete(c.Request.Context(), userID, photoID); err != nil {
		switch {
		case errors.Is(err, domain.ErrPhotoNotFound):
			httputil.ErrorWithCode(c, http.StatusNotFound, "NOT_FOUND", "photo not found")
		case errors.Is(err, domain.ErrForbidden):
			httputil.ErrorWithCode(c, http.StatusForbidden, "FORBIDDEN", "access denied")
		default:
			httputil.InternalError(c)
		}
		return
	}

	httputil.NoContent(c)
}
