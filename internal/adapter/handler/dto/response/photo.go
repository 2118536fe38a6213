package response

import (
	"time"

	"github.com/google/uuid"

	"github.com/photospot-app/photospot-backend/internal/domain/entity"
	"github.com/photospot-app/photospot-backend/internal/domain/valueobject"
	"github.com/photospot-app/photospot-backend/internal/pkg/pagination"
	"github.com/photospot-app/photospot-backend/internal/usecase/photo"
)

// AuthorPlaceholder substitutes for a missing display name. Avatars stay
// null; only the name gets a fallback.
const AuthorPlaceholder = "PhotoSpot user"

type LocationResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func locationFrom(loc valueobject.Location) LocationResponse {
	return LocationResponse{
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
	}
}

type PhotoListItemResponse struct {
	ID           uuid.UUID        `json:"id"`
	Title        string           `json:"title"`
	Location     LocationResponse `json:"location"`
	Category     string           `json:"category"`
	Season       *string          `json:"season,omitempty"`
	TimeOfDay    *string          `json:"time_of_day,omitempty"`
	Tags         []string         `json:"tags"`
	AuthorName   string           `json:"author_name"`
	AuthorAvatar *string          `json:"author_avatar"`
	URL          string           `json:"url"`
	ThumbnailURL string           `json:"thumbnail_url"`
	ClusterID    *int             `json:"cluster_id,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

type PhotoListResponse struct {
	Data []PhotoListItemResponse `json:"data"`
	Meta pagination.Meta         `json:"meta"`
}

func PhotoListFromResult(r *photo.ListResult) PhotoListResponse {
	items := make([]PhotoListItemResponse, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, photoListItemFrom(item))
	}
	return PhotoListResponse{
		Data: items,
		Meta: r.Meta,
	}
}

func photoListItemFrom(item photo.ListItem) PhotoListItemResponse {
	p := item.Row.Photo

	name := item.Row.AuthorName
	if name == "" {
		name = AuthorPlaceholder
	}

	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}

	return PhotoListItemResponse{
		ID:           p.ID,
		Title:        p.Title,
		Location:     locationFrom(p.PublicLocation),
		Category:     string(p.Category),
		Season:       enumString(p.Season),
		TimeOfDay:    enumString(p.TimeOfDay),
		Tags:         tags,
		AuthorName:   name,
		AuthorAvatar: item.Row.AuthorAvatar,
		URL:          p.URL,
		ThumbnailURL: p.ThumbnailURL,
		ClusterID:    item.ClusterID,
		CreatedAt:    p.CreatedAt,
	}
}

type PhotoDetailResponse struct {
	ID           uuid.UUID        `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description,omitempty"`
	Location     LocationResponse `json:"location"`
	Category     string           `json:"category"`
	Season       *string          `json:"season,omitempty"`
	TimeOfDay    *string          `json:"time_of_day,omitempty"`
	Tags         []string         `json:"tags"`
	Gear         *entity.Gear     `json:"gear,omitempty"`
	AuthorName   string           `json:"author_name"`
	AuthorAvatar *string          `json:"author_avatar"`
	URL          string           `json:"url"`
	ThumbnailURL string           `json:"thumbnail_url"`
	CreatedAt    time.Time        `json:"created_at"`

	IsLocationBlurred bool `json:"is_location_blurred"`
	FavoriteCount     int  `json:"favorite_count"`
	IsFavorited       bool `json:"is_favorited"`

	// Owner projection only. Keys are absent for everyone else, not null,
	// so "no EXIF" and "hidden EXIF" are indistinguishable to the public.
	Status        *string           `json:"status,omitempty"`
	ExactLocation *LocationResponse `json:"exact_location,omitempty"`
	EXIF          *entity.EXIF      `json:"exif,omitempty"`
}

// PhotoDetailFromResult is the single projection point for the detail view.
// The visibility computed by the service selects one of two fixed field
// sets; nothing else decides what a viewer sees.
func PhotoDetailFromResult(d *photo.Detail) PhotoDetailResponse {
	p := d.Photo

	name := d.AuthorName
	if name == "" {
		name = AuthorPlaceholder
	}

	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}

	resp := PhotoDetailResponse{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Location:     locationFrom(p.PublicLocation),
		Category:     string(p.Category),
		Season:       enumString(p.Season),
		TimeOfDay:    enumString(p.TimeOfDay),
		Tags:         tags,
		Gear:         p.Gear,
		AuthorName:   name,
		AuthorAvatar: d.AuthorAvatar,
		URL:          p.URL,
		ThumbnailURL: p.ThumbnailURL,
		CreatedAt:    p.CreatedAt,

		IsLocationBlurred: d.IsLocationBlurred,
		FavoriteCount:     d.FavoriteCount,
		IsFavorited:       d.IsFavorited,
	}

	if d.Visibility == photo.VisibilityOwner {
		status := string(p.Status)
		resp.Status = &status
		resp.EXIF = p.EXIF
		if p.ExactLocation != nil {
			loc := locationFrom(*p.ExactLocation)
			resp.ExactLocation = &loc
		}
	}

	return resp
}

type ModerationPhotoResponse struct {
	ID           uuid.UUID        `json:"id"`
	OwnerID      uuid.UUID        `json:"owner_id"`
	Status       string           `json:"status"`
	Title        string           `json:"title"`
	Description  string           `json:"description,omitempty"`
	Location     LocationResponse `json:"location"`
	Category     string           `json:"category"`
	URL          string           `json:"url"`
	ThumbnailURL string           `json:"thumbnail_url"`
	CreatedAt    time.Time        `json:"created_at"`
}

type ModerationListResponse struct {
	Data []ModerationPhotoResponse `json:"data"`
	Meta pagination.Meta           `json:"meta"`
}

func ModerationListFrom(photos []entity.Photo, meta pagination.Meta) ModerationListResponse {
	items := make([]ModerationPhotoResponse, 0, len(photos))
	for _, p := range photos {
		items = append(items, ModerationPhotoResponse{
			ID:           p.ID,
			OwnerID:      p.OwnerID,
			Status:       string(p.Status),
			Title:        p.Title,
			Description:  p.Description,
			Location:     locationFrom(p.PublicLocation),
			Category:     string(p.Category),
			URL:          p.URL,
			ThumbnailURL: p.ThumbnailURL,
			CreatedAt:    p.CreatedAt,
		})
	}
	return ModerationListResponse{Data: items, Meta: meta}
}

func enumString[T ~string](v *T) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}
