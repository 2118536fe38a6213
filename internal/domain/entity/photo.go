package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/photospot-app/photospot-backend/internal/domain/valueobject"
)

type PhotoStatus string

const (
	StatusPending  PhotoStatus = "pending"
	StatusApproved PhotoStatus = "approved"
	StatusRejected PhotoStatus = "rejected"
)

func (s PhotoStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

type Category string

const (
	CategoryLandscape    Category = "landscape"
	CategoryWildlife     Category = "wildlife"
	CategoryArchitecture Category = "architecture"
	CategoryStreet       Category = "street"
	CategoryAstro        Category = "astro"
	CategoryMacro        Category = "macro"
	CategoryPortrait     Category = "portrait"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryLandscape, CategoryWildlife, CategoryArchitecture,
		CategoryStreet, CategoryAstro, CategoryMacro, CategoryPortrait:
		return true
	}
	return false
}

type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
	SeasonWinter Season = "winter"
)

func (s Season) IsValid() bool {
	switch s {
	case SeasonSpring, SeasonSummer, SeasonAutumn, SeasonWinter:
		return true
	}
	return false
}

type TimeOfDay string

const (
	TimeSunrise   TimeOfDay = "sunrise"
	TimeDaytime   TimeOfDay = "daytime"
	TimeGoldenHr  TimeOfDay = "golden_hour"
	TimeSunset    TimeOfDay = "sunset"
	TimeBlueHour  TimeOfDay = "blue_hour"
	TimeNighttime TimeOfDay = "night"
)

func (t TimeOfDay) IsValid() bool {
	switch t {
	case TimeSunrise, TimeDaytime, TimeGoldenHr, TimeSunset, TimeBlueHour, TimeNighttime:
		return true
	}
	return false
}

const MaxTags = 10

// Gear is free-form equipment metadata supplied by the uploader.
type Gear struct {
	Camera   string `json:"camera,omitempty"`
	Lens     string `json:"lens,omitempty"`
	Settings string `json:"settings,omitempty"`
}

// EXIF holds capture metadata. It is owner-only: projections for other
// viewers must drop it entirely.
type EXIF struct {
	CameraMake  string     `json:"camera_make,omitempty"`
	CameraModel string     `json:"camera_model,omitempty"`
	FocalLength string     `json:"focal_length,omitempty"`
	Aperture    string     `json:"aperture,omitempty"`
	ShutterSpd  string     `json:"shutter_speed,omitempty"`
	ISO         int        `json:"iso,omitempty"`
	TakenAt     *time.Time `json:"taken_at,omitempty"`
}

type Photo struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
	Status  PhotoStatus

	Title       string
	Description string

	// PublicLocation is always present. When the upload requested location
	// blurring it is a randomized offset of the true spot and ExactLocation
	// holds the real coordinates; otherwise ExactLocation is nil.
	PublicLocation valueobject.Location
	ExactLocation  *valueobject.Location

	Category  Category
	Season    *Season
	TimeOfDay *TimeOfDay
	Tags      []string

	Gear *Gear
	EXIF *EXIF

	URL          string
	ThumbnailURL string
	StorageKey   string

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

func NewPhoto(ownerID uuid.UUID, title, description string, public valueobject.Location, exact *valueobject.Location, category Category) *Photo {
	now := time.Now().UTC()
	return &Photo{
		ID:             uuid.New(),
		OwnerID:        ownerID,
		Status:         StatusPending,
		Title:          title,
		Description:    description,
		PublicLocation: public,
		ExactLocation:  exact,
		Category:       category,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// IsLocationBlurred reports whether the record carries a true location
// distinct from the public one, independent of whether the exact location
// is exposed to the viewer.
func (p *Photo) IsLocationBlurred() bool {
	return p.ExactLocation != nil
}

// IsPubliclyVisible is the moderation boundary: approved and not deleted.
func (p *Photo) IsPubliclyVisible() bool {
	return p.Status == StatusApproved && p.DeletedAt == nil
}

func (p *Photo) Approve() {
	p.Status = StatusApproved
	p.UpdatedAt = time.Now().UTC()
}

func (p *Photo) Reject() {
	p.Status = StatusRejected
	p.UpdatedAt = time.Now().UTC()
}

func (p *Photo) SoftDelete() {
	now := time.Now().UTC()
	p.DeletedAt = &now
	p.UpdatedAt = now
}

func (p *Photo) IsDeleted() bool {
	return p.DeletedAt != nil
}
