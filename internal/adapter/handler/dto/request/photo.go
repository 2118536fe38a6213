package request

type ListPhotosRequest struct {
	MinLng *float64 `form:"min_lng" binding:"omitempty,min=-180,max=180"`
	MinLat *float64 `form:"min_lat" binding:"omitempty,min=-90,max=90"`
	MaxLng *float64 `form:"max_lng" binding:"omitempty,min=-180,max=180"`
	MaxLat *float64 `form:"max_lat" binding:"omitempty,min=-90,max=90"`

	Category  *string `form:"category"`
	Season    *string `form:"season"`
	TimeOfDay *string `form:"time_of_day"`

	PhotographerOnly bool `form:"photographer_only"`

	// Limit outside [1,200] is rejected, not clamped.
	Limit  *int `form:"limit" binding:"omitempty,min=1,max=200"`
	Offset int  `form:"offset" binding:"omitempty,min=0"`

	Cluster bool `form:"cluster"`
}

type UploadPhotoRequest struct {
	Title        string   `form:"title" binding:"required,max=255"`
	Description  string   `form:"description" binding:"omitempty,max=2000"`
	Latitude     *float64 `form:"latitude" binding:"required,min=-90,max=90"`
	Longitude    *float64 `form:"longitude" binding:"required,min=-180,max=180"`
	BlurLocation bool     `form:"blur_location"`
	Category     string   `form:"category" binding:"required"`
	Season       *string  `form:"season"`
	TimeOfDay    *string  `form:"time_of_day"`
	Tags         []string `form:"tags" binding:"omitempty,max=10,dive,max=50"`
	Gear         *string  `form:"gear"`
	EXIF         *string  `form:"exif"`
}

type ModerationListRequest struct {
	Limit  *int `form:"limit" binding:"omitempty,min=1,max=200"`
	Offset int  `form:"offset" binding:"omitempty,min=0"`
}
