package valueobject

// BoundingBox is an axis-aligned viewport rectangle. Bounds must be strictly
// ordered (min < max); degenerate boxes are rejected rather than corrected.
type BoundingBox struct {
	MinLng float64
	MinLat float64
	MaxLng float64
	MaxLat float64
}

func NewBoundingBox(minLng, minLat, maxLng, maxLat float64) *BoundingBox {
	return &BoundingBox{
		MinLng: minLng,
		MinLat: minLat,
		MaxLng: maxLng,
		MaxLat: maxLat,
	}
}

func (bb *BoundingBox) IsValid() bool {
	return bb.MinLat < bb.MaxLat &&
		bb.MinLng < bb.MaxLng &&
		bb.MinLat >= -90 && bb.MaxLat <= 90 &&
		bb.MinLng >= -180 && bb.MaxLng <= 180
}

func (bb *BoundingBox) Contains(loc Location) bool {
	return loc.Latitude >= bb.MinLat && loc.Latitude <= bb.MaxLat &&
		loc.Longitude >= bb.MinLng && loc.Longitude <= bb.MaxLng
}
