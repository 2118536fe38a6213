package pagination

const (
	DefaultLimit = 200
	MaxLimit     = 200
	MinLimit     = 1
)

// Params is a validated limit/offset window. Use Validate on raw input:
// out-of-range values are a caller error, never silently clamped.
type Params struct {
	Limit  int
	Offset int
}

// Default returns the window used when the client sends no limit.
func Default() Params {
	return Params{Limit: DefaultLimit}
}

func New(limit, offset int) Params {
	return Params{Limit: limit, Offset: offset}
}

func (p Params) Validate() bool {
	return p.Limit >= MinLimit && p.Limit <= MaxLimit && p.Offset >= 0
}

// Meta is the listing metadata returned alongside items. Total is exact for
// the first page; later pages may serve a cached total, so HasMore can be
// up to the cache TTL stale there.
type Meta struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

func NewMeta(p Params, total int) Meta {
	return Meta{
		Total:   total,
		Limit:   p.Limit,
		Offset:  p.Offset,
		HasMore: p.Offset+p.Limit < total,
	}
}
