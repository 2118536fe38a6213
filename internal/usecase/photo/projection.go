package photo

// Visibility selects which of the two fixed field sets a detail response
// carries. It is computed once per request and applied at a single mapping
// point; handlers never strip fields ad hoc.
type Visibility int

const (
	// VisibilityPublic omits status, EXIF and the exact location entirely.
	VisibilityPublic Visibility = iota
	// VisibilityOwner exposes every field regardless of moderation status.
	VisibilityOwner
)

func (v Visibility) String() string {
	if v == VisibilityOwner {
		return "owner"
	}
	return "public"
}

// Cacheable reports whether intermediaries may cache a response built under
// this visibility. Owner projections carry per-viewer data and must not be
// shared.
func (v Visibility) Cacheable() bool {
	return v == VisibilityPublic
}
