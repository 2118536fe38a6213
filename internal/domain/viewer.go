package domain

import (
	"github.com/google/uuid"

	"github.com/photospot-app/photospot-backend/internal/domain/entity"
)

// Viewer is the identity context a request is evaluated under. It is built
// fresh per request and is either an identified user or anonymous; auth
// resolution never errors, an invalid token simply yields Anonymous().
type Viewer struct {
	userID uuid.UUID
	role   entity.Role
	anon   bool
}

func Identified(userID uuid.UUID, role entity.Role) Viewer {
	return Viewer{userID: userID, role: role}
}

func Anonymous() Viewer {
	return Viewer{anon: true}
}

func (v Viewer) IsAnonymous() bool {
	return v.anon
}

// UserID returns the viewer id and whether one is present.
func (v Viewer) UserID() (uuid.UUID, bool) {
	if v.anon {
		return uuid.Nil, false
	}
	return v.userID, true
}

func (v Viewer) Role() entity.Role {
	return v.role
}

func (v Viewer) IsModerator() bool {
	return !v.anon && v.role == entity.RoleModerator
}

func (v Viewer) IsOwnerOf(p *entity.Photo) bool {
	return !v.anon && v.userID == p.OwnerID
}
