package entity

import (
	"time"

	"github.com/google/uuid"
)

// Favorite is a (photo, user) membership record. The pair is unique.
type Favorite struct {
	PhotoID   uuid.UUID
	UserID    uuid.UUID
	CreatedAt time.Time
}

func NewFavorite(photoID, userID uuid.UUID) *Favorite {
	return &Favorite{
		PhotoID:   photoID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
}
