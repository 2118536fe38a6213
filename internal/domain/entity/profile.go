package entity

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleEnthusiast   Role = "enthusiast"
	RolePhotographer Role = "photographer"
	RoleModerator    Role = "moderator"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleEnthusiast, RolePhotographer, RoleModerator:
		return true
	}
	return false
}

type Profile struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	DisplayName  string
	AvatarURL    *string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewProfile(email, passwordHash, displayName string, role Role) *Profile {
	now := time.Now().UTC()
	return &Profile{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		DisplayName:  displayName,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
