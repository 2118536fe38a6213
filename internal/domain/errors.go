package domain

import "errors"

var (
	ErrProfileNotFound    = errors.New("profile not found")
	ErrProfileExists      = errors.New("profile already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPhotoNotFound      = errors.New("photo not found")
	ErrForbidden          = errors.New("forbidden")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrInvalidBoundingBox = errors.New("invalid bounding box")
	ErrInvalidLocation    = errors.New("invalid location")
	ErrInvalidStatus      = errors.New("invalid photo status")
	ErrTooManyTags        = errors.New("too many tags")
	ErrInfrastructure     = errors.New("backend unavailable")
)
