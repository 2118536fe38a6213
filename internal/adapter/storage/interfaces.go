package storage

import (
	"context"
	"io"
	"time"
)

type ImageStorage interface {
	Upload(ctx context.Context, key string, reader io.Reader, contentType string, size int64) error
	GetURL(key string) string
	GetSignedURL(key string, expiry time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

// ProcessedImage is the output of the upload pipeline: the web-sized
// rendition plus a thumbnail for listing views.
type ProcessedImage struct {
	Data          io.Reader
	Size          int64
	Width         int
	Height        int
	Thumbnail     io.Reader
	ThumbnailSize int64
}

type ImageProcessor interface {
	Process(reader io.Reader) (*ProcessedImage, error)
}
