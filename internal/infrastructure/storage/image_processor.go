package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"

	"github.com/disintegration/imaging"

	"github.com/photospot-app/photospot-backend/internal/adapter/storage"
)

const (
	MaxImageWidth  = 2048
	MaxImageHeight = 2048
	ThumbnailSize  = 400
	JPEGQuality    = 85
)

type ImageProcessorImpl struct {
	maxWidth  int
	maxHeight int
	thumbSize int
	quality   int
}

func NewImageProcessor() *ImageProcessorImpl {
	return &ImageProcessorImpl{
		maxWidth:  MaxImageWidth,
		maxHeight: MaxImageHeight,
		thumbSize: ThumbnailSize,
		quality:   JPEGQuality,
	}
}

// Process decodes the upload, fits it into the web-size bounds and renders a
// square thumbnail. Output is always JPEG.
func (p *ImageProcessorImpl) Process(reader io.Reader) (*storage.ProcessedImage, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width > p.maxWidth || height > p.maxHeight {
		img = imaging.Fit(img, p.maxWidth, p.maxHeight, imaging.Lanczos)
		bounds = img.Bounds()
		width = bounds.Dx()
		height = bounds.Dy()
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: p.quality}); err != nil {
		return nil, fmt.Errorf("encoding jpeg: %w", err)
	}

	thumb := imaging.Fill(img, p.thumbSize, p.thumbSize, imaging.Center, imaging.Lanczos)
	var thumbBuf bytes.Buffer
	if err := jpeg.Encode(&thumbBuf, thumb, &jpeg.Options{Quality: p.quality}); err != nil {
		return nil, fmt.Errorf("encoding thumbnail: %w", err)
	}

	return &storage.ProcessedImage{
		Data:          bytes.NewReader(buf.Bytes()),
		Size:          int64(buf.Len()),
		Width:         width,
		Height:        height,
		Thumbnail:     bytes.NewReader(thumbBuf.Bytes()),
		ThumbnailSize: int64(thumbBuf.Len()),
	}, nil
}
