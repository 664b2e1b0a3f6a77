package raw

import (
	"image"

	"github.com/nvr-ai/go-raw/images"
)

// ImageResult is the owned output of one successful load: camera metadata
// plus an independently-lifetimed pixel buffer. It references no native
// memory and needs no cleanup.
type ImageResult struct {
	// Meta is the camera metadata copied out of the native handle.
	Meta Metadata
	// Pixels is interleaved RGB pixel data, 3 bytes per pixel, row-major,
	// owned by this result.
	Pixels []byte
	// Width is the image width in pixels.
	Width int
	// Height is the image height in pixels.
	Height int
}

// Image wraps the result in the shared pixel container without copying.
func (r *ImageResult) Image() *images.Image {
	return &images.Image{
		Format: images.FormatRGB8,
		Data:   r.Pixels,
		Width:  r.Width,
		Height: r.Height,
	}
}

// RGBA converts the result into a standard library image for encoding or
// further processing. The pixel data is copied.
func (r *ImageResult) RGBA() *image.RGBA {
	return images.ToRGBA(r.Pixels, r.Width, r.Height)
}
