// Package images - owned pixel containers and elementwise transforms for
// decoded RAW output.
package images

// Image represents an image with a format, data, width, and height.
type Image struct {
	// The format of the image data.
	Format ImageFormat `json:"format" yaml:"format"`
	// The pixel or encoded bytes of the image.
	Data []byte `json:"data" yaml:"data"`
	// The width of the image in pixels.
	Width int `json:"width" yaml:"width"`
	// The height of the image in pixels.
	Height int `json:"height" yaml:"height"`
}

// ImageFormat represents supported image data formats.
type ImageFormat string

const (
	// FormatRGB8 is raw interleaved RGB, 3 bytes per pixel, row-major with
	// no padding. This is what the RAW decoder emits.
	FormatRGB8 ImageFormat = "rgb8"
	// FormatJPEG is encoded JPEG data, as found in embedded RAW thumbnails.
	FormatJPEG ImageFormat = "jpeg"
	// FormatPNG is encoded PNG data.
	FormatPNG ImageFormat = "png"
)
