// Package raw provides Go bindings for the LibRaw camera RAW decoder and a
// safe loading layer on top of them.
//
// The package is split along the native boundary: Decoder and Session model
// the narrow C surface of the decoder (open, get-processed-image,
// get-metadata, close), while Loader turns one call into a fully owned,
// memory-safe ImageResult with the native handle guaranteed to be released
// on every exit path.
package raw

import "github.com/chewxy/math32"

// Decoder is the narrow surface of a native RAW decoding library.
//
// The production implementation is LibRaw; tests substitute in-memory
// doubles. Implementations must return an error (and no Session) when the
// file cannot be read, parsed, or recognized as a supported RAW format.
type Decoder interface {
	// Open starts a decode session for the RAW file at path. On success the
	// returned Session owns the underlying native handle and must be closed
	// exactly once. On failure no native resource is held by the caller.
	Open(path string) (Session, error)
}

// Session is one open decode session against the native library. A Session
// is owned by exactly one logical load operation; it is never shared and
// never outlives that operation.
type Session interface {
	// ProcessedImage runs the decoder's full processing pipeline and returns
	// a view of the resulting interleaved RGB pixels.
	//
	// The returned pixel bytes are borrowed from native memory: they are
	// valid only until Close and must be copied before the session ends.
	ProcessedImage() (ProcessedImage, error)

	// Metadata returns the camera metadata for the opened file, copied by
	// value out of the native handle. The result is safe to retain after
	// Close.
	Metadata() Metadata

	// Thumbnail extracts the embedded preview image (typically JPEG) and
	// returns an owned copy of its bytes.
	Thumbnail() ([]byte, error)

	// Close releases the native handle. It must be called exactly once per
	// session; subsequent calls are no-ops.
	Close()
}

// ProcessedImage is a borrowed view of a decoded image inside an open
// session. Pixels points into memory owned by the native library and is
// invalidated by Session.Close.
type ProcessedImage struct {
	// Pixels is the interleaved RGB pixel data, 3 bytes per pixel, row-major
	// with no padding. Borrowed, not owned.
	Pixels []byte
	// Width is the decoded image width in pixels.
	Width int
	// Height is the decoded image height in pixels.
	Height int
}

// Metadata is a by-value copy of the camera metadata carried in a RAW file.
type Metadata struct {
	// Width is the processed image width in pixels.
	Width int
	// Height is the processed image height in pixels.
	Height int
	// Make is the camera manufacturer, e.g. "Canon".
	Make string
	// Model is the camera model, e.g. "EOS R5".
	Model string
	// ISOSpeed is the ISO sensitivity the shot was taken at.
	ISOSpeed float32
	// Shutter is the exposure time in seconds.
	Shutter float32
	// Aperture is the f-number of the lens at capture time.
	Aperture float32
}

// ExposureValue returns the EV of the shot computed from aperture and
// shutter speed, or 0 if either is unknown.
func (m Metadata) ExposureValue() float32 {
	if m.Aperture <= 0 || m.Shutter <= 0 {
		return 0
	}
	return math32.Log2(m.Aperture * m.Aperture / m.Shutter)
}
