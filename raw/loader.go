package raw

import (
	"strings"

	"github.com/pkg/errors"
)

// Loader converts filesystem paths into fully decoded, memory-safe RGB
// images. Each Load call is an independent transaction against the native
// decoder: open, decode, copy out, close. Loaders are stateless and safe for
// concurrent use as long as the underlying Decoder supports concurrent
// sessions.
type Loader struct {
	dec Decoder
}

// NewLoader creates a loader backed by the given decoder.
func NewLoader(dec Decoder) *Loader {
	return &Loader{dec: dec}
}

// Load decodes the RAW file at path into an owned ImageResult.
//
// The lifecycle is a strict linear sequence: validate the path, open a
// session, request the processed image, copy pixels and metadata out of
// native memory, release the session. Release happens exactly once on every
// path that obtained a session, including all error returns.
//
// Failures map to the package sentinels: ErrInvalidPath (embedded NUL, the
// decoder is never invoked), ErrOpenFailed (unreadable or unsupported file,
// no resource held), ErrDecodeFailed (native processing failure or
// pointer/length contract violation), ErrBufferConstruction (declared
// dimensions disagree with the buffer length).
func (l *Loader) Load(path string) (*ImageResult, error) {
	if strings.IndexByte(path, 0) >= 0 {
		return nil, errors.Wrapf(ErrInvalidPath, "path %q", path)
	}

	sess, err := l.dec.Open(path)
	if err != nil {
		return nil, errors.Wrapf(ErrOpenFailed, "open %q: %v", path, err)
	}
	// The session is released on every exit below, success and failure alike.
	defer sess.Close()

	img, err := sess.ProcessedImage()
	if err != nil {
		return nil, errors.Wrapf(ErrDecodeFailed, "decode %q: %v", path, err)
	}
	if len(img.Pixels) == 0 {
		return nil, errors.Wrapf(ErrDecodeFailed, "decode %q: empty pixel buffer", path)
	}

	// The returned bytes are only valid while the session is open: copy them
	// into an owned buffer before the deferred Close runs.
	pixels := make([]byte, len(img.Pixels))
	copy(pixels, img.Pixels)

	// Metadata is copied by value and safe to retain after close.
	meta := sess.Metadata()

	if img.Width <= 0 || img.Height <= 0 || img.Width*img.Height*3 != len(pixels) {
		return nil, errors.Wrapf(ErrBufferConstruction,
			"decode %q: %dx%d does not describe %d bytes", path, img.Width, img.Height, len(pixels))
	}

	return &ImageResult{
		Meta:   meta,
		Pixels: pixels,
		Width:  img.Width,
		Height: img.Height,
	}, nil
}
