package raw

import "github.com/pkg/errors"

// Error taxonomy for a single load. Every failure is terminal for the call
// that produced it; nothing is retried internally. Callers match with
// errors.Is.
var (
	// ErrInvalidPath means the path cannot be represented as a native C
	// string (it contains an embedded NUL byte). The decoder is never
	// invoked in this case.
	ErrInvalidPath = errors.New("raw: path is not representable as a native string")

	// ErrOpenFailed means the native decoder could not read, parse, or
	// recognize the file as a supported RAW format. No native resource is
	// held when this error is returned.
	ErrOpenFailed = errors.New("raw: failed to open file with native decoder")

	// ErrDecodeFailed means the decoder reported a processing failure or
	// returned a buffer violating the pointer/length contract. The native
	// handle is released before this error surfaces.
	ErrDecodeFailed = errors.New("raw: failed to extract processed image")

	// ErrBufferConstruction means the decoder's declared dimensions do not
	// describe the returned buffer (width*height*3 != length), so an owned
	// pixel container cannot be assembled without truncating or overreading.
	ErrBufferConstruction = errors.New("raw: pixel buffer does not match declared dimensions")

	// ErrUnknownImage means a Manager id does not refer to a live session.
	ErrUnknownImage = errors.New("raw: unknown image id")
)
