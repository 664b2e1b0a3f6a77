package images

import (
	"image"
	"runtime"
	"sync"

	"github.com/nfnt/resize"
)

// Invert replaces every byte v of the pixel buffer with 255-v, in place.
// For RGB8 data this inverts the image; for grayscale data it produces the
// photographic negative. The work is partitioned across CPU cores.
//
// Arguments:
// - pixels: The pixel buffer to invert. Modified in place.
//
// Returns:
// - None.
func Invert(pixels []byte) {
	Parallel(len(pixels), func(start, end int) {
		for i := start; i < end; i++ {
			pixels[i] = 255 - pixels[i]
		}
	})
}

// Inverted returns an inverted copy of the pixel buffer, leaving the input
// untouched.
func Inverted(pixels []byte) []byte {
	out := make([]byte, len(pixels))
	Parallel(len(pixels), func(start, end int) {
		for i := start; i < end; i++ {
			out[i] = 255 - pixels[i]
		}
	})
	return out
}

// ToRGBA converts an interleaved RGB8 buffer into a standard library RGBA
// image with full opacity. The pixel data is copied; truncated buffers yield
// a nil image.
//
// Arguments:
// - pixels: Interleaved RGB bytes, 3 per pixel, row-major, no padding.
// - width: Image width in pixels.
// - height: Image height in pixels.
//
// Returns:
// - The converted image, or nil if pixels does not hold width*height*3 bytes.
func ToRGBA(pixels []byte, width, height int) *image.RGBA {
	if width <= 0 || height <= 0 || len(pixels) != width*height*3 {
		return nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	Parallel(height, func(start, end int) {
		for y := start; y < end; y++ {
			src := y * width * 3
			off := y * dst.Stride
			for x := 0; x < width; x++ {
				dst.Pix[off+0] = pixels[src+0]
				dst.Pix[off+1] = pixels[src+1]
				dst.Pix[off+2] = pixels[src+2]
				dst.Pix[off+3] = 0xff
				src += 3
				off += 4
			}
		}
	})
	return dst
}

// Thumbnail downscales img so that its longest edge is at most maxEdge,
// preserving aspect ratio. Images already within bounds are returned
// unchanged.
func Thumbnail(img image.Image, maxEdge int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if maxEdge <= 0 || (w <= maxEdge && h <= maxEdge) {
		return img
	}
	if w >= h {
		return resize.Resize(uint(maxEdge), 0, img, resize.Lanczos3)
	}
	return resize.Resize(0, uint(maxEdge), img, resize.Lanczos3)
}

// Parallel executes a function in parallel across multiple goroutines.
// This improves performance on multi-core systems.
//
// Arguments:
// - dataSize: The size of the data to process.
// - fn: Function to execute for each partition (receives start and end indices).
//
// Returns:
// - None.
//
// @example
//
//	Parallel(height, func(start, end int) {
//	    for y := start; y < end; y++ {
//	        // Process row y
//	    }
//	})
func Parallel(dataSize int, fn func(partStart, partEnd int)) {
	numGoroutines := runtime.NumCPU()

	// For small data sizes, parallel processing overhead isn't worth it.
	if dataSize < numGoroutines*2 {
		if dataSize > 0 {
			fn(0, dataSize)
		}
		return
	}

	partSize := dataSize / numGoroutines

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		partStart := i * partSize
		partEnd := partStart + partSize

		// Last partition gets any remaining data.
		if i == numGoroutines-1 {
			partEnd = dataSize
		}

		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(partStart, partEnd)
	}

	wg.Wait()
}
