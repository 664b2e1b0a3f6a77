package raw

/*
#cgo LDFLAGS: -lraw
#include <libraw/libraw.h>
#include <stdlib.h>
*/
import "C"
import (
	"unsafe"

	"github.com/pkg/errors"
)

// LibRaw is the production Decoder, backed by the LibRaw C library. The zero
// value is ready to use. Each Open creates an independent native processor,
// so separate sessions may run on separate goroutines.
type LibRaw struct{}

// Version reports the version string of the linked LibRaw library.
func Version() string {
	return C.GoString(C.libraw_version())
}

// lrError converts a LibRaw status code into a Go error, or nil for success.
func lrError(code C.int) error {
	if code == 0 {
		return nil
	}
	return errors.Errorf("libraw: %s", C.GoString(C.libraw_strerror(code)))
}

// Open opens and unpacks the RAW file at path. A non-nil Session owns the
// native processor and must be closed exactly once.
func (LibRaw) Open(path string) (Session, error) {
	cPath := C.CString(path)
	defer C.free(unsafe.Pointer(cPath))

	data := C.libraw_init(0)
	if data == nil {
		return nil, errors.New("libraw: failed to initialize processor")
	}

	if err := lrError(C.libraw_open_file(data, cPath)); err != nil {
		C.libraw_close(data)
		return nil, err
	}
	if err := lrError(C.libraw_unpack(data)); err != nil {
		C.libraw_close(data)
		return nil, err
	}

	return &librawSession{data: data}, nil
}

// librawSession wraps one live libraw_data_t processor. All native pointers
// stay inside this type; only owned copies cross out of it, except for the
// borrowed ProcessedImage view whose lifetime is documented on Session.
type librawSession struct {
	data   *C.libraw_data_t
	mem    *C.libraw_processed_image_t
	closed bool
}

func (s *librawSession) ProcessedImage() (ProcessedImage, error) {
	if err := lrError(C.libraw_dcraw_process(s.data)); err != nil {
		return ProcessedImage{}, err
	}

	var rc C.int
	img := C.libraw_dcraw_make_mem_image(s.data, &rc)
	if err := lrError(rc); err != nil {
		if img != nil {
			C.libraw_dcraw_clear_mem(img)
		}
		return ProcessedImage{}, err
	}
	if img == nil || img.data_size == 0 {
		if img != nil {
			C.libraw_dcraw_clear_mem(img)
		}
		return ProcessedImage{}, errors.New("libraw: processed image has no data")
	}
	if img._type != C.LIBRAW_IMAGE_BITMAP || img.colors != 3 || img.bits != 8 {
		C.libraw_dcraw_clear_mem(img)
		return ProcessedImage{}, errors.Errorf(
			"libraw: unsupported output (type=%d colors=%d bits=%d), expected 8-bit RGB bitmap",
			img._type, img.colors, img.bits)
	}

	// Freed in Close, together with the processor that produced it.
	s.mem = img

	return ProcessedImage{
		Pixels: unsafe.Slice((*byte)(unsafe.Pointer(&img.data[0])), int(img.data_size)),
		Width:  int(img.width),
		Height: int(img.height),
	}, nil
}

func (s *librawSession) Metadata() Metadata {
	return Metadata{
		Width:    int(s.data.sizes.iwidth),
		Height:   int(s.data.sizes.iheight),
		Make:     C.GoString(&s.data.idata.make[0]),
		Model:    C.GoString(&s.data.idata.model[0]),
		ISOSpeed: float32(s.data.other.iso_speed),
		Shutter:  float32(s.data.other.shutter),
		Aperture: float32(s.data.other.aperture),
	}
}

func (s *librawSession) Thumbnail() ([]byte, error) {
	if err := lrError(C.libraw_unpack_thumb(s.data)); err != nil {
		return nil, err
	}
	thumb := s.data.thumbnail
	if thumb.thumb == nil || thumb.tlength == 0 {
		return nil, errors.New("libraw: file carries no embedded thumbnail")
	}
	// GoBytes copies, so the result survives Close.
	return C.GoBytes(unsafe.Pointer(thumb.thumb), C.int(thumb.tlength)), nil
}

func (s *librawSession) Close() {
	if s.closed {
		return
	}
	s.closed = true
	if s.mem != nil {
		C.libraw_dcraw_clear_mem(s.mem)
		s.mem = nil
	}
	C.libraw_close(s.data)
	s.data = nil
}
