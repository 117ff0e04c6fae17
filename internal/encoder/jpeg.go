package encoder

import (
	"bytes"
	"image"
	"image/jpeg"
)

// DefaultJPEGQuality is used when no quality is given.
const DefaultJPEGQuality = 90

// JPEGEncoder encodes images to JPEG using Go's standard library.
// Pixel art suffers from chroma subsampling, so it is meant for previews.
type JPEGEncoder struct{}

func (e *JPEGEncoder) Format() string    { return "jpeg" }
func (e *JPEGEncoder) Extension() string { return "jpg" }
func (e *JPEGEncoder) Available() bool   { return true }

func (e *JPEGEncoder) Encode(img image.Image, opts Options) ([]byte, error) {
	q := opts.Quality
	if q <= 0 || q > 100 {
		q = DefaultJPEGQuality
	}

	var buf bytes.Buffer
	b := img.Bounds()
	buf.Grow(b.Dx() * b.Dy() / 4)

	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: q}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
