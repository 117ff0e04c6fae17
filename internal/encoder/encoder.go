package encoder

import (
	"image"
)

// Options controls a single encode.
type Options struct {
	// Quality is 1-100 for lossy formats; 0 picks the encoder default.
	Quality int
	// Lossless asks formats that have both modes for the lossless one.
	Lossless bool
}

// Encoder encodes a scaled image to a specific format.
type Encoder interface {
	// Format returns the output format name (e.g. "png", "webp", "raw").
	Format() string

	// Encode converts the image to bytes.
	Encode(img image.Image, opts Options) ([]byte, error)

	// Available returns true if the encoder is ready to use.
	// External encoders (cwebp) may not be installed.
	Available() bool

	// Extension returns the file extension without dot.
	Extension() string
}
