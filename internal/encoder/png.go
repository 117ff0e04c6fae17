package encoder

import (
	"bytes"
	"image"
	"image/png"
	"sync"
)

// PNGEncoder encodes images to PNG using Go's standard library. It is
// the fallback format: always available and lossless with alpha.
type PNGEncoder struct{}

// pngBuffers reuses zlib state between encodes.
type pngBuffers struct {
	pool sync.Pool
}

func (p *pngBuffers) Get() *png.EncoderBuffer {
	b, _ := p.pool.Get().(*png.EncoderBuffer)
	return b
}

func (p *pngBuffers) Put(b *png.EncoderBuffer) { p.pool.Put(b) }

var sharedPNGBuffers = &pngBuffers{}

func (e *PNGEncoder) Format() string    { return "png" }
func (e *PNGEncoder) Extension() string { return "png" }
func (e *PNGEncoder) Available() bool   { return true }

func (e *PNGEncoder) Encode(img image.Image, _ Options) ([]byte, error) {
	var buf bytes.Buffer
	b := img.Bounds()
	buf.Grow(b.Dx() * b.Dy())

	enc := &png.Encoder{CompressionLevel: png.BestCompression, BufferPool: sharedPNGBuffers}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
