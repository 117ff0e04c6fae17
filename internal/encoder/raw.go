package encoder

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/AnyUserName/xbrz-cli/xbrz"
	"github.com/klauspost/compress/zstd"
)

// Raw sprite layout before compression: the magic, width and height as
// little-endian u32, then width*height pixels as little-endian 0xAARRGGBB.
const (
	rawMagic      = "XBRZ"
	rawHeaderSize = 12
)

// ErrBadRaw is returned for data that is not a raw sprite.
var ErrBadRaw = errors.New("not an xbrz raw sprite")

// RawEncoder stores the packed pixels zstd-compressed. It is lossless,
// keeps alpha and decodes without any image library.
type RawEncoder struct{}

func (e *RawEncoder) Format() string    { return "raw" }
func (e *RawEncoder) Extension() string { return "rgba.zst" }
func (e *RawEncoder) Available() bool   { return true }

func (e *RawEncoder) Encode(img image.Image, _ Options) ([]byte, error) {
	px, w, h := xbrz.FromImage(img)
	return EncodeRaw(px, w, h)
}

// EncodeRaw packs and compresses a width×height pixel slice.
func EncodeRaw(px []xbrz.Pixel, width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 || len(px) < width*height {
		return nil, fmt.Errorf("raw: %d pixels for %dx%d", len(px), width, height)
	}
	buf := make([]byte, rawHeaderSize+4*width*height)
	copy(buf, rawMagic)
	binary.LittleEndian.PutUint32(buf[4:], uint32(width))
	binary.LittleEndian.PutUint32(buf[8:], uint32(height))
	for i, p := range px[:width*height] {
		binary.LittleEndian.PutUint32(buf[rawHeaderSize+4*i:], uint32(p))
	}

	enc := zstdEncPool.Get().(*zstd.Encoder)
	out := enc.EncodeAll(buf, nil)
	zstdEncPool.Put(enc)
	return out, nil
}

// DecodeRaw reverses EncodeRaw.
func DecodeRaw(data []byte) ([]xbrz.Pixel, int, int, error) {
	dec := zstdDecPool.Get().(*zstd.Decoder)
	buf, err := dec.DecodeAll(data, nil)
	zstdDecPool.Put(dec)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("%w: %v", ErrBadRaw, err)
	}
	if len(buf) < rawHeaderSize || string(buf[:4]) != rawMagic {
		return nil, 0, 0, ErrBadRaw
	}
	w := int(binary.LittleEndian.Uint32(buf[4:]))
	h := int(binary.LittleEndian.Uint32(buf[8:]))
	payload := len(buf) - rawHeaderSize
	if w <= 0 || h <= 0 || payload%4 != 0 || (payload/4)%w != 0 || payload/4/w != h {
		return nil, 0, 0, fmt.Errorf("%w: %dx%d with %d payload bytes", ErrBadRaw, w, h, payload)
	}
	px := make([]xbrz.Pixel, w*h)
	for i := range px {
		px[i] = xbrz.Pixel(binary.LittleEndian.Uint32(buf[rawHeaderSize+4*i:]))
	}
	return px, w, h, nil
}

func mustNewZstdEncoder() *zstd.Encoder {
	enc, err := zstd.NewWriter(
		nil,
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
	)
	if err != nil {
		panic(err)
	}
	return enc
}

func mustNewZstdDecoder() *zstd.Decoder {
	dec, err := zstd.NewReader(
		nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderLowmem(true),
	)
	if err != nil {
		panic(err)
	}
	return dec
}

var zstdEncPool = sync.Pool{
	New: func() any { return mustNewZstdEncoder() },
}

var zstdDecPool = sync.Pool{
	New: func() any { return mustNewZstdDecoder() },
}
