package hasher

import (
	"strings"
	"testing"

	"github.com/AnyUserName/xbrz-cli/xbrz"
	"github.com/cespare/xxhash/v2"
)

func TestContentHashLength(t *testing.T) {
	data := []byte("xbrz")
	if got := ContentHash(data, 0); len(got) != 16 {
		t.Errorf("full hash %q has %d chars", got, len(got))
	}
	full := ContentHash(data, 0)
	if got := ContentHash(data, 8); got != full[:8] {
		t.Errorf("truncated %q is not a prefix of %q", got, full)
	}
	if got := ContentHash(data, 40); got != full {
		t.Errorf("oversized length should return full hash, got %q", got)
	}
}

func TestContentHashReaderMatches(t *testing.T) {
	data := strings.Repeat("pixel", 10000)
	got, err := ContentHashReader(strings.NewReader(data), 16)
	if err != nil {
		t.Fatal(err)
	}
	if want := ContentHash([]byte(data), 16); got != want {
		t.Errorf("reader hash %s != %s", got, want)
	}
}

func TestPixelDigest(t *testing.T) {
	// More than one buffer's worth of pixels.
	px := make([]xbrz.Pixel, 3000)
	for i := range px {
		px[i] = xbrz.Pixel(i * 2654435761)
	}
	d := PixelDigest(px, 60, 50)

	// Same bytes hashed in one go.
	raw := make([]byte, 0, 8+4*len(px))
	raw = append(raw, 60, 0, 0, 0, 50, 0, 0, 0)
	for _, p := range px {
		raw = append(raw, byte(p), byte(p>>8), byte(p>>16), byte(p>>24))
	}
	if want := xxhash.Sum64(raw); d != want {
		t.Errorf("digest %x, want %x", d, want)
	}

	if PixelDigest(px, 50, 60) == d {
		t.Error("digest ignores dimensions")
	}
	px[len(px)-1]++
	if PixelDigest(px, 60, 50) == d {
		t.Error("digest ignores the last pixel")
	}
	if got := PixelDigestHex(px, 60, 50); len(got) != 16 {
		t.Errorf("hex digest %q", got)
	}
}
