package hasher

import (
	"encoding/binary"
	"encoding/hex"
	"io"

	"github.com/AnyUserName/xbrz-cli/xbrz"
	"github.com/cespare/xxhash/v2"
)

// ContentHash computes the xxHash64 of data and returns a hex string
// truncated to the given length. Output file names use the first 8
// chars; the manifest keeps 16.
func ContentHash(data []byte, hexLen int) string {
	return truncHex(xxhash.Sum64(data), hexLen)
}

// ContentHashReader computes xxHash64 from a reader, streaming.
func ContentHashReader(r io.Reader, hexLen int) (string, error) {
	h := xxhash.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return truncHex(h.Sum64(), hexLen), nil
}

// PixelDigest hashes the packed pixels of an image together with its
// size. It identifies the scaled result independently of the file
// encoding, so a png and a raw output of the same render share it.
func PixelDigest(px []xbrz.Pixel, width, height int) uint64 {
	h := xxhash.New()
	var buf [4096]byte
	binary.LittleEndian.PutUint32(buf[0:], uint32(width))
	binary.LittleEndian.PutUint32(buf[4:], uint32(height))
	h.Write(buf[:8])

	n := 0
	for _, p := range px {
		binary.LittleEndian.PutUint32(buf[n:], uint32(p))
		n += 4
		if n == len(buf) {
			h.Write(buf[:n])
			n = 0
		}
	}
	h.Write(buf[:n])
	return h.Sum64()
}

// PixelDigestHex is PixelDigest as a 16-char hex string.
func PixelDigestHex(px []xbrz.Pixel, width, height int) string {
	return truncHex(PixelDigest(px, width, height), 0)
}

func truncHex(v uint64, hexLen int) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	full := hex.EncodeToString(b[:])
	if hexLen > 0 && hexLen < len(full) {
		return full[:hexLen]
	}
	return full
}
