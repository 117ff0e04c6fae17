package encoder

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"strconv"
	"sync"
	"sync/atomic"
)

// Atomic counter for unique temp file names across goroutines.
var tempCounter atomic.Int64

// DefaultWebPQuality is used for lossy output when no quality is given.
const DefaultWebPQuality = 90

// WebPEncoder encodes images to WebP by shelling out to cwebp.
// Install: brew install webp / apt install webp
type WebPEncoder struct {
	once      sync.Once
	available bool
	cwebpPath string
}

func (e *WebPEncoder) Format() string    { return "webp" }
func (e *WebPEncoder) Extension() string { return "webp" }

func (e *WebPEncoder) Available() bool {
	e.once.Do(func() {
		path, err := exec.LookPath("cwebp")
		if err == nil {
			e.available = true
			e.cwebpPath = path
		}
	})
	return e.available
}

// args builds the cwebp command line. Quality 100 implies lossless:
// hard pixel edges are what the scaler produces and lossy WebP smears them.
func (e *WebPEncoder) args(opts Options, srcPath, dstPath string) []string {
	args := []string{"-m", "6", "-mt", "-quiet"}
	if opts.Lossless || opts.Quality >= 100 {
		args = append(args, "-lossless", "-exact")
	} else {
		q := opts.Quality
		if q <= 0 {
			q = DefaultWebPQuality
		}
		args = append(args, "-q", strconv.Itoa(q))
	}
	return append(args, srcPath, "-o", dstPath)
}

func (e *WebPEncoder) Encode(img image.Image, opts Options) ([]byte, error) {
	if !e.Available() {
		return nil, fmt.Errorf("cwebp not found in PATH; install with: brew install webp")
	}

	// cwebp reads files, so the source goes through a temp PNG.
	id := tempCounter.Add(1)
	srcFile, err := os.CreateTemp("", fmt.Sprintf("xbrz_src_%d_*.png", id))
	if err != nil {
		return nil, fmt.Errorf("create temp: %w", err)
	}
	srcPath := srcFile.Name()
	defer os.Remove(srcPath)

	dstFile, err := os.CreateTemp("", fmt.Sprintf("xbrz_dst_%d_*.webp", id))
	if err != nil {
		srcFile.Close()
		return nil, fmt.Errorf("create temp: %w", err)
	}
	dstPath := dstFile.Name()
	dstFile.Close()
	defer os.Remove(dstPath)

	enc := &png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(srcFile, img); err != nil {
		srcFile.Close()
		return nil, fmt.Errorf("encode temp png: %w", err)
	}
	if err := srcFile.Close(); err != nil {
		return nil, fmt.Errorf("close temp png: %w", err)
	}

	cmd := exec.Command(e.cwebpPath, e.args(opts, srcPath, dstPath)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("cwebp: %w: %s", err, string(out))
	}

	return os.ReadFile(dstPath)
}
